package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 2048, cfg.Bits)
	assert.Equal(t, 100, cfg.Rounds)
	assert.Equal(t, 32, cfg.BlindingBytes)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
bits: 512
concurrency: 4
timeout: 30s
log_level: debug
`))
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.Bits)
	assert.Equal(t, 100, cfg.Rounds, "missing keys keep defaults")
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.Timeout)

	sc := cfg.SieveConfig()
	assert.Equal(t, 4, sc.Concurrency)
	assert.Equal(t, 30*time.Second, sc.Timeout)
}

func TestParse_Invalid(t *testing.T) {
	for _, doc := range []string{
		"bits: 4",
		"rounds: 0",
		"concurrency: -1",
		"blinding_bytes: 0",
		"log_level: loud",
	} {
		_, err := Parse([]byte(doc))
		assert.True(t, errors.Is(err, ErrInvalidConfig), doc)
	}

	_, err := Parse([]byte("bits: [1, 2]"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pedersen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bits: 1024\nrounds: 64\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Bits)
	assert.Equal(t, 64, cfg.Rounds)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	level := log.GetLevel()
	defer log.SetLevel(level)

	cfg := Default()
	cfg.LogLevel = "warning"
	require.NoError(t, cfg.Apply())
	assert.Equal(t, log.WarnLevel, log.GetLevel())
}
