package config

import (
	"os"
	"time"

	"github.com/mr-shifu/pedersen-lib/core/math/prime"
	"github.com/mr-shifu/pedersen-lib/core/math/sample"
	"github.com/mr-shifu/pedersen-lib/core/pedersen"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds the tunables of parameter generation and commitment.
type Config struct {
	// Bits is the size of generated safe primes.
	Bits int `yaml:"bits"`
	// Rounds of Miller-Rabin used to confirm primes.
	Rounds int `yaml:"rounds"`
	// Concurrency is the number of safe prime search workers, 0 means one per CPU.
	Concurrency int `yaml:"concurrency"`
	// Timeout bounds a safe prime search, 0 means no bound.
	Timeout time.Duration `yaml:"timeout"`
	// BlindingBytes is the size of fresh blinding factors.
	BlindingBytes int `yaml:"blinding_bytes"`
	// LogLevel is a logrus level name.
	LogLevel string `yaml:"log_level"`
}

func Default() *Config {
	return &Config{
		Bits:          pedersen.DefaultBits,
		Rounds:        prime.DefaultRounds,
		BlindingBytes: sample.DefaultBlindingBytes,
		LogLevel:      log.InfoLevel.String(),
	}
}

// Load reads a YAML configuration file. Missing keys keep their Default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithMessagef(err, "config: failed to read %s", path)
	}
	return Parse(data)
}

// Parse decodes a YAML configuration over Default and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.WithMessage(err, "config: failed to decode yaml")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	if cfg.Bits < prime.MinSafePrimeBits {
		return errors.WithMessagef(ErrInvalidConfig, "config: bits must be at least %d", prime.MinSafePrimeBits)
	}
	if cfg.Rounds <= 0 {
		return errors.WithMessage(ErrInvalidConfig, "config: rounds must be positive")
	}
	if cfg.Concurrency < 0 {
		return errors.WithMessage(ErrInvalidConfig, "config: concurrency must not be negative")
	}
	if cfg.Timeout < 0 {
		return errors.WithMessage(ErrInvalidConfig, "config: timeout must not be negative")
	}
	if cfg.BlindingBytes <= 0 {
		return errors.WithMessage(ErrInvalidConfig, "config: blinding_bytes must be positive")
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return errors.WithMessage(ErrInvalidConfig, err.Error())
	}
	return nil
}

// SieveConfig returns the safe prime search settings.
func (cfg *Config) SieveConfig() prime.SieveConfig {
	return prime.SieveConfig{
		Rounds:      cfg.Rounds,
		Concurrency: cfg.Concurrency,
		Timeout:     cfg.Timeout,
	}
}

// Apply sets the standard logger level.
func (cfg *Config) Apply() error {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.WithMessage(ErrInvalidConfig, err.Error())
	}
	log.SetLevel(level)
	return nil
}
