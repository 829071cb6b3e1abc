package keyopts

import (
	"github.com/pkg/errors"

	com_keyopts "github.com/mr-shifu/pedersen-lib/pkg/common/keyopts"
)

var ErrInvalidOptions = errors.New("keyopts: invalid options")

type Options map[string]interface{}

var _ com_keyopts.Options = Options{}

func NewOptions() Options {
	return make(Options)
}

// Set stores alternating key/value pairs.
func (opts Options) Set(kVs ...interface{}) (com_keyopts.Options, error) {
	if len(kVs)%2 != 0 {
		return nil, errors.WithMessage(ErrInvalidOptions, "odd number of arguments")
	}

	for i := 0; i < len(kVs); i += 2 {
		key, ok := kVs[i].(string)
		if !ok {
			return nil, errors.WithMessagef(ErrInvalidOptions, "key %v is not a string", kVs[i])
		}
		opts[key] = kVs[i+1]
	}

	return opts, nil
}

func (opts Options) Get(key string) (interface{}, bool) {
	val, ok := opts[key]
	return val, ok
}

// ID returns the "id" option as a string.
func ID(opts com_keyopts.Options) (string, error) {
	if opts == nil {
		return "", ErrInvalidParamsKeyID
	}
	v, ok := opts.Get("id")
	if !ok {
		return "", ErrInvalidParamsKeyID
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return "", ErrInvalidParamsKeyID
	}
	return id, nil
}
