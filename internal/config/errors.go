package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates a configuration file or settings object could not be used
var ErrInvalidConfig = errors.New("invalid configuration")

// InvalidConfigError describes why a configuration source was rejected
type InvalidConfigError struct {
	// Source is the file path, or "settings" for editor-provided configuration
	Source string
	Reason string
	Err    error
}

func (e *InvalidConfigError) Error() string {
	msg := fmt.Sprintf("invalid configuration in %s: %s", e.Source, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches ErrInvalidConfig
func (e *InvalidConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

func (e *InvalidConfigError) Unwrap() error {
	return e.Err
}

// NewInvalidConfigError creates a new invalid configuration error
func NewInvalidConfigError(source, reason string, err error) error {
	return &InvalidConfigError{
		Source: source,
		Reason: reason,
		Err:    err,
	}
}
