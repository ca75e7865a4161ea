package app

import (
	"errors"
	"fmt"
)

// ErrConfiguration marks a composition failure. It is fatal to startup and never occurs
// while serving.
var ErrConfiguration = errors.New("configuration error")

// ConfigurationError names the composition step that failed.
type ConfigurationError struct {
	Op  string
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrConfiguration, e.Op, e.Err)
}

// Unwrap exposes both the marker and the cause to errors.Is / errors.As.
func (e *ConfigurationError) Unwrap() []error { return []error{ErrConfiguration, e.Err} }

func configErr(op string, err error) error {
	return &ConfigurationError{Op: op, Err: err}
}
