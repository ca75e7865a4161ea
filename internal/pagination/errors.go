package pagination

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter marks a page or size outside the allowed bounds (maps to HTTP 400).
var ErrInvalidParameter = errors.New("invalid pagination parameter")

// ParameterError names the offending parameter and unwraps to ErrInvalidParameter.
type ParameterError struct {
	Param  string
	Value  string
	Reason string
}

func newParameterError(param, value, reason string) *ParameterError {
	return &ParameterError{Param: param, Value: value, Reason: reason}
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: %s=%q %s", ErrInvalidParameter, e.Param, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error { return ErrInvalidParameter }
