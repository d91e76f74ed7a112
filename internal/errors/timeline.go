package errors

import (
	stderrors "errors"
	"fmt"
)

// ConfigError reports an invalid timeline construction. It is fatal: the
// session cannot start.
type ConfigError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid timeline configuration: %s %s", e.Field, e.Reason)
}

// MissingFieldError reports a submitted payload that lacks an expected field.
type MissingFieldError struct {
	Field string `json:"field"`
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("submitted payload is missing field '%s'", e.Field)
}

// SequenceError reports an operation issued while the timeline is in a state
// that does not allow it, e.g. a submit after the last trial.
type SequenceError struct {
	Op    string `json:"op"`
	State string `json:"state"`
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("%s not allowed in state %s", e.Op, e.State)
}

func NewConfigError(field, reason string) *ConfigError {
	return &ConfigError{Field: field, Reason: reason}
}

func NewMissingFieldError(field string) *MissingFieldError {
	return &MissingFieldError{Field: field}
}

func NewSequenceError(op, state string) *SequenceError {
	return &SequenceError{Op: op, State: state}
}

// IsConfig checks if err is, or wraps, a ConfigError
func IsConfig(err error) bool {
	var ce *ConfigError
	return stderrors.As(err, &ce)
}

// IsMissingField checks if err is, or wraps, a MissingFieldError
func IsMissingField(err error) bool {
	var me *MissingFieldError
	return stderrors.As(err, &me)
}

// IsSequence checks if err is, or wraps, a SequenceError
func IsSequence(err error) bool {
	var se *SequenceError
	return stderrors.As(err, &se)
}
