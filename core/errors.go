package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// SecurityError marks input that matched a known attack signature
// (script injection, SQL keywords, path traversal). It is a hard stop:
// the offending parameter or request is rejected, never repaired.
type SecurityError struct {
	Signature string
	Input     string // truncated for logging
}

func NewSecurityError(signature, input string) error {
	if len(input) > 128 {
		input = input[:128]
	}
	return &SecurityError{Signature: signature, Input: input}
}

func (err SecurityError) Error() string {
	return "security violation: " + err.Signature
}

func IsSecurityError(err error) bool {
	_, ok := errors.Cause(err).(*SecurityError)
	return ok
}
