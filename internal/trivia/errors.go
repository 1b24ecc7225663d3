package trivia

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports that a referenced question or category does not exist.
	ErrNotFound = errors.New("trivia: not found")
	// ErrMalformedBody reports a request body that is not a JSON object.
	ErrMalformedBody = errors.New("trivia: malformed request body")
)

// MissingFieldError reports a required field that was absent or null.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("trivia: missing required field %q", e.Field)
}

// InvalidFieldError reports a field that is present but cannot be used.
type InvalidFieldError struct {
	Field string
	Err   error
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("trivia: invalid field %q: %v", e.Field, e.Err)
}

func (e *InvalidFieldError) Unwrap() error { return e.Err }

// StorageError wraps a failure of the underlying store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("trivia: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
