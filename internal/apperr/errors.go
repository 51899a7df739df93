package apperr

import (
	"errors"
	"fmt"
)

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// BackendConnectionError reports that a backend could not be reached.
// It is fatal to a whole benchmark run.
type BackendConnectionError struct {
	Backend string
	Err     error
}

func (e *BackendConnectionError) Error() string {
	return fmt.Sprintf("%s connection failed: %v", e.Backend, e.Err)
}

func (e *BackendConnectionError) Unwrap() error {
	return e.Err
}

func NewConnection(backend string, err error) *BackendConnectionError {
	return &BackendConnectionError{Backend: backend, Err: err}
}

// BackendWriteError reports a failed bulk insert.
type BackendWriteError struct {
	Backend string
	Err     error
}

func (e *BackendWriteError) Error() string {
	return fmt.Sprintf("%s write failed: %v", e.Backend, e.Err)
}

func (e *BackendWriteError) Unwrap() error {
	return e.Err
}

func NewWrite(backend string, err error) *BackendWriteError {
	return &BackendWriteError{Backend: backend, Err: err}
}

// BackendQueryError reports a failed read, aggregation or search request.
type BackendQueryError struct {
	Backend string
	Op      string
	Err     error
}

func (e *BackendQueryError) Error() string {
	return fmt.Sprintf("%s %s query failed: %v", e.Backend, e.Op, e.Err)
}

func (e *BackendQueryError) Unwrap() error {
	return e.Err
}

func NewQuery(backend, op string, err error) *BackendQueryError {
	return &BackendQueryError{Backend: backend, Op: op, Err: err}
}

// WrapQuery types err as a BackendQueryError. Errors that already carry a
// backend or field type are returned unchanged.
func WrapQuery(backend, op string, err error) error {
	if err == nil {
		return nil
	}
	var (
		fe *UnsupportedFieldError
		qe *BackendQueryError
		ce *BackendConnectionError
	)
	if errors.As(err, &fe) || errors.As(err, &qe) || errors.As(err, &ce) {
		return err
	}
	return NewQuery(backend, op, err)
}

type UnsupportedFieldError struct {
	Field string
}

func (e *UnsupportedFieldError) Error() string {
	return fmt.Sprintf("unsupported field %q", e.Field)
}

func NewUnsupportedField(field string) *UnsupportedFieldError {
	return &UnsupportedFieldError{Field: field}
}
