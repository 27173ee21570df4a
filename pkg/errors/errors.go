package errors

import (
	"errors"
	"fmt"
)

// Common application errors
var (
	ErrNotFound     = NewNotFoundError("resource", "resource not found")
	ErrInvalidInput = NewValidationError("", "invalid argument")
	ErrInternal     = NewInternalError("internal server error", nil)
)

// ValidationError represents a request that does not match the expected shape or types
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// WrapValidationError creates a validation error carrying its cause
func WrapValidationError(field string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: err.Error(),
		Err:     err,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Unwrap returns the wrapped error
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// ConnectionError is returned when the database connection could not be established.
// It is not retried by the caller.
type ConnectionError struct {
	Message string
	Err     error
}

// NewConnectionError creates a new connection error
func NewConnectionError(message string, err error) *ConnectionError {
	return &ConnectionError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *ConnectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// InternalError represents a driver or unexpected error with context
type InternalError struct {
	Message string
	Err     error
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *InternalError {
	return &InternalError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *InternalError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err, or any error it wraps, is a NotFoundError
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsValidation reports whether err, or any error it wraps, is a ValidationError
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsConnection reports whether err, or any error it wraps, is a ConnectionError
func IsConnection(err error) bool {
	var target *ConnectionError
	return errors.As(err, &target)
}

// Code returns a stable machine-readable code for err
func Code(err error) string {
	switch {
	case IsNotFound(err):
		return "not_found"
	case IsValidation(err):
		return "validation_error"
	case IsConnection(err):
		return "connection_error"
	default:
		return "internal_error"
	}
}
