package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
	ErrCorruptDocument  = errors.New("stored document is corrupt")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrSessionExpired     = errors.New("session expired")

	// Validation errors
	ErrValidationFailed     = errors.New("validation failed")
	ErrBadRequest           = errors.New("bad request")
	ErrConfirmationRequired = errors.New("confirmation required")

	// Device errors
	ErrDeviceAccess = errors.New("device access failed")
)

// Staff errors
var (
	ErrStaffNotFound = fmt.Errorf("staff member not found: %w", ErrResourceNotFound)
)

// Admission errors
var (
	ErrDraftNotFound  = fmt.Errorf("admission draft not found: %w", ErrResourceNotFound)
	ErrDraftSubmitted = fmt.Errorf("admission draft already submitted: %w", ErrConflict)
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewDeviceError reports a camera or similar capture device failure with a user-facing message
func NewDeviceError(message string, cause error) error {
	return &CustomError{
		Err:     fmt.Errorf("%w: %w", ErrDeviceAccess, cause),
		Message: message,
	}
}

// NewCorruptDocumentError reports a stored value at key that could not be decoded
func NewCorruptDocumentError(key string, cause error) error {
	return &CustomError{
		Err:     fmt.Errorf("%w: %w", ErrCorruptDocument, cause),
		Message: fmt.Sprintf("document %q could not be decoded", key),
		Details: map[string]interface{}{"key": key},
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// ValidationError collects field-level messages keyed by the JSON field name.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns an empty ValidationError ready for Add calls
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

// Add records a message for field, keeping the first message per field
func (e *ValidationError) Add(field, message string) *ValidationError {
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
	return e
}

// HasErrors reports whether any field failed
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// Error implements error interface
func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// Unwrap lets errors.Is match ErrValidationFailed
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
