package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the closed set of failure kinds surfaced to callers
type ErrorType string

const (
	// ErrorTypeInputMissing indicates the search text was empty
	ErrorTypeInputMissing ErrorType = "INPUT_MISSING"

	// ErrorTypeLocationNotFound indicates geocoding returned no match
	ErrorTypeLocationNotFound ErrorType = "LOCATION_NOT_FOUND"

	// ErrorTypeServiceUnavailable indicates an upstream call failed or returned a non-success status
	ErrorTypeServiceUnavailable ErrorType = "SERVICE_UNAVAILABLE"

	// ErrorTypeValidation indicates a malformed request payload
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewInputMissingError creates a new input missing error
func NewInputMissingError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeInputMissing,
		Message: message,
	}
}

// NewLocationNotFoundError creates a new location not found error
func NewLocationNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeLocationNotFound,
		Message: message,
	}
}

// NewServiceUnavailableError creates a new upstream failure error
func NewServiceUnavailableError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeServiceUnavailable,
		Message: message,
		Err:     err,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// As returns the first AppError in err's chain
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsType reports whether err carries an AppError of the given type
func IsType(err error, t ErrorType) bool {
	appErr, ok := As(err)
	return ok && appErr.Type == t
}
