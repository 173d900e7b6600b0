package domain

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	// transport-level failure talking to the classifier or the store
	ErrorTypeNetwork ErrorType = "NETWORK"
	// non-2xx status or an error payload
	ErrorTypeUpstream ErrorType = "UPSTREAM"
	// classifier text that is not the expected id array
	ErrorTypeMalformed     ErrorType = "MALFORMED"
	ErrorTypeValidation    ErrorType = "VALIDATION"
	ErrorTypeNotConfigured ErrorType = "NOT_CONFIGURED"
	ErrorTypeConflict      ErrorType = "CONFLICT"
	ErrorTypeNotFound      ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized  ErrorType = "UNAUTHORIZED"
)

type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewNetworkError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeNetwork, Message: message, Err: err}
}

func NewUpstreamError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeUpstream, Message: message, Err: err}
}

func NewMalformedError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeMalformed, Message: message, Err: err}
}

func NewValidationError(message string) *AppError {
	return &AppError{Type: ErrorTypeValidation, Message: message}
}

func NewNotConfiguredError(message string) *AppError {
	return &AppError{Type: ErrorTypeNotConfigured, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Type: ErrorTypeConflict, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Type: ErrorTypeNotFound, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Type: ErrorTypeUnauthorized, Message: message}
}

// ErrorTypeOf returns the type of the first AppError in err's chain, or "".
func ErrorTypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

func IsType(err error, errorType ErrorType) bool {
	return ErrorTypeOf(err) == errorType
}
