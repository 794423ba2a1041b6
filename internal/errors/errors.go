package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeTransport indicates the backend was unreachable or the request
	// failed below the HTTP layer.
	ErrCodeTransport ErrorCode = "transport"
	// ErrCodeUnauthorized indicates the backend rejected the call with 401.
	ErrCodeUnauthorized ErrorCode = "unauthorized"
	// ErrCodeForbidden indicates the backend rejected the call with 403.
	ErrCodeForbidden ErrorCode = "forbidden"
	// ErrCodeMalformed indicates an unexpected response shape from the backend.
	ErrCodeMalformed ErrorCode = "malformed"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeProvider indicates an identity-provider failure; surfaced
	// verbatim to the form-level caller, not handled by the session core.
	ErrCodeProvider ErrorCode = "provider"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "internal"
)

// AppError represents a structured application error with a code, message,
// and optional cause. It supports error wrapping and unwrapping for use with
// errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// HTTPStatus is the backend status code, when the error came from an
	// HTTP response (0 otherwise).
	HTTPStatus int
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Transport creates a transport-failure error wrapping cause.
func Transport(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeTransport, Message: message, Cause: cause}
}

// Malformed creates an unexpected-response-shape error.
func Malformed(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeMalformed, Message: message, Cause: cause}
}

// Validationf creates a validation error with a formatted message.
func Validationf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: fmt.Sprintf(format, args...)}
}

// Provider wraps an identity-provider failure.
func Provider(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeProvider, Message: message, Cause: cause}
}

// FromStatus creates an AppError categorized by a backend HTTP status code.
func FromStatus(status int, message string) *AppError {
	code := ErrCodeInternal
	switch {
	case status == 401:
		code = ErrCodeUnauthorized
	case status == 403:
		code = ErrCodeForbidden
	case status == 404:
		code = ErrCodeNotFound
	case status >= 400 && status < 500:
		code = ErrCodeValidation
	}
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// CodeOf extracts the ErrorCode from err, or ErrCodeInternal when err is not
// an AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// IsAuth reports whether err is an authorization failure (401 or 403 from an
// authenticated call).
func IsAuth(err error) bool {
	code := CodeOf(err)
	return code == ErrCodeUnauthorized || code == ErrCodeForbidden
}

// StatusOf returns the backend HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus
	}
	return 0
}
