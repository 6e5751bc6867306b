package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error codes surfaced to API clients
const (
	CodeInvalidRequest           = "INVALID_REQUEST"
	CodeCharacterNotFound        = "CHARACTER_NOT_FOUND"
	CodeSessionNotFound          = "SESSION_NOT_FOUND"
	CodeCharacterExists          = "CHARACTER_EXISTS"
	CodeSessionCharacterMismatch = "SESSION_CHARACTER_MISMATCH"
	CodeUpstreamFailure          = "UPSTREAM_FAILURE"
	CodeRateLimitExceeded        = "RATE_LIMIT_EXCEEDED"
	CodeInternal                 = "INTERNAL_ERROR"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
	cause      error
}

// Error implements the error interface
func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any
func (e *AppError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

// NewError creates a new application error
func NewError(statusCode int, code string, message string) *AppError {
	return &AppError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
}

// NewBadRequestError creates a 400 Bad Request error
func NewBadRequestError(code string, message string) *AppError {
	return NewError(http.StatusBadRequest, code, message)
}

// NewNotFoundError creates a 404 Not Found error
func NewNotFoundError(code string, message string) *AppError {
	return NewError(http.StatusNotFound, code, message)
}

// NewConflictError creates a 409 Conflict error
func NewConflictError(code string, message string) *AppError {
	return NewError(http.StatusConflict, code, message)
}

// NewTooManyRequestsError creates a 429 Too Many Requests error
func NewTooManyRequestsError(code string, message string) *AppError {
	return NewError(http.StatusTooManyRequests, code, message)
}

// NewInternalServerError creates a 500 Internal Server Error
func NewInternalServerError(code string, message string) *AppError {
	return NewError(http.StatusInternalServerError, code, message)
}

// NewUpstreamError creates a 502 Bad Gateway error for a failed completion call.
// The upstream message is kept in the surfaced text.
func NewUpstreamError(cause error) *AppError {
	appErr := NewError(http.StatusBadGateway, CodeUpstreamFailure, fmt.Sprintf("AI call failed: %v", cause))
	appErr.cause = cause
	return appErr
}

// HasCode checks if err is (or wraps) an AppError with the given code
func HasCode(err error, code string) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr) && appErr.Code == code
}
