// internal/apperrors/errors.go
package apperrors

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// AppError is the typed error services raise; handlers map it onto the
// uniform response envelope.
type AppError struct {
	StatusCode int    `json:"status_code"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(statusCode int, code, message string) *AppError {
	return &AppError{StatusCode: statusCode, Code: code, Message: message}
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, "NOT_FOUND", message)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, "CONFLICT", message)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, "FORBIDDEN", message)
}

func Validation(message string) *AppError {
	return New(http.StatusBadRequest, "VALIDATION_ERROR", message)
}

// External wraps a provider failure; detail stays in Err for logging, the
// caller only sees the generic message.
func External(message string, err error) *AppError {
	e := New(http.StatusBadGateway, "EXTERNAL_SERVICE_ERROR", message)
	e.Err = err
	return e
}

func Internal(message string, err error) *AppError {
	e := New(http.StatusInternalServerError, "INTERNAL_ERROR", message)
	e.Err = err
	return e
}

// From classifies an arbitrary error into the taxonomy. Storage-specific
// errors are translated here so services can return gorm errors wrapped.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("record not found")
	}
	return Internal("internal server error", err)
}
