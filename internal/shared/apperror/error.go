package apperror

import (
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string `json:"code"`            // Error code (e.g., INVALID_INPUT)
	Message    string `json:"message"`         // User-friendly message
	Field      string `json:"field,omitempty"` // Offending field for validation/conflict errors
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped original error (optional)
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements errors.Unwrap interface for errors.Is/As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError without wrapping
func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        nil,
	}
}

// Wrap creates an AppError that wraps an existing error
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// NewValidation membuat error INVALID_INPUT yang menunjuk field bermasalah.
func NewValidation(field, message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		Field:      field,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewConflict membuat error CONFLICT per-field (duplikat nik/nip/email).
func NewConflict(field, message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		Field:      field,
		HTTPStatus: http.StatusConflict,
	}
}

func RequiredField(field string) *AppError {
	return NewValidation(field, fmt.Sprintf("%s is required", field))
}

func InvalidField(field string) *AppError {
	return NewValidation(field, fmt.Sprintf("%s is invalid", field))
}
