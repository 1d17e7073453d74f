package utils

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrorCodeValidationError   ErrorCode = "VALIDATION_ERROR"
	ErrorCodeInvalidURL        ErrorCode = "INVALID_URL"
	ErrorCodeUpstreamError     ErrorCode = "UPSTREAM_ERROR"
	ErrorCodeArtifactMissing   ErrorCode = "ARTIFACT_MISSING"
	ErrorCodeCookiesError      ErrorCode = "COOKIES_ERROR"
	ErrorCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrorCodeInternalError     ErrorCode = "INTERNAL_ERROR"
)

// AppError is the result type every service returns to the HTTP layer.
// StatusCode decides how it is surfaced; Message is shown to the client as-is.
type AppError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
	Err        error                  `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewError(code ErrorCode, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

func NewErrorWithDetails(code ErrorCode, message string, statusCode int, details map[string]interface{}) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// AsAppError unwraps err into an *AppError, wrapping unknown errors as internal ones.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	internal := NewInternalError()
	internal.Err = err
	return internal
}

// Common error constructors
func NewValidationError(message string, details map[string]interface{}) *AppError {
	return NewErrorWithDetails(ErrorCodeValidationError, message, http.StatusBadRequest, details)
}

func NewInvalidURLError(link string) *AppError {
	return NewErrorWithDetails(
		ErrorCodeInvalidURL,
		fmt.Sprintf("Invalid URL: %q is not an absolute http(s) URL", link),
		http.StatusBadRequest,
		map[string]interface{}{
			"provided": link,
		},
	)
}

// NewUpstreamError carries the extraction engine's message verbatim.
func NewUpstreamError(err error) *AppError {
	return &AppError{
		Code:       ErrorCodeUpstreamError,
		Message:    err.Error(),
		StatusCode: http.StatusBadRequest,
		Err:        err,
	}
}

func NewArtifactMissingError(fileID string) *AppError {
	return NewErrorWithDetails(
		ErrorCodeArtifactMissing,
		"Download failed",
		http.StatusInternalServerError,
		map[string]interface{}{
			"file_id": fileID,
		},
	)
}

func NewCookiesError(message string) *AppError {
	return NewError(ErrorCodeCookiesError, message, http.StatusBadRequest)
}

func NewRateLimitError() *AppError {
	return NewError(
		ErrorCodeRateLimitExceeded,
		"Too many requests",
		http.StatusTooManyRequests,
	)
}

func NewInternalError() *AppError {
	return NewError(
		ErrorCodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)
}
