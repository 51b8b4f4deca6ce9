package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is an error with a stable code and the HTTP status it maps to.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	// Err is the underlying cause, if any.
	Err error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Retryable reports whether repeating the operation may succeed. Upstream
// and availability failures are; client and state errors are not.
func (e *AppError) Retryable() bool {
	switch e.Code {
	case CodeUpstreamFailure, CodeServiceUnavailable, CodeTooManyRequests:
		return true
	}
	return e.HTTPStatus >= http.StatusInternalServerError && e.Code != CodeInternalError
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap returns nil when err is nil.
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

// IsRetryable classifies any error. Errors without an AppError in their
// chain are treated as transient.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Retryable()
	}
	return true
}
