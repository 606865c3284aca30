package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"

	// Generation and hint pipeline
	ErrCodeTimeout            = "TIMEOUT"
	ErrCodeUpstream           = "UPSTREAM_ERROR"
	ErrCodeFormat             = "FORMAT_ERROR"
	ErrCodeGenerationFailed   = "GENERATION_FAILED"
	ErrCodeValidationRejected = "VALIDATION_REJECTED"
)

// AppError represents an application error with HTTP status code and error code.
// Message becomes the "error" field of the response body and Details the "details" field.
type AppError struct {
	Code    string
	Message string
	Details string
	Status  int
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// As returns the first *AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether any *AppError in err's chain carries code.
func HasCode(err error, code string) bool {
	for err != nil {
		var appErr *AppError
		if !stderrors.As(err, &appErr) {
			return false
		}
		if appErr.Code == code {
			return true
		}
		err = appErr.Err
	}
	return false
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id any) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  http.StatusNotFound,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  http.StatusBadRequest,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	appErr := &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
	if err != nil {
		appErr.Message = err.Error()
	}
	return appErr
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// NewTimeoutError reports an upstream call that ran past its deadline.
func NewTimeoutError(op string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeTimeout,
		Message: op + " timed out",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// NewRequestTimeoutError is the response-facing form of a primary generation timeout.
func NewRequestTimeoutError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeTimeout,
		Message: "Request timeout",
		Details: "Pattern generation took too long",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// NewUpstreamError reports a non-timeout failure talking to the AI provider.
func NewUpstreamError(op string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeUpstream,
		Message: op + " failed",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// NewFormatError reports model output that did not match the expected template.
func NewFormatError(reason string) *AppError {
	return &AppError{
		Code:    ErrCodeFormat,
		Message: reason,
		Status:  http.StatusInternalServerError,
	}
}

// NewGenerationFailedError reports that primary and fallback generation both failed.
func NewGenerationFailedError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeGenerationFailed,
		Message: "Failed to generate pattern",
		Details: "Both primary and fallback pattern generation failed",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// NewValidationRejectedError reports that the validator rejected every attempt.
func NewValidationRejectedError(sequence string, attempts int) *AppError {
	return &AppError{
		Code:    ErrCodeValidationRejected,
		Message: fmt.Sprintf("pattern %q rejected as ambiguous after %d attempts", sequence, attempts),
		Status:  http.StatusInternalServerError,
	}
}

// Details renders err for the "details" field of a response body. A bare
// AppError contributes its message and cause without the code.
func Details(err error) string {
	if err == nil {
		return ""
	}
	appErr, ok := err.(*AppError)
	if !ok {
		return err.Error()
	}
	if appErr.Err != nil {
		return fmt.Sprintf("%s: %v", appErr.Message, appErr.Err)
	}
	return appErr.Message
}

// WithMessage re-labels err for the response body, keeping its code and status
// and moving its text into Details.
func WithMessage(err error, message string) *AppError {
	out := &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Details: Details(err),
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
	if appErr, ok := As(err); ok {
		out.Code = appErr.Code
		out.Status = appErr.Status
	}
	return out
}
