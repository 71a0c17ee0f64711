package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound is returned when a referenced job, user or message does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidTransition is returned when a lifecycle operation is invoked from the
	// wrong job status or by an actor who may not perform it.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrForbidden is returned when the actor lacks rights on an entity.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation is returned for malformed input.
	ErrValidation = errors.New("validation error")
	// ErrConflict is returned when a unique attribute is already taken.
	ErrConflict = errors.New("conflict")
	// ErrStoreUnavailable is returned when the persistence backend fails. It is transient.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrAssistUnavailable is returned when the AI backend fails or returns unusable output.
	ErrAssistUnavailable = errors.New("assist unavailable")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// Retryable reports whether the caller may retry the same request unchanged.
func Retryable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable) || errors.Is(err, ErrAssistUnavailable)
}

// MapErrorToHTTP maps domain errors to HTTP errors. The wrapped message is kept for
// domain errors; backend failures are reported generically.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrInvalidTransition):
		return NewHTTPError(http.StatusConflict, err.Error(), "INVALID_TRANSITION")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusConflict, err.Error(), "CONFLICT")
	case errors.Is(err, ErrStoreUnavailable):
		return NewHTTPError(http.StatusServiceUnavailable, "storage temporarily unavailable", "STORE_UNAVAILABLE")
	case errors.Is(err, ErrAssistUnavailable):
		return NewHTTPError(http.StatusServiceUnavailable, "suggestions temporarily unavailable", "ASSIST_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
