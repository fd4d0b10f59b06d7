package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Every domain error wraps exactly one of these.
var (
	// ErrValidation marks a missing or invalid request field.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized marks bad credentials or an unusable token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound marks a resource that is absent or owned by someone else.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a uniqueness violation.
	ErrConflict = errors.New("conflict")
)

var (
	ErrCredentialsRequired = New(ErrValidation, "email and password required")
	ErrPasswordTooLong     = New(ErrValidation, "password must be at most 72 bytes")
	ErrNameRequired        = New(ErrValidation, "name required")
	ErrEntryFieldsRequired = New(ErrValidation, "metric_id and value required")
	ErrMetricIDRequired    = New(ErrValidation, "metric_id required")
	ErrValueRequired       = New(ErrValidation, "value must not be null")
	ErrDateRequired        = New(ErrValidation, "date must not be null")

	ErrEmailTaken = New(ErrConflict, "email already registered")

	ErrInvalidCredentials = New(ErrUnauthorized, "invalid credentials")
	ErrInvalidToken       = New(ErrUnauthorized, "invalid token")
	ErrUserNotFound       = New(ErrUnauthorized, "user not found")

	ErrMetricNotFound = New(ErrNotFound, "metric not found")
	ErrEntryNotFound  = New(ErrNotFound, "entry not found")
)

// Error is a domain error of a given kind carrying a client-safe message.
type Error struct {
	Kind    error
	Message string
}

// New creates a domain error of the given kind.
func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Validation builds a formatted validation error.
func Validation(format string, args ...interface{}) *Error {
	return New(ErrValidation, fmt.Sprintf(format, args...))
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Msg  string `json:"msg"`
	Code string `json:"code"`
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
		Msg:  e.Message,
		Code: e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything that is not a
// domain error becomes an opaque 500.
func MapErrorToHTTP(err error) *HTTPError {
	var domainErr *Error
	if !errors.As(err, &domainErr) {
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
	switch {
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, domainErr.Message, "VALIDATION_ERROR")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusBadRequest, domainErr.Message, "CONFLICT")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, domainErr.Message, "UNAUTHORIZED")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, domainErr.Message, "NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
