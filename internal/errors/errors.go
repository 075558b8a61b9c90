package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrTranslationNotFound is returned when a translation id does not resolve.
	ErrTranslationNotFound = errors.New("translation not found")
	// ErrKeyTaken is returned when a translation key is already in use.
	ErrKeyTaken = errors.New("the key has already been taken")
	// ErrEmailTaken is returned when a registration email is already in use.
	ErrEmailTaken = errors.New("the email has already been taken")
	// ErrInvalidCredentials is returned on login failure. It deliberately does
	// not distinguish an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmptyTranslations is returned when a translations mapping is missing
	// or empty.
	ErrEmptyTranslations = errors.New("the translations field must be a non-empty object")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ValidationFailure carries per-field validation reasons. It renders as the
// 422 payload `{"message": ..., "errors": {field: [reasons]}}`.
type ValidationFailure struct {
	Message string              `json:"message"`
	Fields  map[string][]string `json:"errors"`
}

func (e *ValidationFailure) Error() string {
	return e.Message
}

// NewValidationFailure builds a single-field validation failure.
func NewValidationFailure(field, reason string) *ValidationFailure {
	return &ValidationFailure{
		Message: "The given data was invalid.",
		Fields:  map[string][]string{field: {reason}},
	}
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

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrTranslationNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TRANSLATION_NOT_FOUND")
	case errors.Is(err, ErrKeyTaken):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "KEY_TAKEN")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrEmptyTranslations):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "EMPTY_TRANSLATIONS")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
