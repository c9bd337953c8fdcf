package accounts

import (
	"errors"
	"net/http"
)

var (
	ErrValidation         = errors.New("all fields are required")
	ErrInvalidEmail       = errors.New("malformed email address")
	ErrDuplicate          = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")
)

// MapHTTPStatus maps account domain errors to appropriate HTTP status codes.
// Unknown email and wrong password share one status and message.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrPasswordTooLong),
		errors.Is(err, ErrInvalidCredentials):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
