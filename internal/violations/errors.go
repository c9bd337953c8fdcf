package violations

import (
	"errors"
	"net/http"
)

// Domain errors for violation operations.
var (
	ErrNotFound   = errors.New("violation not found")
	ErrDuplicate  = errors.New("violation already exists")
	ErrValidation = errors.New("invalid violation")
	ErrInvalidID  = errors.New("invalid violation id")
	ErrTooLarge   = errors.New("violation body exceeds size limit")
)

// MapHTTPStatus maps violation domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidID) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}
