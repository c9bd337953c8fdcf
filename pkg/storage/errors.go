package storage

import (
	"errors"
	"net/http"
)

// Errors returned by the uniform image blob store.
var (
	ErrNotFound   = errors.New("uniform blob not found")
	ErrEmptyKey   = errors.New("blob key must not be empty")
	ErrInvalidKey = errors.New("blob key contains a path traversal segment")
)

// MapHTTPStatus is the fallback status mapping for uniform handlers when a
// blob error escapes the domain layer unwrapped.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmptyKey), errors.Is(err, ErrInvalidKey):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
