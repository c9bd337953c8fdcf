package uniforms

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/unifix/pkg/storage"
)

var (
	ErrNotFound   = errors.New("uniform image not found")
	ErrDuplicate  = errors.New("uniform image already exists")
	ErrNoFiles    = errors.New("no files uploaded")
	ErrValidation = errors.New("invalid upload")
	ErrInvalidID  = errors.New("invalid uniform image id")
	ErrTooLarge   = errors.New("upload exceeds size limit")
)

// MapHTTPStatus maps uniform domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrNoFiles),
		errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest
	default:
		return storage.MapHTTPStatus(err)
	}
}
