package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/unifix/pkg/handlers"
)

// Observer is notified of every gate rejection.
type Observer interface {
	AuthRejected(reason string)
}

// Gate fronts protected operations with credential verification.
type Gate struct {
	verifier *Verifier
	observer Observer
	logger   *slog.Logger
}

// NewGate creates a Gate. observer may be nil.
func NewGate(verifier *Verifier, observer Observer, logger *slog.Logger) *Gate {
	return &Gate{
		verifier: verifier,
		observer: observer,
		logger:   logger.With("system", "auth"),
	}
}

// Authorize extracts the credential from an Authorization header of the form
// "<scheme> <token>". Only the second space-separated segment is used.
// A missing header or segment yields ErrUnauthenticated; a credential that
// fails verification yields ErrForbidden.
func (g *Gate) Authorize(header string) (*Identity, error) {
	parts := strings.Split(header, " ")
	if len(parts) < 2 || parts[1] == "" {
		return nil, ErrUnauthenticated
	}

	return g.verifier.Verify(parts[1])
}

// Middleware rejects requests that fail Authorize and stores the identity
// in the request context for downstream handlers.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := g.Authorize(r.Header.Get("Authorization"))
		if err != nil {
			g.reject(r, err)
			status := MapHTTPStatus(err)
			handlers.RespondJSON(w, status, map[string]string{"error": publicError(err).Error()})
			return
		}

		g.logger.Debug("request authorized",
			"user_id", id.UserID,
			"method", r.Method,
			"uri", r.URL.RequestURI(),
		)
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

func (g *Gate) reject(r *http.Request, err error) {
	reason := "unauthenticated"
	if errors.Is(err, ErrForbidden) {
		reason = "forbidden"
	}

	g.logger.Warn("request rejected",
		"reason", reason,
		"error", err,
		"method", r.Method,
		"uri", r.URL.RequestURI(),
	)

	if g.observer != nil {
		g.observer.AuthRejected(reason)
	}
}

// publicError strips verification detail from the response body.
func publicError(err error) error {
	if errors.Is(err, ErrForbidden) {
		return ErrForbidden
	}
	return ErrUnauthenticated
}
