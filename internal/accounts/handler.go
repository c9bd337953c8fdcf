package accounts

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/unifix/pkg/handlers"
	"github.com/JaimeStill/unifix/pkg/routes"
)

// Observer receives login outcomes.
type Observer interface {
	LoginAttempted(ok bool)
}

// Handler provides the public registration and login endpoints.
type Handler struct {
	sys      System
	observer Observer
	logger   *slog.Logger
}

func NewHandler(sys System, observer Observer, logger *slog.Logger) *Handler {
	if observer == nil {
		observer = nopObserver{}
	}
	return &Handler{
		sys:      sys,
		observer: observer,
		logger:   logger.With("handler", "accounts"),
	}
}

// Routes returns the route group for account endpoints. None are gated.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/auth",
		Tags:    []string{"Auth"},
		Schemas: schemas,
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/register", Handler: h.Register, OpenAPI: registerOp},
			{Method: "POST", Pattern: "/login", Handler: h.Login, OpenAPI: loginOp},
		},
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var cmd RegisterCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrValidation)
		return
	}

	if _, err := h.sys.Register(r.Context(), cmd); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondMessage(w, http.StatusCreated, "User registered successfully")
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var cmd LoginCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrValidation)
		return
	}

	token, err := h.sys.Login(r.Context(), cmd)
	if err != nil {
		if MapHTTPStatus(err) != http.StatusInternalServerError {
			h.observer.LoginAttempted(false)
		}
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.observer.LoginAttempted(true)
	handlers.RespondJSON(w, http.StatusOK, LoginResponse{
		Message:   "Login successful",
		Token:     token.Value,
		TokenType: token.Type,
		ExpiresIn: int64(token.ExpiresIn.Seconds()),
		ExpiresAt: token.ExpiresAt,
	})
}

type nopObserver struct{}

func (nopObserver) LoginAttempted(bool) {}
