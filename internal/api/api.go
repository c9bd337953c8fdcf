// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/JaimeStill/unifix/internal/config"
	"github.com/JaimeStill/unifix/internal/infrastructure"
	"github.com/JaimeStill/unifix/pkg/middleware"
	"github.com/JaimeStill/unifix/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// Request metrics wrap the mux directly so the matched pattern labels each series.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)

	domain, err := NewDomain(cfg, runtime)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg, runtime); err != nil {
		return nil, err
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(runtime.Metrics.Middleware)

	return m, nil
}
