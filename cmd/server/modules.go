package main

import (
	"encoding/json"
	"net/http"

	"github.com/JaimeStill/unifix/internal/api"
	"github.com/JaimeStill/unifix/internal/config"
	"github.com/JaimeStill/unifix/internal/infrastructure"
	"github.com/JaimeStill/unifix/pkg/middleware"
	"github.com/JaimeStill/unifix/pkg/module"
	"github.com/JaimeStill/unifix/web/docs"
)

type Modules struct {
	API  *module.Module
	Docs *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	docsModule := docs.NewModule("/docs", cfg.OpenAPI.Title, cfg.API.BasePath+api.SpecPath)
	docsModule.Use(middleware.Logger(infra.Logger))

	return &Modules{
		API:  apiModule,
		Docs: docsModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Docs)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))

	router.HandleNative("GET /readyz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	}))

	router.HandleNative("GET /metrics", infra.Metrics.Handler())

	return router
}
