package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/unifix/internal/config"
	"github.com/JaimeStill/unifix/pkg/openapi"
	"github.com/JaimeStill/unifix/pkg/routes"
)

// SpecPath serves the generated OpenAPI document relative to the API prefix.
const SpecPath = "/openapi.json"

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	public := []routes.Group{
		domain.Accounts.Handler(runtime.Metrics).Routes(),
	}

	gated := []routes.Group{
		domain.Violations.Handler(domain.Renderer, runtime.Metrics, cfg.API.MaxUploadSizeBytes()).Routes(),
		domain.Uniforms.Handler(runtime.Metrics, cfg.API.MaxUploadSizeBytes()).Routes(),
	}
	for i := range gated {
		gated[i].Middleware = append(gated[i].Middleware, domain.Gate.Middleware)
	}

	routes.Register(mux, public...)
	routes.Register(mux, gated...)

	specBytes, err := buildSpec(cfg, append(public, gated...)...)
	if err != nil {
		return err
	}
	mux.HandleFunc("GET "+SpecPath, openapi.ServeSpec(specBytes))

	return nil
}

func buildSpec(cfg *config.Config, groups ...routes.Group) ([]byte, error) {
	spec := openapi.NewSpec(cfg.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	routes.Describe(spec, "", groups...)

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, fmt.Errorf("marshal openapi spec: %w", err)
	}
	return data, nil
}
