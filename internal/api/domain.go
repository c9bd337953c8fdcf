package api

import (
	"fmt"

	"github.com/JaimeStill/unifix/internal/accounts"
	"github.com/JaimeStill/unifix/internal/auth"
	"github.com/JaimeStill/unifix/internal/config"
	"github.com/JaimeStill/unifix/internal/reports"
	"github.com/JaimeStill/unifix/internal/uniforms"
	"github.com/JaimeStill/unifix/internal/violations"
)

// Domain holds all domain systems that comprise the API, plus the gate
// and renderer shared across their handlers.
type Domain struct {
	Accounts   accounts.System
	Violations violations.System
	Uniforms   uniforms.System
	Gate       *auth.Gate
	Renderer   *reports.Renderer
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) (*Domain, error) {
	accountsSystem, err := accounts.New(
		runtime.Database.Connection(),
		auth.NewIssuer(&cfg.Auth),
		cfg.Auth.BcryptCost,
		runtime.Logger,
	)
	if err != nil {
		return nil, fmt.Errorf("accounts init failed: %w", err)
	}

	violationsSystem := violations.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	uniformsSystem := uniforms.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Accounts:   accountsSystem,
		Violations: violationsSystem,
		Uniforms:   uniformsSystem,
		Gate:       auth.NewGate(auth.NewVerifier(&cfg.Auth), runtime.Metrics, runtime.Logger),
		Renderer:   reports.NewRenderer(&cfg.Report, runtime.Logger),
	}, nil
}
