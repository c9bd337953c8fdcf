//go:build integration

// Package testdb starts a disposable PostgreSQL container with the unifix
// schema applied, for integration tests.
package testdb

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/unifix/internal/migrations"
)

// Postgres wraps a running container and an open connection pool.
type Postgres struct {
	Container *tcpostgres.PostgresContainer
	URL       string
	DB        *sql.DB
}

// Start launches a container, migrates it, and registers cleanup on t.
func Start(t *testing.T) *Postgres {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:17-alpine",
		tcpostgres.WithDatabase("unifix"),
		tcpostgres.WithUsername("unifix"),
		tcpostgres.WithPassword("unifix"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	if err := migrations.Up(url); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("failed to ping postgres: %v", err)
	}

	return &Postgres{Container: container, URL: url, DB: db}
}

// Truncate empties the named tables. Use between tests for isolation.
func (p *Postgres) Truncate(ctx context.Context, tables ...string) error {
	_, err := p.DB.ExecContext(ctx, "TRUNCATE "+strings.Join(tables, ", "))
	return err
}
