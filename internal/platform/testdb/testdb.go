// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package testdb starts a disposable PostgreSQL for repository tests.
package testdb

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/taibuivan/grimoire/internal/platform/migration"
	"github.com/taibuivan/grimoire/internal/platform/postgres"
)

// PostgresStartRequest holds the credentials of the test database.
type PostgresStartRequest struct {
	User     string
	Password string
	DB       string
}

// Postgres is a running container plus a pool connected to it.
type Postgres struct {
	DSN  string
	Pool *pgxpool.Pool
}

/*
StartPostgres runs postgres:18-alpine and connects a pool to it.

Description: The returned closer terminates the container. Tests calling
this should be skipped under -short, since they need a Docker daemon.
*/
func StartPostgres(ctx context.Context, cfg PostgresStartRequest) (*Postgres, func(), error) {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     cfg.User,
			"POSTGRES_PASSWORD": cfg.Password,
			"POSTGRES_DB":       cfg.DB,
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		).WithDeadline(time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("start postgres container: %w", err)
	}

	closer := func() {
		_ = container.Terminate(context.Background())
	}

	host, err := container.Host(ctx)
	if err != nil {
		closer()
		return nil, nil, fmt.Errorf("get host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		closer()
		return nil, nil, fmt.Errorf("get port: %w", err)
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", cfg.User, cfg.Password, host, port.Port(), cfg.DB)

	pool, err := postgres.NewPool(ctx, dsn, slog.Default())
	if err != nil {
		closer()
		return nil, nil, err
	}

	return &Postgres{DSN: dsn, Pool: pool}, func() {
		pool.Close()
		closer()
	}, nil
}

// RunMigrations drops every migrated object and re-applies the schema, so
// each test starts from empty tables.
func RunMigrations(t *testing.T, dsn string) {
	t.Helper()

	logger := slog.Default()
	require.NoError(t, migration.RunDown(dsn, MigrationsPath(), 0, logger), "drop existing db objects")
	require.NoError(t, migration.RunUp(dsn, MigrationsPath(), logger), "run migrations")
}

// MigrationsPath returns the absolute path of data/migrations.
func MigrationsPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "data", "migrations")
}
