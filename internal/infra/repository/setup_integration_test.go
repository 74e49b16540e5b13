//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"shopbot/internal/infra/db"
	"shopbot/internal/pkg/config"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	postgresOnce      sync.Once
	postgresContainer testcontainers.Container
	postgresErr       error

	testUser     = "test"
	testPassword = "testpass"
	testDBName   = "shopbot_test"
)

func startPostgres(t *testing.T) (host string, port nat.Port) {
	t.Helper()

	postgresOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		postgresContainer, postgresErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "postgres:16-alpine",
				ExposedPorts: []string{"5432/tcp"},
				Env: map[string]string{
					"POSTGRES_USER":     testUser,
					"POSTGRES_PASSWORD": testPassword,
					"POSTGRES_DB":       testDBName,
				},
				WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(time.Minute),
			},
			Started: true,
		})
	})
	require.NoError(t, postgresErr, "failed to start postgres container")

	ctx := context.Background()
	host, err := postgresContainer.Host(ctx)
	require.NoError(t, err)
	mapped, err := postgresContainer.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)
	return host, mapped
}

func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	host, port := startPostgres(t)
	cfg := config.NewTestConfig().DB
	cfg.Host = host
	cfg.Port = port.Port()
	cfg.User = testUser
	cfg.Password = testPassword
	cfg.DBName = testDBName

	pool, cleanup, err := db.Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	applyMigrations(t, pool)
	truncateAll(t, pool)
	return pool
}

func applyMigrations(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	file := filepath.Join("..", "..", "..", "migrations", "0001_init.sql")
	sqlContent, err := os.ReadFile(file)
	require.NoError(t, err, "failed to read migration file")

	_, err = pool.Exec(ctx, string(sqlContent))
	require.NoError(t, err, fmt.Sprintf("failed to execute migration %s", file))
}

func truncateAll(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	_, err := pool.Exec(ctx, "TRUNCATE carts, cart_items, filters, orders, pickups CASCADE")
	require.NoError(t, err)
}
