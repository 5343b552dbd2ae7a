package postgresql

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestContainer wraps a PostgreSQL testcontainer and a client connected to it.
type TestContainer struct {
	Container testcontainers.Container
	Client    PostgreSQLClient
	ConnStr   string
	ctx       context.Context
}

// TestContainerConfig holds configuration for the test container.
type TestContainerConfig struct {
	Image          string
	Database       string
	Username       string
	Password       string
	MigrationsPath string
	StartupTimeout time.Duration
}

// DefaultTestContainerConfig returns a default configuration.
func DefaultTestContainerConfig() *TestContainerConfig {
	return &TestContainerConfig{
		Image:          "postgres:15-alpine",
		Database:       "paper_exchange_test",
		Username:       "test_user",
		Password:       "test_pass",
		StartupTimeout: 5 * time.Minute,
	}
}

// NewTestContainer starts a PostgreSQL container and applies *.up.sql files
// from MigrationsPath in lexical order.
func NewTestContainer(ctx context.Context, config *TestContainerConfig) (*TestContainer, error) {
	if config == nil {
		config = DefaultTestContainerConfig()
	}

	container, err := postgres.Run(ctx, config.Image,
		postgres.WithDatabase(config.Database),
		postgres.WithUsername(config.Username),
		postgres.WithPassword(config.Password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(config.StartupTimeout),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	tc := &TestContainer{
		Container: container,
		Client:    &Client{pool: pool, database: config.Database},
		ConnStr:   connStr,
		ctx:       ctx,
	}

	if config.MigrationsPath != "" {
		if err := tc.RunMigrations(config.MigrationsPath); err != nil {
			_ = tc.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return tc, nil
}

// Close closes the pool and terminates the container.
func (tc *TestContainer) Close() error {
	if tc.Client != nil {
		tc.Client.Close()
	}
	if tc.Container != nil {
		if err := tc.Container.Terminate(tc.ctx); err != nil {
			return fmt.Errorf("failed to terminate container: %w", err)
		}
	}
	return nil
}

// RunMigrations executes every *.up.sql file in migrationsPath.
// Each file is sent as one simple-protocol batch.
func (tc *TestContainer) RunMigrations(migrationsPath string) error {
	files, err := filepath.Glob(filepath.Join(migrationsPath, "*.up.sql"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no migration files found in %s", migrationsPath)
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}
		if _, err := tc.Client.Exec(tc.ctx, string(content)); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", filepath.Base(file), err)
		}
	}
	return nil
}

// TruncateTables empties the given tables.
func (tc *TestContainer) TruncateTables(tables ...string) error {
	for _, table := range tables {
		if _, err := tc.Client.Exec(tc.ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return nil
}
