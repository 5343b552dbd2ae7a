package postgresql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestHelper provides common integration testing utilities.
type TestHelper struct {
	Container *TestContainer
	T         *testing.T
}

// NewTestHelper creates a new test helper with default configuration.
func NewTestHelper(t *testing.T) *TestHelper {
	return NewTestHelperWithConfig(t, nil)
}

// NewTestHelperWithConfig creates a new test helper with custom configuration.
// Skipped under -short.
func NewTestHelperWithConfig(t *testing.T, config *TestContainerConfig) *TestHelper {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	container, err := NewTestContainer(context.Background(), config)
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := container.Close(); err != nil {
			t.Logf("Failed to close test container: %v", err)
		}
	})

	return &TestHelper{
		Container: container,
		T:         t,
	}
}

// NewTestHelperWithMigrations creates a test helper and runs migrations from the specified path.
func NewTestHelperWithMigrations(t *testing.T, migrationsPath string) *TestHelper {
	config := DefaultTestContainerConfig()
	config.MigrationsPath = migrationsPath
	return NewTestHelperWithConfig(t, config)
}

// CleanupTables truncates the given tables between tests.
func (h *TestHelper) CleanupTables(tables ...string) {
	require.NoError(h.T, h.Container.TruncateTables(tables...))
}

// ExecuteSQL executes SQL and fails the test on error.
func (h *TestHelper) ExecuteSQL(sql string, args ...any) {
	_, err := h.Container.Client.Exec(context.Background(), sql, args...)
	require.NoError(h.T, err)
}

// GetClient returns the PostgreSQL client.
func (h *TestHelper) GetClient() PostgreSQLClient {
	return h.Container.Client
}
