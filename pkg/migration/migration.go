// Package migration applies ordered *.up.sql / *.down.sql files to PostgreSQL
// and records applied ids in a tracking table.
package migration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/muhammadchandra19/paper-exchange/pkg/errors"
	"github.com/muhammadchandra19/paper-exchange/pkg/logger"
	"github.com/muhammadchandra19/paper-exchange/pkg/postgresql"
)

// Migration is one migration file pair.
type Migration struct {
	ID      string
	Name    string
	UpSQL   string
	DownSQL string
}

// Config for the migration runner.
type Config struct {
	MigrationDir string
	Schema       string // default "public"
	TableName    string // default "schema_migrations"
}

// Runner handles migration execution.
type Runner struct {
	client postgresql.PostgreSQLClient
	logger logger.Interface
	config Config
}

// NewRunner creates a new migration runner.
func NewRunner(client postgresql.PostgreSQLClient, log logger.Interface, config Config) *Runner {
	if config.Schema == "" {
		config.Schema = "public"
	}
	if config.TableName == "" {
		config.TableName = "schema_migrations"
	}

	return &Runner{
		client: client,
		logger: log,
		config: config,
	}
}

func (r *Runner) table() string {
	return r.config.Schema + "." + r.config.TableName
}

// EnsureMigrationTable creates the tracking table if it doesn't exist.
func (r *Runner) EnsureMigrationTable(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id VARCHAR(255) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`, r.table())

	if _, err := r.client.Exec(ctx, query); err != nil {
		return errors.NewTracer("ensure migration table").Wrap(err)
	}
	return nil
}

// AppliedMigrations returns the set of applied migration ids.
func (r *Runner) AppliedMigrations(ctx context.Context) (map[string]bool, error) {
	rows, err := r.client.Query(ctx, fmt.Sprintf("SELECT id FROM %s", r.table()))
	if err != nil {
		return nil, errors.NewTracer("query applied migrations").Wrap(err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.NewTracer("scan applied migration").Wrap(err)
		}
		applied[id] = true
	}

	return applied, rows.Err()
}

// LoadMigrations reads every *.up.sql file of the migration directory, sorted by id,
// together with its optional *.down.sql counterpart.
func (r *Runner) LoadMigrations() ([]Migration, error) {
	upFiles, err := filepath.Glob(filepath.Join(r.config.MigrationDir, "*.up.sql"))
	if err != nil {
		return nil, err
	}
	sort.Strings(upFiles)

	migrations := make([]Migration, 0, len(upFiles))
	for _, upFile := range upFiles {
		upContent, err := os.ReadFile(upFile)
		if err != nil {
			return nil, errors.NewTracerf("read migration %s", upFile).Wrap(err)
		}

		id := strings.TrimSuffix(filepath.Base(upFile), ".up.sql")
		name := id
		if _, rest, ok := strings.Cut(id, "_"); ok {
			name = rest
		}

		m := Migration{
			ID:    id,
			Name:  name,
			UpSQL: strings.TrimSpace(string(upContent)),
		}
		if downContent, err := os.ReadFile(strings.TrimSuffix(upFile, ".up.sql") + ".down.sql"); err == nil {
			m.DownSQL = strings.TrimSpace(string(downContent))
		}
		migrations = append(migrations, m)
	}

	return migrations, nil
}

// MigrateUp applies up to steps pending migrations (0 means all), each in its own transaction.
func (r *Runner) MigrateUp(ctx context.Context, steps int) error {
	migrations, err := r.LoadMigrations()
	if err != nil {
		return err
	}

	applied, err := r.AppliedMigrations(ctx)
	if err != nil {
		return err
	}

	var pending []Migration
	for _, m := range migrations {
		if !applied[m.ID] {
			pending = append(pending, m)
		}
	}
	if steps > 0 && len(pending) > steps {
		pending = pending[:steps]
	}

	for _, m := range pending {
		if m.UpSQL == "" {
			r.logger.Warn("Skipping empty migration", logger.Field{Key: "id", Value: m.ID})
			continue
		}

		err := postgresql.WithTx(ctx, r.client, func(txCtx context.Context) error {
			if _, err := r.client.Exec(txCtx, m.UpSQL); err != nil {
				return err
			}
			_, err := r.client.Exec(txCtx,
				fmt.Sprintf("INSERT INTO %s (id, name, applied_at) VALUES ($1, $2, NOW())", r.table()),
				m.ID, m.Name,
			)
			return err
		})
		if err != nil {
			return errors.NewTracerf("apply migration %s", m.ID).Wrap(err)
		}

		r.logger.Info("Applied migration", logger.Field{Key: "id", Value: m.ID})
	}

	return nil
}

// MigrateDown reverts the latest steps applied migrations.
func (r *Runner) MigrateDown(ctx context.Context, steps int) error {
	if steps <= 0 {
		return errors.NewErrorDetails("steps must be greater than 0 for down migrations", string(errors.ConfigInvalidError), "steps")
	}

	migrations, err := r.LoadMigrations()
	if err != nil {
		return err
	}

	applied, err := r.AppliedMigrations(ctx)
	if err != nil {
		return err
	}

	var toRevert []Migration
	for i := len(migrations) - 1; i >= 0 && len(toRevert) < steps; i-- {
		if applied[migrations[i].ID] {
			toRevert = append(toRevert, migrations[i])
		}
	}

	for _, m := range toRevert {
		if m.DownSQL == "" {
			return errors.NewErrorDetails("no down migration for "+m.ID, string(errors.ConfigInvalidError), "down_sql")
		}

		err := postgresql.WithTx(ctx, r.client, func(txCtx context.Context) error {
			if _, err := r.client.Exec(txCtx, m.DownSQL); err != nil {
				return err
			}
			_, err := r.client.Exec(txCtx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.table()), m.ID)
			return err
		})
		if err != nil {
			return errors.NewTracerf("revert migration %s", m.ID).Wrap(err)
		}

		r.logger.Info("Reverted migration", logger.Field{Key: "id", Value: m.ID})
	}

	return nil
}
