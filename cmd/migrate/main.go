package main

import (
	"context"
	"flag"
	"log"

	"github.com/muhammadchandra19/paper-exchange/internal/config"
	"github.com/muhammadchandra19/paper-exchange/pkg/logger"
	"github.com/muhammadchandra19/paper-exchange/pkg/migration"
	"github.com/muhammadchandra19/paper-exchange/pkg/postgresql"
)

func main() {
	var (
		direction = flag.String("direction", "up", "Migration direction: up or down")
		steps     = flag.Int("steps", 0, "Number of steps to migrate (0 = all)")
		dir       = flag.String("dir", "internal/infrastructure/postgresql/migrations", "Directory holding the .up.sql/.down.sql files")
	)
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.NewLogger(logger.WithLoggingLevel(logger.ParseLevel(cfg.App.LogLevel)))
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	pgClient, err := postgresql.NewClient(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()

	runner := migration.NewRunner(pgClient, zlog, migration.Config{
		MigrationDir: *dir,
		Schema:       "public",
		TableName:    "schema_migrations",
	})

	if err := runner.EnsureMigrationTable(ctx); err != nil {
		log.Fatalf("Failed to create migration table: %v", err)
	}

	switch *direction {
	case "up":
		if err := runner.MigrateUp(ctx, *steps); err != nil {
			log.Fatalf("Failed to migrate up: %v", err)
		}
	case "down":
		if err := runner.MigrateDown(ctx, *steps); err != nil {
			log.Fatalf("Failed to migrate down: %v", err)
		}
	default:
		log.Fatalf("Invalid direction: %s. Use 'up' or 'down'", *direction)
	}

	log.Printf("Migration %s completed successfully", *direction)
}
