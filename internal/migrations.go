package internal

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/skadi/migrations"
	"github.com/pressly/goose/v3"
)

// RunMigrations executes all pending database migrations for the order store.
func RunMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations.MigrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
