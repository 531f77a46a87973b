package database

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"snaplink/internal/database/migrations"
)

// Migrate applies the versioned migration ledger for the connected dialect.
// It is idempotent: goose tracks applied versions in its own table, so
// re-running is a no-op. Migrations after the initial schema are
// additive-only (new nullable columns) so old records survive new provider
// kinds.
func Migrate(ctx context.Context, db *gorm.DB, dsn string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	dialect, dir := "sqlite3", "sqlite"
	if IsPostgres(dsn) {
		dialect, dir = "postgres", "postgres"
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, dir); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
