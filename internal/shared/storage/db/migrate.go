package db

import (
	"context"
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations brings the schema up to date from the embedded SQL
// files. A nil handle (memory-backed deployment) is a no-op.
func RunMigrations(ctx context.Context, sqlDB *sql.DB) error {
	if sqlDB == nil {
		return nil
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	goose.SetBaseFS(migrationFiles)
	return goose.UpContext(ctx, sqlDB, "migrations")
}
