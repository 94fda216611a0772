package app

import (
	"database/sql"
	"embed"
	"fmt"
	"github.com/pressly/goose/v3"
)

const migrationsDir = "migrations"

func applyMigrations(embedMigrations embed.FS, db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	current, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("goose version: %w", err)
	}

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("goose up from %d: %w", current, err)
	}

	return nil
}
