// Package migrations embeds the goose SQL migrations so the binary can migrate itself.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed goose_sql/*.sql
var files embed.FS

// Dir is the migrations directory inside the embedded filesystem.
const Dir = "goose_sql"

func prepare() error {
	goose.SetBaseFS(files)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return nil
}

// Up applies every pending migration.
func Up(db *sql.DB) error {
	if err := prepare(); err != nil {
		return err
	}
	if err := goose.Up(db, Dir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Status logs the applied state of every migration through goose's logger.
func Status(db *sql.DB) error {
	if err := prepare(); err != nil {
		return err
	}
	if err := goose.Status(db, Dir); err != nil {
		return fmt.Errorf("migration status: %w", err)
	}
	return nil
}

// Down rolls back the most recent migration.
func Down(db *sql.DB) error {
	if err := prepare(); err != nil {
		return err
	}
	if err := goose.Down(db, Dir); err != nil {
		return fmt.Errorf("roll back migration: %w", err)
	}
	return nil
}
