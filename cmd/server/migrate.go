package main

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"github.com/maxviazov/workout-api/internal/config"
	"github.com/maxviazov/workout-api/internal/repository"
	"github.com/maxviazov/workout-api/migrations"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Apply the embedded database migrations",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status"},
	RunE: func(cmd *cobra.Command, args []string) error {
		direction := "up"
		if len(args) == 1 {
			direction = args[0]
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cfg.Storage.Driver != "postgres" {
			return fmt.Errorf("migrate needs the postgres driver, got %q", cfg.Storage.Driver)
		}

		db, err := sql.Open("pgx", repository.DSN(cfg.Postgres))
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		if err := db.PingContext(cmd.Context()); err != nil {
			return fmt.Errorf("ping database: %w", err)
		}

		switch direction {
		case "down":
			return migrations.Down(db)
		case "status":
			return migrations.Status(db)
		default:
			return migrations.Up(db)
		}
	},
}
