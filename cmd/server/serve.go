package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/maxviazov/workout-api/internal/app"
	"github.com/maxviazov/workout-api/internal/config"
	"github.com/maxviazov/workout-api/internal/logger"
	"github.com/maxviazov/workout-api/internal/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Logger.ServiceName == "" {
		cfg.Logger.ServiceName = cfg.App.Name
	}
	if cfg.Logger.ServiceVersion == "" {
		cfg.Logger.ServiceVersion = cfg.App.Version
	}

	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		return err
	}
	appLogger.Info().Msg("✅ Logger initialized successfully")

	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStorage(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer st.close()
	appLogger.Info().Str("driver", cfg.Storage.Driver).Msg("storage ready")

	a, err := compose(cfg, appLogger, st, metrics.New())
	if err != nil {
		return err
	}
	paginated := 0
	for _, r := range a.Routes() {
		if r.Paginated {
			paginated++
		}
	}
	appLogger.Info().
		Str("title", a.Title()).
		Int("routes", len(a.Routes())).
		Int("paginated", paginated).
		Msg("🚀 Service started")

	return app.NewServer(a, cfg, appLogger).Run(ctx)
}
