package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/maxviazov/workout-api/internal/app"
	"github.com/maxviazov/workout-api/internal/config"
	"github.com/maxviazov/workout-api/internal/handler"
	"github.com/maxviazov/workout-api/internal/metrics"
	"github.com/maxviazov/workout-api/internal/repository"
	"github.com/maxviazov/workout-api/internal/repository/memory"
	"github.com/maxviazov/workout-api/internal/repository/postgres"
	"github.com/maxviazov/workout-api/internal/service"
)

const appTitle = "WorkoutApi"

// storage is the repository set behind the services, whichever driver backs it.
type storage struct {
	pinger     repository.Pinger
	categories repository.CategoryRepository
	centers    repository.TrainingCenterRepository
	athletes   repository.AthleteRepository
	tx         repository.TxManager
	close      func()
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case "memory":
		s := memory.NewStore()
		return &storage{
			pinger:     s,
			categories: s.Categories(),
			centers:    s.TrainingCenters(),
			athletes:   s.Athletes(),
			tx:         s,
			close:      func() {},
		}, nil
	case "postgres":
		repo, err := repository.New(ctx, cfg, &log)
		if err != nil {
			return nil, fmt.Errorf("postgres connection failed: %w", err)
		}
		pool := repo.Pool()
		return &storage{
			pinger:     postgres.NewPinger(pool),
			categories: postgres.NewCategoryRepository(pool),
			centers:    postgres.NewTrainingCenterRepository(pool),
			athletes:   postgres.NewAthleteRepository(pool),
			tx:         postgres.NewTxManager(pool),
			close:      repo.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// compose wires services over st and builds the application. m may be nil.
func compose(cfg *config.Config, log zerolog.Logger, st *storage, m *metrics.Metrics) (*app.App, error) {
	deps := handler.Deps{
		Pinger:          st.pinger,
		Categories:      service.NewCategoryService(st.categories, log),
		TrainingCenters: service.NewTrainingCenterService(st.centers, log),
		Athletes:        service.NewAthleteService(st.athletes, st.categories, st.centers, st.tx, log),
	}
	return app.Compose(app.Options{
		Title:      appTitle,
		Version:    cfg.App.Version,
		Pagination: cfg.Pagination,
		Logger:     log,
		Metrics:    m,
	}, handler.Sources(deps)...)
}
