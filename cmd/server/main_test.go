package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/workout-api/internal/config"
	"github.com/maxviazov/workout-api/internal/metrics"
	"github.com/maxviazov/workout-api/internal/pagination"
)

func memoryConfig() *config.Config {
	return &config.Config{
		App:        config.AppConfig{Name: "workout-api", Version: "test", Port: 8080},
		Storage:    config.StorageConfig{Driver: "memory"},
		Pagination: pagination.Options{DefaultSize: 20, MaxSize: 40},
	}
}

func TestCompose_MemoryStorage(t *testing.T) {
	cfg := memoryConfig()
	st, err := openStorage(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer st.close()

	a, err := compose(cfg, zerolog.Nop(), st, metrics.New())
	require.NoError(t, err)
	assert.Equal(t, appTitle, a.Title())

	paginated := map[string]bool{}
	for _, r := range a.Routes() {
		if r.Paginated {
			paginated[r.Key()] = true
			require.Len(t, r.Params, 2)
			assert.Equal(t, 40, r.Params[1].Maximum)
		}
	}
	assert.Equal(t, map[string]bool{
		"GET /api/v1/categories":       true,
		"GET /api/v1/training-centers": true,
		"GET /api/v1/athletes":         true,
	}, paginated)
}

func TestOpenStorage_UnknownDriver(t *testing.T) {
	cfg := memoryConfig()
	cfg.Storage.Driver = "sqlite"
	_, err := openStorage(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestPrintRoutes(t *testing.T) {
	cfg := memoryConfig()
	st, err := openStorage(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	a, err := compose(cfg, zerolog.Nop(), st, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	printRoutes(&buf, a.Routes())
	out := buf.String()
	assert.Contains(t, out, "/api/v1/athletes/:id")
	assert.Contains(t, out, "envelope")
	assert.Contains(t, out, "page=1 (>=1), size=20 (1..40)")
	assert.NotContains(t, out, "/metrics")
}

func TestFormatParams(t *testing.T) {
	assert.Equal(t, "-", formatParams(nil))
	assert.Equal(t, "page=1 (>=1), size=50 (1..100)", formatParams(pagination.DefaultOptions().QueryParams()))
}
