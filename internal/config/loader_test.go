package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/workout-api/internal/config"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func clearSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("APP_POSTGRES_USER", "")
	t.Setenv("APP_POSTGRES_PASSWORD", "")
	t.Setenv("APP_POSTGRES_DB", "")
	t.Setenv("APP_STORAGE_DRIVER", "")
}

func TestConfigLoad_FromYAMLAndEnv(t *testing.T) {
	yaml := `
app:
  name: workout-api
  version: 0.1.0
  env: test
  port: 18080

logger:
  level: info
  format: json
  output_target: stdout
  time_format: rfc3339

postgres:
  host: 127.0.0.1
  port: 5432
  sslmode: disable
  max_conns: 5
  min_conns: 1

pagination:
  default_size: 20
  max_size: 60
`
	path := writeTempConfig(t, yaml)

	t.Setenv("APP_POSTGRES_USER", "testuser")
	t.Setenv("APP_POSTGRES_PASSWORD", "testpass")
	t.Setenv("APP_POSTGRES_DB", "testdb")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 18080, cfg.App.Port)
	assert.Equal(t, "testuser", cfg.Postgres.User)
	assert.Equal(t, "testpass", cfg.Postgres.Password)
	assert.Equal(t, "testdb", cfg.Postgres.DBName)
	assert.Equal(t, "127.0.0.1", cfg.Postgres.Host)
	assert.Equal(t, int32(5), cfg.Postgres.MaxConns)
	assert.Equal(t, "rfc3339", cfg.Logger.TimeFormat)
	assert.Equal(t, 20, cfg.Pagination.DefaultSize)
	assert.Equal(t, 60, cfg.Pagination.MaxSize)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestConfigLoad_EnvOverridesYAML(t *testing.T) {
	path := writeTempConfig(t, `
app:
  port: 18080
storage:
  driver: memory
`)
	clearSecrets(t)
	t.Setenv("APP_APP_PORT", "19090")
	t.Setenv("APP_PAGINATION_MAX_SIZE", "75")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 19090, cfg.App.Port)
	assert.Equal(t, 75, cfg.Pagination.MaxSize)
	assert.Equal(t, 50, cfg.Pagination.DefaultSize)
}

func TestConfigLoad_MissingRequiredEnvFails(t *testing.T) {
	path := writeTempConfig(t, `
app:
  name: abc
  port: 18080
postgres:
  host: localhost
`)
	clearSecrets(t)

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_POSTGRES_USER")
}

func TestConfigLoad_MemoryDriverNeedsNoSecrets(t *testing.T) {
	path := writeTempConfig(t, `
storage:
  driver: memory
`)
	clearSecrets(t)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 8080, cfg.App.Port)
}

func TestConfigLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"bad driver":        "storage:\n  driver: mongo\n",
		"default above max": "storage:\n  driver: memory\npagination:\n  default_size: 200\n  max_size: 100\n",
		"negative max":      "storage:\n  driver: memory\npagination:\n  max_size: -1\n",
		"bad logger env":    "storage:\n  driver: memory\nlogger:\n  env: moon\n",
		"port out of range": "storage:\n  driver: memory\napp:\n  port: 70000\n",
	}
	for name, yaml := range cases {
		t.Run(name, func(t *testing.T) {
			clearSecrets(t)
			_, err := config.Load(writeTempConfig(t, yaml))
			assert.Error(t, err)
		})
	}
}

func TestConfigLoad_FileMissing(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestConfigRead_SkipsValidation(t *testing.T) {
	clearSecrets(t)
	path := writeTempConfig(t, "pagination:\n  default_size: 10\n")

	cfg, err := config.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, 10, cfg.Pagination.DefaultSize)
	assert.Error(t, cfg.Validate())
}
