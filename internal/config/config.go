package config

import (
	"github.com/maxviazov/workout-api/internal/logger"
	"github.com/maxviazov/workout-api/internal/pagination"
)

type Config struct {
	App        AppConfig           `mapstructure:"app"`
	Logger     logger.LoggerConfig `mapstructure:"logger"`
	Storage    StorageConfig       `mapstructure:"storage"`
	Postgres   PostgresConfig      `mapstructure:"postgres"`
	Pagination pagination.Options  `mapstructure:"pagination"`
	CORS       CORSConfig          `mapstructure:"cors"`
}

// AppConfig holds HTTP server settings. Timeouts are in seconds.
type AppConfig struct {
	Name            string `mapstructure:"name" validate:"required"`
	Version         string `mapstructure:"version"`
	Env             string `mapstructure:"env"`
	Port            int    `mapstructure:"port" validate:"gte=1,lte=65535"`
	ReadTimeout     int    `mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout    int    `mapstructure:"write_timeout" validate:"gte=0"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" validate:"gte=0"`
}

// StorageConfig picks the repository backend.
type StorageConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=postgres memory"`
}

// PostgresConfig credentials come from APP_POSTGRES_* in practice; the YAML carries only topology.
type PostgresConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	User              string `mapstructure:"user"`
	Password          string `mapstructure:"password"`
	DBName            string `mapstructure:"db"`
	SSLMode           string `mapstructure:"sslmode"`
	MaxConns          int32  `mapstructure:"max_conns" validate:"gte=0"`
	MinConns          int32  `mapstructure:"min_conns" validate:"gte=0"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime" validate:"gte=0"`
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time" validate:"gte=0"`
	HealthCheckPeriod int    `mapstructure:"health_check_period" validate:"gte=0"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}
