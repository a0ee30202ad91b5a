package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port      int    `envconfig:"PORT" default:"8080"`
	Env       string `envconfig:"ENV" default:"dev"`         // dev, staging, prod
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`  // debug, info, warn, error
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"` // json, text

	DatabaseDriver    string        `envconfig:"DATABASE_DRIVER" default:"sqlite"` // sqlite, postgres
	DatabaseFile      string        `envconfig:"DATABASE_FILE" default:"admin.db"` // sqlite only
	DSN               string        `envconfig:"DSN"`                              // postgres only
	DBMaxConns        int32         `envconfig:"DB_MAX_CONNS" default:"10"`
	DBMinConns        int32         `envconfig:"DB_MIN_CONNS" default:"0"`
	DBMaxConnLifetime time.Duration `envconfig:"DB_MAX_CONN_LIFETIME" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"DB_MAX_CONN_IDLE_TIME" default:"30m"`

	PepperFile      string        `envconfig:"PEPPER_FILE" default:"pepper"`
	JWTSecret       string        `envconfig:"JWT_SECRET"`     // generated per process when empty
	RefreshSecret   string        `envconfig:"REFRESH_SECRET"` // generated per process when empty
	AccessTokenTTL  time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"15m"`
	RefreshTokenTTL time.Duration `envconfig:"REFRESH_TOKEN_TTL" default:"168h"`

	ShutdownGracePeriod  time.Duration `envconfig:"SHUTDOWN_GRACE_PERIOD" default:"10s"`
	HousekeepingInterval time.Duration `envconfig:"HOUSEKEEPING_INTERVAL" default:"1h"`
	CORSAllowedOrigins   []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	MetricsEnabled       bool          `envconfig:"METRICS_ENABLED" default:"true"`
	WSPingInterval       time.Duration `envconfig:"WS_PING_INTERVAL" default:"30s"`
}

// LoadConfig reads Config from the environment and validates it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			return errors.New("DATABASE_FILE is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DSN == "" {
			return errors.New("DSN is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return errors.New("token TTLs must be positive")
	}
	if c.JWTSecret != "" && c.JWTSecret == c.RefreshSecret {
		return ErrSameSecrets
	}
	return nil
}
