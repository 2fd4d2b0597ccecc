package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Database drivers understood by bootstrap
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config is the planner service configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Driver          string `yaml:"driver" env:"DB_DRIVER"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
		Seed            bool   `yaml:"seed" env:"DB_SEED"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Planner struct {
		SeniorStandingCredits float64 `yaml:"senior_standing_credits" env:"PLANNER_SENIOR_STANDING_CREDITS"`
	} `yaml:"planner"`
}

// LoadConfig reads the YAML file at configPath when present, then applies
// environment overrides and validates the result.
func LoadConfig(configPath string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.Server.Port = "8080"
	cfg.Server.Mode = "development"

	cfg.Database.Driver = DriverPostgres
	cfg.Database.Host = "localhost"
	cfg.Database.Port = "5432"
	cfg.Database.User = "postgres"
	cfg.Database.Password = "postgres"
	cfg.Database.DBName = "courseplanner"
	cfg.Database.SSLMode = "disable"
	cfg.Database.MaxIdleConns = 5
	cfg.Database.MaxOpenConns = 20
	cfg.Database.ConnMaxLifetime = "1h"
	cfg.Database.MigrationsDir = "migrations"
	cfg.Database.Seed = true

	cfg.JWT.AccessTokenExpiration = "1h"
	cfg.JWT.Issuer = "courseplanner.app"

	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"

	cfg.Planner.SeniorStandingCredits = 90
}

func validateConfig(cfg *Config) error {
	switch strings.ToLower(cfg.Database.Driver) {
	case DriverPostgres:
		if cfg.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if _, err := time.ParseDuration(cfg.Database.ConnMaxLifetime); err != nil {
			return fmt.Errorf("invalid database conn_max_lifetime: %w", err)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	if cfg.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(cfg.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if cfg.Planner.SeniorStandingCredits <= 0 {
		return fmt.Errorf("planner senior_standing_credits must be positive")
	}

	return nil
}

// AccessTokenTTL is the parsed JWT lifetime. LoadConfig has already rejected
// unparsable values, so the hour fallback only covers hand-built configs.
func (c *Config) AccessTokenTTL() time.Duration {
	return durationOr(c.JWT.AccessTokenExpiration, time.Hour)
}

// ConnLifetime is the parsed pool connection lifetime.
func (c *Config) ConnLifetime() time.Duration {
	return durationOr(c.Database.ConnMaxLifetime, 5*time.Minute)
}

func durationOr(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// UsesMemoryStore reports whether the service runs without Postgres.
func (c *Config) UsesMemoryStore() bool {
	return strings.EqualFold(c.Database.Driver, DriverMemory)
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
