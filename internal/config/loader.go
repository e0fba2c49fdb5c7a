// Package config loads service settings from defaults, an optional YAML file
// and ROOMS_* environment variables, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/example/roombooking/internal/persistence/sqlstore"
)

// Config captures the settings of the room booking service.
type Config struct {
	HTTP      HTTPConfig     `yaml:"http"`
	Database  DatabaseConfig `yaml:"database"`
	Auth      AuthConfig     `yaml:"auth"`
	Countries []string       `yaml:"countries"`
	LogLevel  string         `yaml:"log_level"`
}

type HTTPConfig struct {
	Port            int           `yaml:"port"`
	CORSOrigins     []string      `yaml:"cors_origins"`
	Playground      bool          `yaml:"playground"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver       string        `yaml:"driver"`
	DSN          string        `yaml:"dsn"`
	MaxOpenConns int           `yaml:"max_open_conns"`
	BusyTimeout  time.Duration `yaml:"busy_timeout"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	Leeway    time.Duration `yaml:"leeway"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	db := sqlstore.DefaultConfig()
	return Config{
		HTTP: HTTPConfig{
			Port:            8080,
			Playground:      true,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:       db.Driver,
			DSN:          db.DSN,
			MaxOpenConns: db.MaxOpenConns,
			BusyTimeout:  db.BusyTimeout,
		},
		Auth:     AuthConfig{Leeway: 30 * time.Second},
		LogLevel: "info",
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and the environment are used.
//
// Invalid values are reported together in a single error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("ROOMS_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "ROOMS_HTTP_PORT")
		} else {
			cfg.HTTP.Port = port
		}
	}

	if driver := strings.TrimSpace(os.Getenv("ROOMS_DB_DRIVER")); driver != "" {
		cfg.Database.Driver = driver
	}

	if dsn := strings.TrimSpace(os.Getenv("ROOMS_DB_DSN")); dsn != "" {
		cfg.Database.DSN = dsn
	}

	if secret := strings.TrimSpace(os.Getenv("ROOMS_JWT_SECRET")); secret != "" {
		cfg.Auth.JWTSecret = secret
	}

	if origins := strings.TrimSpace(os.Getenv("ROOMS_CORS_ORIGINS")); origins != "" {
		cfg.HTTP.CORSOrigins = splitList(origins)
	}

	if playgroundValue := strings.TrimSpace(os.Getenv("ROOMS_PLAYGROUND")); playgroundValue != "" {
		enabled, err := strconv.ParseBool(playgroundValue)
		if err != nil {
			invalid = append(invalid, "ROOMS_PLAYGROUND")
		} else {
			cfg.HTTP.Playground = enabled
		}
	}

	if countries := strings.TrimSpace(os.Getenv("ROOMS_COUNTRIES")); countries != "" {
		cfg.Countries = splitList(countries)
	}

	if level := strings.TrimSpace(os.Getenv("ROOMS_LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}

	if err := cfg.StoreConfig().Validate(); err != nil {
		invalid = append(invalid, "database ("+err.Error()+")")
	}
	if !validLogLevel(cfg.LogLevel) {
		invalid = append(invalid, "log_level")
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid configuration values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// CheckServe reports settings that must be present before serving traffic.
func (c Config) CheckServe() error {
	missing := make([]string, 0, 1)
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		missing = append(missing, "ROOMS_JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

// StoreConfig converts the database section into store settings.
func (c Config) StoreConfig() sqlstore.Config {
	store := sqlstore.DefaultConfig()
	store.Driver = c.Database.Driver
	store.DSN = c.Database.DSN
	if c.Database.MaxOpenConns > 0 {
		store.MaxOpenConns = c.Database.MaxOpenConns
		if store.MaxIdleConns > store.MaxOpenConns {
			store.MaxIdleConns = store.MaxOpenConns
		}
	}
	if c.Database.BusyTimeout > 0 {
		store.BusyTimeout = c.Database.BusyTimeout
	}
	return store
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func validLogLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
