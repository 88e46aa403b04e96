// Package config provides application configuration management with
// multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (ARMYCHAT_* and DATABASE_URL)
//  2. Config file (~/.armychatbot/config.yaml or ./config.yaml)
//  3. Default values
//
// Configuration categories:
//   - HTTP: listen address for the API server
//   - Storage: PostgreSQL connection (see storage.go)
//   - Exports: artifact directory and the public URL they are served under
//
// Sensitive values (the database password) are never logged.
// Validation is fail-fast with sentinel errors usable via errors.Is().
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

var (
	// ErrInvalidHTTPAddr indicates the HTTP listen address is invalid.
	ErrInvalidHTTPAddr = errors.New("invalid HTTP listen address")

	// ErrInvalidPostgresHost indicates the PostgreSQL host is invalid.
	ErrInvalidPostgresHost = errors.New("invalid PostgreSQL host")

	// ErrInvalidPostgresPort indicates the PostgreSQL port is out of range.
	ErrInvalidPostgresPort = errors.New("invalid PostgreSQL port")

	// ErrInvalidPostgresDBName indicates the PostgreSQL database name is invalid.
	ErrInvalidPostgresDBName = errors.New("invalid PostgreSQL database name")

	// ErrInvalidPostgresSSLMode indicates the PostgreSQL SSL mode is invalid.
	ErrInvalidPostgresSSLMode = errors.New("invalid PostgreSQL SSL mode")

	// ErrInvalidExportDir indicates the export directory is empty.
	ErrInvalidExportDir = errors.New("invalid export directory")

	// ErrInvalidExportBaseURL indicates the export base URL is empty.
	ErrInvalidExportBaseURL = errors.New("invalid export base URL")
)

// validSSLModes are the sslmode values accepted by libpq/pgx.
var validSSLModes = map[string]bool{
	"disable":     true,
	"allow":       true,
	"prefer":      true,
	"require":     true,
	"verify-ca":   true,
	"verify-full": true,
}

// Config stores application configuration.
type Config struct {
	// HTTP server
	HTTPAddr string `mapstructure:"http_addr"`

	// Storage configuration (see storage.go for DSN helpers)
	PostgresHost     string `mapstructure:"postgres_host"`
	PostgresPort     int    `mapstructure:"postgres_port"`
	PostgresUser     string `mapstructure:"postgres_user"`
	PostgresPassword string `mapstructure:"postgres_password"` // SENSITIVE: never log
	PostgresDBName   string `mapstructure:"postgres_db_name"`
	PostgresSSLMode  string `mapstructure:"postgres_ssl_mode"`

	// Export artifacts
	ExportDir     string `mapstructure:"export_dir"`      // filesystem directory for generated files
	ExportBaseURL string `mapstructure:"export_base_url"` // public URL prefix, e.g. "/exports/"

	// Logging
	LogJSON bool `mapstructure:"log_json"`
}

// Load loads configuration.
// Priority: environment variables > configuration file > default values.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".armychatbot")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // also support current directory

	setDefaults(v)

	v.SetEnvPrefix("ARMYCHAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is not an error; defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using defaults",
			"search_paths", []string{configDir, "."})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	// DATABASE_URL overrides individual postgres_* settings.
	if err := cfg.parseDatabaseURL(); err != nil {
		return nil, fmt.Errorf("parsing DATABASE_URL: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("http_addr", ":8080")

	// PostgreSQL defaults (matching docker-compose.yml)
	v.SetDefault("postgres_host", "localhost")
	v.SetDefault("postgres_port", 5432)
	v.SetDefault("postgres_user", "armychat")
	v.SetDefault("postgres_password", "armychat_dev_password")
	v.SetDefault("postgres_db_name", "armychat")
	v.SetDefault("postgres_ssl_mode", "disable")

	v.SetDefault("export_dir", "exports")
	v.SetDefault("export_base_url", "/exports/")

	v.SetDefault("log_json", false)
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return ErrInvalidHTTPAddr
	}
	if c.PostgresHost == "" {
		return ErrInvalidPostgresHost
	}
	if c.PostgresPort < 1 || c.PostgresPort > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPostgresPort, c.PostgresPort)
	}
	if c.PostgresDBName == "" {
		return ErrInvalidPostgresDBName
	}
	if !validSSLModes[c.PostgresSSLMode] {
		return fmt.Errorf("%w: %q", ErrInvalidPostgresSSLMode, c.PostgresSSLMode)
	}
	if c.ExportDir == "" {
		return ErrInvalidExportDir
	}
	if c.ExportBaseURL == "" {
		return ErrInvalidExportBaseURL
	}
	return nil
}
