package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full server configuration.
type Config struct {
	Server   ServerConfig
	Logging  LoggingConfig
	Database DatabaseConfig
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	HTTPAddress     string
	ShutdownTimeout time.Duration
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json or console
}

// DatabaseConfig configures the optional match-result store.
type DatabaseConfig struct {
	Enabled  bool
	URL      string
	MaxConns int32
}

// Load reads configuration from the given yaml file. A missing file is
// not an error; defaults and BRISCA_* environment overrides still apply
// (e.g. BRISCA_SERVER_HTTP_ADDRESS, BRISCA_DATABASE_URL).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("BRISCA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.http_address", ":3030")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 4)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	return &Config{
		Server: ServerConfig{
			HTTPAddress:     v.GetString("server.http_address"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
		Database: DatabaseConfig{
			Enabled:  v.GetBool("database.enabled"),
			URL:      v.GetString("database.url"),
			MaxConns: v.GetInt32("database.max_conns"),
		},
	}, nil
}
