package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "MEDIABATCH"

// Config is the complete service configuration.
//
// Sources, highest precedence first:
//  1. Environment variables (MEDIABATCH_SERVER_PORT, ...)
//  2. Configuration file (TOML or YAML)
//  3. Defaults
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Server   ServerConfig   `mapstructure:"server"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Playback PlaybackConfig `mapstructure:"playback"`
	Worker   WorkerConfig   `mapstructure:"worker"`
}

type LoggingConfig struct {
	Level        string `mapstructure:"level" validate:"required,oneof=debug info warn error DEBUG INFO WARN ERROR"`
	Format       string `mapstructure:"format" validate:"required,oneof=text json logfmt"`
	ReportCaller bool   `mapstructure:"report_caller"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	BehindProxy bool   `mapstructure:"behind_proxy"`

	// WriteTimeout of zero keeps event streams open indefinitely.
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gte=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`

	// RateLimit is the sustained batch requests per second per station.
	RateLimit        float64 `mapstructure:"rate_limit" validate:"gte=0"`
	RateBurst        int     `mapstructure:"rate_burst" validate:"gte=0"`
	SerializeBatches bool    `mapstructure:"serialize_batches"`

	// APIKeyHashes are bcrypt hashes as printed by "mediabatch hash-key".
	// Without any, the API is open.
	APIKeyHashes []string `mapstructure:"api_key_hashes"`
}

type CatalogConfig struct {
	DataDir      string `mapstructure:"data_dir" validate:"required"`
	CacheEntries int64  `mapstructure:"cache_entries" validate:"gt=0"`
}

// StorageConfig selects the file store. Options are decoded by the factory
// of the selected type.
type StorageConfig struct {
	Type    string         `mapstructure:"type" validate:"required,oneof=local memory s3"`
	Options map[string]any `mapstructure:"options"`
}

type PlaybackConfig struct {
	OutputDir string `mapstructure:"output_dir" validate:"required"`
}

type WorkerConfig struct {
	Count        int           `mapstructure:"count" validate:"min=1,max=64"`
	PollInterval time.Duration `mapstructure:"poll_interval" validate:"gt=0"`
}

// Addr is the listen address of the HTTP server.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads configuration from configPath (optional), the environment and
// defaults, then validates it.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	setupViper(v, configPath)

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.report_caller", false)

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 0)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.behind_proxy", false)
	v.SetDefault("server.rate_limit", 0)
	v.SetDefault("server.rate_burst", 5)
	v.SetDefault("server.serialize_batches", true)
	v.SetDefault("server.api_key_hashes", []string{})

	v.SetDefault("catalog.data_dir", "./data")
	v.SetDefault("catalog.cache_entries", 10_000)

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.options", map[string]any{})

	v.SetDefault("playback.output_dir", "./data/playback")

	v.SetDefault("worker.count", 2)
	v.SetDefault("worker.poll_interval", 500*time.Millisecond)
}

func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}
	v.AddConfigPath(getConfigDir())
	v.AddConfigPath(".")
	v.SetConfigName("mediabatch")
}

// readConfigFile reads the configuration file. A missing file is fine.
func readConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "mediabatch")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "mediabatch")
}
