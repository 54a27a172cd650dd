package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable names for the feed file overrides. The HTTP
// layer references these in error messages so operators know which
// knob to turn.
const (
	EnvProductsPath  = "SHELFWATCH_DATA_PRODUCTS_PATH"
	EnvSnapshotsPath = "SHELFWATCH_DATA_SNAPSHOTS_PATH"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Data      DataConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DataConfig points at the scraper's output files
type DataConfig struct {
	ProductsPath  string `mapstructure:"products_path"`
	SnapshotsPath string `mapstructure:"snapshots_path"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute per client IP, 0 disables
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/shelfwatch/")

	// Environment variable settings
	v.SetEnvPrefix("SHELFWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// The snapshot log sits next to the products file unless overridden
	if config.Data.SnapshotsPath == "" {
		config.Data.SnapshotsPath = filepath.Join(filepath.Dir(config.Data.ProductsPath), "price_snapshots.json")
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Data defaults assume the scraper checkout sits next to this service:
	//   .../shelfwatch-backend
	//   .../playwright-scraper
	v.SetDefault("data.products_path", filepath.Join("..", "playwright-scraper", "products.json"))
	v.SetDefault("data.snapshots_path", "")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required (set SHELFWATCH_SERVER_PORT)")
	}

	if config.Data.ProductsPath == "" {
		return fmt.Errorf("products path is required (set %s)", EnvProductsPath)
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("ratelimit.per_ip must be >= 0, got: %d", config.RateLimit.PerIP)
	}

	return nil
}
