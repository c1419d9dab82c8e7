package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Logger  LoggerConfig  `mapstructure:"logger"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Backend BackendConfig `mapstructure:"backend"`
	Buy     BuyConfig     `mapstructure:"buy"`
	Seed    SeedConfig    `mapstructure:"seed"`
	Stream  StreamConfig  `mapstructure:"stream"`
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
	Output   string `mapstructure:"output"`
}

// CacheConfig holds settings for the caching layer.
type CacheConfig struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
	ViewExpiration    time.Duration `mapstructure:"view_expiration"`
}

// BackendConfig holds configuration for the wallet backend query service.
type BackendConfig struct {
	URL        string        `mapstructure:"url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	IconScheme string        `mapstructure:"icon_scheme"`
}

// BuyConfig holds settings for the buy-options refresh.
type BuyConfig struct {
	FailurePolicy string `mapstructure:"failure_policy"`
}

// SeedConfig holds paths to the YAML seed files.
type SeedConfig struct {
	WalletPath     string `mapstructure:"wallet_path"`
	RampAssetsPath string `mapstructure:"ramp_assets_path"`
}

// StreamConfig holds settings for the wallet event stream.
type StreamConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	URL               string        `mapstructure:"url"`
	ReconnectInterval time.Duration `mapstructure:"reconnect_interval"`
	HandshakeTimeout  time.Duration `mapstructure:"handshake_timeout"`
}

// Load reads configuration from file and environment variables. A .env file
// in the working directory, when present, is loaded into the environment first.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()

	v.SetDefault("app.name", "wallet-assets")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("cache.default_expiration", "10m")
	v.SetDefault("cache.cleanup_interval", "30m")
	v.SetDefault("cache.view_expiration", "1m")
	v.SetDefault("backend.url", "http://127.0.0.1:9090/buy/assets")
	v.SetDefault("backend.timeout", "15s")
	v.SetDefault("backend.icon_scheme", "chrome://erc-token-images")
	v.SetDefault("buy.failure_policy", "retain")
	v.SetDefault("seed.wallet_path", "")
	v.SetDefault("seed.ramp_assets_path", "")
	v.SetDefault("stream.enabled", false)
	v.SetDefault("stream.url", "ws://127.0.0.1:9090/events")
	v.SetDefault("stream.reconnect_interval", "5s")
	v.SetDefault("stream.handshake_timeout", "10s")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		fmt.Printf("Warning: Config file not found in %s or '.', using defaults/env vars\n", configPath)
	}

	v.SetEnvPrefix("WALLET_ASSETS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func (c CacheConfig) GetDefaultExpiration() time.Duration {
	return c.DefaultExpiration
}

func (c CacheConfig) GetCleanupInterval() time.Duration {
	return c.CleanupInterval
}

func (c CacheConfig) GetViewExpiration() time.Duration {
	return c.ViewExpiration
}

func (c BackendConfig) GetTimeout() time.Duration {
	if c.Timeout <= 0 {
		return 15 * time.Second
	}
	return c.Timeout
}

func (c StreamConfig) GetReconnectInterval() time.Duration {
	if c.ReconnectInterval <= 0 {
		return 5 * time.Second
	}
	return c.ReconnectInterval
}
