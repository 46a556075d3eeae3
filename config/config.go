package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	AI        AIConfig
	Catalog   CatalogConfig
	Compare   CompareConfig
	Storage   StorageConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	SessionCookie  string   `mapstructure:"session_cookie"`
}

// AIConfig holds hosted model configuration
type AIConfig struct {
	Provider          string  `mapstructure:"provider"` // "gemini" or "offline"
	APIKey            string  `mapstructure:"api_key"`
	Model             string  `mapstructure:"model"`
	BaseURL           string  `mapstructure:"base_url"`
	Temperature       float32 `mapstructure:"temperature"`
	RequestsPerMinute int     `mapstructure:"requests_per_minute"`
	Referrer          string  `mapstructure:"referrer"`
}

// CatalogConfig points at an optional catalog file; empty uses the built-in seed
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// CompareConfig holds comparison set configuration
type CompareConfig struct {
	MaxItems int `mapstructure:"max_items"`
}

// StorageConfig selects the session store backend
type StorageConfig struct {
	Type string `mapstructure:"type"` // "memory", "file" or "sqlite"
	Path string `mapstructure:"path"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from .env, environment variables and config files
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/raisket/")

	v.SetEnvPrefix("RAISKET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values. Every key is registered
// here so AutomaticEnv can resolve it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.session_cookie", "raisket_session")

	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.base_url", "")
	v.SetDefault("ai.temperature", 0.3)
	v.SetDefault("ai.requests_per_minute", 60)
	v.SetDefault("ai.referrer", "raisket")

	v.SetDefault("catalog.path", "")

	v.SetDefault("compare.max_items", 4)

	v.SetDefault("storage.type", "memory")
	v.SetDefault("storage.path", "")

	v.SetDefault("cache.ttl", "24h")

	v.SetDefault("ratelimit.per_ip", 100)

	v.SetDefault("log.level", "info")
}

// validate validates the configuration and fills derived defaults
func validate(config *Config) error {
	switch config.AI.Provider {
	case "gemini":
		if config.AI.APIKey == "" {
			return fmt.Errorf("AI API key is required (set RAISKET_AI_API_KEY)")
		}
	case "offline":
	default:
		return fmt.Errorf("ai provider must be 'gemini' or 'offline', got: %s", config.AI.Provider)
	}

	if config.AI.RequestsPerMinute <= 0 {
		return fmt.Errorf("ai requests_per_minute must be positive, got: %d", config.AI.RequestsPerMinute)
	}

	if config.Compare.MaxItems < 1 {
		return fmt.Errorf("compare max_items must be at least 1, got: %d", config.Compare.MaxItems)
	}

	switch config.Storage.Type {
	case "memory":
	case "file":
		if config.Storage.Path == "" {
			config.Storage.Path = "data/sessions"
		}
	case "sqlite":
		if config.Storage.Path == "" {
			config.Storage.Path = "data/raisket.db"
		}
	default:
		return fmt.Errorf("storage type must be 'memory', 'file' or 'sqlite', got: %s", config.Storage.Type)
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("ratelimit per_ip must not be negative, got: %d", config.RateLimit.PerIP)
	}

	return nil
}
