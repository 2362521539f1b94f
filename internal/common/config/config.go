package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Model     ModelConfig     `mapstructure:"model"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Database  DatabaseConfig  `mapstructure:"database"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Session   SessionConfig   `mapstructure:"session"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            int `mapstructure:"port"`
	ReadTimeout     int `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int `mapstructure:"shutdown_timeout"` // milliseconds
}

// ModelConfig holds settings for the generative model endpoint.
type ModelConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	APIKey     string `mapstructure:"api_key"`
	Name       string `mapstructure:"name"`
	Timeout    int    `mapstructure:"timeout"` // milliseconds
	MaxRetries int    `mapstructure:"max_retries"`
	MaxTokens  int    `mapstructure:"max_tokens"`
}

// GetTimeout returns the model call timeout as a duration.
func (m ModelConfig) GetTimeout() time.Duration {
	return time.Duration(m.Timeout) * time.Millisecond
}

// CatalogConfig holds settings for the movie catalog search API.
type CatalogConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	APIKey       string `mapstructure:"api_key"`
	ImageBaseURL string `mapstructure:"image_base_url"`
	Language     string `mapstructure:"language"`
	Timeout      int    `mapstructure:"timeout"` // milliseconds
}

// GetTimeout returns the per-lookup timeout as a duration.
func (c CatalogConfig) GetTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Millisecond
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RateLimitConfig holds per-user query throttling settings.
type RateLimitConfig struct {
	MaxQueriesPerMinute int `mapstructure:"max_queries_per_minute"`
	WindowSeconds       int `mapstructure:"window_seconds"`
}

// SessionConfig holds chat session persistence settings.
type SessionConfig struct {
	TTLDays     int `mapstructure:"ttl_days"`
	MaxMessages int `mapstructure:"max_messages"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
