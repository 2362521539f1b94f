package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads the yaml configuration, applies environment overrides and
// validates the result. Missing model or catalog credentials are a hard
// startup failure: serving degraded content on top of broken configuration is
// worse than refusing to start.
func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like MODEL_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay, ignored if not found.
	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig()

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile tries .env in the usual locations so the service can be run
// from the repo root, a package directory, or a test directory.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up directories looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders inside string config values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// overrideEmptyConfig picks credentials straight from the environment when
// the yaml left them empty.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Model.APIKey == "" {
		if val := os.Getenv("MODEL_API_KEY"); val != "" {
			cfg.Model.APIKey = val
		} else if val := os.Getenv("HUGGINGFACE_API_KEY"); val != "" {
			cfg.Model.APIKey = val
		}
	}

	if cfg.Catalog.APIKey == "" {
		if val := os.Getenv("TMDB_API_KEY"); val != "" {
			cfg.Catalog.APIKey = val
		}
	}

	if cfg.Database.Redis.Address == "" {
		if val := os.Getenv("REDIS_ADDRESS"); val != "" {
			cfg.Database.Redis.Address = val
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "trini"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}

	if cfg.Model.BaseURL == "" {
		cfg.Model.BaseURL = "https://router.huggingface.co/models"
	}
	if cfg.Model.Name == "" {
		cfg.Model.Name = "BSC-LT/salamandra-2b-instruct"
	}
	if cfg.Model.Timeout == 0 {
		cfg.Model.Timeout = 30000
	}
	if cfg.Model.MaxRetries == 0 {
		cfg.Model.MaxRetries = 2
	}
	if cfg.Model.MaxTokens == 0 {
		cfg.Model.MaxTokens = 300
	}

	if cfg.Catalog.BaseURL == "" {
		cfg.Catalog.BaseURL = "https://api.themoviedb.org/3"
	}
	if cfg.Catalog.ImageBaseURL == "" {
		cfg.Catalog.ImageBaseURL = "https://image.tmdb.org/t/p/w500"
	}
	if cfg.Catalog.Language == "" {
		cfg.Catalog.Language = "es-ES"
	}
	if cfg.Catalog.Timeout == 0 {
		cfg.Catalog.Timeout = 5000
	}

	if cfg.RateLimit.MaxQueriesPerMinute == 0 {
		cfg.RateLimit.MaxQueriesPerMinute = 5
	}
	if cfg.RateLimit.WindowSeconds == 0 {
		cfg.RateLimit.WindowSeconds = 60
	}

	if cfg.Session.TTLDays == 0 {
		cfg.Session.TTLDays = 30
	}
	if cfg.Session.MaxMessages == 0 {
		cfg.Session.MaxMessages = 10
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func validateConfig(cfg *Config) error {
	var missing []string

	if cfg.Model.APIKey == "" {
		missing = append(missing, "model.api_key")
	}
	if cfg.Catalog.APIKey == "" {
		missing = append(missing, "catalog.api_key")
	}
	if cfg.Model.BaseURL == "" {
		missing = append(missing, "model.base_url")
	}
	if cfg.Catalog.BaseURL == "" {
		missing = append(missing, "catalog.base_url")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
