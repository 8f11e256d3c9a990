// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like GENAI_API_KEY
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

	// Environment overlay, ignored when absent
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig()

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideFromEnv(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from several possible locations so the binary and
// package tests both pick it up.
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

// expandEnvVars resolves ${VAR} placeholders in every string value.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		if val, ok := v.Get(key).(string); ok && strings.Contains(val, "${") {
			v.Set(key, os.ExpandEnv(val))
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "quote-engine"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30000
	}
	if cfg.GenAI.BaseURL == "" {
		cfg.GenAI.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.GenAI.Model == "" {
		cfg.GenAI.Model = "gemini-2.5-flash"
	}
	if cfg.GenAI.Timeout == 0 {
		cfg.GenAI.Timeout = 15000
	}
	if cfg.Maps.BaseURL == "" {
		cfg.Maps.BaseURL = "https://maps.googleapis.com"
	}
	if cfg.Maps.Timeout == 0 {
		cfg.Maps.Timeout = 5000
	}
	if cfg.Maps.CacheTTL == 0 {
		cfg.Maps.CacheTTL = 86400
	}
	if cfg.Vision.BaseURL == "" {
		cfg.Vision.BaseURL = "https://vision.googleapis.com"
	}
	if cfg.Vision.Timeout == 0 {
		cfg.Vision.Timeout = 8000
	}
	if cfg.Vision.MaxResults == 0 {
		cfg.Vision.MaxResults = 3
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// overrideFromEnv covers the flat env-var names used in deployment, which
// viper's replacer does not always map onto nested keys.
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" && cfg.GenAI.APIKey == "" {
		cfg.GenAI.APIKey = v
	}
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" && cfg.Maps.APIKey == "" {
		cfg.Maps.APIKey = v
	}
	if v := os.Getenv("GOOGLE_VISION_API_KEY"); v != "" && cfg.Vision.APIKey == "" {
		cfg.Vision.APIKey = v
	}
	if v := os.Getenv("ORIGIN_ADDRESS"); v != "" && cfg.Maps.OriginAddress == "" {
		cfg.Maps.OriginAddress = v
	}
	if v := os.Getenv("REDIS_ADDRESS"); v != "" && cfg.Redis.Address == "" {
		cfg.Redis.Address = v
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", cfg.Server.Port)
	}
	// A missing GenAI or Maps key is not an error: the engine degrades to
	// its fallbacks. Only structurally broken values are rejected here.
	if cfg.Notifications.Email.Enabled && cfg.Notifications.Email.FromEmail == "" {
		return fmt.Errorf("notifications.email.from_email required when email is enabled")
	}
	return nil
}
