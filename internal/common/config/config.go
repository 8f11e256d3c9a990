// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Catalog       CatalogConfig      `mapstructure:"catalog"`
	GenAI         GenAIConfig        `mapstructure:"genai"`
	Maps          MapsConfig         `mapstructure:"maps"`
	Vision        VisionConfig       `mapstructure:"vision"`
	Redis         RedisConfig        `mapstructure:"redis"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            int `mapstructure:"port"`
	ShutdownTimeout int `mapstructure:"shutdown_timeout"` // seconds
	RequestTimeout  int `mapstructure:"request_timeout"`  // milliseconds, per request
}

// CatalogConfig points at an optional YAML tariff override. When Path is
// empty the built-in catalog is used.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// GenAIConfig holds settings for the interpretive text-understanding service.
// An empty APIKey disables the interpretive path entirely; the lexical
// fallback matcher then handles every request.
type GenAIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// MapsConfig holds settings for the distance-matrix service.
type MapsConfig struct {
	BaseURL       string `mapstructure:"base_url"`
	APIKey        string `mapstructure:"api_key"`
	OriginAddress string `mapstructure:"origin_address"`
	Timeout       int    `mapstructure:"timeout"`   // milliseconds
	CacheTTL      int    `mapstructure:"cache_ttl"` // seconds, distance cache
}

// VisionConfig holds settings for the advisory image-labeling service.
type VisionConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	APIKey     string `mapstructure:"api_key"`
	Timeout    int    `mapstructure:"timeout"` // milliseconds
	MaxResults int    `mapstructure:"max_results"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// NotificationConfig holds settings for the quote-summary email.
type NotificationConfig struct {
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"email"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
