// internal/engine/extract/config.go
package extract

import (
	"time"

	"quote-engine/internal/common/config"
)

// Config holds the interpretive extraction service settings.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// FromAppConfig builds the extractor config from the application config.
func FromAppConfig(cfg *config.Config) Config {
	return Config{
		BaseURL: cfg.GenAI.BaseURL,
		APIKey:  cfg.GenAI.APIKey,
		Model:   cfg.GenAI.Model,
		Timeout: time.Duration(cfg.GenAI.Timeout) * time.Millisecond,
	}
}

// Enabled reports whether the interpretive path is configured at all. Without
// an API key every request goes straight to the lexical fallback.
func (c Config) Enabled() bool {
	return c.APIKey != ""
}
