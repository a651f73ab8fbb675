// Package chartimg provides a client for the Chart-Img TradingView snapshot API.
package chartimg

import (
	"time"

	"stock_analysis/internal/platform/config"
)

// DefaultBaseURL is the public Chart-Img endpoint.
const DefaultBaseURL = "https://api.chart-img.com"

// Config holds configuration for the Chart-Img API client.
type Config struct {
	APIKey        string        // sent as the x-api-key header, never logged
	BaseURL       string        `validate:"required,url"`
	Timeout       time.Duration `validate:"gt=0"`
	RatePerMinute int           `validate:"gte=0"` // 0 disables client-side throttling
}

// LoadConfig loads Chart-Img configuration from environment variables.
func LoadConfig() Config {
	return Config{
		APIKey:        config.String("CHART_IMG_API_KEY", ""),
		BaseURL:       config.String("CHART_IMG_BASE_URL", DefaultBaseURL),
		Timeout:       config.Duration("CHART_IMG_TIMEOUT", 30*time.Second),
		RatePerMinute: config.Int("CHART_IMG_RATE_PER_MINUTE", 60),
	}
}

// Enabled reports whether an API key is configured.
func (c Config) Enabled() bool {
	return c.APIKey != ""
}
