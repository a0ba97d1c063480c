package config

import (
	"strings"
	"time"
)

// BackendConfig describes the REST API the dashboard consumes.
type BackendConfig struct {
	// BaseURL is the backend API origin, without a trailing slash.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8000"`

	// Timeout bounds each backend request. There is no retry; a failed
	// request is terminal for that page action.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to backend configuration values.
func (b *BackendConfig) Sanitize() {
	b.BaseURL = strings.TrimRight(strings.TrimSpace(b.BaseURL), "/")
	if b.Timeout <= 0 {
		b.Timeout = 10 * time.Second
	}
}
