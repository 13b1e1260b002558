package config

import "time"

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Port is the port to bind the HTTP server to.
	Port int `env:"PORT" envDefault:"5000"`

	// BaseURL is the base URL of the application (e.g., "https://app.whirkplace.com").
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:5000"`

	// CookieDomain is the domain for session and CSRF cookies.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`

	// TrustProxy treats X-Forwarded-Proto as authoritative when deciding
	// cookie security attributes. Enable behind a TLS-terminating proxy.
	TrustProxy bool `env:"HTTP_TRUST_PROXY" envDefault:"false"`

	// RateLimit configures the auth-route rate limiter.
	RateLimit RateLimitConfig `envPrefix:"RATE_LIMIT_"`
}

// RateLimitConfig configures the per-IP token bucket applied to
// authentication endpoints.
type RateLimitConfig struct {
	// Requests is the max requests allowed per window per client IP.
	Requests int `env:"REQUESTS" envDefault:"10"`

	// Window is the refill window.
	Window time.Duration `env:"WINDOW" envDefault:"1m"`

	// Burst allows temporary bursts above the steady rate.
	Burst int `env:"BURST" envDefault:"5"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.Port <= 0 || h.Port > 65535 {
		h.Port = 5000
	}
	if h.RateLimit.Requests < 1 {
		h.RateLimit.Requests = 1
	}
	if h.RateLimit.Window <= 0 {
		h.RateLimit.Window = time.Minute
	}
	if h.RateLimit.Burst < 0 {
		h.RateLimit.Burst = 0
	}
}
