package config

import (
	"errors"
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: Authentication and session configuration
//   - database.go: Database and Redis configuration
//   - http.go: HTTP server and rate limit configuration
//   - services.go: Service mode and background job configuration
type AppConfig struct {
	// IsDev controls development mode behavior (backdoor auth, relaxed
	// cookies, rate limit skip). Set DEV=true or NODE_ENV=development.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Authentication configuration
	Auth AuthConfig

	// Database configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Service mode configuration
	Services string `env:"SERVICES" envDefault:"http,reminder"`

	// Reminder scheduler configuration
	Reminder ReminderConfig

	// Outbound webhook notification configuration
	Webhook WebhookConfig

	// EmergencyKey unlocks the emergency migration endpoint. Empty
	// disables the endpoint entirely.
	EmergencyKey string `env:"EMERGENCY_FIX_KEY" envDefault:""`

	// TestSeedEnabled exposes the /api/test/* seeding endpoints used by
	// end-to-end suites.
	TestSeedEnabled bool `env:"TEST_SEED_ENABLED" envDefault:"false"`
}

// Validate enforces settings that must be explicit in production.
// Development fills in local defaults instead.
func (c *AppConfig) Validate() error {
	if c.IsDev {
		return nil
	}
	if c.Postgres.URL == "" {
		return errors.New("DATABASE_URL is required in production")
	}
	if c.Auth.Session.Secret == "" {
		return errors.New("SESSION_SECRET is required in production")
	}
	return nil
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Reminder.Sanitize()
	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (the hosted deployments set it).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv != "production"
	}
}

// GetEnabledServices returns the enabled services based on the Services field.
func (c *AppConfig) GetEnabledServices() (map[ServiceMode]bool, error) {
	return ParseServices(c.Services)
}

// IsHTTPServerEnabled returns true if the HTTP server service is enabled.
func (c *AppConfig) IsHTTPServerEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeHTTP]
}

// IsReminderEnabled returns true if the reminder scheduler service is enabled.
func (c *AppConfig) IsReminderEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeReminder]
}
