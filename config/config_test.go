package config

import (
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestParseServices(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    map[ServiceMode]bool
		expectError bool
	}{
		{
			name:  "single service - http",
			input: "http",
			expected: map[ServiceMode]bool{
				ServiceModeHTTP: true,
			},
			expectError: false,
		},
		{
			name:  "single service - reminder",
			input: "reminder",
			expected: map[ServiceMode]bool{
				ServiceModeReminder: true,
			},
			expectError: false,
		},
		{
			name:  "all services",
			input: "http,reminder",
			expected: map[ServiceMode]bool{
				ServiceModeHTTP:     true,
				ServiceModeReminder: true,
			},
			expectError: false,
		},
		{
			name:  "services with spaces",
			input: " http , reminder ",
			expected: map[ServiceMode]bool{
				ServiceModeHTTP:     true,
				ServiceModeReminder: true,
			},
			expectError: false,
		},
		{
			name:  "duplicate services",
			input: "http,http,reminder",
			expected: map[ServiceMode]bool{
				ServiceModeHTTP:     true,
				ServiceModeReminder: true,
			},
			expectError: false,
		},
		{
			name:        "empty string",
			input:       "",
			expected:    nil,
			expectError: true,
		},
		{
			name:        "only spaces and commas",
			input:       " , , ",
			expected:    nil,
			expectError: true,
		},
		{
			name:        "invalid service name",
			input:       "http,invalid-service",
			expected:    nil,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseServices(tt.input)

			if tt.expectError {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}

			if len(result) != len(tt.expected) {
				t.Errorf("expected %d services, got %d", len(tt.expected), len(result))
				return
			}

			for service, expected := range tt.expected {
				if result[service] != expected {
					t.Errorf("expected service %s to be %v, got %v", service, expected, result[service])
				}
			}
		})
	}
}

func TestConfig_ServiceEnabledMethods(t *testing.T) {
	tests := []struct {
		name             string
		services         string
		expectedHTTP     bool
		expectedReminder bool
	}{
		{
			name:             "http only",
			services:         "http",
			expectedHTTP:     true,
			expectedReminder: false,
		},
		{
			name:             "reminder only",
			services:         "reminder",
			expectedHTTP:     false,
			expectedReminder: true,
		},
		{
			name:             "both services",
			services:         "http,reminder",
			expectedHTTP:     true,
			expectedReminder: true,
		},
		{
			name:             "invalid configuration disables everything",
			services:         "invalid-service",
			expectedHTTP:     false,
			expectedReminder: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := AppConfig{Services: tt.services}

			if cfg.IsHTTPServerEnabled() != tt.expectedHTTP {
				t.Errorf("IsHTTPServerEnabled(): expected %v, got %v", tt.expectedHTTP, cfg.IsHTTPServerEnabled())
			}

			if cfg.IsReminderEnabled() != tt.expectedReminder {
				t.Errorf("IsReminderEnabled(): expected %v, got %v", tt.expectedReminder, cfg.IsReminderEnabled())
			}
		})
	}
}

func TestValidServiceModes(t *testing.T) {
	modes := ValidServiceModes()
	expected := []ServiceMode{ServiceModeHTTP, ServiceModeReminder}

	if len(modes) != len(expected) {
		t.Errorf("expected %d service modes, got %d", len(expected), len(modes))
	}

	for i, mode := range modes {
		if mode != expected[i] {
			t.Errorf("expected service mode %s at index %d, got %s", expected[i], i, mode)
		}
	}
}

func TestAppConfig_ParseAuthEnv(t *testing.T) {
	t.Setenv("AUTH_MODE", "oauth")
	t.Setenv("OAUTH_CLIENT_ID", "app-client")
	t.Setenv("OAUTH_CLIENT_SECRET", "super-secret")
	t.Setenv("OAUTH_REDIRECT_URL", "https://app.example.com/api/auth/callback")
	t.Setenv("OAUTH_DISCOVERY_URL", "https://login.example.com/.well-known/openid-configuration")
	t.Setenv("OAUTH_SCOPE", "openid profile email")
	t.Setenv("BACKDOOR_KEY", "local-only")
	t.Setenv("BACKDOOR_EMAIL", "dev@example.com")
	t.Setenv("SESSION_SECRET", "deploy-check")
	t.Setenv("SESSION_TTL", "24h")
	t.Setenv("DEMO_ENABLED", "false")
	t.Setenv("DEMO_TOKEN_TTL", "1h")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}

	expected := AuthConfig{
		Mode: AuthModeOAuth,
		OAuth: OAuthConfig{
			ClientID:     "app-client",
			ClientSecret: "super-secret",
			RedirectURL:  "https://app.example.com/api/auth/callback",
			Scope:        "openid profile email",
			DiscoveryURL: "https://login.example.com/.well-known/openid-configuration",
		},
		Backdoor: BackdoorConfig{
			Key:   "local-only",
			Email: "dev@example.com",
		},
		Session: SessionConfig{
			Secret: "deploy-check",
			TTL:    24 * time.Hour,
		},
		Demo: DemoConfig{
			Enabled:  false,
			TokenTTL: time.Hour,
		},
	}

	if !reflect.DeepEqual(cfg.Auth, expected) {
		t.Fatalf("unexpected auth configuration:\nexpected: %#v\ngot:      %#v", expected, cfg.Auth)
	}
}

func TestAuthMode_UnmarshalText(t *testing.T) {
	var mode AuthMode
	if err := mode.UnmarshalText([]byte("MOCK")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mode != AuthModeMock {
		t.Fatalf("expected mock mode, got %q", mode)
	}

	if err := mode.UnmarshalText([]byte("ldap")); err == nil {
		t.Fatal("expected error for invalid auth mode")
	}
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	cfg := HTTPConfig{
		Port: -1,
		RateLimit: RateLimitConfig{
			Requests: 0,
			Window:   0,
			Burst:    -3,
		},
	}

	cfg.Sanitize()

	if cfg.Port != 5000 {
		t.Errorf("expected port to fall back to 5000, got %d", cfg.Port)
	}
	if cfg.RateLimit.Requests != 1 {
		t.Errorf("expected requests to be clamped to 1, got %d", cfg.RateLimit.Requests)
	}
	if cfg.RateLimit.Window != time.Minute {
		t.Errorf("expected window to fall back to 1m, got %v", cfg.RateLimit.Window)
	}
	if cfg.RateLimit.Burst != 0 {
		t.Errorf("expected burst to be clamped to 0, got %d", cfg.RateLimit.Burst)
	}

	// Sane values pass through untouched.
	cfg = HTTPConfig{
		Port: 8080,
		RateLimit: RateLimitConfig{
			Requests: 20,
			Window:   30 * time.Second,
			Burst:    10,
		},
	}
	cfg.Sanitize()

	if cfg.Port != 8080 || cfg.RateLimit.Requests != 20 || cfg.RateLimit.Window != 30*time.Second || cfg.RateLimit.Burst != 10 {
		t.Errorf("expected config to pass through untouched, got %#v", cfg)
	}
}

func TestReminderConfig_Sanitize(t *testing.T) {
	cfg := ReminderConfig{
		Interval:  time.Second,
		BatchSize: 0,
	}

	cfg.Sanitize()

	if cfg.Interval != time.Minute {
		t.Errorf("expected interval to be clamped to 1m, got %v", cfg.Interval)
	}
	if cfg.BatchSize != 1 {
		t.Errorf("expected batch size to be clamped to 1, got %d", cfg.BatchSize)
	}
}

func TestAppConfig_Validate(t *testing.T) {
	cfg := AppConfig{IsDev: true}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("development config should not require explicit settings: %v", err)
	}

	cfg = AppConfig{IsDev: false}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database URL in production")
	}

	cfg.Postgres.URL = "postgres://whirkplace:secret@db:5432/whirkplace"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing session secret in production")
	}

	cfg.Auth.Session.Secret = "deploy-check"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAppConfig_DetectDevMode(t *testing.T) {
	tests := []struct {
		name     string
		dev      bool
		nodeEnv  string
		expected bool
	}{
		{name: "explicit DEV wins", dev: true, nodeEnv: "production", expected: true},
		{name: "NODE_ENV production", dev: false, nodeEnv: "production", expected: false},
		{name: "NODE_ENV development", dev: false, nodeEnv: "development", expected: true},
		{name: "NODE_ENV unset defaults to dev", dev: false, nodeEnv: "", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NODE_ENV", tt.nodeEnv)

			cfg := AppConfig{IsDev: tt.dev}
			cfg.Sanitize()

			if cfg.IsDev != tt.expected {
				t.Errorf("expected IsDev=%v, got %v", tt.expected, cfg.IsDev)
			}
		})
	}
}
