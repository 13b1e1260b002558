package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ServiceMode represents the available service modes.
type ServiceMode string

const (
	// ServiceModeHTTP runs the HTTP server.
	ServiceModeHTTP ServiceMode = "http"
	// ServiceModeReminder runs the check-in reminder scheduler.
	ServiceModeReminder ServiceMode = "reminder"
)

// ValidServiceModes returns all valid service mode names.
func ValidServiceModes() []ServiceMode {
	return []ServiceMode{ServiceModeHTTP, ServiceModeReminder}
}

// ParseServices parses a comma-delimited string of service names and returns the enabled services.
// It validates that all service names are valid and returns an error if any are invalid.
func ParseServices(servicesStr string) (map[ServiceMode]bool, error) {
	services := make(map[ServiceMode]bool)

	if servicesStr == "" {
		return services, errors.New("at least one service must be specified")
	}

	for _, part := range strings.Split(servicesStr, ",") {
		serviceName := strings.TrimSpace(part)
		if serviceName == "" {
			continue
		}

		mode := ServiceMode(serviceName)
		switch mode {
		case ServiceModeHTTP, ServiceModeReminder:
			services[mode] = true
		default:
			return nil, fmt.Errorf("invalid service name: %q (valid options: http, reminder)", serviceName)
		}
	}

	if len(services) == 0 {
		return nil, errors.New("at least one valid service must be specified")
	}

	return services, nil
}

// ReminderConfig contains reminder scheduler configuration.
type ReminderConfig struct {
	// Interval is the scheduler tick interval.
	Interval time.Duration `env:"REMINDER_INTERVAL" envDefault:"1h"`

	// BatchSize caps how many overdue members one tick notifies.
	BatchSize int `env:"REMINDER_BATCH_SIZE" envDefault:"100"`
}

// Sanitize applies guardrails to reminder configuration values.
func (r *ReminderConfig) Sanitize() {
	if r.Interval < time.Minute {
		r.Interval = time.Minute
	}
	if r.BatchSize < 1 {
		r.BatchSize = 1
	}
}

// WebhookConfig contains outbound webhook notification configuration.
// When URL is empty notifications are logged only.
type WebhookConfig struct {
	// URL receives reminder and shoutout notification payloads as JSON.
	URL string `env:"WEBHOOK_URL" envDefault:""`

	// BodyExpression is an optional JMESPath expression applied to the
	// notification payload to shape the webhook body.
	BodyExpression string `env:"WEBHOOK_BODY_EXPRESSION" envDefault:""`

	// Timeout bounds a single webhook delivery.
	Timeout time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"10s"`
}
