package service

import (
	"context"
	"time"
)

// Notification is the canonical event shape handed to notifier sinks.
type Notification struct {
	Kind       string         `json:"kind"`
	Subject    string         `json:"subject"`
	Body       map[string]any `json:"body,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Notifier describes a destination capable of consuming notifications.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NotifierFunc adapts a function to the Notifier interface (useful for tests).
type NotifierFunc func(ctx context.Context, n Notification) error

// Notify implements the Notifier interface.
func (f NotifierFunc) Notify(ctx context.Context, n Notification) error {
	if f == nil {
		return nil
	}
	return f(ctx, n)
}
