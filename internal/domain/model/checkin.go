//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
)

const (
	minMood = 1
	maxMood = 5
)

// CheckIn is one user's weekly check-in. WeekStart is the Monday of the
// ISO week the check-in covers, truncated to midnight UTC; the unique
// constraint (user, week_start) makes submissions idempotent per week.
type CheckIn struct {
	ID             string    `json:"id"              db:"id"`
	OrganizationID string    `json:"organization_id" db:"organization_id"`
	UserID         string    `json:"user_id"         db:"user_id"`
	WeekStart      time.Time `json:"week_start"      db:"week_start"`
	Mood           int       `json:"mood"            db:"mood"`
	Highlights     string    `json:"highlights"      db:"highlights"`
	Blockers       string    `json:"blockers"        db:"blockers"`
	CreatedAt      time.Time `json:"created_at"      db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"      db:"updated_at"`
}

// CreateCheckInRequest represents parameters to submit a check-in.
// The user and week are derived server-side.
type CreateCheckInRequest struct {
	Mood       int    `json:"mood"`
	Highlights string `json:"highlights"`
	Blockers   string `json:"blockers"`
}

// Validate checks the request.
func (r *CreateCheckInRequest) Validate() error {
	if r.Mood < minMood || r.Mood > maxMood {
		return errors.New("mood must be between 1 and 5")
	}
	r.Highlights = strings.TrimSpace(r.Highlights)
	r.Blockers = strings.TrimSpace(r.Blockers)
	return nil
}

// WeekStartOf returns the Monday of t's ISO week at midnight UTC.
func WeekStartOf(t time.Time) time.Time {
	t = t.UTC()
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the week that started the previous Monday
	}
	monday := t.AddDate(0, 0, -(weekday - 1))
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}

// CheckInExemption excuses a user from check-in reminders for a window,
// e.g. leave or sabbatical.
type CheckInExemption struct {
	ID             string     `json:"id"                 db:"id"`
	OrganizationID string     `json:"organization_id"    db:"organization_id"`
	UserID         string     `json:"user_id"            db:"user_id"`
	Reason         string     `json:"reason"             db:"reason"`
	StartsAt       time.Time  `json:"starts_at"          db:"starts_at"`
	EndsAt         *time.Time `json:"ends_at,omitempty"  db:"ends_at"`
	CreatedAt      time.Time  `json:"created_at"         db:"created_at"`
}

// CreateExemptionRequest represents parameters to create an exemption.
type CreateExemptionRequest struct {
	UserID   string     `json:"user_id"`
	Reason   string     `json:"reason"`
	StartsAt time.Time  `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
}

// Validate checks the request.
func (r *CreateExemptionRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return errors.New("user_id is required")
	}
	r.Reason = strings.TrimSpace(r.Reason)
	if r.Reason == "" {
		return errors.New("reason is required")
	}
	if r.StartsAt.IsZero() {
		return errors.New("starts_at is required")
	}
	if r.EndsAt != nil && r.EndsAt.Before(r.StartsAt) {
		return errors.New("ends_at must be after starts_at")
	}
	return nil
}

// Covers reports whether the exemption is in effect at t.
func (e CheckInExemption) Covers(t time.Time) bool {
	if t.Before(e.StartsAt) {
		return false
	}
	return e.EndsAt == nil || t.Before(*e.EndsAt)
}
