//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxKRATitleLen = 255

// KRAStatus tracks progress on a key result area.
type KRAStatus string

const (
	KRAStatusOnTrack   KRAStatus = "on_track"
	KRAStatusAtRisk    KRAStatus = "at_risk"
	KRAStatusOffTrack  KRAStatus = "off_track"
	KRAStatusCompleted KRAStatus = "completed"
)

// Valid reports whether the status is supported.
func (s KRAStatus) Valid() bool {
	switch s {
	case KRAStatusOnTrack, KRAStatusAtRisk, KRAStatusOffTrack, KRAStatusCompleted:
		return true
	default:
		return false
	}
}

// KRA is a key result area assigned to a user.
type KRA struct {
	ID             string     `json:"id"                 db:"id"`
	OrganizationID string     `json:"organization_id"    db:"organization_id"`
	UserID         string     `json:"user_id"            db:"user_id"`
	Title          string     `json:"title"              db:"title"`
	Description    string     `json:"description"        db:"description"`
	Status         KRAStatus  `json:"status"             db:"status"`
	DueDate        *time.Time `json:"due_date,omitempty" db:"due_date"`
	CreatedAt      time.Time  `json:"created_at"         db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"         db:"updated_at"`
}

// CreateKRARequest represents parameters to create a KRA.
type CreateKRARequest struct {
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Validate checks the request.
func (r *CreateKRARequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return errors.New("user_id is required")
	}
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return errors.New("title is required")
	}
	if utf8.RuneCountInString(r.Title) > maxKRATitleLen {
		return errors.New("title is too long")
	}
	r.Description = strings.TrimSpace(r.Description)
	return nil
}

// UpdateKRAStatusRequest moves a KRA to a new status.
type UpdateKRAStatusRequest struct {
	Status KRAStatus `json:"status"`
}

// Validate checks the request.
func (r *UpdateKRAStatusRequest) Validate() error {
	if !r.Status.Valid() {
		return errors.New("status must be on_track, at_risk, off_track, or completed")
	}
	return nil
}
