//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
)

// OneOnOne is a scheduled manager/member meeting with shared notes.
type OneOnOne struct {
	ID             string     `json:"id"                     db:"id"`
	OrganizationID string     `json:"organization_id"        db:"organization_id"`
	ManagerID      string     `json:"manager_id"             db:"manager_id"`
	MemberID       string     `json:"member_id"              db:"member_id"`
	ScheduledAt    time.Time  `json:"scheduled_at"           db:"scheduled_at"`
	Notes          string     `json:"notes"                  db:"notes"`
	CompletedAt    *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt      time.Time  `json:"created_at"             db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"             db:"updated_at"`
}

// CreateOneOnOneRequest represents parameters to schedule a one-on-one.
// The manager is the authenticated caller.
type CreateOneOnOneRequest struct {
	MemberID    string    `json:"member_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Notes       string    `json:"notes,omitempty"`
}

// Validate checks the request.
func (r *CreateOneOnOneRequest) Validate() error {
	if strings.TrimSpace(r.MemberID) == "" {
		return errors.New("member_id is required")
	}
	if r.ScheduledAt.IsZero() {
		return errors.New("scheduled_at is required")
	}
	r.Notes = strings.TrimSpace(r.Notes)
	return nil
}

// UpdateOneOnOneRequest updates notes and/or completion state.
type UpdateOneOnOneRequest struct {
	Notes       *string    `json:"notes,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
}

// Validate checks the provided fields.
func (r *UpdateOneOnOneRequest) Validate() error {
	if r.ScheduledAt != nil && r.ScheduledAt.IsZero() {
		return errors.New("scheduled_at cannot be zero")
	}
	return nil
}
