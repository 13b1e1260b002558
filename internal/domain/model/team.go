//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxTeamNameLen = 120

// Team groups users within an organization.
type Team struct {
	ID             string    `json:"id"                   db:"id"`
	OrganizationID string    `json:"organization_id"      db:"organization_id"`
	Name           string    `json:"name"                 db:"name"`
	ManagerID      *string   `json:"manager_id,omitempty" db:"manager_id"`
	CreatedAt      time.Time `json:"created_at"           db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"           db:"updated_at"`
}

// CreateTeamRequest represents parameters to create a Team.
type CreateTeamRequest struct {
	Name      string  `json:"name"`
	ManagerID *string `json:"manager_id,omitempty"`
}

// Validate checks the request.
func (r *CreateTeamRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errors.New("team name is required")
	}
	if utf8.RuneCountInString(r.Name) > maxTeamNameLen {
		return errors.New("team name is too long")
	}
	return nil
}

// UpdateTeamRequest represents a partial update to a Team.
type UpdateTeamRequest struct {
	Name      *string `json:"name,omitempty"`
	ManagerID *string `json:"manager_id,omitempty"`
}

// Validate checks the provided fields.
func (r *UpdateTeamRequest) Validate() error {
	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		if trimmed == "" {
			return errors.New("team name cannot be empty")
		}
		if utf8.RuneCountInString(trimmed) > maxTeamNameLen {
			return errors.New("team name is too long")
		}
		*r.Name = trimmed
	}
	return nil
}
