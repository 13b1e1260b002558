//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/whirkplace/whirkplace-api/internal/domain/auth"
)

const maxUserNameLen = 120

// User is a member of exactly one organization.
type User struct {
	ID             string    `json:"id"                 db:"id"`
	OrganizationID string    `json:"organization_id"    db:"organization_id"`
	TeamID         *string   `json:"team_id,omitempty"  db:"team_id"`
	Email          string    `json:"email"              db:"email"`
	FirstName      string    `json:"first_name"         db:"first_name"`
	LastName       string    `json:"last_name"          db:"last_name"`
	Role           auth.Role `json:"role"               db:"role"`
	Active         bool      `json:"active"             db:"active"`
	CreatedAt      time.Time `json:"created_at"         db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"         db:"updated_at"`
}

// CreateUserRequest represents parameters to create a User. The
// organization is taken from the caller's resolved tenant, never from
// the request body.
type CreateUserRequest struct {
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      auth.Role `json:"role,omitempty"`
	TeamID    *string   `json:"team_id,omitempty"`
}

// Validate checks the request and applies defaults.
func (r *CreateUserRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return errors.New("a valid email is required")
	}
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	if r.FirstName == "" {
		return errors.New("first name is required")
	}
	if utf8.RuneCountInString(r.FirstName) > maxUserNameLen ||
		utf8.RuneCountInString(r.LastName) > maxUserNameLen {
		return errors.New("name is too long")
	}
	if r.Role == "" {
		r.Role = auth.RoleMember
	}
	switch r.Role {
	case auth.RoleMember, auth.RoleManager, auth.RoleAdmin:
		return nil
	default:
		return errors.New("role must be member, manager, or admin")
	}
}

// UpdateUserRequest represents a partial update to a User. Nil fields
// are left unchanged.
type UpdateUserRequest struct {
	FirstName *string    `json:"first_name,omitempty"`
	LastName  *string    `json:"last_name,omitempty"`
	Role      *auth.Role `json:"role,omitempty"`
	TeamID    *string    `json:"team_id,omitempty"`
	Active    *bool      `json:"active,omitempty"`
}

// Validate checks the provided fields.
func (r *UpdateUserRequest) Validate() error {
	if r.Role != nil {
		switch *r.Role {
		case auth.RoleMember, auth.RoleManager, auth.RoleAdmin:
		default:
			return errors.New("role must be member, manager, or admin")
		}
	}
	if r.FirstName != nil && strings.TrimSpace(*r.FirstName) == "" {
		return errors.New("first name cannot be empty")
	}
	return nil
}
