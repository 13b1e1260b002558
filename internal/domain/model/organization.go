//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/whirkplace/whirkplace-api/internal/domain/plan"
)

const (
	maxOrgNameLen = 255
	maxSlugLen    = 63
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// OrgStatus tracks the lifecycle of an organization.
type OrgStatus string

const (
	OrgStatusActive    OrgStatus = "active"
	OrgStatusSuspended OrgStatus = "suspended"
	OrgStatusDeleted   OrgStatus = "deleted"
)

// Valid reports whether the status is supported.
func (s OrgStatus) Valid() bool {
	switch s {
	case OrgStatusActive, OrgStatusSuspended, OrgStatusDeleted:
		return true
	default:
		return false
	}
}

// Organization is a tenant. Every other record in the system hangs off
// an organization ID, and request handlers only ever see the org that
// the organization resolver attached to the context.
type Organization struct {
	ID        string    `json:"id"         db:"id"`
	Name      string    `json:"name"       db:"name"`
	Slug      string    `json:"slug"       db:"slug"`
	PlanTier  plan.Tier `json:"plan_tier"  db:"plan_tier"`
	Status    OrgStatus `json:"status"     db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateOrganizationRequest represents parameters to create an Organization.
type CreateOrganizationRequest struct {
	Name     string    `json:"name"`
	Slug     string    `json:"slug"`
	PlanTier plan.Tier `json:"plan_tier,omitempty"`
}

// Validate checks the request and normalizes the slug and tier.
func (r *CreateOrganizationRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errors.New("organization name is required")
	}
	if utf8.RuneCountInString(r.Name) > maxOrgNameLen {
		return errors.New("organization name is too long")
	}

	r.Slug = strings.ToLower(strings.TrimSpace(r.Slug))
	if r.Slug == "" {
		return errors.New("organization slug is required")
	}
	if len(r.Slug) > maxSlugLen || !slugPattern.MatchString(r.Slug) {
		return errors.New("organization slug must be lowercase letters, digits, and hyphens")
	}

	if r.PlanTier == "" {
		r.PlanTier = plan.TierStarter
	}
	if !r.PlanTier.Valid() {
		return errors.New("unknown plan tier")
	}
	return nil
}
