//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxPartnerMessageLen = 4000

// PartnerApplication is an inbound request to join the partner program.
// Submitted unauthenticated from the public site, so it carries no
// organization scope.
type PartnerApplication struct {
	ID           string    `json:"id"            db:"id"`
	CompanyName  string    `json:"company_name"  db:"company_name"`
	ContactName  string    `json:"contact_name"  db:"contact_name"`
	ContactEmail string    `json:"contact_email" db:"contact_email"`
	Message      string    `json:"message"       db:"message"`
	CreatedAt    time.Time `json:"created_at"    db:"created_at"`
}

// CreatePartnerApplicationRequest represents an application submission.
type CreatePartnerApplicationRequest struct {
	CompanyName  string `json:"company_name"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	Message      string `json:"message,omitempty"`
}

// Validate checks the request.
func (r *CreatePartnerApplicationRequest) Validate() error {
	r.CompanyName = strings.TrimSpace(r.CompanyName)
	if r.CompanyName == "" {
		return errors.New("company_name is required")
	}
	r.ContactName = strings.TrimSpace(r.ContactName)
	if r.ContactName == "" {
		return errors.New("contact_name is required")
	}
	r.ContactEmail = strings.ToLower(strings.TrimSpace(r.ContactEmail))
	if r.ContactEmail == "" || !strings.Contains(r.ContactEmail, "@") {
		return errors.New("a valid contact_email is required")
	}
	r.Message = strings.TrimSpace(r.Message)
	if utf8.RuneCountInString(r.Message) > maxPartnerMessageLen {
		return errors.New("message is too long")
	}
	return nil
}
