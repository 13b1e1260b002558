//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxShoutoutLen     = 2000
	maxCategoryNameLen = 60
)

// Shoutout is public recognition from one user to another.
type Shoutout struct {
	ID             string    `json:"id"                    db:"id"`
	OrganizationID string    `json:"organization_id"       db:"organization_id"`
	FromUserID     string    `json:"from_user_id"          db:"from_user_id"`
	ToUserID       string    `json:"to_user_id"            db:"to_user_id"`
	CategoryID     *string   `json:"category_id,omitempty" db:"category_id"`
	Message        string    `json:"message"               db:"message"`
	CreatedAt      time.Time `json:"created_at"            db:"created_at"`
}

// CreateShoutoutRequest represents parameters to create a Shoutout. The
// sender is the authenticated caller.
type CreateShoutoutRequest struct {
	ToUserID   string  `json:"to_user_id"`
	CategoryID *string `json:"category_id,omitempty"`
	Message    string  `json:"message"`
}

// Validate checks the request.
func (r *CreateShoutoutRequest) Validate() error {
	if strings.TrimSpace(r.ToUserID) == "" {
		return errors.New("to_user_id is required")
	}
	r.Message = strings.TrimSpace(r.Message)
	if r.Message == "" {
		return errors.New("message is required")
	}
	if utf8.RuneCountInString(r.Message) > maxShoutoutLen {
		return errors.New("message is too long")
	}
	return nil
}

// ShoutoutCategory labels shoutouts, e.g. "Team Player" or "Customer Win".
type ShoutoutCategory struct {
	ID             string    `json:"id"              db:"id"`
	OrganizationID string    `json:"organization_id" db:"organization_id"`
	Name           string    `json:"name"            db:"name"`
	Emoji          string    `json:"emoji"           db:"emoji"`
	CreatedAt      time.Time `json:"created_at"      db:"created_at"`
}

// CreateCategoryRequest represents parameters to create a ShoutoutCategory.
type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji,omitempty"`
}

// Validate checks the request.
func (r *CreateCategoryRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errors.New("category name is required")
	}
	if utf8.RuneCountInString(r.Name) > maxCategoryNameLen {
		return errors.New("category name is too long")
	}
	return nil
}
