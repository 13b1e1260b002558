// Package testutil provides fluent builders for domain fixtures used
// across service and handler tests.
package testutil

import (
	"time"

	domainauth "github.com/whirkplace/whirkplace-api/internal/domain/auth"
	"github.com/whirkplace/whirkplace-api/internal/domain/model"
)

// UserBuilder provides a fluent interface for building User fixtures.
type UserBuilder struct {
	user *model.User
}

// NewUser creates a UserBuilder with sensible defaults.
func NewUser() *UserBuilder {
	return &UserBuilder{
		user: &model.User{
			ID:             "u1",
			OrganizationID: "org1",
			Email:          "user@example.com",
			FirstName:      "Test",
			LastName:       "User",
			Role:           domainauth.RoleMember,
			Active:         true,
		},
	}
}

// WithID sets the user ID.
func (b *UserBuilder) WithID(id string) *UserBuilder {
	b.user.ID = id
	return b
}

// WithOrg sets the organization ID.
func (b *UserBuilder) WithOrg(orgID string) *UserBuilder {
	b.user.OrganizationID = orgID
	return b
}

// WithEmail sets the email address.
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.user.Email = email
	return b
}

// WithRole sets the role.
func (b *UserBuilder) WithRole(role domainauth.Role) *UserBuilder {
	b.user.Role = role
	return b
}

// WithTeam sets the team ID.
func (b *UserBuilder) WithTeam(teamID string) *UserBuilder {
	b.user.TeamID = &teamID
	return b
}

// Deactivated marks the user inactive.
func (b *UserBuilder) Deactivated() *UserBuilder {
	b.user.Active = false
	return b
}

// Build returns the constructed User.
func (b *UserBuilder) Build() *model.User {
	return b.user
}

// CheckInBuilder provides a fluent interface for building CheckIn fixtures.
type CheckInBuilder struct {
	checkIn *model.CheckIn
}

// NewCheckIn creates a CheckInBuilder with sensible defaults.
func NewCheckIn() *CheckInBuilder {
	return &CheckInBuilder{
		checkIn: &model.CheckIn{
			ID:             "ci1",
			OrganizationID: "org1",
			UserID:         "u1",
			Mood:           4,
			Highlights:     "good week",
		},
	}
}

// WithID sets the check-in ID.
func (b *CheckInBuilder) WithID(id string) *CheckInBuilder {
	b.checkIn.ID = id
	return b
}

// ForUser sets the submitting user.
func (b *CheckInBuilder) ForUser(userID string) *CheckInBuilder {
	b.checkIn.UserID = userID
	return b
}

// WithOrg sets the organization ID.
func (b *CheckInBuilder) WithOrg(orgID string) *CheckInBuilder {
	b.checkIn.OrganizationID = orgID
	return b
}

// WithMood sets the mood score.
func (b *CheckInBuilder) WithMood(mood int) *CheckInBuilder {
	b.checkIn.Mood = mood
	return b
}

// WithWeek sets the week by any time inside it.
func (b *CheckInBuilder) WithWeek(t time.Time) *CheckInBuilder {
	b.checkIn.WeekStart = model.WeekStartOf(t)
	return b
}

// WithBlockers sets the blockers text.
func (b *CheckInBuilder) WithBlockers(blockers string) *CheckInBuilder {
	b.checkIn.Blockers = blockers
	return b
}

// Build returns the constructed CheckIn.
func (b *CheckInBuilder) Build() *model.CheckIn {
	return b.checkIn
}

// ShoutoutBuilder provides a fluent interface for building Shoutout fixtures.
type ShoutoutBuilder struct {
	shoutout *model.Shoutout
}

// NewShoutout creates a ShoutoutBuilder with sensible defaults.
func NewShoutout() *ShoutoutBuilder {
	return &ShoutoutBuilder{
		shoutout: &model.Shoutout{
			ID:             "s1",
			OrganizationID: "org1",
			FromUserID:     "u1",
			ToUserID:       "u2",
			Message:        "great work",
		},
	}
}

// WithID sets the shoutout ID.
func (b *ShoutoutBuilder) WithID(id string) *ShoutoutBuilder {
	b.shoutout.ID = id
	return b
}

// From sets the sender.
func (b *ShoutoutBuilder) From(userID string) *ShoutoutBuilder {
	b.shoutout.FromUserID = userID
	return b
}

// To sets the recipient.
func (b *ShoutoutBuilder) To(userID string) *ShoutoutBuilder {
	b.shoutout.ToUserID = userID
	return b
}

// WithCategory sets the category ID.
func (b *ShoutoutBuilder) WithCategory(categoryID string) *ShoutoutBuilder {
	b.shoutout.CategoryID = &categoryID
	return b
}

// WithMessage sets the message.
func (b *ShoutoutBuilder) WithMessage(message string) *ShoutoutBuilder {
	b.shoutout.Message = message
	return b
}

// CreatedAt sets the creation timestamp.
func (b *ShoutoutBuilder) CreatedAt(t time.Time) *ShoutoutBuilder {
	b.shoutout.CreatedAt = t
	return b
}

// Build returns the constructed Shoutout.
func (b *ShoutoutBuilder) Build() *model.Shoutout {
	return b.shoutout
}

// Common fixture presets

// ManagerUser builds an active manager in the default org.
func ManagerUser(id string) *model.User {
	return NewUser().WithID(id).WithRole(domainauth.RoleManager).WithEmail(id + "@example.com").Build()
}

// MemberUser builds an active member in the default org.
func MemberUser(id string) *model.User {
	return NewUser().WithID(id).WithEmail(id + "@example.com").Build()
}
