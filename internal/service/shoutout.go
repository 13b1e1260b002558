package service

import (
	"context"

	"github.com/whirkplace/whirkplace-api/internal/core"
	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	apperrors "github.com/whirkplace/whirkplace-api/internal/errors"
)

// ShoutoutServiceOptions groups dependencies for ShoutoutService.
type ShoutoutServiceOptions struct {
	Shoutouts core.ShoutoutRepository
	Users     core.UserRepository
}

// ShoutoutService provides peer recognition within a tenant.
type ShoutoutService struct {
	shoutouts core.ShoutoutRepository
	users     core.UserRepository
}

// NewShoutoutService constructs a new ShoutoutService.
func NewShoutoutService(opts ShoutoutServiceOptions) *ShoutoutService {
	if opts.Shoutouts == nil {
		panic("ShoutoutRepository is required")
	}
	return &ShoutoutService{shoutouts: opts.Shoutouts, users: opts.Users}
}

// Create records a shoutout from fromUserID, verifying the recipient
// belongs to the same organization.
func (s *ShoutoutService) Create(ctx context.Context, orgID, fromUserID string, req *model.CreateShoutoutRequest) (*model.Shoutout, error) {
	if req != nil && s.users != nil {
		if _, err := s.users.GetByID(ctx, orgID, req.ToUserID); err != nil {
			if apperrors.IsNotFound(err) {
				return nil, apperrors.Validation("recipient does not exist in this organization")
			}
			return nil, err
		}
	}
	return s.shoutouts.Create(ctx, orgID, fromUserID, req)
}

// List returns shoutouts in orgID matching filter, newest first.
func (s *ShoutoutService) List(ctx context.Context, orgID string, filter model.ShoutoutFilter) ([]*model.Shoutout, error) {
	return s.shoutouts.List(ctx, orgID, filter)
}

// Delete removes a shoutout within orgID.
func (s *ShoutoutService) Delete(ctx context.Context, orgID, id string) error {
	return s.shoutouts.Delete(ctx, orgID, id)
}

// CreateCategory adds a shoutout category to orgID.
func (s *ShoutoutService) CreateCategory(ctx context.Context, orgID string, req *model.CreateCategoryRequest) (*model.ShoutoutCategory, error) {
	return s.shoutouts.CreateCategory(ctx, orgID, req)
}

// ListCategories returns orgID's categories.
func (s *ShoutoutService) ListCategories(ctx context.Context, orgID string) ([]*model.ShoutoutCategory, error) {
	return s.shoutouts.ListCategories(ctx, orgID)
}

// DeleteCategory removes a category within orgID.
func (s *ShoutoutService) DeleteCategory(ctx context.Context, orgID, id string) error {
	return s.shoutouts.DeleteCategory(ctx, orgID, id)
}
