package service

import (
	"context"

	"github.com/whirkplace/whirkplace-api/internal/core"
	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	apperrors "github.com/whirkplace/whirkplace-api/internal/errors"
)

// KRAServiceOptions groups dependencies for KRAService.
type KRAServiceOptions struct {
	KRAs  core.KRARepository
	Users core.UserRepository
}

// KRAService tracks key result areas within a tenant.
type KRAService struct {
	kras  core.KRARepository
	users core.UserRepository
}

// NewKRAService constructs a new KRAService.
func NewKRAService(opts KRAServiceOptions) *KRAService {
	if opts.KRAs == nil {
		panic("KRARepository is required")
	}
	return &KRAService{kras: opts.KRAs, users: opts.Users}
}

// Create assigns a KRA to a user in orgID.
func (s *KRAService) Create(ctx context.Context, orgID string, req *model.CreateKRARequest) (*model.KRA, error) {
	if req != nil && s.users != nil {
		if _, err := s.users.GetByID(ctx, orgID, req.UserID); err != nil {
			if apperrors.IsNotFound(err) {
				return nil, apperrors.Validation("user does not exist in this organization")
			}
			return nil, err
		}
	}
	return s.kras.Create(ctx, orgID, req)
}

// GetByID retrieves a KRA within orgID.
func (s *KRAService) GetByID(ctx context.Context, orgID, id string) (*model.KRA, error) {
	return s.kras.GetByID(ctx, orgID, id)
}

// List returns KRAs in orgID matching filter.
func (s *KRAService) List(ctx context.Context, orgID string, filter model.KRAFilter) ([]*model.KRA, error) {
	return s.kras.List(ctx, orgID, filter)
}

// UpdateStatus moves a KRA to a new status.
func (s *KRAService) UpdateStatus(ctx context.Context, orgID, id string, status model.KRAStatus) (*model.KRA, error) {
	return s.kras.UpdateStatus(ctx, orgID, id, status)
}

// Delete removes a KRA within orgID.
func (s *KRAService) Delete(ctx context.Context, orgID, id string) error {
	return s.kras.Delete(ctx, orgID, id)
}
