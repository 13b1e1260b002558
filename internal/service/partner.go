package service

import (
	"context"
	"log/slog"

	"github.com/whirkplace/whirkplace-api/internal/core"
	"github.com/whirkplace/whirkplace-api/internal/domain/model"
)

// PartnerServiceOptions groups dependencies for PartnerService.
type PartnerServiceOptions struct {
	Applications core.PartnerApplicationRepository
	Notifier     Notifier
	Logger       *slog.Logger
}

// PartnerService accepts public partner program applications and
// notifies the ops webhook about each one.
type PartnerService struct {
	applications core.PartnerApplicationRepository
	notifier     Notifier
	logger       *slog.Logger
}

// NewPartnerService constructs a new PartnerService.
func NewPartnerService(opts PartnerServiceOptions) *PartnerService {
	if opts.Applications == nil {
		panic("PartnerApplicationRepository is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &PartnerService{
		applications: opts.Applications,
		notifier:     opts.Notifier,
		logger:       opts.Logger,
	}
}

// Apply records an application. Notification failures are logged and
// swallowed; the application is already persisted.
func (s *PartnerService) Apply(ctx context.Context, req *model.CreatePartnerApplicationRequest) (*model.PartnerApplication, error) {
	app, err := s.applications.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if notifyErr := s.notifier.Notify(ctx, Notification{
			Kind:    "partner_application",
			Subject: app.CompanyName,
			Body: map[string]any{
				"company_name":  app.CompanyName,
				"contact_name":  app.ContactName,
				"contact_email": app.ContactEmail,
			},
		}); notifyErr != nil {
			s.logger.WarnContext(ctx, "partner application notification failed",
				slog.String("application_id", app.ID),
				slog.Any("error", notifyErr))
		}
	}

	return app, nil
}

// List returns partner applications, newest first. Super-admin only;
// enforced at the route level.
func (s *PartnerService) List(ctx context.Context, limit, offset int) ([]*model.PartnerApplication, error) {
	return s.applications.List(ctx, limit, offset)
}
