package bootstrap

import (
	"context"
	"database/sql"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"github.com/whirkplace/whirkplace-api/config"
	"github.com/whirkplace/whirkplace-api/internal/data"
	"github.com/whirkplace/whirkplace-api/internal/notify/webhook"
	"github.com/whirkplace/whirkplace-api/internal/service"
)

// ServiceDeps groups the infrastructure every service builds on.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient goredis.UniversalClient
	Logger      *slog.Logger
}

// ServiceContainer holds the application services.
type ServiceContainer struct {
	Auth          *service.AuthService
	Organizations *service.OrganizationService
	Users         *service.UserService
	Teams         *service.TeamService
	CheckIns      *service.CheckInService
	Shoutouts     *service.ShoutoutService
	KRAs          *service.KRAService
	OneOnOnes     *service.OneOnOneService
	Partners      *service.PartnerService
	Analytics     *service.AnalyticsService
	Reminders     *service.ReminderService
}

// NewServices constructs the repositories and services.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	orgRepo := data.NewOrganizationRepo(deps.DB)
	userRepo := data.NewUserRepo(deps.DB)
	teamRepo := data.NewTeamRepo(deps.DB)
	checkInRepo := data.NewCheckInRepo(deps.DB)
	shoutoutRepo := data.NewShoutoutRepo(deps.DB)
	kraRepo := data.NewKRARepo(deps.DB)
	oneOnOneRepo := data.NewOneOnOneRepo(deps.DB)
	partnerRepo := data.NewPartnerApplicationRepo(deps.DB)

	notifier, err := buildNotifier(deps.Config, logger)
	if err != nil {
		return ServiceContainer{}, err
	}

	authSvc, err := BuildAuthService(AuthDeps{
		Config:      deps.Config,
		RedisClient: deps.RedisClient,
		Users:       userRepo,
		Logger:      logger,
	})
	if err != nil {
		return ServiceContainer{}, err
	}

	return ServiceContainer{
		Auth: authSvc,
		Organizations: service.NewOrganizationService(service.OrganizationServiceOptions{
			Orgs:  orgRepo,
			Users: userRepo,
		}),
		Users: service.NewUserService(service.UserServiceOptions{
			Users: userRepo,
			Teams: teamRepo,
		}),
		Teams: service.NewTeamService(service.TeamServiceOptions{
			Teams: teamRepo,
		}),
		CheckIns: service.NewCheckInService(service.CheckInServiceOptions{
			CheckIns: checkInRepo,
			Users:    userRepo,
		}),
		Shoutouts: service.NewShoutoutService(service.ShoutoutServiceOptions{
			Shoutouts: shoutoutRepo,
			Users:     userRepo,
		}),
		KRAs: service.NewKRAService(service.KRAServiceOptions{
			KRAs:  kraRepo,
			Users: userRepo,
		}),
		OneOnOnes: service.NewOneOnOneService(service.OneOnOneServiceOptions{
			OneOnOnes: oneOnOneRepo,
			Users:     userRepo,
		}),
		Partners: service.NewPartnerService(service.PartnerServiceOptions{
			Applications: partnerRepo,
			Notifier:     notifier,
			Logger:       logger,
		}),
		Analytics: service.NewAnalyticsService(service.AnalyticsServiceOptions{
			CheckIns:  checkInRepo,
			Shoutouts: shoutoutRepo,
			Users:     userRepo,
		}),
		Reminders: service.NewReminderService(service.ReminderServiceOptions{
			CheckIns: checkInRepo,
			Notifier: notifier,
			Config: service.ReminderConfig{
				Interval:  deps.Config.Reminder.Interval,
				BatchSize: deps.Config.Reminder.BatchSize,
			},
			Logger: logger,
		}),
	}, nil
}

// buildNotifier returns the webhook notifier, or a log-only fallback
// when no webhook URL is configured.
func buildNotifier(cfg *config.AppConfig, logger *slog.Logger) (service.Notifier, error) {
	if cfg.Webhook.URL == "" {
		return service.NotifierFunc(func(ctx context.Context, n service.Notification) error {
			logger.InfoContext(ctx, "notification",
				slog.String("kind", n.Kind),
				slog.String("subject", n.Subject))
			return nil
		}), nil
	}
	return webhook.NewClient(webhook.Config{
		URL:            cfg.Webhook.URL,
		BodyExpression: cfg.Webhook.BodyExpression,
		Timeout:        cfg.Webhook.Timeout,
		RetryLimit:     2,
	})
}
