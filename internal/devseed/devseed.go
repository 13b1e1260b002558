// Package devseed populates a development database with a demo
// organization so the app is explorable immediately after `make up`.
// Seeding is one-shot: if the demo organization already exists the
// whole run is skipped.
package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/whirkplace/whirkplace-api/internal/data"
	domainauth "github.com/whirkplace/whirkplace-api/internal/domain/auth"
	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	"github.com/whirkplace/whirkplace-api/internal/domain/plan"
	apperrors "github.com/whirkplace/whirkplace-api/internal/errors"
	"github.com/whirkplace/whirkplace-api/internal/service"
)

const demoOrgSlug = "demo"

// Services bundles the dependencies needed for development seeding.
type Services struct {
	DB            *sql.DB
	organizations *service.OrganizationService
	users         *service.UserService
	teams         *service.TeamService
	checkIns      *service.CheckInService
	shoutouts     *service.ShoutoutService
	kras          *service.KRAService
	oneOnOnes     *service.OneOnOneService
}

// NewServices constructs all required services for seeding using the provided DB.
func NewServices(db *sql.DB) Services {
	orgRepo := data.NewOrganizationRepo(db)
	userRepo := data.NewUserRepo(db)
	teamRepo := data.NewTeamRepo(db)
	checkInRepo := data.NewCheckInRepo(db)
	shoutoutRepo := data.NewShoutoutRepo(db)
	kraRepo := data.NewKRARepo(db)
	oneOnOneRepo := data.NewOneOnOneRepo(db)

	return Services{
		DB: db,
		organizations: service.NewOrganizationService(service.OrganizationServiceOptions{
			Orgs:  orgRepo,
			Users: userRepo,
		}),
		users: service.NewUserService(service.UserServiceOptions{
			Users: userRepo,
			Teams: teamRepo,
		}),
		teams: service.NewTeamService(service.TeamServiceOptions{
			Teams: teamRepo,
		}),
		checkIns: service.NewCheckInService(service.CheckInServiceOptions{
			CheckIns: checkInRepo,
			Users:    userRepo,
		}),
		shoutouts: service.NewShoutoutService(service.ShoutoutServiceOptions{
			Shoutouts: shoutoutRepo,
			Users:     userRepo,
		}),
		kras: service.NewKRAService(service.KRAServiceOptions{
			KRAs:  kraRepo,
			Users: userRepo,
		}),
		oneOnOnes: service.NewOneOnOneService(service.OneOnOneServiceOptions{
			OneOnOnes: oneOnOneRepo,
			Users:     userRepo,
		}),
	}
}

// Run executes the full development seeding workflow against the provided DB.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	if existing, err := svcs.organizations.GetBySlug(ctx, demoOrgSlug); err == nil && existing != nil {
		if logger != nil {
			logger.InfoContext(ctx, "demo organization already seeded, skipping",
				"slug", demoOrgSlug, "organization_id", existing.ID)
		}
		return nil
	} else if err != nil && !apperrors.IsNotFound(err) {
		return fmt.Errorf("check demo organization: %w", err)
	}

	org, admin, err := seedOrganization(ctx, svcs)
	if err != nil {
		return err
	}
	if logger != nil {
		logger.InfoContext(ctx, "created demo organization",
			"slug", org.Slug, "organization_id", org.ID)
	}

	teams, err := seedTeams(ctx, svcs, org.ID)
	if err != nil {
		return err
	}

	people, err := seedUsers(ctx, svcs, org.ID, teams)
	if err != nil {
		return err
	}
	people = append(people, admin)

	failures := 0
	failures += seedCheckIns(ctx, svcs, org.ID, people, logger)
	failures += seedShoutouts(ctx, svcs, org.ID, people, logger)
	failures += seedKRAs(ctx, svcs, org.ID, people, logger)
	failures += seedOneOnOnes(ctx, svcs, org.ID, people, logger)

	if failures > 0 {
		return fmt.Errorf("%d seed errors; check logs", failures)
	}
	if logger != nil {
		logger.InfoContext(ctx, "development seeding complete",
			"organization_id", org.ID, "users", len(people))
	}
	return nil
}

func seedOrganization(ctx context.Context, svcs Services) (*model.Organization, *model.User, error) {
	result, err := svcs.organizations.Signup(ctx, service.SignupInput{
		Organization: model.CreateOrganizationRequest{
			Name: "Demo Org",
			Slug: demoOrgSlug,
		},
		Admin: model.CreateUserRequest{
			Email:     "ada.admin@demo.whirkplace.local",
			FirstName: "Ada",
			LastName:  "Admin",
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create demo organization: %w", err)
	}

	// Professional unlocks KRAs and one-on-ones so the demo shows them.
	org, err := svcs.organizations.SelectPlan(ctx, result.Organization.ID, plan.TierProfessional)
	if err != nil {
		return nil, nil, fmt.Errorf("select demo plan: %w", err)
	}
	return org, result.Admin, nil
}

func seedTeams(ctx context.Context, svcs Services, orgID string) (map[string]*model.Team, error) {
	teams := make(map[string]*model.Team)
	for _, name := range []string{"Engineering", "Customer Success"} {
		team, err := svcs.teams.Create(ctx, orgID, &model.CreateTeamRequest{Name: name})
		if err != nil {
			return nil, fmt.Errorf("create team %q: %w", name, err)
		}
		teams[name] = team
	}
	return teams, nil
}

func seedUsers(ctx context.Context, svcs Services, orgID string, teams map[string]*model.Team) ([]*model.User, error) {
	requests := []struct {
		req  model.CreateUserRequest
		team string
	}{
		{
			req: model.CreateUserRequest{
				Email:     "mei.manager@demo.whirkplace.local",
				FirstName: "Mei",
				LastName:  "Manager",
				Role:      domainauth.RoleManager,
			},
			team: "Engineering",
		},
		{
			req: model.CreateUserRequest{
				Email:     "devon.dev@demo.whirkplace.local",
				FirstName: "Devon",
				LastName:  "Developer",
			},
			team: "Engineering",
		},
		{
			req: model.CreateUserRequest{
				Email:     "sam.support@demo.whirkplace.local",
				FirstName: "Sam",
				LastName:  "Support",
			},
			team: "Customer Success",
		},
	}

	users := make([]*model.User, 0, len(requests))
	for _, r := range requests {
		if team, ok := teams[r.team]; ok {
			r.req.TeamID = &team.ID
		}
		user, err := svcs.users.Create(ctx, orgID, &r.req)
		if err != nil {
			return nil, fmt.Errorf("create user %q: %w", r.req.Email, err)
		}
		users = append(users, user)
	}
	return users, nil
}

func seedCheckIns(ctx context.Context, svcs Services, orgID string, users []*model.User, logger *slog.Logger) int {
	checkIns := []model.CreateCheckInRequest{
		{Mood: 4, Highlights: "Shipped the onboarding flow", Blockers: ""},
		{Mood: 3, Highlights: "Cleared the support backlog", Blockers: "Waiting on the billing fix"},
		{Mood: 5, Highlights: "Closed two enterprise renewals", Blockers: ""},
	}

	failures := 0
	for i, req := range checkIns {
		if i >= len(users) {
			break
		}
		if _, err := svcs.checkIns.Submit(ctx, orgID, users[i].ID, &req); err != nil {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to seed check-in",
					"user_id", users[i].ID, "error", err)
			}
			failures++
		}
	}
	return failures
}

func seedShoutouts(ctx context.Context, svcs Services, orgID string, users []*model.User, logger *slog.Logger) int {
	if len(users) < 2 {
		return 0
	}

	failures := 0
	categories := make(map[string]string)
	for _, c := range []model.CreateCategoryRequest{
		{Name: "Team Player", Emoji: "🤝"},
		{Name: "Customer Win", Emoji: "🏆"},
	} {
		category, err := svcs.shoutouts.CreateCategory(ctx, orgID, &c)
		if err != nil {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to seed shoutout category",
					"name", c.Name, "error", err)
			}
			failures++
			continue
		}
		categories[category.Name] = category.ID
	}

	shoutouts := []struct {
		from, to int
		category string
		message  string
	}{
		{from: 0, to: 1, category: "Team Player", message: "Thanks for pairing on the migration all afternoon!"},
		{from: 1, to: 0, category: "Customer Win", message: "That demo landed the renewal. Great work."},
	}
	for _, s := range shoutouts {
		req := &model.CreateShoutoutRequest{
			ToUserID: users[s.to].ID,
			Message:  s.message,
		}
		if id, ok := categories[s.category]; ok {
			req.CategoryID = &id
		}
		if _, err := svcs.shoutouts.Create(ctx, orgID, users[s.from].ID, req); err != nil {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to seed shoutout",
					"from", users[s.from].ID, "error", err)
			}
			failures++
		}
	}
	return failures
}

func seedKRAs(ctx context.Context, svcs Services, orgID string, users []*model.User, logger *slog.Logger) int {
	if len(users) == 0 {
		return 0
	}

	due := time.Now().UTC().AddDate(0, 1, 0)
	kras := []model.CreateKRARequest{
		{
			UserID:      users[0].ID,
			Title:       "Cut p95 API latency below 200ms",
			Description: "Profile the hot paths and add the missing indexes.",
			DueDate:     &due,
		},
		{
			UserID: users[len(users)-1].ID,
			Title:  "Publish the Q3 customer health report",
		},
	}

	failures := 0
	for _, req := range kras {
		if _, err := svcs.kras.Create(ctx, orgID, &req); err != nil {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to seed KRA",
					"title", req.Title, "error", err)
			}
			failures++
		}
	}
	return failures
}

func seedOneOnOnes(ctx context.Context, svcs Services, orgID string, users []*model.User, logger *slog.Logger) int {
	var manager, member *model.User
	for _, u := range users {
		switch u.Role {
		case domainauth.RoleManager:
			manager = u
		case domainauth.RoleMember:
			if member == nil {
				member = u
			}
		}
	}
	if manager == nil || member == nil {
		return 0
	}

	_, err := svcs.oneOnOnes.Create(ctx, orgID, manager.ID, &model.CreateOneOnOneRequest{
		MemberID:    member.ID,
		ScheduledAt: time.Now().UTC().AddDate(0, 0, 7),
		Notes:       "First sync: onboarding retro and growth goals.",
	})
	if err != nil {
		if logger != nil {
			logger.ErrorContext(ctx, "failed to seed one-on-one",
				"manager_id", manager.ID, "error", err)
		}
		return 1
	}
	return 0
}
