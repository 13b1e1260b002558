package httpx

import (
	"database/sql"
	"log/slog"
	"net/http"

	domainauth "github.com/whirkplace/whirkplace-api/internal/domain/auth"
	"github.com/whirkplace/whirkplace-api/internal/domain/plan"
	"github.com/whirkplace/whirkplace-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth          AuthServiceInterface
	Organizations *service.OrganizationService
	Users         *service.UserService
	Teams         *service.TeamService
	CheckIns      *service.CheckInService
	Shoutouts     *service.ShoutoutService
	KRAs          *service.KRAService
	OneOnOnes     *service.OneOnOneService
	Partners      *service.PartnerService
	Analytics     *service.AnalyticsService

	// CSRF and RateLimiter are the stateful pipeline components. Both
	// are required; build them in bootstrap so their lifecycles outlive
	// individual requests.
	CSRF        *CSRFGuard
	RateLimiter *RateLimiter

	// DB and EmergencyKey power the emergency-fix endpoint. With an
	// empty key the endpoint 404s.
	DB           *sql.DB
	EmergencyKey string

	CookieDomain string
	TrustProxy   bool

	// AllowBackdoor honors the backdoor header; never set in production.
	AllowBackdoor bool

	// TestSeedEnabled exposes /api/test/kra/* for end-to-end suites.
	TestSeedEnabled bool

	Logger *slog.Logger
}

// NewRouter builds the full handler: the middleware pipeline wrapped
// around the route mux. Pipeline order is fixed: security headers,
// rate limit, authenticate, CSRF, organization resolve; per-route
// guards (roles, feature gates) wrap individual handlers inside that.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		CSRF:         services.CSRF,
		CookieDomain: services.CookieDomain,
		TrustProxy:   services.TrustProxy,
		Logger:       logger,
	}
	registerAuthRoutes(mux, authHandlers)
	registerBusinessRoutes(mux, &BusinessHandlers{Orgs: services.Organizations})
	registerPartnerRoutes(mux, &PartnerHandlers{Svc: services.Partners})
	registerUserRoutes(mux, &UserHandlers{Svc: services.Users})
	registerTeamRoutes(mux, &TeamHandlers{Svc: services.Teams})
	registerCheckInRoutes(mux, &CheckInHandlers{Svc: services.CheckIns})
	registerShoutoutRoutes(mux, &ShoutoutHandlers{Svc: services.Shoutouts})
	registerKRARoutes(mux, &KRAHandlers{Svc: services.KRAs, TestSeedEnabled: services.TestSeedEnabled})
	registerOneOnOneRoutes(mux, &OneOnOneHandlers{Svc: services.OneOnOnes})
	registerAnalyticsRoutes(mux, &AnalyticsHandlers{Svc: services.Analytics})
	registerAdminRoutes(mux, &AdminHandlers{Orgs: services.Organizations}, &PartnerHandlers{Svc: services.Partners})

	emergency := &EmergencyHandler{DB: services.DB, Key: services.EmergencyKey, Logger: logger}
	mux.Handle("POST /api/emergency-fix-production", http.HandlerFunc(emergency.Fix))

	mux.Handle("GET /api/health", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /api/health", http.HandlerFunc(healthHandler))
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	var handler http.Handler = mux
	handler = ResolveOrganization(services.Organizations)(handler)
	handler = services.CSRF.Middleware()(handler)
	handler = Authenticate(services.Auth, services.AllowBackdoor)(handler)
	handler = services.RateLimiter.Middleware()(handler)
	handler = SecurityHeaders()(handler)
	return handler
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.Handle("GET /api/auth/login", http.HandlerFunc(h.Login))
	mux.Handle("GET /api/auth/callback", http.HandlerFunc(h.Callback))
	mux.Handle("POST /api/auth/logout", http.HandlerFunc(h.Logout))
	mux.Handle("GET /api/auth/session", http.HandlerFunc(h.Session))
	mux.Handle("POST /api/auth/demo-login", http.HandlerFunc(h.DemoLogin))
	mux.Handle("POST /api/auth/view-as", http.HandlerFunc(h.ViewAs))
	mux.Handle("GET /api/csrf-token", http.HandlerFunc(h.CSRFToken))
}

func registerBusinessRoutes(mux *http.ServeMux, h *BusinessHandlers) {
	mux.Handle("POST /api/business/signup", http.HandlerFunc(h.Signup))
	mux.Handle("GET /api/business/plans", http.HandlerFunc(h.Plans))
	mux.Handle("POST /api/business/select-plan", http.HandlerFunc(h.SelectPlan))
	mux.Handle("GET /api/business/checkout-success", http.HandlerFunc(h.CheckoutSuccess))
}

func registerPartnerRoutes(mux *http.ServeMux, h *PartnerHandlers) {
	mux.Handle("POST /api/partners/applications", http.HandlerFunc(h.Apply))
}

func registerUserRoutes(mux *http.ServeMux, h *UserHandlers) {
	admin := RequireRole(domainauth.RoleAdmin)
	mux.Handle("POST /api/users", admin(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/users", http.HandlerFunc(h.List))
	mux.Handle("GET /api/users/{id}", http.HandlerFunc(h.Get))
	mux.Handle("PATCH /api/users/{id}", admin(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/users/{id}", admin(http.HandlerFunc(h.Deactivate)))
}

func registerTeamRoutes(mux *http.ServeMux, h *TeamHandlers) {
	admin := RequireRole(domainauth.RoleAdmin)
	mux.Handle("POST /api/teams", admin(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/teams", http.HandlerFunc(h.List))
	mux.Handle("GET /api/teams/{id}", http.HandlerFunc(h.Get))
	mux.Handle("PATCH /api/teams/{id}", admin(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/teams/{id}", admin(http.HandlerFunc(h.Delete)))
}

func registerCheckInRoutes(mux *http.ServeMux, h *CheckInHandlers) {
	gate := RequireFeature(plan.FeatureCheckIns)
	admin := RequireRole(domainauth.RoleAdmin)
	manager := RequireRole(domainauth.RoleManager)
	mux.Handle("POST /api/checkins", gate(http.HandlerFunc(h.Submit)))
	mux.Handle("GET /api/checkins/current", gate(http.HandlerFunc(h.Current)))
	mux.Handle("GET /api/checkins/week", gate(manager(http.HandlerFunc(h.Week))))
	mux.Handle("GET /api/checkins/history", gate(http.HandlerFunc(h.History)))
	mux.Handle("POST /api/checkins/exemptions", gate(admin(http.HandlerFunc(h.CreateExemption))))
	mux.Handle("GET /api/checkins/exemptions", gate(admin(http.HandlerFunc(h.ListExemptions))))
	mux.Handle("DELETE /api/checkins/exemptions/{id}", gate(admin(http.HandlerFunc(h.DeleteExemption))))
}

func registerShoutoutRoutes(mux *http.ServeMux, h *ShoutoutHandlers) {
	gate := RequireFeature(plan.FeatureShoutouts)
	admin := RequireRole(domainauth.RoleAdmin)
	mux.Handle("POST /api/shoutouts", gate(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/shoutouts", gate(http.HandlerFunc(h.List)))
	mux.Handle("DELETE /api/shoutouts/{id}", gate(admin(http.HandlerFunc(h.Delete))))
	mux.Handle("POST /api/shoutouts/categories", gate(admin(http.HandlerFunc(h.CreateCategory))))
	mux.Handle("GET /api/shoutouts/categories", gate(http.HandlerFunc(h.ListCategories)))
	mux.Handle("DELETE /api/shoutouts/categories/{id}", gate(admin(http.HandlerFunc(h.DeleteCategory))))
}

func registerKRARoutes(mux *http.ServeMux, h *KRAHandlers) {
	gate := RequireFeature(plan.FeatureKRATracking)
	manager := RequireRole(domainauth.RoleManager)
	mux.Handle("POST /api/kras", gate(manager(http.HandlerFunc(h.Create))))
	mux.Handle("GET /api/kras", gate(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/kras/{id}", gate(http.HandlerFunc(h.Get)))
	mux.Handle("PATCH /api/kras/{id}/status", gate(http.HandlerFunc(h.UpdateStatus)))
	mux.Handle("DELETE /api/kras/{id}", gate(manager(http.HandlerFunc(h.Delete))))

	// Test-environment seeding; classified public and 404s unless enabled.
	mux.Handle("POST /api/test/kra/seed", http.HandlerFunc(h.TestSeed))
}

func registerOneOnOneRoutes(mux *http.ServeMux, h *OneOnOneHandlers) {
	gate := RequireFeature(plan.FeatureOneOnOnes)
	manager := RequireRole(domainauth.RoleManager)
	mux.Handle("POST /api/one-on-ones", gate(manager(http.HandlerFunc(h.Create))))
	mux.Handle("GET /api/one-on-ones", gate(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/one-on-ones/{id}", gate(http.HandlerFunc(h.Get)))
	mux.Handle("PATCH /api/one-on-ones/{id}", gate(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/one-on-ones/{id}", gate(http.HandlerFunc(h.Delete)))
}

func registerAnalyticsRoutes(mux *http.ServeMux, h *AnalyticsHandlers) {
	manager := RequireRole(domainauth.RoleManager)
	mux.Handle("GET /api/analytics/summary",
		RequireFeature(plan.FeatureAnalytics)(manager(http.HandlerFunc(h.Summary))))
	mux.Handle("GET /api/analytics/trend",
		RequireFeature(plan.FeatureAdvancedAnalytics)(manager(http.HandlerFunc(h.Trend))))
}

func registerAdminRoutes(mux *http.ServeMux, h *AdminHandlers, partners *PartnerHandlers) {
	super := RequireRole(domainauth.RoleSuperAdmin)
	mux.Handle("GET /api/admin/organizations", super(http.HandlerFunc(h.ListOrganizations)))
	mux.Handle("GET /api/admin/organizations/{id}", super(http.HandlerFunc(h.GetOrganization)))
	mux.Handle("PATCH /api/admin/organizations/{id}/status", super(http.HandlerFunc(h.UpdateOrganizationStatus)))
	mux.Handle("GET /api/admin/partner-applications", super(http.HandlerFunc(partners.List)))
}
