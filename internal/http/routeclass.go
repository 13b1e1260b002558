package httpx

import "strings"

// RouteClass describes how the middleware pipeline treats a path. The
// zero value is the strict default: authentication required, CSRF
// enforced on state-changing methods, no rate limiting.
type RouteClass struct {
	// Public routes are reachable without an authenticated identity and
	// skip organization resolution.
	Public bool

	// CSRFExempt routes bypass CSRF validation. Reserved for public
	// endpoints with no session to protect and for the login flow
	// itself, which cannot have a token yet.
	CSRFExempt bool

	// RateLimited routes are counted by the per-IP limiter.
	RateLimited bool
}

// routeTable is the single classification table every access-control
// middleware consults. Keeping it in one place means a new route is
// exempted (or not) in exactly one spot instead of once per guard.
// First match wins, so list more specific prefixes before shorter ones.
var routeTable = []struct {
	prefix string
	class  RouteClass
}{
	// Login, callback, logout, demo-login. No usable CSRF token exists
	// before a session does, and brute force is the threat here, hence
	// the limiter.
	{"/api/auth/", RouteClass{Public: true, CSRFExempt: true, RateLimited: true}},

	// Token issuance needs a session but is itself a safe GET.
	{"/api/csrf-token", RouteClass{CSRFExempt: true}},

	// Public partner program application form.
	{"/api/partners/applications", RouteClass{Public: true, CSRFExempt: true, RateLimited: true}},

	// Self-serve signup funnel: all four steps run before any session
	// exists, so they are public and cannot carry a CSRF token.
	{"/api/business/signup", RouteClass{Public: true, CSRFExempt: true, RateLimited: true}},
	{"/api/business/plans", RouteClass{Public: true, CSRFExempt: true}},
	{"/api/business/select-plan", RouteClass{Public: true, CSRFExempt: true}},
	{"/api/business/checkout-success", RouteClass{Public: true, CSRFExempt: true}},

	// Seeding endpoints for end-to-end test environments.
	{"/api/test/kra/", RouteClass{Public: true, CSRFExempt: true}},

	// Operational escape hatch; see handleEmergencyFix.
	{"/api/emergency-fix-production", RouteClass{Public: true, CSRFExempt: true}},

	{"/api/health", RouteClass{Public: true, CSRFExempt: true}},
	{"/healthz", RouteClass{Public: true, CSRFExempt: true}},
}

// Classify returns the route class for a request path.
func Classify(path string) RouteClass {
	for _, entry := range routeTable {
		if strings.HasSuffix(entry.prefix, "/") {
			if strings.HasPrefix(path, entry.prefix) {
				return entry.class
			}
			continue
		}
		if path == entry.prefix || strings.HasPrefix(path, entry.prefix+"/") {
			return entry.class
		}
	}
	return RouteClass{}
}
