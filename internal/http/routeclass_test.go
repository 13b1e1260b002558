package httpx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want RouteClass
	}{
		{"/api/auth/login", RouteClass{Public: true, CSRFExempt: true, RateLimited: true}},
		{"/api/auth/callback", RouteClass{Public: true, CSRFExempt: true, RateLimited: true}},
		{"/api/auth/demo-login", RouteClass{Public: true, CSRFExempt: true, RateLimited: true}},
		{"/api/csrf-token", RouteClass{CSRFExempt: true}},
		{"/api/partners/applications", RouteClass{Public: true, CSRFExempt: true, RateLimited: true}},
		{"/api/business/signup", RouteClass{Public: true, CSRFExempt: true, RateLimited: true}},
		{"/api/business/plans", RouteClass{Public: true, CSRFExempt: true}},
		{"/api/business/select-plan", RouteClass{Public: true, CSRFExempt: true}},
		{"/api/business/checkout-success", RouteClass{Public: true, CSRFExempt: true}},
		{"/api/test/kra/seed", RouteClass{Public: true, CSRFExempt: true}},
		{"/api/emergency-fix-production", RouteClass{Public: true, CSRFExempt: true}},
		{"/api/health", RouteClass{Public: true, CSRFExempt: true}},
		{"/healthz", RouteClass{Public: true, CSRFExempt: true}},

		// Everything else gets the strict default.
		{"/api/users", RouteClass{}},
		{"/api/check-ins", RouteClass{}},
		{"/api/shoutouts/123", RouteClass{}},
		{"/api/admin/organizations", RouteClass{}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.path), "path %s", tt.path)
	}
}

func TestClassify_ExactPrefixDoesNotMatchSiblings(t *testing.T) {
	t.Parallel()

	// "/api/csrf-token" is an exact entry; a longer sibling path must not
	// inherit its exemption.
	assert.Equal(t, RouteClass{}, Classify("/api/csrf-tokens"))
	assert.Equal(t, RouteClass{}, Classify("/api/authx"))

	// A sub-path under an exact entry still matches.
	assert.Equal(t, RouteClass{Public: true, CSRFExempt: true}, Classify("/api/health/live"))
}
