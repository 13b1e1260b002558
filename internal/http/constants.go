package httpx

// Cookie and header names shared by middleware and handlers.
const (
	// SessionCookieName carries the opaque server-side session ID.
	SessionCookieName = "whirk_session"

	// CSRFCookieName is an httpOnly mirror of the most recently issued
	// CSRF token. Clients obtain the token from the X-CSRF-Token
	// response header or the /api/csrf-token body, never this cookie.
	CSRFCookieName = "whirk_csrf"

	// CSRFHeaderName carries the token on state-changing requests and
	// the freshly minted token on responses.
	CSRFHeaderName = "X-CSRF-Token"

	// CSRFAltHeaderName is the legacy request header spelling, still
	// accepted on validation.
	CSRFAltHeaderName = "csrf-token"

	// BackdoorUserHeader and BackdoorKeyHeader form the development
	// backdoor login pair; both must match the configured values.
	BackdoorUserHeader = "X-Backdoor-User"
	BackdoorKeyHeader  = "X-Backdoor-Key"

	// oauthStateCookie and oauthNonceCookie hold the short-lived OAuth
	// round-trip values between /login and /callback.
	oauthStateCookie = "oauth_state"
	oauthNonceCookie = "oauth_nonce"
)

// Stable wire error codes. Frontends dispatch on these, so renaming one
// is a breaking API change.
const (
	errCodeCSRFTokenMissing   = "CSRF_TOKEN_MISSING"
	errCodeCSRFSessionInvalid = "CSRF_SESSION_INVALID"
	errCodeCSRFTokenInvalid   = "CSRF_TOKEN_INVALID"
	errCodeRateLimit          = "RATE_LIMIT_EXCEEDED"
)
