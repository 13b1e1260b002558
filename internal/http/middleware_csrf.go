package httpx

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/whirkplace/whirkplace-api/internal/data"
	domainauth "github.com/whirkplace/whirkplace-api/internal/domain/auth"
)

const (
	// csrfTokenTTL bounds how long an issued token stays valid.
	csrfTokenTTL = time.Hour

	// csrfClockSkew tolerates small clock drift between the node that
	// minted a token and the one validating it.
	csrfClockSkew = time.Minute
)

// CSRFGuardOptions groups dependencies for the CSRF guard.
type CSRFGuardOptions struct {
	Auth         AuthServiceInterface
	Time         data.TimeProvider
	CookieDomain string
	TrustProxy   bool
}

// CSRFGuard implements stateful CSRF protection keyed on the session.
// Tokens are `{unixMilli}.{hex(sha256(secret + unixMilli))}` derived
// from a per-session secret, expire after an hour, and the secret
// rotates on every successful validation so a captured token cannot be
// replayed. Only session (cookie) logins are guarded; bearer and
// backdoor credentials are attacker-unforgeable headers already.
type CSRFGuard struct {
	auth         AuthServiceInterface
	time         data.TimeProvider
	cookieDomain string
	trustProxy   bool
}

// NewCSRFGuard constructs a CSRFGuard.
func NewCSRFGuard(opts CSRFGuardOptions) *CSRFGuard {
	if opts.Auth == nil {
		panic("AuthServiceInterface is required")
	}
	if opts.Time == nil {
		opts.Time = &data.RealTimeProvider{}
	}
	return &CSRFGuard{
		auth:         opts.Auth,
		time:         opts.Time,
		cookieDomain: opts.CookieDomain,
		trustProxy:   opts.TrustProxy,
	}
}

// Middleware returns the CSRF issue-and-validate stage of the pipeline.
// Safe methods get a fresh token issued; state-changing methods must
// present a valid one.
func (g *CSRFGuard) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if Classify(r.URL.Path).CSRFExempt {
				next.ServeHTTP(w, r)
				return
			}

			result := GetAuthResult(r.Context())
			if result.Kind == domainauth.KindBearerUser || result.Kind == domainauth.KindDevBackdoorUser {
				next.ServeHTTP(w, r)
				return
			}

			if !requiresCSRFValidation(r.Method) {
				// Issue stage: refresh the token on reads so the client
				// always holds a current token.
				if session := result.Session; session != nil && session.CSRFSecret != "" {
					g.issueToken(w, r, mintCSRFToken(session.CSRFSecret, g.time.Now()))
				}
				next.ServeHTTP(w, r)
				return
			}

			session := result.Session
			if session == nil || session.CSRFSecret == "" {
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: errCodeCSRFSessionInvalid,
					Err:     errors.New("no session available for CSRF validation"),
				})
				return
			}

			token := requestCSRFToken(r)
			if token == "" {
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: errCodeCSRFTokenMissing,
					Err:     errors.New("CSRF token is required"),
				})
				return
			}

			if err := validateCSRFToken(session.CSRFSecret, token, g.time.Now()); err != nil {
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: errCodeCSRFTokenInvalid,
					Err:     err,
				})
				return
			}

			// One token, one use. Rotating the secret invalidates every
			// token minted before this request.
			newSecret, err := g.auth.RotateCSRFSecret(r.Context(), session)
			if err != nil {
				RenderAppError(w, err)
				return
			}
			g.issueToken(w, r, mintCSRFToken(newSecret, g.time.Now()))

			next.ServeHTTP(w, r)
		})
	}
}

// IssueToken mints a fresh token for the session and delivers it via
// the response header and cookie. Used by the GET /api/csrf-token
// handler.
func (g *CSRFGuard) IssueToken(w http.ResponseWriter, r *http.Request, session *domainauth.Session) string {
	token := mintCSRFToken(session.CSRFSecret, g.time.Now())
	g.issueToken(w, r, token)
	return token
}

// issueToken hands a minted token to the client. The X-CSRF-Token
// response header is the delivery channel clients echo back; the
// cookie is an httpOnly mirror and is never consulted on validation.
func (g *CSRFGuard) issueToken(w http.ResponseWriter, r *http.Request, token string) {
	isSecure := r.TLS != nil || (g.trustProxy && isForwardedHTTPS(r))
	sameSite := http.SameSiteLaxMode
	if isSecure {
		// Cross-site SPA deployments behind a proxy need None, which
		// browsers only honor together with Secure.
		sameSite = http.SameSiteNoneMode
	}
	w.Header().Set(CSRFHeaderName, token)
	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		Domain:   g.cookieDomain,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: sameSite,
		MaxAge:   int(csrfTokenTTL / time.Second),
	})
}

// requiresCSRFValidation returns true if the HTTP method requires CSRF validation.
// Safe methods (GET, HEAD, OPTIONS, TRACE) are exempt.
func requiresCSRFValidation(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return false
	default:
		return true
	}
}

// requestCSRFToken pulls the token from the request headers. The
// cookie is deliberately not read: browsers attach cookies to
// cross-site requests automatically, so a cookie-sourced token would
// prove nothing about the sender.
func requestCSRFToken(r *http.Request) string {
	if token := r.Header.Get(CSRFHeaderName); token != "" {
		return token
	}
	return r.Header.Get(CSRFAltHeaderName)
}

// mintCSRFToken derives a token from the session secret and the
// current timestamp.
func mintCSRFToken(secret string, now time.Time) string {
	ts := strconv.FormatInt(now.UnixMilli(), 10)
	sum := sha256.Sum256([]byte(secret + ts))
	return ts + "." + hex.EncodeToString(sum[:])
}

// validateCSRFToken checks a presented token against the session
// secret: well-formed, within its lifetime, and a digest match.
func validateCSRFToken(secret, token string, now time.Time) error {
	tsPart, sigPart, ok := strings.Cut(token, ".")
	if !ok {
		return errors.New("malformed CSRF token")
	}

	ms, err := strconv.ParseInt(tsPart, 10, 64)
	if err != nil {
		return errors.New("malformed CSRF token timestamp")
	}

	age := now.Sub(time.UnixMilli(ms))
	if age > csrfTokenTTL {
		return errors.New("CSRF token has expired")
	}
	if age < -csrfClockSkew {
		return errors.New("CSRF token timestamp is in the future")
	}

	sum := sha256.Sum256([]byte(secret + tsPart))
	expected := hex.EncodeToString(sum[:])
	if subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(sigPart))) != 1 {
		return errors.New("CSRF token signature mismatch")
	}
	return nil
}
