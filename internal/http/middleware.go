package httpx

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/whirkplace/whirkplace-api/internal/domain/auth"
)

// SecurityHeaders returns a middleware that sets baseline security
// headers. This is the first stage of the pipeline so the headers are
// present even on error responses written by later middleware.
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if r.TLS != nil || isForwardedHTTPS(r) {
				h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}
			if strings.HasPrefix(r.URL.Path, "/api/") {
				h.Set("Cache-Control", "no-store")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Authenticate resolves request credentials into a tagged auth result
// and stores it in the context. It never rejects: unauthenticated
// requests flow through as such, and the organization resolver or a
// route-level guard decides whether that is acceptable. Credential
// order is session cookie, then bearer token, then (outside
// production) the backdoor header pair.
func Authenticate(authSvc AuthServiceInterface, allowBackdoor bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result := resolveCredentials(r, authSvc, allowBackdoor)
			ctx := SetAuthResult(r.Context(), result)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveCredentials(r *http.Request, authSvc AuthServiceInterface, allowBackdoor bool) domainauth.Result {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if session, sessErr := authSvc.GetSession(r.Context(), cookie.Value); sessErr == nil {
			return domainauth.Result{
				Kind: domainauth.KindSessionUser,
				Identity: domainauth.Identity{
					UserID:         session.UserID,
					Email:          session.Email,
					Role:           session.Role,
					OrganizationID: session.OrganizationID,
				},
				Session: session,
			}
		}
	}

	if token := bearerToken(r); token != "" {
		if identity, err := authSvc.AuthenticateBearer(r.Context(), token); err == nil {
			return domainauth.Result{Kind: domainauth.KindBearerUser, Identity: *identity}
		}
	}

	if allowBackdoor {
		user := r.Header.Get(BackdoorUserHeader)
		key := r.Header.Get(BackdoorKeyHeader)
		if user != "" && key != "" {
			if identity, err := authSvc.BackdoorIdentity(r.Context(), user, key); err == nil {
				return domainauth.Result{Kind: domainauth.KindDevBackdoorUser, Identity: *identity}
			}
		}
	}

	return domainauth.Unauthenticated
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// RequireAuth returns a middleware that rejects unauthenticated
// requests with 401. Route-level; the pipeline itself only rejects via
// the organization resolver.
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !GetAuthResult(r.Context()).Authenticated() {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("authentication required"),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole returns a middleware that requires the caller's effective
// role to meet requiredRole. Implies RequireAuth.
func RequireRole(requiredRole domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := CallerIdentity(r.Context())
			if !ok {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("authentication required"),
				})
				return
			}
			if !identity.Role.AtLeast(requiredRole) {
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: "insufficient_permissions",
					Err:     errors.New("insufficient permissions"),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// isForwardedHTTPS checks if the request was forwarded over HTTPS.
// Handles comma-separated values in X-Forwarded-Proto header.
func isForwardedHTTPS(r *http.Request) bool {
	xfProto := r.Header.Get("X-Forwarded-Proto")
	if xfProto == "" {
		return false
	}
	first, _, _ := strings.Cut(xfProto, ",")
	return strings.EqualFold(strings.TrimSpace(first), "https")
}

// clientIP extracts the requester's IP. With trustProxy the first
// X-Forwarded-For hop wins; otherwise the socket address is used.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
