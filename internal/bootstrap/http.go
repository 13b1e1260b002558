package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/whirkplace/whirkplace-api/config"
	httpx "github.com/whirkplace/whirkplace-api/internal/http"
)

const (
	readTimeout     = 30 * time.Second
	writeTimeout    = 30 * time.Second
	idleTimeout     = 120 * time.Second
	shutdownTimeout = 10 * time.Second
)

// HTTPDeps groups inputs for BuildHTTPServer.
type HTTPDeps struct {
	Config   *config.AppConfig
	Services ServiceContainer
	DB       *sql.DB
	Logger   *slog.Logger
}

// BuildHTTPServer assembles the middleware pipeline, the router, and
// the server around them. The returned rate limiter needs its cleanup
// loop started by the caller.
func BuildHTTPServer(deps HTTPDeps) (*http.Server, *httpx.RateLimiter) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	limiter := httpx.NewRateLimiter(httpx.RateLimiterOptions{
		Requests:   cfg.HTTP.RateLimit.Requests,
		Window:     cfg.HTTP.RateLimit.Window,
		Burst:      cfg.HTTP.RateLimit.Burst,
		TrustProxy: cfg.HTTP.TrustProxy,
		// Local development hammers the login endpoints constantly;
		// throttling only applies to real deployments.
		Disabled: cfg.IsDev,
	})

	csrf := httpx.NewCSRFGuard(httpx.CSRFGuardOptions{
		Auth:         deps.Services.Auth,
		CookieDomain: cfg.HTTP.CookieDomain,
		TrustProxy:   cfg.HTTP.TrustProxy,
	})

	router := httpx.NewRouter(httpx.RouterServices{
		Auth:            deps.Services.Auth,
		Organizations:   deps.Services.Organizations,
		Users:           deps.Services.Users,
		Teams:           deps.Services.Teams,
		CheckIns:        deps.Services.CheckIns,
		Shoutouts:       deps.Services.Shoutouts,
		KRAs:            deps.Services.KRAs,
		OneOnOnes:       deps.Services.OneOnOnes,
		Partners:        deps.Services.Partners,
		Analytics:       deps.Services.Analytics,
		CSRF:            csrf,
		RateLimiter:     limiter,
		DB:              deps.DB,
		EmergencyKey:    cfg.EmergencyKey,
		CookieDomain:    cfg.HTTP.CookieDomain,
		TrustProxy:      cfg.HTTP.TrustProxy,
		AllowBackdoor:   cfg.IsDev,
		TestSeedEnabled: cfg.TestSeedEnabled,
		Logger:          logger,
	})

	// Outermost first: Recover catches everything including Logging.
	handler := httpx.Logging(logger)(router)
	handler = httpx.Recover(logger)(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	return server, limiter
}

// ShutdownHTTPServer drains in-flight requests with a deadline.
func ShutdownHTTPServer(server *http.Server, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", slog.Any("error", err))
	}
}
