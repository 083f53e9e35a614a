package handlers

import (
	"net/http"
	"time"

	"github.com/cakebakery/backend/internal/metrics"
	"github.com/cakebakery/backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

// loginAttemptsPerMinute bounds credential form submissions per client IP
const loginAttemptsPerMinute = 10

// RouterConfig holds everything needed to assemble the storefront router
type RouterConfig struct {
	Logger             *zap.Logger
	SessionMiddleware  func(http.Handler) http.Handler
	AllowedOrigins     []string
	RateLimitPerMinute int
	MetricsAPIKey      string
	// Roles, when set, re-reads the stored role on admin routes
	Roles              middleware.RoleSource

	Pages  *PagesHandler
	Auth   *AuthHandler
	Shop   *ShopHandler
	Cart   *CartHandler
	User   *UserHandler
	Admin  *AdminHandler
	Health *HealthHandler
}

// NewRouter builds the HTTP router with middleware and access guards applied
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RecoveryMiddleware(cfg.Logger))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.RequestSizeLimitMiddleware(middleware.MaxFormSize))

	// Operational endpoints carry no session
	r.With(middleware.APIKeyMiddleware(cfg.MetricsAPIKey)).Handle("/metrics", metrics.Handler())
	cfg.Health.RegisterRoutes(r)

	r.Group(func(r chi.Router) {
		r.Use(cfg.SessionMiddleware)
		r.Use(middleware.LoggerMiddleware(cfg.Logger))
		r.Use(middleware.MetricsMiddleware)
		if cfg.RateLimitPerMinute > 0 {
			r.Use(httprate.LimitByIP(cfg.RateLimitPerMinute, time.Minute))
		}

		cfg.Pages.RegisterRoutes(r)
		cfg.Shop.RegisterRoutes(r)
		cfg.Auth.RegisterRoutes(r, httprate.LimitByIP(loginAttemptsPerMinute, time.Minute))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuthenticated)
			cfg.Cart.RegisterRoutes(r)
			cfg.User.RegisterRoutes(r)
		})

		r.Route("/admin", func(r chi.Router) {
			if cfg.Roles != nil {
				r.Use(middleware.RefreshRole(cfg.Roles, cfg.Logger))
			}
			r.Use(middleware.RequireAdmin)
			cfg.Admin.RegisterRoutes(r)
		})
	})

	return r
}
