package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cakebakery/backend/internal/config"
	"github.com/cakebakery/backend/internal/database"
	"github.com/cakebakery/backend/internal/handlers"
	"github.com/cakebakery/backend/internal/logger"
	"github.com/cakebakery/backend/internal/repositories"
	"github.com/cakebakery/backend/internal/services"
	"github.com/cakebakery/backend/internal/session"
	"github.com/cakebakery/backend/internal/views"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// bakery serve: migrate, seed the admin account and run the storefront
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

type sessionStore interface {
	session.Store
	io.Closer
}

func serve(ctx context.Context) error {
	cfg, db, cleanup, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	log := logger.Logger
	log.Info("Starting cake bakery storefront")

	if err := database.RunMigrations(db); err != nil {
		return err
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, log)
	cakeRepo := repositories.NewCakeRepository(db, log)
	orderRepo := repositories.NewOrderRepository(db, log)

	// Make sure somebody can reach the back-office
	seeder := services.NewSeedService(userRepo, cakeRepo, log)
	if _, err := seeder.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	// Initialize services
	authService := services.NewAuthService(userRepo, log)
	catalogService := services.NewCatalogService(cakeRepo, log)
	cartService := services.NewCartService(cakeRepo, orderRepo, log)
	orderService := services.NewOrderService(orderRepo, log)
	userService := services.NewUserService(userRepo, log)

	// Sessions
	store, err := newSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	sessions := session.NewManager(store, session.Options{
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.Session.CookieSecure,
	}, log)

	renderer, err := views.New()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	// Initialize handlers and router
	r := handlers.NewRouter(handlers.RouterConfig{
		Logger:             log,
		SessionMiddleware:  sessions.Middleware,
		AllowedOrigins:     cfg.CORS.AllowedOrigins,
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
		MetricsAPIKey:      cfg.MetricsAPIKey,
		Roles:              userService,
		Pages:              handlers.NewPagesHandler(renderer, log),
		Auth:               handlers.NewAuthHandler(authService, sessions, renderer, log),
		Shop:               handlers.NewShopHandler(catalogService, renderer, log),
		Cart:               handlers.NewCartHandler(cartService, renderer, log),
		User:               handlers.NewUserHandler(orderService, renderer, log),
		Admin:              handlers.NewAdminHandler(catalogService, orderService, userService, renderer, log),
		Health:             handlers.NewHealthHandler(db, log),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
	return nil
}

// newSessionStore connects to Redis when it is configured and falls back to process memory otherwise
func newSessionStore(ctx context.Context, cfg *config.Config) (sessionStore, error) {
	addr := cfg.RedisAddr()
	if addr == "" {
		logger.Logger.Info("using in-memory session store")
		return session.NewMemoryStore(cfg.Session.TTL), nil
	}

	store, err := session.NewRedisStore(ctx, session.RedisOptions{
		Addr:     addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, cfg.Session.TTL)
	if err != nil {
		return nil, err
	}
	logger.Logger.Info("using redis session store", zap.String("addr", addr))
	return store, nil
}
