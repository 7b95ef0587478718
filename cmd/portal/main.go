package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/odyssey-erp/odyssey-portal/internal/access"
	accesshttp "github.com/odyssey-erp/odyssey-portal/internal/access/http"
	"github.com/odyssey-erp/odyssey-portal/internal/app"
	"github.com/odyssey-erp/odyssey-portal/internal/billing"
	"github.com/odyssey-erp/odyssey-portal/internal/home"
	"github.com/odyssey-erp/odyssey-portal/internal/identity"
	"github.com/odyssey-erp/odyssey-portal/internal/oauth"
	"github.com/odyssey-erp/odyssey-portal/internal/observability"
	"github.com/odyssey-erp/odyssey-portal/internal/platform/cache"
	"github.com/odyssey-erp/odyssey-portal/internal/platform/db"
	"github.com/odyssey-erp/odyssey-portal/internal/roles"
	"github.com/odyssey-erp/odyssey-portal/internal/shared"
	"github.com/odyssey-erp/odyssey-portal/internal/users"
	"github.com/odyssey-erp/odyssey-portal/internal/view"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, db.Options{DSN: cfg.PGDSN, MaxConns: cfg.PGMaxConns, ApplicationName: "odyssey-portal"})
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, cfg.SessionCookieName, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret, logger)

	metrics := observability.NewMetrics()
	identityService := identity.NewService(identity.NewRepository(dbpool))
	gate := access.NewGate(access.ContextProvider, metrics)

	templates, err := view.NewEngine(gate)
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		SessionManager: sessionManager,
		CSRFManager:    csrfManager,
		Identity:       identity.Middleware{Service: identityService, Logger: logger},
		Metrics:        metrics,
		HomeHandler:    home.NewHandler(logger, templates, csrfManager),
		BillingHandler: billing.NewHandler(logger, templates, csrfManager, gate, billing.Options{
			WidgetURL: cfg.BillingWidgetURL,
			PortalURL: cfg.BillingPortalURL,
		}),
		OAuthHandler:  oauth.NewHandler(logger, templates),
		AccessHandler: accesshttp.NewHandler(gate),
		UsersHandler:  users.NewHandler(logger, users.NewService(users.NewRepository(dbpool)), templates, csrfManager, gate),
		RolesHandler:  roles.NewHandler(logger, roles.NewService(roles.NewRepository(dbpool)), templates, csrfManager, gate),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
