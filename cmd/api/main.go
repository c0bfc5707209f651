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

	"github.com/pawcat-app/pawcat-backend/internal/api"
	"github.com/pawcat-app/pawcat-backend/internal/api/handlers"
	"github.com/pawcat-app/pawcat-backend/internal/auth"
	"github.com/pawcat-app/pawcat-backend/internal/config"
	"github.com/pawcat-app/pawcat-backend/internal/db"
	"github.com/pawcat-app/pawcat-backend/internal/logger"
	"github.com/pawcat-app/pawcat-backend/internal/metrics"
	"github.com/pawcat-app/pawcat-backend/internal/middleware"
	"github.com/pawcat-app/pawcat-backend/internal/repository/postgres"
	"github.com/pawcat-app/pawcat-backend/internal/services"
	"github.com/pawcat-app/pawcat-backend/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") != "false" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrate", "err", err)
			os.Exit(1)
		}
	}

	metrics.Init()

	repos := postgres.NewRepositories(pool)
	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTRefreshKey, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	attempts := auth.NewAttemptLimiter(3, 5*time.Minute)
	wp := worker.NewPool(4)
	defer wp.Stop()

	userSvc := services.NewUserService(repos.Users, tm, attempts)
	ledgerSvc := services.NewLedgerService(repos.Ledger, repos.Categories, repos.AuditLogs, wp)
	statsSvc := services.NewStatsService(repos.Ledger)
	friendSvc := services.NewFriendService(repos.Friendships, repos.Users)
	noteSvc := services.NewNotificationService(repos.Notifications, repos.Users, wp)
	profileSvc := services.NewProfileService(repos.Users, repos.Friendships, repos.Profiles)
	adminSvc := services.NewAdminService(repos.Users, repos.AuditLogs, wp)

	router := api.NewRouter(api.Deps{
		Cfg:        cfg,
		Auth:       middleware.NewAuthMiddleware(tm),
		AuthH:      handlers.NewAuthHandler(userSvc, cfg),
		Dashboard:  handlers.NewDashboardHandler(ledgerSvc),
		Statistics: handlers.NewStatisticsHandler(statsSvc),
		User:       handlers.NewUserHandler(friendSvc, noteSvc, profileSvc),
		Admin:      handlers.NewAdminHandler(adminSvc, noteSvc),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("listening", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "err", err)
	}
}
