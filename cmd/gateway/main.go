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

	"cctv-admin-gateway/internal/audit"
	"cctv-admin-gateway/internal/auth"
	"cctv-admin-gateway/internal/config"
	"cctv-admin-gateway/internal/ratelimit"
	"cctv-admin-gateway/pkg/logger"
	"cctv-admin-gateway/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Audit trail is optional; without a DB the gateway stays stateless.
	var auditSvc *audit.Service
	if cfg.AuditEnabled() {
		db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.AuditPostgresDSN(), utils.PostgresPoolConfig{})
		if err != nil {
			log.Error("audit db init failed", "err", err)
			os.Exit(1)
		}
		defer db.Close()
		auditSvc = audit.NewService(audit.NewPostgresRepo(db))
	}

	// Login rate limiter is optional for the same reason.
	var limiter *ratelimit.Limiter
	if cfg.RateLimitEnabled() {
		rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
		if err != nil {
			log.Error("redis init failed", "err", err)
			os.Exit(1)
		}
		defer rdb.Close()
		limiter = ratelimit.NewLimiter(rdb, cfg.Redis.LoginRateLimit, cfg.Redis.LoginRateWindow)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	if err := registerRoutes(r, cfg, auth.NewVerifier(cfg.Auth.JWTSecret), auditSvc, limiter); err != nil {
		log.Error("route wiring failed", "err", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("gateway listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}
