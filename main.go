package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"food-ordering-api/auth"
	"food-ordering-api/config"
	"food-ordering-api/handlers"
	"food-ordering-api/logger"
	"food-ordering-api/middleware"
	"food-ordering-api/repository"
	"food-ordering-api/routes"
	"food-ordering-api/services"
	"food-ordering-api/validation"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := logger.New("food-ordering-api", cfg.LogLevel, os.Stdout)
	gin.SetMode(cfg.GinMode)

	if err := validation.RegisterWithGin(); err != nil {
		log.WithError(err).Fatal("register validators")
	}

	// Initialize database
	db, err := config.OpenDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("open database")
	}
	if created, err := config.SeedSuperAdmin(db, cfg.SuperAdminEmail, cfg.SuperAdminPassword); err != nil {
		log.WithError(err).Fatal("seed super admin")
	} else if created {
		log.WithField("action", "seed_super_admin").Info("super admin created")
	}

	revoker, closeRevoker := newRevoker(cfg, log)
	defer closeRevoker()
	authn := auth.NewAuthenticator(cfg.JWTSecret, cfg.JWTTTL, revoker)

	orderRepo := repository.NewOrderRepository(db)
	restRepo := repository.NewRestaurantRepository(db)
	userRepo := repository.NewUserRepository(db)
	audit := services.NewAuditLog(repository.NewAdminLogRepository(db), log)

	h := &handlers.Handler{
		Orders:    services.NewOrderService(db, orderRepo, restRepo, audit, cfg.EnforceRestaurantOwnership),
		Feedback:  services.NewFeedbackService(repository.NewFeedbackRepository(db), orderRepo, restRepo, cfg.FeedbackPolicy),
		Accounts:  services.NewAccountService(db, userRepo, restRepo, authn, audit),
		Catalog:   services.NewCatalogService(restRepo),
		Dashboard: services.NewDashboardService(orderRepo),
		Audit:     audit,
	}
	r := routes.NewRouter(h, authn, routes.Options{
		Log:          log,
		CORSOrigins:  cfg.CORSOrigins,
		AdminLimiter: middleware.NewIPRateLimiter(cfg.AdminLoginAttempts, cfg.AdminLoginWindow),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.WithFields(logrus.Fields{"action": "server_start", "port": cfg.Port}).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.WithField("action", "graceful_shutdown_started").Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown")
	}
	audit.Wait()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.WithField("action", "graceful_shutdown_completed").Info("stopped")
}

// newRevoker picks the revocation backend named by the configuration.
func newRevoker(cfg *config.Config, log *logrus.Entry) (auth.Revoker, func()) {
	if cfg.RevocationBackend != config.RevocationRedis {
		return auth.NewMemoryRevoker(), func() {}
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).WithField("addr", cfg.RedisAddr).Fatal("connect redis")
	}
	log.WithFields(logrus.Fields{"action": "redis_connected", "addr": cfg.RedisAddr}).Info("token revocation backed by redis")
	return auth.NewRedisRevoker(client), func() { _ = client.Close() }
}
