package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/care-record-api/internal/handler"
	"github.com/noah-isme/care-record-api/internal/repository"
	"github.com/noah-isme/care-record-api/internal/service"
	"github.com/noah-isme/care-record-api/pkg/cache"
	"github.com/noah-isme/care-record-api/pkg/config"
	"github.com/noah-isme/care-record-api/pkg/database"
	"github.com/noah-isme/care-record-api/pkg/jobs"
)

const (
	startupTimeout  = 15 * time.Second
	shutdownTimeout = 10 * time.Second
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the care record API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(parent context.Context) error {
	cfg, logr, err := bootstrap()
	if err != nil {
		return err
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	db, err := database.NewPostgres(startCtx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Cache.Enabled || cfg.Sessions.Store == config.SessionStoreRedis {
		redisClient, err = cache.NewRedis(startCtx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer redisClient.Close()
	}

	app := wire(cfg, logr, db, redisClient)
	app.audit.Start(ctx)
	defer app.audit.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logr.Info("shutting down server")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logr.Info("server stopped")
	return nil
}

type application struct {
	router *gin.Engine
	audit  *service.AuditService
}

// wire builds repositories, services and handlers. redisClient may be nil when
// neither the cache nor the session store needs Redis.
func wire(cfg *config.Config, logr *zap.Logger, db *sqlx.DB, redisClient *redis.Client) *application {
	loc := cfg.Facility.Location()
	validate := service.NewValidator()
	metrics := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.RecordTTL, logr, cfg.Cache.Enabled)

	patientSvc := service.NewPatientService(repository.NewPatientRepository(db), cacheSvc, cfg.Cache.PatientTTL, logr)

	auditSvc := service.NewAuditService(repository.NewAuditRepository(db), jobs.QueueConfig{
		Workers:    cfg.Audit.Workers,
		MaxRetries: cfg.Audit.MaxRetries,
		RetryDelay: cfg.Audit.RetryDelay,
	}, metrics, logr)

	recordSvc := service.NewDailyRecordService(
		repository.NewDailyRecordRepository(db),
		patientSvc,
		cacheSvc,
		auditSvc,
		validate,
		service.DailyRecordServiceConfig{Location: loc, CacheTTL: cfg.Cache.RecordTTL},
		logr,
	)

	sessionSvc := service.NewFormSessionService(
		sessionStore(cfg, redisClient),
		patientSvc,
		recordSvc,
		validate,
		service.FormSessionConfig{Location: loc},
		metrics,
		logr,
	)

	tokens := service.NewTokenService(service.TokenConfig{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
		Expiry: cfg.JWT.Expiration,
	}, validate)

	checks := map[string]handler.ReadinessCheck{"database": db.PingContext}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	router := newRouter(cfg, logr, metrics, tokens, handlers{
		metrics:     handler.NewMetricsHandler(metrics, checks),
		vocabulary:  handler.NewVocabularyHandler(),
		patients:    handler.NewPatientHandler(patientSvc),
		records:     handler.NewRecordHandler(recordSvc),
		formSession: handler.NewFormSessionHandler(sessionSvc),
	})

	return &application{router: router, audit: auditSvc}
}

func sessionStore(cfg *config.Config, redisClient *redis.Client) repository.SessionStore {
	if cfg.Sessions.Store == config.SessionStoreRedis && redisClient != nil {
		return repository.NewRedisSessionRepository(redisClient, cfg.Sessions.TTL)
	}
	return repository.NewMemorySessionRepository(cfg.Sessions.TTL)
}
