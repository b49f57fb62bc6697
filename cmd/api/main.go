// @title                      Lost & Found API
// @version                    1.0
// @description                Lost and found item registry with token authentication and role/ownership access control.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/kiitfinder/lostfound-system/internal/api"
	"github.com/kiitfinder/lostfound-system/internal/api/handler"
	"github.com/kiitfinder/lostfound-system/internal/api/metrics"
	"github.com/kiitfinder/lostfound-system/internal/core/service"
	"github.com/kiitfinder/lostfound-system/internal/infrastructure/db/mongo"
	"github.com/kiitfinder/lostfound-system/internal/infrastructure/db/redis"
	"github.com/kiitfinder/lostfound-system/internal/infrastructure/queue"
	"github.com/kiitfinder/lostfound-system/internal/infrastructure/security"
	"github.com/kiitfinder/lostfound-system/internal/pkg/config"
	"github.com/kiitfinder/lostfound-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "lostfound-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		AppName:     "lostfound-api",
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	accountRepo := mongo.NewAccountRepository(db)
	itemRepo := mongo.NewItemRepository(db)
	auditRepo := mongo.NewAuditRepository(db)
	if err := mongo.EnsureIndexes(ctx, accountRepo, itemRepo, auditRepo); err != nil {
		return err
	}

	// --- Audit trail ---
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	audit := queue.NewAuditDispatcher(cfg.Audit.Workers, auditRepo, logger.Component("audit"))
	audit.Start(workerCtx)
	metrics.RegisterAuditDispatcher(audit)
	defer func() {
		stopWorkers()
		audit.Wait()
	}()

	// --- Services ---
	tokens, err := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}
	credentials := service.NewCredentialService(
		accountRepo,
		security.NewBcryptHasher(cfg.Auth.BcryptCost),
		tokens,
		redis.NewAttemptLimiter(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginLockoutWindow),
		audit,
		service.AdminAccount{
			Identity:    cfg.Admin.Email,
			DisplayName: cfg.Admin.Name,
			Secret:      cfg.Admin.Password,
		},
		logger.Component("credentials"),
	)

	e := api.NewRouter(api.Dependencies{
		Credentials: credentials,
		Items:       service.NewItemService(itemRepo, logger.Component("items")),
		Admin:       service.NewAdminService(accountRepo, itemRepo, logger.Component("admin")),
		Profile:     service.NewProfileService(accountRepo),
		Tokens:      tokens,
		Accounts:    accountRepo,
		Audit:       audit,
		HealthChecks: map[string]handler.DependencyCheck{
			"mongodb": mongo.ReadinessCheck(mongoClient),
			"redis":   redis.ReadinessCheck(rdb),
		},
		PublicPaths:       cfg.Auth.PublicPaths,
		CORSOrigins:       cfg.HTTP.CORSAllowedOrigins,
		AuthRatePerSecond: cfg.HTTP.AuthRatePerSecond,
		AuthRateBurst:     cfg.HTTP.AuthRateBurst,
		Log:               logger.Component("http"),
	})

	// --- Serve until signalled ---
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
