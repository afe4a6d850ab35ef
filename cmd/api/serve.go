// AngelaMos | 2026
// serve.go

package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/carterperez-dev/articlehub/internal/admin"
	"github.com/carterperez-dev/articlehub/internal/article"
	"github.com/carterperez-dev/articlehub/internal/auth"
	"github.com/carterperez-dev/articlehub/internal/core"
	"github.com/carterperez-dev/articlehub/internal/health"
	"github.com/carterperez-dev/articlehub/internal/middleware"
	"github.com/carterperez-dev/articlehub/internal/schema"
	"github.com/carterperez-dev/articlehub/internal/server"
	"github.com/carterperez-dev/articlehub/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), opts)
		},
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func serve(ctx context.Context, opts *rootOptions) error {
	cfg, logger, err := opts.loadConfig()
	if err != nil {
		return err
	}

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if err := schema.NewInitializer(db, logger).Ensure(ctx); err != nil {
		_ = db.Close() //nolint:errcheck // startup failed
		return err
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		_ = db.Close() //nolint:errcheck // startup failed
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		_ = redis.Close() //nolint:errcheck // startup failed
		_ = db.Close()    //nolint:errcheck // startup failed
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.KeyID(),
	)

	userSvc := user.NewService(user.NewRepository(db))
	authSvc := auth.NewService(jwtManager, userSvc, redis, logger)
	articleSvc := article.NewService(article.NewRepository(db), logger)

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis},
	)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	mountRoutes(router, handlers{
		health:   healthHandler,
		auth:     auth.NewHandler(authSvc),
		articles: article.NewHandler(articleSvc),
		users:    user.NewHandler(userSvc),
		admin: admin.NewHandler(admin.HandlerConfig{
			DBStats:    db.Stats,
			RedisStats: redis.PoolStats,
			DBPing:     db.Ping,
			RedisPing:  redis.Ping,
			Articles:   articleSvc,
		}),
		jwks:     jwtManager.JWKSHandler(),
		verifier: authSvc,
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}
