package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/cake-service/internal/api/http"
	"github.com/spec-kit/cake-service/internal/api/http/handlers"
	"github.com/spec-kit/cake-service/internal/auth"
	"github.com/spec-kit/cake-service/internal/config"
	"github.com/spec-kit/cake-service/internal/events"
	"github.com/spec-kit/cake-service/internal/observability"
	"github.com/spec-kit/cake-service/internal/persistence"
	"github.com/spec-kit/cake-service/internal/repository"
	"github.com/spec-kit/cake-service/internal/service"
	"github.com/spec-kit/cake-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("configuration selected",
		zap.String("mode", string(cfg.App.Mode)),
		zap.String("protocol", string(cfg.App.Protocol)),
		zap.String("addr", cfg.App.Addr()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	ttl, err := cfg.JWT.TokenTTL()
	if err != nil {
		logger.Fatal("invalid jwt expiry", zap.Error(err))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	cakeRepo := repository.NewCakeRepository(pool)
	users := repository.NewCachedUserLookup(userRepo, redis.Handle(), cfg.Redis.UserCacheTTL(), logger)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger, cfg.Notification), logger)
	cakeService := service.NewCakeService(cakeRepo, dispatcher, logger)

	tokens := auth.NewTokenManager(cfg.JWT.Secret, ttl)
	authMiddleware := auth.NewAuthMiddleware(auth.NewValidator(tokens, users))

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Metrics:        handlers.NewMetricsHandler(metrics),
		Cakes:          handlers.NewCakesHandler(cakeService, logger),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := listen(app, cfg); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func listen(app *fiber.App, cfg *config.Config) error {
	if cfg.App.Protocol == config.ProtocolHTTPS {
		return app.ListenTLS(cfg.App.Addr(), cfg.TLS.CertFile, cfg.TLS.KeyFile)
	}
	return app.Listen(cfg.App.Addr())
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
