package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/fieldsafe-service/internal/api/http"
	"github.com/spec-kit/fieldsafe-service/internal/api/http/handlers"
	"github.com/spec-kit/fieldsafe-service/internal/auth"
	"github.com/spec-kit/fieldsafe-service/internal/config"
	"github.com/spec-kit/fieldsafe-service/internal/events"
	"github.com/spec-kit/fieldsafe-service/internal/observability"
	"github.com/spec-kit/fieldsafe-service/internal/persistence"
	"github.com/spec-kit/fieldsafe-service/internal/realtime"
	"github.com/spec-kit/fieldsafe-service/internal/repository"
	"github.com/spec-kit/fieldsafe-service/internal/service"
	"github.com/spec-kit/fieldsafe-service/internal/worker"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()

	pool := pg.PoolHandle()
	staffRepo := repository.NewStaffRepository(pool)
	workerRepo := repository.NewFieldworkerRepository(pool)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		StaffRepo:       staffRepo,
		FieldworkerRepo: workerRepo,
	})
	sessionService := service.NewSessionService(
		authService.Codec(),
		staffRepo,
		workerRepo,
		redis.Client,
		cfg.Auth.LocaleCacheTTL(),
		logger,
	)
	directoryService := service.NewDirectoryService(staffRepo, cfg.Auth.BcryptCost)

	registry := realtime.NewRegistry(logger, metrics)
	dispatcher := events.NewInMemoryDispatcher()
	pushService := service.NewPushService(dispatcher, registry, logger)
	worker.StartPushWorker(pushService)

	authenticator := auth.NewAuthenticator(authService.Codec())
	authMiddleware := auth.NewMiddleware(authenticator)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService, sessionService),
		Events:         handlers.NewEventsHandler(registry, cfg.Stream.HeartbeatInterval(), cfg.Stream.SendBufferSize, logger),
		Notify:         handlers.NewNotifyHandler(dispatcher),
		Directory:      handlers.NewDirectoryHandler(directoryService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
