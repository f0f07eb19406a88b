package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/RominaTrazziSpindox/CIAMS-project/internal/api/http"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/api/http/handlers"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/auth"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/cache"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/config"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/events"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/observability"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/persistence"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/repository"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/service"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/worker"
)

func main() {
	cfg, err := config.Load("inventory")
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

	key, err := auth.LoadKey(cfg.Auth.JWTSecret)
	if err != nil {
		logger.Fatal("failed to load signing key", zap.Error(err))
	}
	codec, err := auth.NewCodec(key, cfg.Auth.TokenTTL())
	if err != nil {
		logger.Fatal("failed to build token codec", zap.Error(err))
	}

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

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	readCache := cache.New(redis, cfg.Cache.TTL(), logger, metrics)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger)

	pool := pg.PoolHandle()
	officeRepo := repository.NewOfficeRepository(pool)
	assetTypeRepo := repository.NewAssetTypeRepository(pool)
	assetRepo := repository.NewAssetRepository(pool)
	licenseRepo := repository.NewSoftwareLicenseRepository(pool)

	officeService := service.NewOfficeService(officeRepo, readCache, logger)
	assetTypeService := service.NewAssetTypeService(assetTypeRepo, readCache, logger)
	assetService := service.NewAssetService(service.AssetDependencies{
		AssetRepo:     assetRepo,
		AssetTypeRepo: assetTypeRepo,
		OfficeRepo:    officeRepo,
		LicenseRepo:   licenseRepo,
		Cache:         readCache,
		Dispatcher:    dispatcher,
		Logger:        logger,
	})
	licenseService := service.NewSoftwareLicenseService(licenseRepo, assetRepo, readCache, dispatcher, logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterInventoryRoutes(app, httptransport.InventoryRouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Offices:    handlers.NewOfficesHandler(officeService),
		AssetTypes: handlers.NewAssetTypesHandler(assetTypeService),
		Assets:     handlers.NewAssetsHandler(assetService),
		Licenses:   handlers.NewSoftwareLicensesHandler(licenseService),
		Codec:      codec,
		Logger:     logger,
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
