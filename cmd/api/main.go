package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"wallet-assets/internal/adapter/handler/http"
	"wallet-assets/internal/adapter/storage/backend"
	"wallet-assets/internal/adapter/storage/memory"
	"wallet-assets/internal/adapter/storage/seed"
	"wallet-assets/internal/adapter/stream"
	"wallet-assets/internal/application"
	"wallet-assets/internal/config"
	"wallet-assets/internal/logger"
)

func main() {
	// --- Configuration ---
	cfgPath := "configs"
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration from %s: %v", cfgPath, err)
	}

	// --- Logger ---
	appLogger, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to setup logger: %v", err)
	}
	defer appLogger.Sync()
	appLogger.Info("Logger initialized", zap.Any("config", cfg.Logger))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Dependency Injection (Manual) ---
	appLogger.Info("Initializing dependencies...")

	seedLoader := seed.NewLoader(cfg.Seed, appLogger)
	rampAssets, err := seedLoader.RampAssets()
	if err != nil {
		appLogger.Fatal("Failed to load ramp asset list", zap.Error(err))
	}
	initialState, err := seedLoader.Wallet()
	if err != nil {
		appLogger.Fatal("Failed to load wallet seed", zap.Error(err))
	}

	// Storage
	walletStore := memory.NewWalletStore(initialState, appLogger)
	cacheRepo := memory.NewCacheRepository(cfg.Cache, appLogger)
	backendRepo := backend.NewRepository(cfg.Backend, appLogger)

	// Services
	assetService := application.NewAssetService(ctx, walletStore, backendRepo, cacheRepo, rampAssets, appLogger, *cfg)
	defer assetService.Close()

	if cfg.Stream.Enabled {
		streamDone := stream.NewClient(cfg.Stream, walletStore, appLogger).Start(ctx)
		// Runs before the service Close, so the store has no writer left.
		defer func() {
			stop()
			<-streamDone
		}()
	}

	// Handlers
	assetHandler := http.NewAssetHandler(assetService, appLogger)

	// --- HTTP Router & Server ---
	appLogger.Info("Setting up HTTP router...")
	r := router.New()
	http.RegisterRoutes(r, assetHandler, appLogger)

	server := &fasthttp.Server{
		Handler: http.LoggingMiddleware(appLogger, r.Handler),
		Name:    cfg.App.Name,
	}

	serverAddr := ":" + cfg.Server.Port
	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("address", serverAddr))
		errCh <- server.ListenAndServe(serverAddr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			appLogger.Error("HTTP server stopped", zap.Error(err))
		}
	case <-ctx.Done():
		appLogger.Info("Shutting down HTTP server")
		if err := server.Shutdown(); err != nil {
			appLogger.Error("Failed to shut down HTTP server", zap.Error(err))
		}
	}
}
