package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storewatch/pkg/config"
	"storewatch/pkg/logger"
	"storewatch/pkg/notifier"
	"storewatch/pkg/scheduler"
	"storewatch/pkg/server"
	"storewatch/pkg/skumap"
	"storewatch/pkg/stock"
	"storewatch/pkg/storefront"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func main() {
	configPath := flag.String("config", "", "path to the configuration file")
	flag.Parse()

	// A missing .env is fine, environment variables may come from elsewhere
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ValidateConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.InitLogger(cfg.App.IsDevelopment(), cfg.App.LogFile, cfg.App.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	checker := buildChecker(cfg)

	checkScheduler, err := scheduler.NewCheckScheduler(ctx, cfg, checker)
	if err != nil {
		logger.Fatal("Failed to create scheduler", zap.Error(err))
	}

	httpServer, err := server.NewHTTPServer(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to create HTTP server", zap.Error(err))
	}
	httpServer.SetScheduler(checkScheduler)

	go func() {
		if err := checkScheduler.Start(); err != nil {
			logger.Error("Scheduler stopped", zap.Error(err))
		}
	}()

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error("HTTP server stopped", zap.Error(err))
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", zap.String("signal", sig.String()))
	case <-ctx.Done():
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if err := checkScheduler.Shutdown(shutdownCtx); err != nil {
		logger.Error("Scheduler shutdown failed", zap.Error(err))
	}

	logger.Info("Shutdown complete")
}

// buildChecker assembles the engine from configuration
func buildChecker(cfg *config.Config) *stock.Checker {
	api := storefront.NewClient(cfg.Retailer.CountryCode,
		storefront.WithBaseURL(cfg.Retailer.BaseURL))

	telegram := notifier.NewTelegramNotifier(cfg.Notifications.Telegram)
	email := notifier.NewEmailNotifier(cfg.Notifications.Email)
	dispatcher := notifier.NewDispatcher(telegram, email, cfg.Notifications.SpecialCase)

	labels := skumap.NewClient(cfg.SKUMap.RemoteGistURL)

	return stock.NewChecker(cfg, api, dispatcher, dispatcher, labels)
}
