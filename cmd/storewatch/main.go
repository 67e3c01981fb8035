package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"storewatch/pkg/config"
	"storewatch/pkg/logger"
	"storewatch/pkg/notifier"
	"storewatch/pkg/skumap"
	"storewatch/pkg/stock"
	"storewatch/pkg/storefront"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Exit codes
const (
	exitError     = 1
	exitNoDevices = 2
)

func main() {
	configPath := flag.String("config", "", "path to the configuration file")
	flag.Parse()

	// A missing .env is fine, environment variables may come from elsewhere
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(exitError)
	}
	if err := cfg.ValidateConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(exitError)
	}

	if err := logger.InitLogger(cfg.App.IsDevelopment(), cfg.App.LogFile, cfg.App.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(exitError)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Shutdown signal received")
		cancel()
	}()

	checker := buildChecker(cfg)

	result, err := checker.Run(ctx)
	if err != nil {
		if errors.Is(err, stock.ErrNoDevices) {
			logger.Warn("No device matching the configuration was found")
			os.Exit(exitNoDevices)
		}
		logger.Error("Stock check failed", zap.Error(err))
		os.Exit(exitError)
	}

	logger.Info("Stock check finished",
		zap.String("run_id", result.RunID),
		zap.Int("devices_matched", result.DevicesMatched),
		zap.Int("stores_registered", result.StoresRegistered),
		zap.Int("events_produced", result.EventsProduced),
		zap.Duration("duration", result.Duration))
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
