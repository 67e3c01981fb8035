package config

import (
	"os"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("nonexistent.yaml")
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}

	if cfg.Retailer == nil {
		t.Fatal("Retailer config should not be nil")
	}
	if cfg.App == nil {
		t.Fatal("App config should not be nil")
	}
	if cfg.Retailer.CountryCode != "us" {
		t.Errorf("Expected default country code us, got %s", cfg.Retailer.CountryCode)
	}
	if cfg.Retailer.PauseSeconds != 1 {
		t.Errorf("Expected default pause of 1s, got %d", cfg.Retailer.PauseSeconds)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	tempFile := "test_config.yaml"
	defer os.Remove(tempFile)

	originalConfig := &Config{
		Retailer: &RetailerConfig{
			CountryCode:  "gb",
			DeviceFamily: "iphone",
			ZipCode:      "L1 8JQ",
			DeviceModels: []string{"MG8H4QN/A"},
			Stores:       []string{"R245"},
			PauseSeconds: 2,
		},
		App: &AppConfig{
			LogLevel: "debug",
			LogFile:  "/tmp/test.log",
		},
	}

	if err := SaveConfig(originalConfig, tempFile); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loadedConfig, err := LoadConfig(tempFile)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loadedConfig.Retailer.CountryCode != originalConfig.Retailer.CountryCode {
		t.Errorf("Expected country %s, got %s", originalConfig.Retailer.CountryCode, loadedConfig.Retailer.CountryCode)
	}
	if len(loadedConfig.Retailer.DeviceModels) != 1 || loadedConfig.Retailer.DeviceModels[0] != "MG8H4QN/A" {
		t.Errorf("Expected device models %v, got %v", originalConfig.Retailer.DeviceModels, loadedConfig.Retailer.DeviceModels)
	}
	if loadedConfig.App.LogLevel != originalConfig.App.LogLevel {
		t.Errorf("Expected log level %s, got %s", originalConfig.App.LogLevel, loadedConfig.App.LogLevel)
	}
}

func TestConfigWithEnvVars(t *testing.T) {
	os.Setenv("RETAILER_COUNTRY_CODE", "gb")
	os.Setenv("RETAILER_STORES", "R245, R092")
	os.Setenv("LOG_LEVEL", "debug")
	defer func() {
		os.Unsetenv("RETAILER_COUNTRY_CODE")
		os.Unsetenv("RETAILER_STORES")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := LoadConfig("nonexistent.yaml")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Retailer.CountryCode != "gb" {
		t.Errorf("Expected country gb, got %s", cfg.Retailer.CountryCode)
	}
	if len(cfg.Retailer.Stores) != 2 || cfg.Retailer.Stores[1] != "R092" {
		t.Errorf("Expected stores [R245 R092], got %v", cfg.Retailer.Stores)
	}
	if cfg.App.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.App.LogLevel)
	}
}

func TestValidateConfig(t *testing.T) {
	cfg := getDefaultConfig()
	if err := cfg.ValidateConfig(); err != nil {
		t.Fatalf("Default config should validate: %v", err)
	}

	cfg.Retailer.DeviceFamily = ""
	if err := cfg.ValidateConfig(); err == nil {
		t.Fatal("Expected error for missing device family")
	}

	cfg = getDefaultConfig()
	cfg.Notifications.SpecialCase = &SpecialCaseRoute{PartNumber: "MG8H4QN/A", StoreName: "Liverpool"}
	if err := cfg.ValidateConfig(); err == nil {
		t.Fatal("Expected error: special case route without email channel")
	}

	cfg.Notifications.Email = &EmailConfig{
		Enabled:  true,
		SMTPHost: "smtp.example.com",
		SMTPPort: 465,
		Sender:   "bot@example.com",
		Receiver: "me@example.com",
	}
	if err := cfg.ValidateConfig(); err != nil {
		t.Fatalf("Special case with email channel should validate: %v", err)
	}
}

func TestSpecialCaseRouteMatches(t *testing.T) {
	route := &SpecialCaseRoute{PartNumber: "MG8H4QN/A", StoreName: "Liverpool"}

	if !route.Matches("MG8H4QN/A", "Liverpool") {
		t.Error("Expected route to match its own pair")
	}
	if route.Matches("MG8H4QN/A", "London") {
		t.Error("Route must not match a different store")
	}
	if route.Matches("MYE93QN/A", "Liverpool") {
		t.Error("Route must not match a different part")
	}

	var nilRoute *SpecialCaseRoute
	if nilRoute.Matches("MG8H4QN/A", "Liverpool") {
		t.Error("Nil route must never match")
	}
}
