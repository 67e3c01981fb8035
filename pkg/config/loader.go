package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from the given path. An empty path falls
// back to the default search locations; a missing file yields the defaults.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = getDefaultConfigPath()
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return getDefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigNotFound, err)
	}

	config := &Config{}
	ext := filepath.Ext(configPath)

	switch ext {
	case ".json":
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("%w: JSON parsing failed: %v", ErrInvalidFormat, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("%w: YAML parsing failed: %v", ErrInvalidFormat, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported config file format: %s", ErrInvalidFormat, ext)
	}

	mergeEnvVars(config)
	return config, nil
}

// SaveConfig writes configuration to the given path
func SaveConfig(config *Config, configPath string) error {
	if configPath == "" {
		configPath = getDefaultConfigPath()
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	ext := filepath.Ext(configPath)
	var data []byte
	var err error

	switch ext {
	case ".json":
		data, err = json.MarshalIndent(config, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(config)
	default:
		return fmt.Errorf("%w: unsupported config file format: %s", ErrInvalidFormat, ext)
	}

	if err != nil {
		return fmt.Errorf("config serialization failed: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// getDefaultConfigPath returns the first existing config path, searching the
// working directory, the user config directory, then /etc
func getDefaultConfigPath() string {
	paths := []string{
		"./config.yaml",
		"./config.json",
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(homeDir, ".storewatch", "config.yaml"),
			filepath.Join(homeDir, ".storewatch", "config.json"),
		)
	}

	paths = append(paths,
		"/etc/storewatch/config.yaml",
		"/etc/storewatch/config.json",
	)

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return "./config.yaml"
}

// mergeEnvVars merges environment variables into the configuration,
// filling in any missing section with its defaults
func mergeEnvVars(config *Config) {
	mergeRetailerEnvVars(config)
	mergeSKUMapEnvVars(config)
	mergeNotificationEnvVars(config)
	mergeServerEnvVars(config)
	mergeSchedulerEnvVars(config)
	mergeAppEnvVars(config)
}

func mergeRetailerEnvVars(config *Config) {
	if config.Retailer == nil {
		config.Retailer = NewRetailerConfig()
		return
	}

	r := config.Retailer
	if v := os.Getenv("RETAILER_COUNTRY_CODE"); v != "" {
		r.CountryCode = v
	}
	if v := os.Getenv("RETAILER_DEVICE_FAMILY"); v != "" {
		r.DeviceFamily = v
	}
	if v := os.Getenv("RETAILER_ZIP_CODE"); v != "" {
		r.ZipCode = v
	}
	if v := os.Getenv("RETAILER_DEVICE_MODELS"); v != "" {
		r.DeviceModels = parseStringList(v)
	}
	if v := os.Getenv("RETAILER_CARRIERS"); v != "" {
		r.Carriers = parseStringList(v)
	}
	if v := os.Getenv("RETAILER_STORES"); v != "" {
		r.Stores = parseStringList(v)
	}
	if v := os.Getenv("RETAILER_APPOINTMENT_STORES"); v != "" {
		r.AppointmentStores = parseStringList(v)
	}
	if v := os.Getenv("RETAILER_PAUSE_SECONDS"); v != "" {
		r.PauseSeconds = parseIntOrDefault(v, r.PauseSeconds)
	}
}

func mergeSKUMapEnvVars(config *Config) {
	if config.SKUMap == nil {
		config.SKUMap = NewSKUMapConfig()
		return
	}
	if v := os.Getenv("SKU_MAP_GIST_URL"); v != "" {
		config.SKUMap.RemoteGistURL = v
	}
	if config.SKUMap.Labels == nil {
		config.SKUMap.Labels = map[string]string{}
	}
}

func mergeNotificationEnvVars(config *Config) {
	if config.Notifications == nil {
		config.Notifications = NewNotificationsConfig()
		return
	}

	n := config.Notifications
	if n.Telegram == nil {
		n.Telegram = NewTelegramConfig()
	} else {
		if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
			n.Telegram.BotToken = v
		}
		if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
			n.Telegram.ChatID = v
		}
	}
	if n.Email == nil {
		n.Email = NewEmailConfig()
	} else if v := os.Getenv("EMAIL_PASSWORD"); v != "" {
		n.Email.Password = v
	}
	if n.SpecialCase == nil {
		n.SpecialCase = NewSpecialCaseRoute()
	}
}

func mergeServerEnvVars(config *Config) {
	if config.Server == nil {
		config.Server = NewServerConfig()
		return
	}
	if v := os.Getenv("SERVER_ADDRESS"); v != "" {
		config.Server.Address = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		config.Server.Port = parseIntOrDefault(v, config.Server.Port)
	}
}

func mergeSchedulerEnvVars(config *Config) {
	if config.Scheduler == nil {
		config.Scheduler = NewSchedulerConfig()
		return
	}
	if v := os.Getenv("SCHEDULER_ENABLED"); v != "" {
		config.Scheduler.Enabled = v == "true" || v == "1"
	}
}

func mergeAppEnvVars(config *Config) {
	if config.App == nil {
		config.App = NewAppConfig()
		return
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		config.App.LogLevel = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		config.App.LogFile = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		config.App.Environment = v
	}
}
