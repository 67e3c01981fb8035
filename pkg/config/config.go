package config

import (
	"os"
	"strings"
)

// RetailerConfig selects what to check: the device family, the models and
// carriers to match, and the stores to watch. Empty selection lists mean
// "match all".
type RetailerConfig struct {
	CountryCode       string   `json:"country_code" yaml:"country_code"`
	DeviceFamily      string   `json:"device_family" yaml:"device_family"`
	ZipCode           string   `json:"zip_code" yaml:"zip_code"`
	DeviceModels      []string `json:"device_models" yaml:"device_models"`           // model labels or raw SKU fragments, partial-matched
	Carriers          []string `json:"carriers" yaml:"carriers"`                     // exact carrier names
	Stores            []string `json:"stores" yaml:"stores"`                         // store numbers to register
	AppointmentStores []string `json:"appointment_stores" yaml:"appointment_stores"` // store numbers for the appointment scan
	PauseSeconds      int      `json:"pause_seconds" yaml:"pause_seconds"`           // minimum spacing between availability fetches
	BaseURL           string   `json:"base_url" yaml:"base_url"`                     // override for tests; empty means the retailer default
}

// NewRetailerConfig creates a retailer configuration with environment defaults
func NewRetailerConfig() *RetailerConfig {
	return &RetailerConfig{
		CountryCode:       getEnv("RETAILER_COUNTRY_CODE", "us"),
		DeviceFamily:      getEnv("RETAILER_DEVICE_FAMILY", "iphone"),
		ZipCode:           getEnv("RETAILER_ZIP_CODE", ""),
		DeviceModels:      parseStringList(getEnv("RETAILER_DEVICE_MODELS", "")),
		Carriers:          parseStringList(getEnv("RETAILER_CARRIERS", "")),
		Stores:            parseStringList(getEnv("RETAILER_STORES", "")),
		AppointmentStores: parseStringList(getEnv("RETAILER_APPOINTMENT_STORES", "")),
		PauseSeconds:      getEnvInt("RETAILER_PAUSE_SECONDS", 1),
	}
}

// SKUMapConfig maps free-text model labels to retailer SKUs. The map may be
// refreshed from a remote gist at startup; on fetch failure the static map
// alone is used.
type SKUMapConfig struct {
	Labels        map[string]string `json:"labels" yaml:"labels"`
	RemoteGistURL string            `json:"remote_gist_url" yaml:"remote_gist_url"`
}

// NewSKUMapConfig creates a SKU map configuration with environment defaults
func NewSKUMapConfig() *SKUMapConfig {
	return &SKUMapConfig{
		Labels:        map[string]string{},
		RemoteGistURL: getEnv("SKU_MAP_GIST_URL", ""),
	}
}

// ServerConfig holds HTTP API server settings
type ServerConfig struct {
	Address string `json:"address" yaml:"address"`
	Port    int    `json:"port" yaml:"port"`
}

// NewServerConfig creates a server configuration with environment defaults
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Address: getEnv("SERVER_ADDRESS", "0.0.0.0"),
		Port:    getEnvInt("SERVER_PORT", 8080),
	}
}

// AppConfig holds application-wide settings
type AppConfig struct {
	LogLevel    string `json:"log_level" yaml:"log_level"`
	LogFile     string `json:"log_file" yaml:"log_file"`
	Environment string `json:"environment" yaml:"environment"`
}

// NewAppConfig creates an application configuration with environment defaults
func NewAppConfig() *AppConfig {
	return &AppConfig{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFile:     getEnv("LOG_FILE", ""),
		Environment: getEnv("APP_ENV", "development"),
	}
}

// IsDevelopment reports whether the app runs in development mode
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment != "production"
}

func parseStringList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue := parseIntOrDefault(value, defaultValue); intValue != defaultValue {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func parseIntOrDefault(s string, defaultValue int) int {
	if len(s) == 0 {
		return defaultValue
	}
	result := 0
	for _, char := range s {
		if char < '0' || char > '9' {
			return defaultValue
		}
		result = result*10 + int(char-'0')
	}
	return result
}
