package config

// Config is the top-level configuration structure
type Config struct {
	Retailer      *RetailerConfig      `json:"retailer" yaml:"retailer"`
	SKUMap        *SKUMapConfig        `json:"sku_map" yaml:"sku_map"`
	Notifications *NotificationsConfig `json:"notifications" yaml:"notifications"`
	Server        *ServerConfig        `json:"server" yaml:"server"`
	Scheduler     *SchedulerConfig     `json:"scheduler" yaml:"scheduler"`
	App           *AppConfig           `json:"app" yaml:"app"`
}

// getDefaultConfig returns a configuration with every section at its defaults
func getDefaultConfig() *Config {
	return &Config{
		Retailer:      NewRetailerConfig(),
		SKUMap:        NewSKUMapConfig(),
		Notifications: NewNotificationsConfig(),
		Server:        NewServerConfig(),
		Scheduler:     NewSchedulerConfig(),
		App:           NewAppConfig(),
	}
}
