package config

import "errors"

// Configuration-related error definitions using sentinel errors pattern
var (
	// Generic errors
	ErrConfigNotFound = errors.New("configuration file not found")
	ErrInvalidFormat  = errors.New("invalid configuration file format")

	// Configuration validation errors
	ErrMissingRequired = errors.New("missing required configuration item")
	ErrInvalidValue    = errors.New("invalid configuration value")

	// Section-specific errors
	ErrRetailerConfig     = errors.New("retailer configuration error")
	ErrNotificationConfig = errors.New("notification configuration error")
	ErrSchedulerConfig    = errors.New("scheduler configuration error")
	ErrInvalidCron        = errors.New("invalid Cron expression")
)
