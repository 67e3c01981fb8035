package config

import "fmt"

// ValidateConfig validates the complete configuration
func (c *Config) ValidateConfig() error {
	if err := c.validateRetailerConfig(); err != nil {
		return fmt.Errorf("%w: %v", ErrRetailerConfig, err)
	}

	if err := c.validateNotificationsConfig(); err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationConfig, err)
	}

	if err := c.validateSchedulerConfig(); err != nil {
		return fmt.Errorf("%w: %v", ErrSchedulerConfig, err)
	}

	return nil
}

func (c *Config) validateRetailerConfig() error {
	if c.Retailer == nil {
		return fmt.Errorf("%w: retailer section", ErrMissingRequired)
	}

	r := c.Retailer
	if r.CountryCode == "" {
		return fmt.Errorf("%w: country_code", ErrMissingRequired)
	}
	if r.DeviceFamily == "" {
		return fmt.Errorf("%w: device_family", ErrMissingRequired)
	}
	if r.PauseSeconds < 0 {
		return fmt.Errorf("%w: pause_seconds must not be negative", ErrInvalidValue)
	}

	return nil
}

func (c *Config) validateNotificationsConfig() error {
	if c.Notifications == nil {
		return nil // notifications are optional
	}

	n := c.Notifications
	if n.Telegram != nil {
		if err := n.Telegram.Validate(); err != nil {
			return fmt.Errorf("telegram: %w", err)
		}
	}
	if n.Email != nil {
		if err := n.Email.Validate(); err != nil {
			return fmt.Errorf("email: %w", err)
		}
	}

	// A special case route only works when the individual channel exists
	if n.SpecialCase != nil && n.SpecialCase.PartNumber != "" {
		if n.Email == nil || !n.Email.Enabled {
			return fmt.Errorf("%w: special_case requires the email channel", ErrInvalidValue)
		}
	}

	return nil
}

func (c *Config) validateSchedulerConfig() error {
	if c.Scheduler == nil || !c.Scheduler.Enabled {
		return nil
	}

	for _, job := range c.Scheduler.Jobs {
		if job.Name == "" {
			return fmt.Errorf("%w: job name", ErrMissingRequired)
		}
		if job.Cron == "" {
			return fmt.Errorf("%w: job %q has no cron expression", ErrInvalidCron, job.Name)
		}
	}

	return nil
}
