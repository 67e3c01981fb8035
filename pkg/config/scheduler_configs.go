package config

// SchedulerConfig represents the scheduler configuration
type SchedulerConfig struct {
	Enabled bool           `json:"enabled" yaml:"enabled"`
	Jobs    []ScheduledJob `json:"jobs" yaml:"jobs"`
}

// ScheduledJob represents one scheduled stock check
type ScheduledJob struct {
	Name string `json:"name" yaml:"name"`
	Cron string `json:"cron" yaml:"cron"`
}

// NewSchedulerConfig creates a scheduler configuration with environment defaults
func NewSchedulerConfig() *SchedulerConfig {
	return &SchedulerConfig{
		Enabled: getEnvBool("SCHEDULER_ENABLED", true),
		Jobs:    []ScheduledJob{},
	}
}
