package config

// Config holds runtime configuration for the collector service.
type Config struct {
	Port         string
	PollInterval Duration
	// PollSchedule is a cron spec; when set it takes precedence over PollInterval.
	PollSchedule string
	OnlyWhenOpen bool
	ParksFile    string
	DataDir      string
	Themeparks   ThemeparksConfig
	Metrics      MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:         envOrDefault(envPort, defaultPort),
		PollInterval: durationEnvOrDefault(envPollInterval, defaultPollInterval),
		PollSchedule: envOrDefault(envPollSchedule, ""),
		OnlyWhenOpen: boolEnvOrDefault(envOnlyWhenOpen, defaultOnlyWhenOpen),
		ParksFile:    envOrDefault(envParksFile, defaultParksFile),
		DataDir:      envOrDefault(envDataDir, defaultDataDir),
		Themeparks:   loadThemeparks(),
		Metrics:      loadMetrics(),
	}
}
