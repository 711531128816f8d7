package config

// ThemeparksConfig controls how we talk to the themeparks.wiki API.
type ThemeparksConfig struct {
	BaseURL string
	Timeout Duration
}

func loadThemeparks() ThemeparksConfig {
	return ThemeparksConfig{
		BaseURL: envOrDefault(envTPBaseURL, defaultTPBaseURL),
		Timeout: durationEnvOrDefault(envTPTimeout, defaultTPTimeout),
	}
}
