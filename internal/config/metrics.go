package config

import "strings"

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string
	ServiceName  string
	OtlpInsecure bool
}

func loadMetrics() MetricsConfig {
	endpoint, insecure := otlpEndpoint(envOrDefault(envOtelEndpoint, ""), boolEnvOrDefault(envOtelInsecure, true))
	return MetricsConfig{
		Enabled:      boolEnvOrDefault(envMetricsOn, true),
		Port:         envOrDefault(envMetricsPort, defaultMetricsPort),
		OtlpEndpoint: endpoint,
		ServiceName:  envOrDefault(envOtelService, defaultServiceName),
		OtlpInsecure: insecure,
	}
}

// otlpEndpoint accepts the collector address with or without a scheme, since the
// OTLP/HTTP exporter wants host:port. An explicit https:// forces TLS on.
func otlpEndpoint(raw string, insecure bool) (string, bool) {
	switch {
	case strings.HasPrefix(raw, "https://"):
		return strings.TrimSuffix(strings.TrimPrefix(raw, "https://"), "/"), false
	case strings.HasPrefix(raw, "http://"):
		return strings.TrimSuffix(strings.TrimPrefix(raw, "http://"), "/"), true
	default:
		return raw, insecure
	}
}
