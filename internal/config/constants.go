package config

import "time"

const (
	envPort          = "PORT"
	envPollInterval  = "POLL_INTERVAL"
	envPollSchedule  = "POLL_SCHEDULE"
	envOnlyWhenOpen  = "ONLY_WHEN_OPEN"
	envParksFile     = "PARKS_FILE"
	envDataDir       = "DATA_DIR"
	envTPBaseURL     = "THEMEPARKS_BASE_URL"
	envTPTimeout     = "THEMEPARKS_TIMEOUT"
	envMetricsPort   = "METRICS_PORT"
	envMetricsOn     = "METRICS_ENABLED"
	envOtelEndpoint  = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService   = "OTEL_SERVICE_NAME"
	envOtelInsecure  = "OTEL_EXPORTER_OTLP_INSECURE"
	defaultPort      = "4000"
	defaultParksFile = "config/parks.yaml"
	defaultDataDir   = "data"

	// Wait times move slowly; five minutes keeps datasets dense without hammering the API.
	defaultPollInterval = 5 * Duration(time.Minute)
	defaultOnlyWhenOpen = true

	defaultTPBaseURL   = "https://api.themeparks.wiki/v1"
	defaultTPTimeout   = 10 * Duration(time.Second)
	defaultMetricsPort = "9090"
	defaultServiceName = "park-waits-service"
)
