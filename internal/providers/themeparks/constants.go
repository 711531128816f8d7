package themeparks

import "time"

const (
	providerName       = "themeparks"
	defaultBaseURL     = "https://api.themeparks.wiki/v1"
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBody       = 512

	endpointSchedule = "schedule"
	endpointLive     = "live"
)
