package server

import (
	"net/http"

	"github.com/preston-bernstein/park-waits-service/internal/config"
	"github.com/preston-bernstein/park-waits-service/internal/metrics"
	"github.com/preston-bernstein/park-waits-service/internal/providers"
	"github.com/preston-bernstein/park-waits-service/internal/providers/themeparks"
)

// newProvider builds the themeparks.wiki client. client may be nil to use a default
// http.Client with the configured timeout.
func newProvider(cfg config.Config, client *http.Client, recorder *metrics.Recorder) providers.ParkDataProvider {
	return themeparks.NewClient(themeparks.Config{
		BaseURL:    cfg.Themeparks.BaseURL,
		Timeout:    cfg.Themeparks.Timeout,
		HTTPClient: client,
		Metrics:    recorder,
	})
}
