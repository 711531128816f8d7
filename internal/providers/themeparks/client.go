package themeparks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/preston-bernstein/park-waits-service/internal/domain/parks"
	"github.com/preston-bernstein/park-waits-service/internal/metrics"
	"github.com/preston-bernstein/park-waits-service/internal/providers"
)

// Config controls how the client reaches the themeparks.wiki API.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Metrics    *metrics.Recorder
}

// Client fetches schedules and live data from themeparks.wiki and maps them to domain models.
// Every call makes exactly one request; there are no retries.
type Client struct {
	baseURL    string
	httpClient httpDoer
	metrics    *metrics.Recorder
}

var _ providers.ParkDataProvider = (*Client)(nil)

// NewClient constructs a themeparks client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		metrics:    cfg.Metrics,
	}
}

// FetchSchedule retrieves the schedule entries for an entity.
func (c *Client) FetchSchedule(ctx context.Context, entityID string) ([]parks.ScheduleEntry, error) {
	var payload scheduleResponse
	if err := c.get(ctx, entityID, endpointSchedule, &payload); err != nil {
		return nil, err
	}
	return mapSchedule(payload.Schedule), nil
}

// FetchLive retrieves live status for every child entity of an entity.
func (c *Client) FetchLive(ctx context.Context, entityID string) ([]parks.LiveEntity, error) {
	var payload liveResponse
	if err := c.get(ctx, entityID, endpointLive, &payload); err != nil {
		return nil, err
	}
	return mapLive(payload.LiveData), nil
}

func (c *Client) get(ctx context.Context, entityID, endpoint string, out any) (err error) {
	if c == nil || c.httpClient == nil {
		return providers.ErrProviderUnavailable
	}

	start := time.Now()
	defer func() {
		c.metrics.RecordProviderAttempt(providerName+"."+endpoint, time.Since(start), err)
	}()

	if strings.TrimSpace(entityID) == "" {
		return errors.New("themeparks: entity id required")
	}

	req, err := c.buildRequest(ctx, entityID, endpoint)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("themeparks: %s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &providers.StatusError{
			Provider:   providerName,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("themeparks: decode %s: %w", endpoint, err)
	}
	return nil
}

func (c *Client) buildRequest(ctx context.Context, entityID, endpoint string) (*http.Request, error) {
	target := fmt.Sprintf("%s/entity/%s/%s", c.baseURL, url.PathEscape(entityID), endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}
