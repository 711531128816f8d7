// Package collector polls live ride status for a park and appends it to the park's daily log.
package collector

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/park-waits-service/internal/domain/parks"
	"github.com/preston-bernstein/park-waits-service/internal/logging"
	"github.com/preston-bernstein/park-waits-service/internal/metrics"
	"github.com/preston-bernstein/park-waits-service/internal/providers"
	"github.com/preston-bernstein/park-waits-service/internal/waitlog"
)

// LogWriter persists rows to a per-park, per-day log.
type LogWriter interface {
	Path(parkName string, now time.Time) string
	Prepare(path string) (exists bool, err error)
	Append(path string, withHeader bool, rows []waitlog.Row) error
}

// Result describes one collection.
type Result struct {
	Rows int
	Path string
}

// Collector fetches live data and appends attraction rows to the day's log.
type Collector struct {
	provider providers.LiveProvider
	writer   LogWriter
	logger   *slog.Logger
	metrics  *metrics.Recorder
}

// New constructs a Collector.
func New(provider providers.LiveProvider, writer LogWriter, logger *slog.Logger, recorder *metrics.Recorder) *Collector {
	return &Collector{
		provider: provider,
		writer:   writer,
		logger:   logger,
		metrics:  recorder,
	}
}

// Collect fetches live data for park and appends one row per attraction to the log for
// now's calendar day. now should already be in the park's location.
//
// Upstream failures and empty live data are logged and yield zero rows with a nil error;
// only local filesystem failures are returned.
func (c *Collector) Collect(ctx context.Context, park parks.Park, event string, now time.Time) (Result, error) {
	logger := logging.FromContext(ctx, c.logger)
	path := c.writer.Path(park.Name, now)
	res := Result{Path: path}

	exists, err := c.writer.Prepare(path)
	if err != nil {
		return res, err
	}

	live, err := c.fetch(ctx, park.EntityID)
	if err != nil {
		logging.Error(logger, "live fetch failed", err,
			logging.FieldPark, park.Name,
			logging.FieldEntityID, park.EntityID,
		)
		return res, nil
	}
	if len(live) == 0 {
		logging.Warn(logger, "no live data", logging.FieldPark, park.Name, logging.FieldEntityID, park.EntityID)
		return res, nil
	}

	rows := buildRows(live, event, now)
	if err := c.writer.Append(path, !exists, rows); err != nil {
		return res, err
	}
	res.Rows = len(rows)

	c.metrics.RecordCollection(park.Name, res.Rows)
	logging.Info(logger, "attractions recorded",
		logging.FieldPark, park.Name,
		logging.FieldCount, res.Rows,
		logging.FieldEvent, event,
		logging.FieldFile, path,
	)
	return res, nil
}

func (c *Collector) fetch(ctx context.Context, entityID string) ([]parks.LiveEntity, error) {
	if c.provider == nil {
		return nil, providers.ErrProviderUnavailable
	}
	return c.provider.FetchLive(ctx, entityID)
}

// buildRows keeps attractions only; shows, restaurants and other entity types are dropped.
func buildRows(live []parks.LiveEntity, event string, now time.Time) []waitlog.Row {
	rows := make([]waitlog.Row, 0, len(live))
	for _, e := range live {
		if e.Type != parks.EntityAttraction {
			continue
		}
		rows = append(rows, waitlog.Row{
			Timestamp: now,
			RideID:    e.ID,
			RideName:  e.Name,
			Status:    e.Status,
			WaitTime:  e.StandbyWait,
			Event:     event,
		})
	}
	return rows
}
