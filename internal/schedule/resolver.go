// Package schedule resolves a park's operating window for a date.
package schedule

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/park-waits-service/internal/domain/parks"
	"github.com/preston-bernstein/park-waits-service/internal/logging"
	"github.com/preston-bernstein/park-waits-service/internal/providers"
)

// Resolver looks up operating windows. Upstream failures are logged and reported as
// "no schedule"; they never reach the caller as errors.
type Resolver struct {
	provider providers.ScheduleProvider
	logger   *slog.Logger
}

// NewResolver constructs a Resolver backed by provider.
func NewResolver(provider providers.ScheduleProvider, logger *slog.Logger) *Resolver {
	return &Resolver{provider: provider, logger: logger}
}

// Resolve returns the operating window of entityID on date (YYYY-MM-DD). ok is false when
// the fetch failed, no OPERATING entry exists for the date, or its times are missing or
// unparseable. A returned window always has both ends set.
func (r *Resolver) Resolve(ctx context.Context, entityID, date string) (parks.Window, bool) {
	logger := logging.FromContext(ctx, r.logger)
	if r.provider == nil {
		logging.Warn(logger, "schedule fetch failed", logging.FieldEntityID, entityID, "error", providers.ErrProviderUnavailable)
		return parks.Window{}, false
	}

	entries, err := r.provider.FetchSchedule(ctx, entityID)
	if err != nil {
		logging.Warn(logger, "schedule fetch failed",
			logging.FieldEntityID, entityID,
			logging.FieldDate, date,
			"error", err,
		)
		return parks.Window{}, false
	}

	entry, found := findOperating(entries, date)
	if !found || entry.OpeningTime == "" || entry.ClosingTime == "" {
		logging.Debug(logger, "no operating schedule", logging.FieldEntityID, entityID, logging.FieldDate, date)
		return parks.Window{}, false
	}

	window, err := parseWindow(entry)
	if err != nil {
		logging.Warn(logger, "schedule times unparseable",
			logging.FieldEntityID, entityID,
			logging.FieldDate, date,
			"error", err,
		)
		return parks.Window{}, false
	}
	return window, true
}

// findOperating returns the first entry for date with type OPERATING.
func findOperating(entries []parks.ScheduleEntry, date string) (parks.ScheduleEntry, bool) {
	for _, e := range entries {
		if e.Date == date && e.Type == parks.ScheduleTypeOperating {
			return e, true
		}
	}
	return parks.ScheduleEntry{}, false
}

func parseWindow(e parks.ScheduleEntry) (parks.Window, error) {
	open, err := time.Parse(time.RFC3339, e.OpeningTime)
	if err != nil {
		return parks.Window{}, err
	}
	closing, err := time.Parse(time.RFC3339, e.ClosingTime)
	if err != nil {
		return parks.Window{}, err
	}
	return parks.Window{Open: open, Close: closing}, nil
}
