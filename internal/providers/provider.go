package providers

import (
	"context"

	"github.com/preston-bernstein/park-waits-service/internal/domain/parks"
)

// ScheduleProvider fetches the upstream schedule for an entity (usually a park).
type ScheduleProvider interface {
	FetchSchedule(ctx context.Context, entityID string) ([]parks.ScheduleEntry, error)
}

// LiveProvider fetches current live status for all children of an entity.
type LiveProvider interface {
	FetchLive(ctx context.Context, entityID string) ([]parks.LiveEntity, error)
}

// ParkDataProvider combines both capabilities.
type ParkDataProvider interface {
	ScheduleProvider
	LiveProvider
}
