package providers

import (
	"context"
	"testing"

	"github.com/preston-bernstein/park-waits-service/internal/domain/parks"
)

type testProvider struct{}

func (t *testProvider) FetchSchedule(ctx context.Context, entityID string) ([]parks.ScheduleEntry, error) {
	_ = ctx
	_ = entityID
	return nil, nil
}

func (t *testProvider) FetchLive(ctx context.Context, entityID string) ([]parks.LiveEntity, error) {
	_ = ctx
	_ = entityID
	return nil, nil
}

func TestParkDataProviderInterfaceImplemented(t *testing.T) {
	var _ ParkDataProvider = (*testProvider)(nil)
}
