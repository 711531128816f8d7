package testutil

import (
	"context"
	"sync"

	"github.com/preston-bernstein/park-waits-service/internal/domain/parks"
)

// StubProvider is a configurable providers.ParkDataProvider that records calls.
type StubProvider struct {
	Schedule    []parks.ScheduleEntry
	ScheduleErr error
	Live        []parks.LiveEntity
	LiveErr     error

	mu            sync.Mutex
	scheduleCalls []string
	liveCalls     []string
}

func (s *StubProvider) FetchSchedule(ctx context.Context, entityID string) ([]parks.ScheduleEntry, error) {
	_ = ctx
	s.mu.Lock()
	s.scheduleCalls = append(s.scheduleCalls, entityID)
	s.mu.Unlock()
	return s.Schedule, s.ScheduleErr
}

func (s *StubProvider) FetchLive(ctx context.Context, entityID string) ([]parks.LiveEntity, error) {
	_ = ctx
	s.mu.Lock()
	s.liveCalls = append(s.liveCalls, entityID)
	s.mu.Unlock()
	return s.Live, s.LiveErr
}

// ScheduleCalls returns the entity ids schedule was requested for, in order.
func (s *StubProvider) ScheduleCalls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.scheduleCalls...)
}

// LiveCalls returns the entity ids live data was requested for, in order.
func (s *StubProvider) LiveCalls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.liveCalls...)
}
