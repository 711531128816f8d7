package testutil

import (
	"time"

	"github.com/preston-bernstein/park-waits-service/internal/domain/parks"
)

// SamplePark returns a park in a fixed UTC-4 zone with a summer event.
func SamplePark(name, entityID string) parks.Park {
	return parks.Park{
		Name:     name,
		EntityID: entityID,
		Timezone: "America/New_York",
		Location: EDT,
		Events: []parks.Event{{
			Name: "Summer Fest",
			From: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC),
		}},
	}
}

// SampleRide returns an attraction live entity with the given standby wait.
func SampleRide(id, name string, wait int) parks.LiveEntity {
	return parks.LiveEntity{
		ID:          id,
		Name:        name,
		Type:        parks.EntityAttraction,
		Status:      "OPERATING",
		StandbyWait: &wait,
	}
}

// LiveBody renders a minimal live-data payload with a single attraction.
const LiveBody = `{"liveData":[{"entityType":"ATTRACTION","id":"r1","name":"Big Drop","status":"OPERATING","queue":{"STANDBY":{"waitTime":45}}}]}`
