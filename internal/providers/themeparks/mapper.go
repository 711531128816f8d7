package themeparks

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/preston-bernstein/park-waits-service/internal/domain/parks"
)

func mapSchedule(entries []scheduleEntry) []parks.ScheduleEntry {
	out := make([]parks.ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, parks.ScheduleEntry{
			Date:        e.Date,
			Type:        e.Type,
			OpeningTime: e.OpeningTime,
			ClosingTime: e.ClosingTime,
		})
	}
	return out
}

// mapLive decodes each entity on its own. Entities that are not JSON objects are
// skipped; off-type fields inside an entity degrade to empty values.
func mapLive(raw []json.RawMessage) []parks.LiveEntity {
	out := make([]parks.LiveEntity, 0, len(raw))
	for _, item := range raw {
		var e liveEntry
		if !decodeObject(item, &e) {
			continue
		}
		out = append(out, parks.LiveEntity{
			ID:          string(e.ID),
			Name:        string(e.Name),
			Type:        parks.EntityType(e.EntityType),
			Status:      string(e.Status),
			StandbyWait: standbyWait(e.Queue),
		})
	}
	return out
}

// standbyWait walks queue.STANDBY.waitTime. A missing or null level, or a value
// that is not a number, yields nil.
func standbyWait(raw json.RawMessage) *int {
	var q liveQueue
	if !decodeObject(raw, &q) {
		return nil
	}
	var standby queueStatus
	if !decodeObject(q.Standby, &standby) {
		return nil
	}
	var wait *float64
	if err := json.Unmarshal(standby.WaitTime, &wait); err != nil || wait == nil {
		return nil
	}
	v := int(math.Round(*wait))
	return &v
}

func decodeObject(raw json.RawMessage, out any) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return false
	}
	return json.Unmarshal(trimmed, out) == nil
}
