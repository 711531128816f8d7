package parks

import "time"

// EntityType tags what kind of thing a live entry describes. Only attractions are
// collected; other upstream types pass through untouched.
type EntityType string

const EntityAttraction EntityType = "ATTRACTION"

// ScheduleTypeOperating is the only schedule entry type that defines an operating window.
const ScheduleTypeOperating = "OPERATING"

// Event is a seasonal event covering an inclusive range of calendar dates.
// From and To carry only a date (UTC midnight); from <= to is assumed, not checked.
type Event struct {
	Name string    `json:"name"`
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Park is a configured park. Location is resolved from Timezone when the park is loaded.
type Park struct {
	Name     string         `json:"name"`
	EntityID string         `json:"entityId"`
	Timezone string         `json:"timezone"`
	Events   []Event        `json:"events,omitempty"`
	Location *time.Location `json:"-"`
}

// Loc returns the park's location, falling back to UTC when none was resolved.
func (p Park) Loc() *time.Location {
	if p.Location != nil {
		return p.Location
	}
	return time.UTC
}

// ScheduleEntry is one upstream schedule row. Times are kept as the raw offset strings.
type ScheduleEntry struct {
	Date        string
	Type        string
	OpeningTime string
	ClosingTime string
}

// Window is a day's operating window.
type Window struct {
	Open  time.Time `json:"open"`
	Close time.Time `json:"close"`
}

// Contains reports whether t falls in [Open, Close).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Open) && t.Before(w.Close)
}

// LiveEntity is one live-status entry for an attraction, show or restaurant.
// Absent upstream fields are empty strings; StandbyWait is nil when any level of the
// queue structure is missing or null.
type LiveEntity struct {
	ID          string
	Name        string
	Type        EntityType
	Status      string
	StandbyWait *int
}
