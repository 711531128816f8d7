package parks

import (
	"time"

	"github.com/preston-bernstein/park-waits-service/internal/timeutil"
)

// ActiveEvent returns the name of the first event whose range contains day, or "".
// Only day's calendar date (in its own location) is compared.
func ActiveEvent(events []Event, day time.Time) string {
	d := timeutil.DateOf(day)
	for _, ev := range events {
		if !d.Before(timeutil.DateOf(ev.From)) && !d.After(timeutil.DateOf(ev.To)) {
			return ev.Name
		}
	}
	return ""
}
