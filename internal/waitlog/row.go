package waitlog

import (
	"strconv"
	"time"

	"github.com/preston-bernstein/park-waits-service/internal/timeutil"
)

// Header is the fixed first line of every log file.
var Header = []string{"timestamp", "weekday", "ride_id", "ride_name", "status", "wait_time", "evento"}

// Row is one attraction reading at poll time.
type Row struct {
	Timestamp time.Time `json:"timestamp"`
	RideID    string    `json:"rideId"`
	RideName  string    `json:"rideName"`
	Status    string    `json:"status"`
	WaitTime  *int      `json:"waitTime"`
	Event     string    `json:"event"`
}

// Weekday is the English weekday name of the poll timestamp in its own location.
func (r Row) Weekday() string {
	return r.Timestamp.Weekday().String()
}

// Record renders the row in header order. A nil wait time is written as an empty field.
func (r Row) Record() []string {
	wait := ""
	if r.WaitTime != nil {
		wait = strconv.Itoa(*r.WaitTime)
	}
	return []string{
		timeutil.FormatTimestamp(r.Timestamp),
		r.Weekday(),
		r.RideID,
		r.RideName,
		r.Status,
		wait,
		r.Event,
	}
}
