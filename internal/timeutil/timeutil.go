package timeutil

import "time"

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// TimestampLayout parses logged timestamps, with or without fractional seconds.
const TimestampLayout = "2006-01-02T15:04:05.999999-07:00"

const (
	timestampSecondsLayout = "2006-01-02T15:04:05-07:00"
	timestampMicrosLayout  = "2006-01-02T15:04:05.000000-07:00"
)

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// ParseCivilDate accepts either a YYYY-MM-DD date or an RFC 3339 timestamp and
// returns the calendar date it names at UTC midnight.
func ParseCivilDate(value string) (time.Time, error) {
	if d, err := ParseDate(value); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(ts), nil
}

// DateOf strips the time of day, keeping the calendar date as seen in t's location.
// The result is at UTC midnight so dates from different zones compare directly.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatTimestamp formats an instant in its current location with offset. A fraction is
// written as exactly six digits, and only when the microsecond part is non-zero, so
// 14:30:00.12 renders as 14:30:00.120000 and 14:30:00 has no fraction.
func FormatTimestamp(t time.Time) string {
	if t.Nanosecond()/int(time.Microsecond) != 0 {
		return t.Format(timestampMicrosLayout)
	}
	return t.Format(timestampSecondsLayout)
}
