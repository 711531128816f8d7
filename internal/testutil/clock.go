package testutil

import "time"

// EDT is a fixed UTC-4 zone, so park-local fixtures do not depend on the host tz database.
var EDT = time.FixedZone("EDT", -4*60*60)

// NowAt returns a clock function fixed at the provided time.
func NowAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// NowSeq returns a clock that yields each time in turn and then keeps returning the last.
func NowSeq(times ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := times[i]
		if i < len(times)-1 {
			i++
		}
		return t
	}
}

// MustParseRFC3339 parses an RFC3339 timestamp or panics; intended for tests.
func MustParseRFC3339(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		panic(err)
	}
	return t
}
