package testutil

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestClockHelpers(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := NowAt(now)(); !got.Equal(now) {
		t.Fatalf("expected fixed time, got %v", got)
	}
	if MustParseRFC3339(now.Format(time.RFC3339)) != now {
		t.Fatalf("expected parse round trip")
	}
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on invalid RFC3339")
		}
	}()
	MustParseRFC3339("not-a-time")
}

func TestNowSeqAdvancesThenHolds(t *testing.T) {
	a := time.Date(2024, 7, 1, 9, 0, 0, 0, EDT)
	b := a.Add(time.Hour)
	clock := NowSeq(a, b)
	if !clock().Equal(a) || !clock().Equal(b) || !clock().Equal(b) {
		t.Fatal("expected sequence then hold on last value")
	}
	if SamplePark("P", "p").Loc() != EDT {
		t.Fatal("expected sample park in the EDT fixture zone")
	}
}

func TestBufferLoggerCapturesDebug(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Debug("hello", "park", "Big Park")
	if !strings.Contains(buf.String(), "level=DEBUG") || !strings.Contains(buf.String(), `park="Big Park"`) {
		t.Fatalf("expected debug line captured, got %q", buf.String())
	}
}

func TestUpstreamServesCannedBodiesAndCountsHits(t *testing.T) {
	up := NewUpstream(t)
	up.Handle("/entity/p1/live", http.StatusOK, LiveBody)

	resp, err := http.Get(up.URL() + "/entity/p1/live")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "Big Drop") {
		t.Fatalf("unexpected response %d %s", resp.StatusCode, body)
	}

	missing, err := http.Get(up.URL() + "/entity/p1/schedule")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown path, got %d", missing.StatusCode)
	}
	if up.Hits("/entity/p1/live") != 1 || up.Hits("/entity/p1/schedule") != 1 {
		t.Fatal("expected one hit per path")
	}
}

func TestJSONResponse(t *testing.T) {
	resp := JSONResponse(http.StatusTeapot, `{"ok":true}`)
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusTeapot || string(body) != `{"ok":true}` {
		t.Fatalf("unexpected response %d %s", resp.StatusCode, body)
	}
}

func TestFixtures(t *testing.T) {
	p := SamplePark("Magic Kingdom", "mk")
	if p.Loc() == nil || len(p.Events) != 1 {
		t.Fatalf("unexpected park fixture %+v", p)
	}
	ride := SampleRide("r1", "Big Drop", 45)
	if ride.StandbyWait == nil || *ride.StandbyWait != 45 {
		t.Fatalf("unexpected ride fixture %+v", ride)
	}
}
