package collector

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/park-waits-service/internal/domain/parks"
	"github.com/preston-bernstein/park-waits-service/internal/metrics"
	"github.com/preston-bernstein/park-waits-service/internal/providers/themeparks"
	"github.com/preston-bernstein/park-waits-service/internal/testutil"
	"github.com/preston-bernstein/park-waits-service/internal/waitlog"
)

const (
	header   = "timestamp,weekday,ride_id,ride_name,status,wait_time,evento"
	livePath = "/entity/park-1/live"
)

var edt = testutil.EDT

func setup(t *testing.T, status int, body string) (*Collector, *testutil.Upstream, string, *metrics.Recorder) {
	t.Helper()
	up := testutil.NewUpstream(t)
	up.Handle(livePath, status, body)
	dir := filepath.Join(t.TempDir(), "data")
	rec := metrics.NewRecorder()
	client := themeparks.NewClient(themeparks.Config{BaseURL: up.URL()})
	return New(client, waitlog.NewWriter(dir), nil, rec), up, dir, rec
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestCollectWritesHeaderAndAttractionRow(t *testing.T) {
	c, up, dir, rec := setup(t, http.StatusOK, testutil.LiveBody)
	park := testutil.SamplePark("Big Park", "park-1")
	now := time.Date(2024, 7, 1, 14, 30, 0, 0, edt)

	res, err := c.Collect(context.Background(), park, "Summer Fest", now)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	wantPath := filepath.Join(dir, "Big_Park_2024-07-01.csv")
	if res.Rows != 1 || res.Path != wantPath {
		t.Fatalf("expected (1, %s), got %+v", wantPath, res)
	}
	lines := readLines(t, res.Path)
	if len(lines) != 2 || lines[0] != header {
		t.Fatalf("expected header then one row, got %q", lines)
	}
	if lines[1] != "2024-07-01T14:30:00-04:00,Monday,r1,Big Drop,OPERATING,45,Summer Fest" {
		t.Fatalf("unexpected row %q", lines[1])
	}
	if up.Hits(livePath) != 1 {
		t.Fatalf("expected exactly one live request, got %d", up.Hits(livePath))
	}
	if got := rec.Park("Big Park"); got.RowsWritten != 1 || got.Collections != 1 {
		t.Fatalf("expected collection recorded, got %+v", got)
	}
}

func TestCollectSkipsNonAttractions(t *testing.T) {
	body := `{"liveData":[
		{"entityType":"SHOW","id":"s1","name":"Fireworks","status":"OPERATING"},
		{"entityType":"ATTRACTION","id":"r1","name":"Big Drop","status":"OPERATING","queue":{"STANDBY":{"waitTime":45}}},
		{"entityType":"RESTAURANT","id":"d1","name":"Diner","status":"OPERATING","queue":{"STANDBY":{"waitTime":20}}},
		{"entityType":"attraction","id":"r9","name":"Lowercase","status":"OPERATING"},
		{"entityType":"ATTRACTION","status":"CLOSED"}
	]}`
	c, _, _, _ := setup(t, http.StatusOK, body)
	now := time.Date(2024, 7, 1, 14, 30, 0, 0, edt)

	res, err := c.Collect(context.Background(), testutil.SamplePark("Big Park", "park-1"), "", now)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Rows != 2 {
		t.Fatalf("expected only exact ATTRACTION entries counted, got %d", res.Rows)
	}
	lines := readLines(t, res.Path)
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %q", lines)
	}
	if lines[2] != "2024-07-01T14:30:00-04:00,Monday,,,CLOSED,," {
		t.Fatalf("expected missing fields rendered empty, got %q", lines[2])
	}
}

func TestCollectKeepsRowsWhenOneWaitIsNotNumeric(t *testing.T) {
	body := `{"liveData":[
		{"entityType":"ATTRACTION","id":"r1","name":"Big Drop","status":"OPERATING","queue":{"STANDBY":{"waitTime":45}}},
		{"entityType":"ATTRACTION","id":"r2","name":"Spinner","status":"OPERATING","queue":{"STANDBY":{"waitTime":"n/a"}}}
	]}`
	c, _, _, rec := setup(t, http.StatusOK, body)
	now := time.Date(2024, 7, 1, 14, 30, 0, 120*int(time.Millisecond), edt)

	res, err := c.Collect(context.Background(), testutil.SamplePark("Big Park", "park-1"), "", now)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Rows != 2 {
		t.Fatalf("expected both attractions written, got %d", res.Rows)
	}
	lines := readLines(t, res.Path)
	want := []string{
		header,
		"2024-07-01T14:30:00.120000-04:00,Monday,r1,Big Drop,OPERATING,45,",
		"2024-07-01T14:30:00.120000-04:00,Monday,r2,Spinner,OPERATING,,",
	}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected log contents %q", lines)
	}
	if got := rec.Park("Big Park"); got.RowsWritten != 2 || got.Collections != 1 {
		t.Fatalf("expected clean collection recorded, got %+v", got)
	}
}

func TestCollectAppendsOnSecondPollWithoutHeader(t *testing.T) {
	c, _, _, rec := setup(t, http.StatusOK, testutil.LiveBody)
	park := testutil.SamplePark("Big Park", "park-1")
	first := time.Date(2024, 7, 1, 14, 30, 0, 0, edt)

	if _, err := c.Collect(context.Background(), park, "Summer Fest", first); err != nil {
		t.Fatalf("first collect failed: %v", err)
	}
	res, err := c.Collect(context.Background(), park, "Summer Fest", first.Add(5*time.Minute))
	if err != nil {
		t.Fatalf("second collect failed: %v", err)
	}
	if res.Rows != 1 {
		t.Fatalf("expected second call to report its own rows, got %d", res.Rows)
	}
	lines := readLines(t, res.Path)
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %q", lines)
	}
	headers := 0
	for _, l := range lines {
		if l == header {
			headers++
		}
	}
	if headers != 1 || lines[0] != header {
		t.Fatalf("expected single leading header, got %q", lines)
	}
	if !strings.HasPrefix(lines[2], "2024-07-01T14:35:00-04:00,") {
		t.Fatalf("expected rows in poll order, got %q", lines[2])
	}
	if rec.Park("Big Park").RowsWritten != 2 {
		t.Fatalf("expected rows to accumulate in metrics")
	}
}

func TestCollectNewDayStartsNewFile(t *testing.T) {
	c, _, dir, _ := setup(t, http.StatusOK, testutil.LiveBody)
	park := testutil.SamplePark("Big Park", "park-1")
	late := time.Date(2024, 7, 1, 23, 55, 0, 0, edt)

	r1, _ := c.Collect(context.Background(), park, "", late)
	r2, _ := c.Collect(context.Background(), park, "", late.Add(10*time.Minute))
	if r1.Path == r2.Path {
		t.Fatalf("expected a new file after local midnight, got %s twice", r1.Path)
	}
	if r2.Path != filepath.Join(dir, "Big_Park_2024-07-02.csv") {
		t.Fatalf("unexpected next-day path %s", r2.Path)
	}
	if lines := readLines(t, r2.Path); lines[0] != header || !strings.Contains(lines[1], "Tuesday") {
		t.Fatalf("expected fresh header and Tuesday row, got %q", lines)
	}
}

func TestCollectEmptyLiveDataDoesNotCreateFile(t *testing.T) {
	c, _, dir, rec := setup(t, http.StatusOK, `{"liveData":[]}`)
	logger, buf := testutil.NewBufferLogger()
	c.logger = logger
	now := time.Date(2024, 7, 1, 14, 30, 0, 0, edt)

	res, err := c.Collect(context.Background(), testutil.SamplePark("Big Park", "park-1"), "", now)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Rows != 0 || res.Path != filepath.Join(dir, "Big_Park_2024-07-01.csv") {
		t.Fatalf("expected (0, path), got %+v", res)
	}
	if _, err := os.Stat(res.Path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected file not to be created, got %v", err)
	}
	if !strings.Contains(buf.String(), "level=WARN") || !strings.Contains(buf.String(), `park="Big Park"`) {
		t.Fatalf("expected warning naming the park, got %q", buf.String())
	}
	if rec.Park("Big Park").Collections != 0 {
		t.Fatal("expected no collection recorded for empty data")
	}
}

func TestCollectEmptyLiveDataLeavesExistingFileUntouched(t *testing.T) {
	c, up, _, _ := setup(t, http.StatusOK, testutil.LiveBody)
	park := testutil.SamplePark("Big Park", "park-1")
	now := time.Date(2024, 7, 1, 14, 30, 0, 0, edt)
	res, _ := c.Collect(context.Background(), park, "", now)
	before, _ := os.ReadFile(res.Path)

	up.Handle(livePath, http.StatusOK, `{"liveData":[]}`)
	if again, err := c.Collect(context.Background(), park, "", now.Add(time.Minute)); err != nil || again.Rows != 0 {
		t.Fatalf("expected zero rows, got %+v %v", again, err)
	}
	after, _ := os.ReadFile(res.Path)
	if string(before) != string(after) {
		t.Fatalf("expected existing log untouched")
	}
}

func TestCollectFetchFailureIsRecovered(t *testing.T) {
	c, up, _, _ := setup(t, http.StatusServiceUnavailable, `maintenance`)
	logger, buf := testutil.NewBufferLogger()
	c.logger = logger
	now := time.Date(2024, 7, 1, 14, 30, 0, 0, edt)

	res, err := c.Collect(context.Background(), testutil.SamplePark("Big Park", "park-1"), "", now)
	if err != nil {
		t.Fatalf("expected fetch failure to be swallowed, got %v", err)
	}
	if res.Rows != 0 || res.Path == "" {
		t.Fatalf("expected (0, path), got %+v", res)
	}
	if _, err := os.Stat(res.Path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no file on fetch failure, got %v", err)
	}
	if up.Hits(livePath) != 1 {
		t.Fatalf("expected a single attempt, got %d", up.Hits(livePath))
	}
	if !strings.Contains(buf.String(), "level=ERROR") || !strings.Contains(buf.String(), "503") {
		t.Fatalf("expected error log with status, got %q", buf.String())
	}
}

func TestCollectPropagatesFilesystemErrors(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	stub := &testutil.StubProvider{Live: []parks.LiveEntity{testutil.SampleRide("r1", "Big Drop", 10)}}
	c := New(stub, waitlog.NewWriter(filepath.Join(blocker, "data")), nil, nil)

	_, err := c.Collect(context.Background(), testutil.SamplePark("Big Park", "park-1"), "", time.Now())
	if err == nil {
		t.Fatal("expected filesystem error to propagate")
	}
	if len(stub.LiveCalls()) != 0 {
		t.Fatal("expected no fetch when the log directory cannot be created")
	}
}

type failingWriter struct {
	*waitlog.Writer
	err error
}

func (f failingWriter) Append(string, bool, []waitlog.Row) error { return f.err }

func TestCollectPropagatesAppendErrors(t *testing.T) {
	boom := errors.New("disk full")
	stub := &testutil.StubProvider{Live: []parks.LiveEntity{testutil.SampleRide("r1", "Big Drop", 10)}}
	c := New(stub, failingWriter{Writer: waitlog.NewWriter(t.TempDir()), err: boom}, nil, nil)

	res, err := c.Collect(context.Background(), testutil.SamplePark("Big Park", "park-1"), "", time.Now())
	if !errors.Is(err, boom) {
		t.Fatalf("expected append error, got %v", err)
	}
	if res.Rows != 0 {
		t.Fatalf("expected no rows counted on failed append, got %d", res.Rows)
	}
}

func TestCollectWithoutProvider(t *testing.T) {
	c := New(nil, waitlog.NewWriter(t.TempDir()), nil, nil)
	res, err := c.Collect(context.Background(), testutil.SamplePark("Big Park", "park-1"), "", time.Now())
	if err != nil || res.Rows != 0 {
		t.Fatalf("expected recovered zero result, got %+v %v", res, err)
	}
}

func TestCollectWithoutAttractionsStillStartsDayLog(t *testing.T) {
	c, _, _, _ := setup(t, http.StatusOK, `{"liveData":[{"entityType":"SHOW","id":"s1","name":"Parade","status":"OPERATING"}]}`)
	now := time.Date(2024, 7, 1, 14, 30, 0, 0, edt)

	res, err := c.Collect(context.Background(), testutil.SamplePark("Big Park", "park-1"), "", now)
	if err != nil || res.Rows != 0 {
		t.Fatalf("expected zero rows without error, got %+v %v", res, err)
	}
	if lines := readLines(t, res.Path); len(lines) != 1 || lines[0] != header {
		t.Fatalf("expected header-only log, got %q", lines)
	}
}
