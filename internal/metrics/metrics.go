package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	lastCallLatency time.Duration
}

type parkStats struct {
	collections int
	rowsWritten int
	skipped     int
}

// Recorder captures lightweight, in-memory metrics about upstream calls and collection,
// forwarding to OpenTelemetry instruments when configured.
type Recorder struct {
	mu        sync.Mutex
	providers map[string]*providerStats
	parks     map[string]*parkStats
	otel      *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		providers: make(map[string]*providerStats),
		parks:     make(map[string]*parkStats),
		otel:      otel,
	}
}

// RecordProviderAttempt counts one upstream call (keyed by endpoint, e.g. "themeparks.live")
// and stores its latency.
func (r *Recorder) RecordProviderAttempt(endpoint string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.providerStats(endpoint)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(endpoint, duration, err)
	}
}

// RecordCollection counts one collection for a park and the rows it appended.
func (r *Recorder) RecordCollection(park string, rows int) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.parkStats(park)
	stats.collections++
	stats.rowsWritten += rows
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCollection(park, rows)
	}
}

// RecordParkSkipped counts a poll skipped because the park was closed.
func (r *Recorder) RecordParkSkipped(park string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.parkStats(park).skipped++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordSkip(park)
	}
}

// ProviderCalls returns the total attempts recorded for an endpoint.
func (r *Recorder) ProviderCalls(endpoint string) int {
	return r.Snapshot(endpoint).Calls
}

// ProviderErrors returns the total failed attempts recorded for an endpoint.
func (r *Recorder) ProviderErrors(endpoint string) int {
	return r.Snapshot(endpoint).Errors
}

// LastCallLatency returns the last recorded latency for an endpoint call.
func (r *Recorder) LastCallLatency(endpoint string) time.Duration {
	return r.Snapshot(endpoint).LastCallLatency
}

// Snapshot is a copy of the current stats for an endpoint.
type Snapshot struct {
	Calls           int
	Errors          int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(endpoint string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.providers[endpoint]
	if !ok {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		LastCallLatency: stats.lastCallLatency,
	}
}

// ParkSnapshot is a copy of the current collection stats for a park.
type ParkSnapshot struct {
	Collections int
	RowsWritten int
	Skipped     int
}

func (r *Recorder) Park(park string) ParkSnapshot {
	if r == nil {
		return ParkSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.parks[park]
	if !ok {
		return ParkSnapshot{}
	}
	return ParkSnapshot{
		Collections: stats.collections,
		RowsWritten: stats.rowsWritten,
		Skipped:     stats.skipped,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks poller cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

// caller holds r.mu
func (r *Recorder) providerStats(endpoint string) *providerStats {
	stats, ok := r.providers[endpoint]
	if !ok {
		stats = &providerStats{}
		r.providers[endpoint] = stats
	}
	return stats
}

// caller holds r.mu
func (r *Recorder) parkStats(park string) *parkStats {
	stats, ok := r.parks[park]
	if !ok {
		stats = &parkStats{}
		r.parks[park] = stats
	}
	return stats
}
