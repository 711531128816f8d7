// Package poller runs collection cycles over the configured parks on a cron schedule.
package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/preston-bernstein/park-waits-service/internal/collector"
	"github.com/preston-bernstein/park-waits-service/internal/domain/parks"
	"github.com/preston-bernstein/park-waits-service/internal/logging"
	"github.com/preston-bernstein/park-waits-service/internal/metrics"
	"github.com/preston-bernstein/park-waits-service/internal/timeutil"
)

const (
	defaultInterval = 5 * time.Minute
	readyFailures   = 3
)

// Collector appends one poll's worth of rows for a park.
type Collector interface {
	Collect(ctx context.Context, park parks.Park, event string, now time.Time) (collector.Result, error)
}

// WindowResolver reports a park's operating window for a date.
type WindowResolver interface {
	Resolve(ctx context.Context, entityID, date string) (parks.Window, bool)
}

// Options controls scheduling and gating.
type Options struct {
	// Interval is used when Schedule is empty.
	Interval time.Duration
	// Schedule is a standard cron spec or descriptor such as "@every 10m".
	Schedule string
	// OnlyWhenOpen skips parks whose operating window does not contain the current time.
	OnlyWhenOpen bool
}

// Poller walks every park once per cycle, sequentially.
type Poller struct {
	parks        []parks.Park
	collector    Collector
	resolver     WindowResolver
	logger       *slog.Logger
	metrics      *metrics.Recorder
	schedule     cron.Schedule
	onlyWhenOpen bool
	now          func() time.Time
	newID        func() string

	runMu    sync.Mutex
	cron     *cron.Cron
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// ParkStatus is the outcome of the most recent poll of one park.
type ParkStatus struct {
	LastPoll time.Time `json:"lastPoll"`
	Skipped  bool      `json:"skipped"`
	Event    string    `json:"event,omitempty"`
	Rows     int       `json:"rows"`
	Path     string    `json:"path,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	// Parks holds the last poll outcome keyed by park entity id.
	Parks map[string]ParkStatus
}

// IsReady reports whether the poller has had a successful cycle and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < readyFailures
}

// New constructs a Poller. An invalid cron spec is returned as an error.
func New(parkList []parks.Park, c Collector, resolver WindowResolver, logger *slog.Logger, recorder *metrics.Recorder, opts Options) (*Poller, error) {
	schedule, err := parseSchedule(opts)
	if err != nil {
		return nil, err
	}
	return &Poller{
		parks:        parkList,
		collector:    c,
		resolver:     resolver,
		logger:       logger,
		metrics:      recorder,
		schedule:     schedule,
		onlyWhenOpen: opts.OnlyWhenOpen,
		now:          time.Now,
		newID:        uuid.NewString,
		done:         make(chan struct{}),
		status:       Status{Parks: make(map[string]ParkStatus)},
	}, nil
}

func parseSchedule(opts Options) (cron.Schedule, error) {
	if opts.Schedule != "" {
		s, err := cron.ParseStandard(opts.Schedule)
		if err != nil {
			return nil, fmt.Errorf("poll schedule %q: %w", opts.Schedule, err)
		}
		return s, nil
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	return cron.Every(interval), nil
}

// Start runs one cycle immediately, then one per scheduled tick until ctx is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	cl := cronLogger{logger: p.logger}
	p.cron = cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl)))
	p.cron.Schedule(p.schedule, cron.FuncJob(func() { p.tick(ctx) }))
	p.startMu.Unlock()

	logging.Info(p.logger, "poller started", logging.FieldCount, len(p.parks))
	p.cron.Start()

	go func() {
		p.tick(ctx)
		select {
		case <-ctx.Done():
		case <-p.done:
		}
		<-p.cron.Stop().Done()
		logging.Info(p.logger, "poller stopped")
	}()
}

// Stop halts scheduling and waits for an in-flight cycle, bounded by ctx.
func (p *Poller) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() { close(p.done) })

	p.startMu.Lock()
	c := p.cron
	p.startMu.Unlock()
	if c == nil {
		return nil
	}
	select {
	case <-c.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// tick runs a scheduled cycle unless one is still in progress.
func (p *Poller) tick(ctx context.Context) {
	if !p.runMu.TryLock() {
		logging.Warn(p.logger, "poll cycle still running, skipping tick")
		return
	}
	defer p.runMu.Unlock()
	_ = p.runCycle(ctx)
}

// RunOnce runs a single cycle over all parks and returns the joined per-park errors.
func (p *Poller) RunOnce(ctx context.Context) error {
	p.runMu.Lock()
	defer p.runMu.Unlock()
	return p.runCycle(ctx)
}

func (p *Poller) runCycle(ctx context.Context) error {
	start := time.Now()
	cycleID := p.newID()
	logger := p.logger
	if logger != nil {
		logger = logger.With(logging.FieldCycleID, cycleID)
	}
	ctx = logging.WithLogger(ctx, logger)
	p.recordAttempt(p.now())

	var errs []error
	for _, park := range p.parks {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		ps, err := p.pollPark(ctx, logger, park)
		p.recordPark(park.EntityID, ps)
		if err != nil {
			logging.Error(logger, "park collection failed", err, logging.FieldPark, park.Name)
			errs = append(errs, fmt.Errorf("%s: %w", park.Name, err))
		}
	}

	err := errors.Join(errs...)
	elapsed := time.Since(start)
	p.metrics.RecordPollerCycle(elapsed, err)
	if err != nil {
		p.recordFailure(err)
		return err
	}
	p.recordSuccess(p.now())
	logging.Info(logger, "poll cycle complete",
		logging.FieldCount, len(p.parks),
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
	return nil
}

func (p *Poller) pollPark(ctx context.Context, logger *slog.Logger, park parks.Park) (ParkStatus, error) {
	now := p.now().In(park.Loc())
	ps := ParkStatus{LastPoll: now}

	if p.onlyWhenOpen && p.resolver != nil {
		date := timeutil.FormatDate(now)
		window, ok := p.resolver.Resolve(ctx, park.EntityID, date)
		if !ok || !window.Contains(now) {
			ps.Skipped = true
			p.metrics.RecordParkSkipped(park.Name)
			logging.Info(logger, "park closed, skipping",
				logging.FieldPark, park.Name,
				logging.FieldDate, date,
			)
			return ps, nil
		}
	}

	ps.Event = parks.ActiveEvent(park.Events, now)
	if p.collector == nil {
		return ps, errors.New("no collector configured")
	}
	res, err := p.collector.Collect(ctx, park, ps.Event, now)
	ps.Rows = res.Rows
	ps.Path = res.Path
	if err != nil {
		ps.Error = err.Error()
	}
	return ps, err
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
}

func (p *Poller) recordPark(entityID string, ps ParkStatus) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.Parks[entityID] = ps
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	out := p.status
	out.Parks = make(map[string]ParkStatus, len(p.status.Parks))
	for k, v := range p.status.Parks {
		out.Parks[k] = v
	}
	return out
}

// Parks returns the configured parks in declared order.
func (p *Poller) Parks() []parks.Park {
	return p.parks
}
