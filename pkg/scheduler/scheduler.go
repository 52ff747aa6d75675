// Package scheduler drives the periodic catalog fetch cycle, the shared item retention sweep
// and the control message loop.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newswatcher/pkg/control"
)

// ErrSystemic is reported once too many consecutive fetch cycles failed and timers were stopped
var ErrSystemic = errors.New("systemic failure, periodic tasks stopped")

// Scheduler runs two timer tasks, catalog fetch and retention sweep, each with its own
// cancellation, plus a control worker consuming the mailbox.
type Scheduler struct {
	fetcher     CatalogFetcher
	builder     CatalogBuilder
	coordinator *Coordinator
	sweeper     *Sweeper
	mailbox     *control.Mailbox

	fetchInterval time.Duration
	sweepInterval time.Duration
	maxFailures   int
	runOnStart    bool

	cycleMu sync.Mutex // one fetch cycle at a time

	mu          sync.Mutex
	status      Status
	fetchCancel context.CancelFunc
	sweepCancel context.CancelFunc
}

// Params holds scheduler dependencies and configuration
type Params struct {
	Fetcher     CatalogFetcher
	Builder     CatalogBuilder
	Coordinator *Coordinator
	Sweeper     *Sweeper         // optional, no sweep task if nil
	Mailbox     *control.Mailbox // optional, no control worker if nil

	FetchInterval time.Duration
	SweepInterval time.Duration
	MaxFailures   int // consecutive failed cycles before timers stop, 0 disables
	RunOnStart    bool
}

// Status is a point-in-time view of the scheduler state
type Status struct {
	CatalogVersion      int64     `json:"catalogVersion"`
	Cycles              int       `json:"cycles"`
	LastCycle           time.Time `json:"lastCycle"`
	LastSuccess         time.Time `json:"lastSuccess"`
	LastError           string    `json:"lastError,omitempty"`
	ConsecutiveFailures int       `json:"consecutiveFailures"`
	LastSweep           time.Time `json:"lastSweep"`
	Fatal               bool      `json:"fatal"`
}

// NewScheduler makes a scheduler. Intervals default to 240m for fetch and 24h for sweep.
func NewScheduler(params Params) *Scheduler {
	if params.FetchInterval <= 0 {
		params.FetchInterval = 240 * time.Minute
	}
	if params.SweepInterval <= 0 {
		params.SweepInterval = 24 * time.Hour
	}
	return &Scheduler{
		fetcher:       params.Fetcher,
		builder:       params.Builder,
		coordinator:   params.Coordinator,
		sweeper:       params.Sweeper,
		mailbox:       params.Mailbox,
		fetchInterval: params.FetchInterval,
		sweepInterval: params.SweepInterval,
		maxFailures:   params.MaxFailures,
		runOnStart:    params.RunOnStart,
	}
}

// Run starts all tasks and blocks until ctx is canceled or a task panics. A panic is returned
// as an error after every other task has stopped, so the caller can restart the scheduler.
// Timers are not started again once the scheduler went into the fatal state.
func (s *Scheduler) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 3)
	var wg sync.WaitGroup

	s.mu.Lock()
	fatal := s.status.Fatal
	if !fatal {
		var fetchCtx, sweepCtx context.Context
		fetchCtx, s.fetchCancel = context.WithCancel(ctx)
		s.spawn(&wg, errCh, "fetch", func() error {
			return s.timerLoop(fetchCtx, s.fetchInterval, s.runOnStart, s.fetchCycle)
		})
		if s.sweeper != nil {
			sweepCtx, s.sweepCancel = context.WithCancel(ctx)
			s.spawn(&wg, errCh, "sweep", func() error {
				return s.timerLoop(sweepCtx, s.sweepInterval, false, s.sweepCycle)
			})
		}
	}
	s.mu.Unlock()

	if s.mailbox != nil {
		s.spawn(&wg, errCh, "control", func() error { return s.controlLoop(ctx) })
	}

	if fatal {
		lgr.Printf("[WARN] scheduler is in fatal state, periodic tasks are not started")
	} else {
		lgr.Printf("[INFO] scheduler started with fetch interval %v, sweep interval %v", s.fetchInterval, s.sweepInterval)
	}

	var err error
	select {
	case <-ctx.Done():
	case err = <-errCh:
		lgr.Printf("[ERROR] scheduler task failed: %v", err)
	}
	cancel()
	wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
	return err
}

// FetchNow runs a fetch cycle immediately, outside of the timer
func (s *Scheduler) FetchNow(ctx context.Context) (RefreshStats, error) {
	if s.Status().Fatal {
		return RefreshStats{}, ErrSystemic
	}
	lgr.Printf("[INFO] triggered immediate catalog fetch")
	stats, err := s.cycle(ctx)
	s.recordCycle(ctx, stats, err)
	return stats, err
}

// Status returns the current scheduler state
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// spawn runs fn in a goroutine, a returned error or a panic is reported to errCh
func (s *Scheduler) spawn(wg *sync.WaitGroup, errCh chan<- error, name string, fn func() error) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				errCh <- fmt.Errorf("%s task panic: %v", name, r)
			}
		}()
		if err := fn(); err != nil {
			errCh <- fmt.Errorf("%s task: %w", name, err)
		}
	}()
}

func (s *Scheduler) timerLoop(ctx context.Context, interval time.Duration, runFirst bool, fn func(ctx context.Context)) error {
	if runFirst {
		fn(ctx)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			fn(ctx)
		}
	}
}

func (s *Scheduler) fetchCycle(ctx context.Context) {
	stats, err := s.cycle(ctx)
	s.recordCycle(ctx, stats, err)
}

// cycle fetches every category, builds the catalog and refreshes all subscribers against it
func (s *Scheduler) cycle(ctx context.Context) (RefreshStats, error) {
	s.cycleMu.Lock()
	defer s.cycleMu.Unlock()

	start := time.Now()
	batches, err := s.fetcher.FetchAll(ctx)
	if err != nil {
		return RefreshStats{}, fmt.Errorf("fetch catalog: %w", err)
	}
	cat, err := s.builder.Build(ctx, batches)
	if err != nil {
		return RefreshStats{}, fmt.Errorf("build catalog: %w", err)
	}
	stats, err := s.coordinator.RefreshAll(ctx, cat)
	if err != nil && stats.Version == 0 {
		return stats, fmt.Errorf("refresh: %w", err)
	}
	if err != nil {
		// catalog is saved, subscribers will catch up on the next cycle or on their own refresh
		lgr.Printf("[WARN] catalog v%d saved but subscriber refresh incomplete: %v", stats.Version, err)
	}
	lgr.Printf("[INFO] fetch cycle completed in %v, catalog v%d", time.Since(start).Round(time.Millisecond), stats.Version)
	return stats, nil
}

// recordCycle updates status and stops both timers once maxFailures consecutive cycles failed
func (s *Scheduler) recordCycle(ctx context.Context, stats RefreshStats, err error) {
	if err != nil && ctx.Err() != nil {
		return // canceled, not a failure
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.LastCycle = time.Now()
	s.status.Cycles++
	if err == nil {
		s.status.LastSuccess = s.status.LastCycle
		s.status.CatalogVersion = stats.Version
		s.status.ConsecutiveFailures = 0
		s.status.LastError = ""
		return
	}

	s.status.ConsecutiveFailures++
	s.status.LastError = err.Error()
	lgr.Printf("[WARN] fetch cycle failed (%d in a row): %v", s.status.ConsecutiveFailures, err)
	if s.maxFailures <= 0 || s.status.ConsecutiveFailures < s.maxFailures || s.status.Fatal {
		return
	}

	s.status.Fatal = true
	lgr.Printf("[ERROR] %v after %d failed cycles, last error: %v", ErrSystemic, s.status.ConsecutiveFailures, err)
	if s.fetchCancel != nil {
		s.fetchCancel()
	}
	if s.sweepCancel != nil {
		s.sweepCancel()
	}
}

func (s *Scheduler) sweepCycle(ctx context.Context) {
	if _, err := s.sweeper.Sweep(ctx); err != nil {
		if ctx.Err() == nil {
			lgr.Printf("[WARN] sweep failed: %v", err)
		}
		return
	}
	s.mu.Lock()
	s.status.LastSweep = time.Now()
	s.mu.Unlock()
}

// controlLoop consumes control messages until ctx is canceled. It keeps serving after the
// timers were stopped by a systemic failure.
func (s *Scheduler) controlLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-s.mailbox.Receive():
			s.handleMessage(ctx, msg)
		}
	}
}

func (s *Scheduler) handleMessage(ctx context.Context, msg control.Message) {
	switch msg.Kind {
	case control.KindRefreshSubscriber:
		sub, err := s.coordinator.RefreshSubscriber(ctx, msg.Subscriber)
		if err != nil {
			lgr.Printf("[WARN] refresh of subscriber %d failed: %v", msg.Subscriber.ID, err)
			msg.Respond(err)
			return
		}
		lgr.Printf("[INFO] subscriber %d refreshed, %d filters", sub.ID, len(sub.Filters))
		msg.Respond(nil)
	default:
		lgr.Printf("[WARN] unknown control message %q", msg.Kind)
		msg.Respond(fmt.Errorf("%w: %q", control.ErrUnknownKind, msg.Kind))
	}
}
