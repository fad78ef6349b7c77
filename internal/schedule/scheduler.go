// Package schedule drives the periodic pull of snapshots.
package schedule

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultInterval is the time between periodic pulls.
const DefaultInterval = 30 * time.Second

var ticks = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "inframap_live_scheduler_ticks_total",
	Help: "Scheduler ticks by outcome (pulled or skipped)",
}, []string{"outcome"})

// Scheduler issues a pull on a fixed interval, but only while the source
// was last known to be available. It never backs off.
type Scheduler struct {
	interval  time.Duration
	pull      func()
	available atomic.Bool
	logger    *slog.Logger

	newTicker func(d time.Duration) (<-chan time.Time, func())
}

// New creates a Scheduler that calls pull on every tick while available.
// The source is assumed available until SetAvailable says otherwise.
func New(interval time.Duration, pull func(), logger *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Scheduler{
		interval:  interval,
		pull:      pull,
		logger:    logger.With("component", "scheduler"),
		newTicker: realTicker,
	}
	s.available.Store(true)
	return s
}

// SetAvailable records the latest availability verdict.
func (s *Scheduler) SetAvailable(ok bool) {
	s.available.Store(ok)
}

// Available returns the last recorded availability.
func (s *Scheduler) Available() bool {
	return s.available.Load()
}

// Interval returns the pull interval.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Run ticks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	tick, stop := s.newTicker(s.interval)
	defer stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
			s.Tick()
		}
	}
}

// Tick pulls if the source was last known available and reports whether
// it did.
func (s *Scheduler) Tick() bool {
	if !s.available.Load() {
		ticks.WithLabelValues("skipped").Inc()
		s.logger.Debug("source unavailable, skipping periodic pull")
		return false
	}
	ticks.WithLabelValues("pulled").Inc()
	s.pull()
	return true
}

func realTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}
