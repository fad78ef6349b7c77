// Package app is the application context: it owns the Gate, the
// Reconciler (and through it the Mirror), the push Manager and the
// Scheduler, and runs every state change on a single event loop.
package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ThomasCrouzet/inframap-live/internal/gate"
	"github.com/ThomasCrouzet/inframap-live/internal/model"
	"github.com/ThomasCrouzet/inframap-live/internal/push"
	"github.com/ThomasCrouzet/inframap-live/internal/reconcile"
	"github.com/ThomasCrouzet/inframap-live/internal/render"
	"github.com/ThomasCrouzet/inframap-live/internal/schedule"
)

// DefaultFitDelay is how long the layout settles before a fit-to-view.
const DefaultFitDelay = 500 * time.Millisecond

// ErrStopped is returned by calls made after Run has returned.
var ErrStopped = errors.New("app stopped")

// Fetcher pulls snapshots and the pass-through exports.
type Fetcher interface {
	Snapshot(ctx context.Context) ([]byte, error)
	PlantUML(ctx context.Context) (string, error)
	ExportJSON(ctx context.Context) ([]byte, error)
}

// Indicator shows availability, connection state and summary counters.
// All methods are called from the event loop.
type Indicator interface {
	SetAvailability(available bool, message string)
	SetConnection(s push.State)
	SetSummary(s model.Summary, updated time.Time)
}

// Options configures an App. Fetcher, Sink and Indicator are required.
type Options struct {
	Fetcher   Fetcher
	Sink      render.GraphSink
	Indicator Indicator
	// Dialer opens the push channel; nil runs pull-only.
	Dialer push.Dialer

	PollInterval   time.Duration
	ReconnectDelay time.Duration
	FitDelay       time.Duration
	FitPolicy      reconcile.FitPolicy
	// Render configures the D2 export of the Mirror.
	Render render.Options

	Logger *slog.Logger
}

// App wires the components together. Construct it once with New and
// call Run; the other methods may be called from any goroutine.
type App struct {
	events chan func()
	done   chan struct{}

	fetcher    Fetcher
	gate       *gate.Gate
	reconciler *reconcile.Reconciler
	sink       render.GraphSink
	indicator  Indicator
	manager    *push.Manager
	scheduler  *schedule.Scheduler
	renderOpts render.Options
	logger     *slog.Logger

	fitDelay  time.Duration
	afterFunc func(time.Duration, func())

	// Loop-owned state.
	ctx        context.Context
	pulls      sync.WaitGroup
	fitPending bool
	physics    bool
	connState  push.State
	summary    model.Summary
	lastUpdate time.Time
}

// New builds an App from opts.
func New(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.FitDelay == 0 {
		opts.FitDelay = DefaultFitDelay
	}
	if opts.FitPolicy == "" {
		opts.FitPolicy = reconcile.FitOnPopulate
	}

	a := &App{
		events:     make(chan func(), 64),
		done:       make(chan struct{}),
		fetcher:    opts.Fetcher,
		gate:       gate.New(),
		reconciler: reconcile.New(opts.FitPolicy, logger),
		sink:       opts.Sink,
		indicator:  opts.Indicator,
		renderOpts: opts.Render,
		logger:     logger.With("component", "app"),
		fitDelay:   opts.FitDelay,
		afterFunc:  func(d time.Duration, f func()) { time.AfterFunc(d, f) },
		ctx:        context.Background(),
		physics:    true,
		connState:  push.Connecting,
	}

	a.scheduler = schedule.New(opts.PollInterval, func() { _ = a.post(context.Background(), a.pull) }, logger)

	if opts.Dialer != nil {
		popts := []push.Option{
			push.WithLogger(logger),
			push.WithMessageHandler(a.onPushMessage),
			push.WithStateHandler(func(s push.State) {
				_ = a.post(context.Background(), func() { a.setConnection(s) })
			}),
		}
		if opts.ReconnectDelay > 0 {
			popts = append(popts, push.WithReconnectDelay(opts.ReconnectDelay))
		}
		a.manager = push.NewManager(opts.Dialer, popts...)
	}
	return a
}

// Run performs the initial pull, starts the push channel and the
// scheduler, and processes events until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.ctx = ctx

	var wg sync.WaitGroup
	if a.manager != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = a.manager.Run(ctx)
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = a.scheduler.Run(ctx)
	}()

	a.logger.Info("started",
		"poll_interval", a.scheduler.Interval(),
		"push", a.manager != nil)
	a.pull()

	for {
		select {
		case fn := <-a.events:
			fn()
		case <-ctx.Done():
			close(a.done)
			wg.Wait()
			a.pulls.Wait()
			return ctx.Err()
		}
	}
}

// post queues fn on the event loop.
func (a *App) post(ctx context.Context, fn func()) error {
	select {
	case a.events <- fn:
		return nil
	case <-a.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// call runs fn on the event loop and waits for it to finish.
func (a *App) call(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if err := a.post(ctx, func() { fn(); close(finished) }); err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-a.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// pull starts a snapshot request. The response is handled on the loop in
// arrival order; an older response landing after a newer push still wins.
func (a *App) pull() {
	ctx := a.ctx
	a.pulls.Add(1)
	go func() {
		defer a.pulls.Done()
		raw, err := a.fetcher.Snapshot(ctx)
		var r gate.Result
		if err != nil {
			r = gate.FromTransportError(err)
		} else {
			r = gate.Classify(raw)
		}
		_ = a.post(ctx, func() { a.handle(r, "pull") })
	}()
}

// onPushMessage blocks the push reader until the message is reconciled,
// so messages are handled one at a time in arrival order.
func (a *App) onPushMessage(msg []byte) {
	_ = a.call(context.Background(), func() { a.handle(gate.Classify(msg), "push") })
}

// handle is the single reconciliation entry point for pull and push.
func (a *App) handle(r gate.Result, source string) {
	changed := a.gate.Observe(r)
	a.scheduler.SetAvailable(r.Available)
	if changed {
		if r.Available {
			a.logger.Info("source available", "source", source)
		} else {
			a.logger.Warn("source unavailable", "source", source, "message", r.Message, "error", r.Cause)
		}
		a.indicator.SetAvailability(r.Available, r.Message)
	}
	if !r.Available {
		return
	}

	delta := a.reconciler.Apply(r.Snapshot)
	if err := render.Replay(a.sink, delta.Ops); err != nil {
		a.logger.Error("render failed", "source", source, "error", err)
	}

	a.summary = delta.Summary
	a.lastUpdate = r.Snapshot.Timestamp
	if a.lastUpdate.IsZero() {
		a.lastUpdate = time.Now()
	}
	a.indicator.SetSummary(a.summary, a.lastUpdate)

	if delta.Fit {
		a.scheduleFit()
	}
}

// scheduleFit arms one fit-to-view after the settle delay. Requests made
// while one is pending collapse into it.
func (a *App) scheduleFit() {
	if a.fitPending {
		return
	}
	a.fitPending = true
	a.afterFunc(a.fitDelay, func() {
		_ = a.post(context.Background(), func() {
			a.fitPending = false
			if !a.reconciler.Mirror().Empty() {
				a.sink.Fit()
			}
		})
	})
}

func (a *App) setConnection(s push.State) {
	a.connState = s
	a.indicator.SetConnection(s)
}
