// Package push keeps a single live push-channel connection to the topology
// service, reconnecting with a fixed delay whenever it is lost.
package push

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultReconnectDelay is the fixed backoff between connection attempts.
const DefaultReconnectDelay = 5 * time.Second

// Conn is one established push-channel connection.
type Conn interface {
	// ReadMessage blocks until the next complete message arrives.
	ReadMessage() ([]byte, error)
	Close() error
}

// Dialer opens push-channel connections.
type Dialer interface {
	Dial(ctx context.Context) (Conn, error)
}

// Option configures a Manager.
type Option func(*Manager)

// WithReconnectDelay overrides DefaultReconnectDelay.
func WithReconnectDelay(d time.Duration) Option {
	return func(m *Manager) { m.delay = d }
}

// WithMessageHandler sets the function every inbound message is passed to,
// one at a time and in arrival order.
func WithMessageHandler(fn func([]byte)) Option {
	return func(m *Manager) { m.onMessage = fn }
}

// WithStateHandler sets the function notified on every state transition.
func WithStateHandler(fn func(State)) Option {
	return func(m *Manager) { m.onState = fn }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// Manager owns the push-channel connection and its state machine:
// connecting -> open -> closed-retrying -> connecting -> ...
type Manager struct {
	dialer    Dialer
	delay     time.Duration
	onMessage func([]byte)
	onState   func(State)
	logger    *slog.Logger
	sleep     func(ctx context.Context, d time.Duration) error

	mu    sync.Mutex
	state State
}

// NewManager creates a Manager in the Connecting state.
func NewManager(d Dialer, opts ...Option) *Manager {
	m := &Manager{
		dialer:    d,
		delay:     DefaultReconnectDelay,
		onMessage: func([]byte) {},
		onState:   func(State) {},
		logger:    slog.Default(),
		sleep:     sleepContext,
		state:     Connecting,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With("component", "push")
	return m
}

// State returns the current connection state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Run connects and keeps reconnecting until ctx is cancelled. Connection
// failures are never returned; the only error is ctx.Err().
func (m *Manager) Run(ctx context.Context) error {
	m.onState(m.State())
	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			m.setState(Connecting)
			reconnects.Inc()
		}

		conn, err := m.dialer.Dial(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			m.logger.Warn("push channel connect failed", "error", err, "retry_in", m.delay)
		} else {
			m.setState(Open)
			m.logger.Info("push channel connected")
			err = m.readLoop(ctx, conn)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			m.logger.Warn("push channel closed", "error", err, "retry_in", m.delay)
		}

		m.setState(ClosedRetrying)
		if err := m.sleep(ctx, m.delay); err != nil {
			return err
		}
	}
}

func (m *Manager) readLoop(ctx context.Context, conn Conn) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-stop:
		}
	}()
	defer func() { _ = conn.Close() }()

	for {
		msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		messages.Inc()
		m.onMessage(msg)
	}
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	changed := m.state != s
	m.state = s
	m.mu.Unlock()

	if changed {
		connectionState.Set(float64(s))
		m.onState(s)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
