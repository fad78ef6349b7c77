package push

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errClosed = errors.New("closed")

type fakeConn struct {
	msgs   chan []byte
	closed chan struct{}
	once   sync.Once
}

func newFakeConn(msgs ...string) *fakeConn {
	c := &fakeConn{msgs: make(chan []byte, len(msgs)), closed: make(chan struct{})}
	for _, m := range msgs {
		c.msgs <- []byte(m)
	}
	return c
}

// hangUp makes ReadMessage fail with io.EOF once the buffered messages are consumed.
func (c *fakeConn) hangUp() *fakeConn {
	close(c.msgs)
	return c
}

func (c *fakeConn) ReadMessage() ([]byte, error) {
	select {
	case m, ok := <-c.msgs:
		if !ok {
			return nil, io.EOF
		}
		return m, nil
	case <-c.closed:
		return nil, errClosed
	}
}

func (c *fakeConn) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}

func (c *fakeConn) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

type dialResult struct {
	conn Conn
	err  error
}

// fakeDialer hands out scripted results, then blocks until the context ends.
type fakeDialer struct {
	mu       sync.Mutex
	results  []dialResult
	calls    int
	drained  chan struct{}
	drainOne sync.Once
}

func newFakeDialer(results ...dialResult) *fakeDialer {
	return &fakeDialer{results: results, drained: make(chan struct{})}
}

func (d *fakeDialer) Dial(ctx context.Context) (Conn, error) {
	d.mu.Lock()
	d.calls++
	if len(d.results) > 0 {
		r := d.results[0]
		d.results = d.results[1:]
		d.mu.Unlock()
		return r.conn, r.err
	}
	d.mu.Unlock()
	d.drainOne.Do(func() { close(d.drained) })
	<-ctx.Done()
	return nil, ctx.Err()
}

type recorder struct {
	mu     sync.Mutex
	states []State
	msgs   []string
	sleeps []time.Duration
	open   chan struct{}
}

func newRecorder() *recorder {
	return &recorder{open: make(chan struct{}, 8)}
}

func (r *recorder) options() []Option {
	return []Option{
		WithStateHandler(func(s State) {
			r.mu.Lock()
			r.states = append(r.states, s)
			r.mu.Unlock()
			if s == Open {
				r.open <- struct{}{}
			}
		}),
		WithMessageHandler(func(b []byte) {
			r.mu.Lock()
			r.msgs = append(r.msgs, string(b))
			r.mu.Unlock()
		}),
	}
}

func (r *recorder) sleep(_ context.Context, d time.Duration) error {
	r.mu.Lock()
	r.sleeps = append(r.sleeps, d)
	r.mu.Unlock()
	return nil
}

func TestManagerReconnectCycle(t *testing.T) {
	conn := newFakeConn(`{"n": 1}`, `{"n": 2}`).hangUp()
	dialer := newFakeDialer(
		dialResult{err: errors.New("connection refused")},
		dialResult{conn: conn},
	)
	rec := newRecorder()

	m := NewManager(dialer, rec.options()...)
	m.sleep = rec.sleep
	assert.Equal(t, Connecting, m.State())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	select {
	case <-dialer.drained:
	case <-time.After(5 * time.Second):
		t.Fatal("manager never reached its third dial")
	}
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	assert.Equal(t, []State{
		Connecting,
		ClosedRetrying,
		Connecting,
		Open,
		ClosedRetrying,
		Connecting,
	}, rec.states)
	assert.Equal(t, []time.Duration{DefaultReconnectDelay, DefaultReconnectDelay}, rec.sleeps)
	assert.Equal(t, []string{`{"n": 1}`, `{"n": 2}`}, rec.msgs)
	assert.True(t, conn.isClosed())
	assert.Equal(t, 3, dialer.calls)
}

func TestManagerCancelWhileOpen(t *testing.T) {
	conn := newFakeConn()
	rec := newRecorder()
	m := NewManager(newFakeDialer(dialResult{conn: conn}), rec.options()...)
	m.sleep = rec.sleep

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	select {
	case <-rec.open:
	case <-time.After(5 * time.Second):
		t.Fatal("manager never opened")
	}
	assert.Equal(t, Open, m.State())

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
	assert.True(t, conn.isClosed())
	assert.Empty(t, rec.sleeps)
}

func TestManagerCustomDelay(t *testing.T) {
	rec := newRecorder()
	dialer := newFakeDialer(dialResult{err: errors.New("refused")})
	m := NewManager(dialer, append(rec.options(), WithReconnectDelay(250*time.Millisecond))...)
	m.sleep = rec.sleep

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	<-dialer.drained
	cancel()
	<-done
	assert.Equal(t, []time.Duration{250 * time.Millisecond}, rec.sleeps)
}

func TestSleepContext(t *testing.T) {
	require.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "connecting", Connecting.String())
	assert.Equal(t, "open", Open.String())
	assert.Equal(t, "closed-retrying", ClosedRetrying.String())
	assert.Equal(t, "State(7)", State(7).String())
	assert.True(t, Open.Connected())
	assert.False(t, ClosedRetrying.Connected())
}
