package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func manualTicker(ch chan time.Time) func(time.Duration) (<-chan time.Time, func()) {
	return func(time.Duration) (<-chan time.Time, func()) {
		return ch, func() {}
	}
}

func TestSchedulerTickGating(t *testing.T) {
	var pulls int
	s := New(time.Minute, func() { pulls++ }, nil)

	assert.True(t, s.Available())
	assert.True(t, s.Tick())
	assert.Equal(t, 1, pulls)

	s.SetAvailable(false)
	assert.False(t, s.Tick())
	assert.False(t, s.Tick())
	assert.Equal(t, 1, pulls)

	s.SetAvailable(true)
	assert.True(t, s.Tick())
	assert.Equal(t, 2, pulls)
}

func TestSchedulerRun(t *testing.T) {
	var pulls atomic.Int32
	pulled := make(chan struct{}, 4)
	s := New(0, func() {
		pulls.Add(1)
		pulled <- struct{}{}
	}, nil)
	assert.Equal(t, DefaultInterval, s.Interval())

	ticks := make(chan time.Time)
	s.newTicker = manualTicker(ticks)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	ticks <- time.Now()
	<-pulled

	s.SetAvailable(false)
	ticks <- time.Now()
	// The unbuffered send returns once Run received the tick; a second send
	// guarantees the first one has been fully handled.
	ticks <- time.Now()

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, int32(1), pulls.Load())
}

func TestSchedulerRealTicker(t *testing.T) {
	pulled := make(chan struct{}, 1)
	s := New(5*time.Millisecond, func() {
		select {
		case pulled <- struct{}{}:
		default:
		}
	}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go func() { _ = s.Run(ctx) }()

	select {
	case <-pulled:
	case <-ctx.Done():
		t.Fatal("no pull issued")
	}
}
