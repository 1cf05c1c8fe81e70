package clock

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestManualAfterFunc(t *testing.T) {
	m := NewManual(epoch)
	fired := 0
	m.AfterFunc(10*time.Millisecond, func() { fired++ })

	m.Advance(9 * time.Millisecond)
	assert.Equal(t, 0, fired)
	assert.Equal(t, 1, m.Pending())

	m.Advance(time.Millisecond)
	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, m.Pending())

	m.Advance(time.Second)
	assert.Equal(t, 1, fired)
	assert.Equal(t, epoch.Add(time.Second+10*time.Millisecond), m.Now())
}

func TestManualEveryAndStop(t *testing.T) {
	m := NewManual(epoch)
	ticks := 0
	timer := m.Every(30*time.Millisecond, func() { ticks++ })

	m.Advance(95 * time.Millisecond)
	assert.Equal(t, 3, ticks)

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	m.Advance(time.Second)
	assert.Equal(t, 3, ticks)
	assert.Equal(t, 0, m.Pending())
}

func TestManualOrdering(t *testing.T) {
	m := NewManual(epoch)
	var order []string
	m.AfterFunc(20*time.Millisecond, func() { order = append(order, "b") })
	m.AfterFunc(10*time.Millisecond, func() {
		order = append(order, "a")
		m.AfterFunc(5*time.Millisecond, func() { order = append(order, "nested") })
	})
	m.AfterFunc(20*time.Millisecond, func() { order = append(order, "c") })

	m.Advance(time.Second)
	assert.Equal(t, []string{"a", "nested", "b", "c"}, order)
}

func TestManualStopFromCallback(t *testing.T) {
	m := NewManual(epoch)
	var second Timer
	hits := 0
	m.AfterFunc(10*time.Millisecond, func() { second.Stop() })
	second = m.AfterFunc(10*time.Millisecond, func() { hits++ })

	m.Advance(time.Second)
	assert.Equal(t, 0, hits)
}

func TestLoopRunsPostedWorkInOrder(t *testing.T) {
	var flushes atomic.Int32
	l := NewLoop(func() { flushes.Add(1) })
	ctx, cancel := context.WithCancel(context.Background())
	go l.Run(ctx)

	results := make(chan int, 3)
	for i := 1; i <= 3; i++ {
		i := i
		require.True(t, l.Post(func() { results <- i }))
	}
	for i := 1; i <= 3; i++ {
		assert.Equal(t, i, <-results)
	}

	cancel()
	<-l.Done()
	assert.Equal(t, int32(3), flushes.Load())
	assert.False(t, l.Post(func() {}))
}

func TestLoopTimers(t *testing.T) {
	l := NewLoop(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	fired := make(chan struct{})
	l.AfterFunc(5*time.Millisecond, func() { close(fired) })
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("AfterFunc did not fire")
	}

	var ticks atomic.Int32
	timer := l.Every(5*time.Millisecond, func() { ticks.Add(1) })
	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	assert.True(t, timer.Stop())

	// A tick already queued must not run after Stop.
	stopped := make(chan int32)
	l.Post(func() { stopped <- ticks.Load() })
	before := <-stopped
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, before, ticks.Load())
}

func TestLoopStoppedAfterFuncNeverRuns(t *testing.T) {
	l := NewLoop(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	var hit atomic.Bool
	timer := l.AfterFunc(10*time.Millisecond, func() { hit.Store(true) })
	assert.True(t, timer.Stop())
	time.Sleep(40 * time.Millisecond)
	assert.False(t, hit.Load())
}
