package clock

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Loop serialises every callback of one page session onto a single goroutine.
// Timer callbacks and posted work run in FIFO order; after each one the
// afterEach hook runs, which live sessions use to flush pending patches.
type Loop struct {
	queue     chan func()
	afterEach func()
	done      chan struct{}
	closeOnce sync.Once
}

func NewLoop(afterEach func()) *Loop {
	return &Loop{
		queue:     make(chan func(), 256),
		afterEach: afterEach,
		done:      make(chan struct{}),
	}
}

// Post queues f for the loop goroutine. It reports false once the loop has
// stopped.
func (l *Loop) Post(f func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.queue <- f:
		return true
	case <-l.done:
		return false
	}
}

// Run processes queued callbacks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	defer l.closeOnce.Do(func() { close(l.done) })
	for {
		select {
		case <-ctx.Done():
			return
		case f := <-l.queue:
			f()
			if l.afterEach != nil {
				l.afterEach()
			}
		}
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} { return l.done }

func (l *Loop) Now() time.Time { return time.Now() }

func (l *Loop) AfterFunc(d time.Duration, f func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		if t.stopped.Load() {
			return
		}
		l.Post(func() {
			if t.stopped.CompareAndSwap(false, true) {
				f()
			}
		})
	})
	return t
}

func (l *Loop) Every(d time.Duration, f func()) Timer {
	t := &loopTimer{quit: make(chan struct{})}
	ticker := time.NewTicker(d)
	var pending atomic.Bool
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-t.quit:
				return
			case <-l.done:
				return
			case <-ticker.C:
				// Skip ticks while the previous one is still queued.
				if !pending.CompareAndSwap(false, true) {
					continue
				}
				l.Post(func() {
					pending.Store(false)
					if !t.stopped.Load() {
						f()
					}
				})
			}
		}
	}()
	return t
}

type loopTimer struct {
	timer   *time.Timer
	quit    chan struct{}
	stopped atomic.Bool
}

func (t *loopTimer) Stop() bool {
	if !t.stopped.CompareAndSwap(false, true) {
		return false
	}
	if t.timer != nil {
		t.timer.Stop()
	}
	if t.quit != nil {
		close(t.quit)
	}
	return true
}
