// Package clock provides the timer source used by page components. Loop runs
// callbacks on a single goroutine against the real clock; Manual drives them
// by hand in tests.
package clock

import "time"

// Scheduler creates one-shot and repeating timers. Callbacks never run
// concurrently with each other.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
	Every(d time.Duration, f func()) Timer
}

// Timer cancels a scheduled callback. Stop reports whether the timer was
// still active.
type Timer interface {
	Stop() bool
}
