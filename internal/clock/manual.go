package clock

import (
	"sort"
	"time"
)

// Manual is a Scheduler whose time only moves when Advance is called. Due
// callbacks run synchronously on the caller's goroutine, ordered by due time
// and then by creation order.
type Manual struct {
	now    time.Time
	seq    int
	timers []*manualTimer
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time { return m.now }

func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	return m.add(d, 0, f)
}

func (m *Manual) Every(d time.Duration, f func()) Timer {
	if d <= 0 {
		d = time.Nanosecond
	}
	return m.add(d, d, f)
}

func (m *Manual) add(d, period time.Duration, f func()) *manualTimer {
	m.seq++
	t := &manualTimer{due: m.now.Add(d), period: period, seq: m.seq, f: f}
	m.timers = append(m.timers, t)
	return t
}

// Advance moves time forward by d, running every callback that falls due on
// the way. Timers created by callbacks also fire if they fall within d.
func (m *Manual) Advance(d time.Duration) {
	end := m.now.Add(d)
	for {
		t := m.next(end)
		if t == nil {
			break
		}
		m.now = t.due
		if t.period > 0 {
			t.due = t.due.Add(t.period)
			m.seq++
			t.seq = m.seq
		} else {
			t.stopped = true
		}
		t.f()
	}
	m.now = end
	m.prune()
}

func (m *Manual) next(end time.Time) *manualTimer {
	var active []*manualTimer
	for _, t := range m.timers {
		if !t.stopped && !t.due.After(end) {
			active = append(active, t)
		}
	}
	if len(active) == 0 {
		return nil
	}
	sort.Slice(active, func(i, j int) bool {
		if !active[i].due.Equal(active[j].due) {
			return active[i].due.Before(active[j].due)
		}
		return active[i].seq < active[j].seq
	})
	return active[0]
}

func (m *Manual) prune() {
	kept := m.timers[:0]
	for _, t := range m.timers {
		if !t.stopped {
			kept = append(kept, t)
		}
	}
	m.timers = kept
}

// Pending counts timers that are still scheduled.
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

type manualTimer struct {
	due     time.Time
	period  time.Duration
	seq     int
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}
