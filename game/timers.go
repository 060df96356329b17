package game

import (
	"sort"
	"time"
)

// Timers runs deferred callbacks on the session clock. Callbacks fire from
// Advance, on the frame loop, so they read whatever state is current then.
type Timers struct {
	now   time.Duration
	seq   int
	items []timer
}

type timer struct {
	at  time.Duration
	seq int
	fn  func()
}

// After schedules fn to run once d from now.
func (t *Timers) After(d time.Duration, fn func()) {
	if fn == nil {
		return
	}
	t.seq++
	t.items = append(t.items, timer{at: t.now + d, seq: t.seq, fn: fn})
}

// Advance moves the clock forward and fires everything that came due, in
// due order. Callbacks scheduled while firing wait for a later Advance
// unless they are already due.
func (t *Timers) Advance(dt time.Duration) {
	t.now += dt
	for {
		due := t.popDue()
		if len(due) == 0 {
			return
		}
		for _, item := range due {
			item.fn()
		}
	}
}

func (t *Timers) popDue() []timer {
	var due, keep []timer
	for _, item := range t.items {
		if item.at <= t.now {
			due = append(due, item)
		} else {
			keep = append(keep, item)
		}
	}
	t.items = keep
	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	return due
}

func (t *Timers) Len() int { return len(t.items) }

func (t *Timers) Clear() {
	t.items = nil
}
