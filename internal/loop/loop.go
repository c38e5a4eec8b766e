// Package loop drives frame callbacks and timers from a single thread.
//
// Everything scheduled through a Loop runs inside Tick, which the game calls
// once per rendered frame. Post is the only method that may be called from
// other goroutines.
package loop

import (
	"sync"
	"time"
)

// Clock supplies the current time to the loop and its users.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock only moves when told to.
type ManualClock struct {
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time          { return c.now }
func (c *ManualClock) Set(t time.Time)         { c.now = t }
func (c *ManualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// Timer is a handle to a scheduled callback.
type Timer struct {
	fn       func()
	next     time.Time
	interval time.Duration
	stopped  bool
}

// Stop cancels the timer. The callback will not run again, even if it was
// already due in the current tick.
func (t *Timer) Stop() {
	if t != nil {
		t.stopped = true
	}
}

func (t *Timer) Stopped() bool { return t == nil || t.stopped }

type Loop struct {
	clock  Clock
	frames []func()
	timers []*Timer

	mu    sync.Mutex
	inbox []func()

	frame uint64
}

func New(clock Clock) *Loop {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Loop{clock: clock}
}

func (l *Loop) Now() time.Time { return l.clock.Now() }

// Frame returns the number of completed ticks.
func (l *Loop) Frame() uint64 { return l.frame }

// RequestFrame runs fn on the next Tick.
func (l *Loop) RequestFrame(fn func()) {
	l.frames = append(l.frames, fn)
}

// Every runs fn each time interval elapses, at most once per Tick.
func (l *Loop) Every(interval time.Duration, fn func()) *Timer {
	t := &Timer{fn: fn, interval: interval, next: l.clock.Now().Add(interval)}
	l.timers = append(l.timers, t)
	return t
}

// After runs fn once, on the first Tick at or after d from now.
func (l *Loop) After(d time.Duration, fn func()) *Timer {
	t := &Timer{fn: fn, next: l.clock.Now().Add(d)}
	l.timers = append(l.timers, t)
	return t
}

// Post queues fn for the next Tick. Safe for concurrent use.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.inbox = append(l.inbox, fn)
	l.mu.Unlock()
}

// Pending reports how many frame callbacks are waiting for the next Tick.
func (l *Loop) Pending() int { return len(l.frames) }

// Tick runs posted work, then due timers, then the frame callbacks that were
// requested before this call.
func (l *Loop) Tick() {
	l.mu.Lock()
	posted := l.inbox
	l.inbox = nil
	l.mu.Unlock()
	for _, fn := range posted {
		fn()
	}

	now := l.clock.Now()
	due := make([]*Timer, 0, len(l.timers))
	for _, t := range l.timers {
		if !t.stopped && !now.Before(t.next) {
			due = append(due, t)
		}
	}
	for _, t := range due {
		if t.stopped {
			continue
		}
		if t.interval > 0 {
			t.next = t.next.Add(t.interval)
			if !t.next.After(now) {
				t.next = now.Add(t.interval)
			}
		} else {
			t.stopped = true
		}
		t.fn()
	}
	l.compactTimers()

	frames := l.frames
	l.frames = nil
	for _, fn := range frames {
		fn()
	}
	l.frame++
}

func (l *Loop) compactTimers() {
	live := l.timers[:0]
	for _, t := range l.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(l.timers); i++ {
		l.timers[i] = nil
	}
	l.timers = live
}
