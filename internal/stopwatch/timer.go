package stopwatch

import (
	"sync"
	"sync/atomic"
	"time"
)

var timerIDs atomic.Uint64

// Timer is a cancellable periodic tick source. Each Timer gets a unique id so
// a consumer can tell its ticks apart from those of a timer it already
// released.
type Timer struct {
	id       uint64
	interval time.Duration
	c        chan struct{}
	done     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once
}

// StartTimer acquires a new tick source firing every interval.
// Intervals below one millisecond are raised to one millisecond.
func StartTimer(interval time.Duration) *Timer {
	if interval < time.Millisecond {
		interval = time.Millisecond
	}
	t := &Timer{
		id:       timerIDs.Add(1),
		interval: interval,
		c:        make(chan struct{}),
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *Timer) run() {
	defer close(t.exited)
	defer close(t.c)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			select {
			case t.c <- struct{}{}:
			case <-t.done:
				return
			}
		}
	}
}

func (t *Timer) ID() uint64 { return t.id }

func (t *Timer) Interval() time.Duration { return t.interval }

// C delivers one value per tick. It is closed once the timer is stopped.
func (t *Timer) C() <-chan struct{} { return t.c }

// DeltaMs is how far one tick advances the stopwatch.
func (t *Timer) DeltaMs() int64 {
	return t.interval.Milliseconds()
}

// Stop releases the timer and waits for its goroutine to exit. Calling it
// more than once is a no-op.
func (t *Timer) Stop() {
	if t == nil {
		return
	}
	t.stopOnce.Do(func() { close(t.done) })
	<-t.exited
}

// Stopped reports whether the timer goroutine has exited.
func (t *Timer) Stopped() bool {
	select {
	case <-t.exited:
		return true
	default:
		return false
	}
}
