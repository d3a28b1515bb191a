package stopwatch

import "time"

// Stopwatch owns a State together with the Timer driving it. Entering the
// running state acquires a timer; leaving it, resetting, or closing releases
// it. Calls must be serialized by the owner (the TUI update loop does this).
type Stopwatch struct {
	state    State
	timer    *Timer
	interval time.Duration
	layout   Layout
}

func New(interval time.Duration, layout Layout) *Stopwatch {
	if layout.SecondDivisor == 0 {
		layout = LayoutCentiseconds
	}
	return &Stopwatch{interval: interval, layout: layout}
}

func (s *Stopwatch) State() State { return s.state }

func (s *Stopwatch) Layout() Layout { return s.layout }

// Timer returns the active tick source, or nil while paused.
func (s *Stopwatch) Timer() *Timer { return s.timer }

// Toggle starts or pauses the stopwatch. It returns the new timer when the
// stopwatch started and nil when it paused.
func (s *Stopwatch) Toggle() *Timer {
	s.state = s.state.Toggle()
	if !s.state.Running {
		s.release()
		return nil
	}
	s.release()
	s.timer = StartTimer(s.interval)
	return s.timer
}

// Reset stops any running timer and zeroes the counter. It returns the
// elapsed time that was discarded.
func (s *Stopwatch) Reset() int64 {
	elapsed := s.state.ElapsedMs
	s.release()
	s.state = s.state.Reset()
	return elapsed
}

// Tick applies one tick from the timer with the given id. Ticks from a
// released timer are ignored and reported as false.
func (s *Stopwatch) Tick(timerID uint64) bool {
	if s.timer == nil || s.timer.ID() != timerID {
		return false
	}
	s.state = s.state.Tick(s.timer.DeltaMs())
	return true
}

// Display renders the current elapsed time with the configured layout.
func (s *Stopwatch) Display() string {
	return s.layout.Format(s.state.ElapsedMs)
}

// Close releases the timer. The stopwatch keeps its elapsed time.
func (s *Stopwatch) Close() {
	s.release()
	s.state.Running = false
}

func (s *Stopwatch) release() {
	if s.timer == nil {
		return
	}
	s.timer.Stop()
	s.timer = nil
}
