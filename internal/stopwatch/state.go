// Package stopwatch implements the millisecond stopwatch: its state
// transitions, the MM:SS:FF formatter and the periodic tick source.
package stopwatch

// State is the stopwatch model. ElapsedMs only moves through Tick, and only
// while Running is set.
type State struct {
	ElapsedMs int64
	Running   bool
}

// Toggle flips the running flag.
func (s State) Toggle() State {
	s.Running = !s.Running
	return s
}

// Reset returns the zero state regardless of the current one.
func (s State) Reset() State {
	return State{}
}

// Tick advances the counter by deltaMs when running.
func (s State) Tick(deltaMs int64) State {
	if !s.Running || deltaMs <= 0 {
		return s
	}
	s.ElapsedMs += deltaMs
	return s
}
