// Package input holds the driver's control state shared between the key
// event source and the simulation tick.
package input

import "sync/atomic"

// Control identifies one driver control.
type Control uint8

const (
	Forward Control = iota
	Backward
	Left
	Right
	Reset
)

// String returns the control name used in logs.
func (c Control) String() string {
	switch c {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	case Reset:
		return "reset"
	}
	return "unknown"
}

// Snapshot is the control state observed by one tick.
type Snapshot struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Reset    bool // true at most once per press
}

// State is safe for one writer goroutine and one tick reader.
// The four levels share one word so a snapshot never mixes two writes.
type State struct {
	levels atomic.Uint32
	reset  atomic.Bool
}

func (c Control) bit() uint32 {
	return 1 << c
}

// Press marks a control as held. Reset latches once per press and
// ignores auto-repeat.
func (s *State) Press(c Control, repeat bool) {
	if c == Reset {
		if !repeat {
			s.reset.Store(true)
		}
		return
	}
	for {
		old := s.levels.Load()
		if s.levels.CompareAndSwap(old, old|c.bit()) {
			return
		}
	}
}

// Release marks a control as no longer held. Releasing Reset is a no-op.
func (s *State) Release(c Control) {
	if c == Reset {
		return
	}
	for {
		old := s.levels.Load()
		if s.levels.CompareAndSwap(old, old&^c.bit()) {
			return
		}
	}
}

// Set replaces all four levels at once.
func (s *State) Set(snap Snapshot) {
	var v uint32
	if snap.Forward {
		v |= Forward.bit()
	}
	if snap.Backward {
		v |= Backward.bit()
	}
	if snap.Left {
		v |= Left.bit()
	}
	if snap.Right {
		v |= Right.bit()
	}
	s.levels.Store(v)
	if snap.Reset {
		s.reset.Store(true)
	}
}

// Snapshot reads the current levels and consumes a pending reset.
func (s *State) Snapshot() Snapshot {
	v := s.levels.Load()
	return Snapshot{
		Forward:  v&Forward.bit() != 0,
		Backward: v&Backward.bit() != 0,
		Left:     v&Left.bit() != 0,
		Right:    v&Right.bit() != 0,
		Reset:    s.reset.Swap(false),
	}
}

// Clear releases every control and drops a pending reset.
func (s *State) Clear() {
	s.levels.Store(0)
	s.reset.Store(false)
}
