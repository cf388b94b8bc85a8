package pong

import (
	"math"
	"sync/atomic"
)

// Input is a snapshot of the control signals taken once per tick.
type Input struct {
	Up       bool
	Down     bool
	PointerY float64
}

// InputState holds the latest control signals written by input sources.
// Each field is an independent atomic scalar; writers never block and the
// last write wins. The simulation polls it through Snapshot.
type InputState struct {
	up       atomic.Bool
	down     atomic.Bool
	pointerY atomic.Uint64 // math.Float64bits
}

// NewInputState creates an InputState with the pointer parked at pointerY.
func NewInputState(pointerY float64) *InputState {
	s := &InputState{}
	s.SetPointerY(pointerY)
	return s
}

// SetUp records the up key flag.
func (s *InputState) SetUp(pressed bool) {
	s.up.Store(pressed)
}

// SetDown records the down key flag.
func (s *InputState) SetDown(pressed bool) {
	s.down.Store(pressed)
}

// SetPointerY records the pointer position in playfield units.
func (s *InputState) SetPointerY(y float64) {
	s.pointerY.Store(math.Float64bits(y))
}

// Snapshot reads all fields. Fields may come from different writes; they
// carry no cross-field invariant.
func (s *InputState) Snapshot() Input {
	return Input{
		Up:       s.up.Load(),
		Down:     s.down.Load(),
		PointerY: math.Float64frombits(s.pointerY.Load()),
	}
}
