package pong

// Simulation advances game state one tick at a time.
type Simulation struct {
	Playfield Playfield
	Tuning    Tuning
	Rand      RandSource
}

// NewSimulation creates a Simulation over the given court and rules.
func NewSimulation(pf Playfield, tun Tuning, rng RandSource) *Simulation {
	return &Simulation{Playfield: pf, Tuning: tun, Rand: rng}
}

// NewState returns the opening state for this simulation.
func (s *Simulation) NewState() State {
	return NewState(s.Playfield, s.Tuning, s.Rand)
}

// Step runs one tick: both paddles are computed from the state at the start
// of the tick and committed, then the ball moves and collisions and scoring
// are resolved against the committed paddles.
func (s *Simulation) Step(st State, in Input) (State, Events) {
	playerY := NextPlayerY(st.Player.Y, in, s.Playfield, s.Tuning)
	opponentY := NextOpponentY(st.Opponent.Y, st.Ball.Y, s.Playfield, s.Tuning)
	st.Player.Y = playerY
	st.Opponent.Y = opponentY

	st.Ball.Move()
	ev := Resolve(&st, s.Playfield, s.Tuning, s.Rand)

	st.Tick++
	return st, ev
}
