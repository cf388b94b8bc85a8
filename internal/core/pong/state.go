package pong

import "fmt"

// Side identifies one end of the court.
type Side int

const (
	SideNone     Side = iota
	SidePlayer        // left, human controlled
	SideComputer      // right, automated
)

// String returns the side name for logs.
func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideComputer:
		return "computer"
	default:
		return "none"
	}
}

// Paddle is a paddle's vertical position, measured at its top edge.
type Paddle struct {
	Y float64
}

// Center returns the paddle's vertical midpoint.
func (p Paddle) Center(pf Playfield) float64 {
	return p.Y + pf.HalfPaddle()
}

// Score is the running tally for both sides.
type Score struct {
	Player   int
	Computer int
}

// String formats the score as it appears on the scoreboard.
func (s Score) String() string {
	return fmt.Sprintf("%d : %d", s.Player, s.Computer)
}

func (s *Score) award(side Side) {
	switch side {
	case SidePlayer:
		s.Player++
	case SideComputer:
		s.Computer++
	}
}

// State is the complete mutable game state. It is passed into and returned
// from Simulation.Step by value.
type State struct {
	Player   Paddle
	Opponent Paddle
	Ball     Ball
	Score    Score
	Tick     uint64
}

// NewState centres both paddles and kicks the ball off from the middle.
func NewState(pf Playfield, tun Tuning, rng RandSource) State {
	mid := pf.Height/2 - pf.HalfPaddle()
	st := State{
		Player:   Paddle{Y: mid},
		Opponent: Paddle{Y: mid},
	}
	st.Ball.Kickoff(pf, tun, rng)
	return st
}
