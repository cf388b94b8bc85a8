// Package pong holds the simulation core of the paddle game: the playfield
// geometry, the ball and paddle rules, collision and scoring, and the per-tick
// step that ties them together. Nothing in here draws, blocks or reads a clock.
package pong

// Playfield describes the fixed dimensions of the court and its entities.
type Playfield struct {
	Width        float64
	Height       float64
	PaddleWidth  float64
	PaddleHeight float64
	BallRadius   float64
}

// DefaultPlayfield returns the classic 700x400 court.
func DefaultPlayfield() Playfield {
	return Playfield{
		Width:        700,
		Height:       400,
		PaddleWidth:  10,
		PaddleHeight: 80,
		BallRadius:   8,
	}
}

// MaxPaddleY is the largest legal top edge for a paddle.
func (pf Playfield) MaxPaddleY() float64 {
	return pf.Height - pf.PaddleHeight
}

// Center returns the middle of the court.
func (pf Playfield) Center() (x, y float64) {
	return pf.Width / 2, pf.Height / 2
}

// HalfPaddle is half the paddle height, the divisor of the hit offset.
func (pf Playfield) HalfPaddle() float64 {
	return pf.PaddleHeight / 2
}

// ClampPaddle bounds a paddle top edge to [0, MaxPaddleY].
func (pf Playfield) ClampPaddle(y float64) float64 {
	return clamp(y, 0, pf.MaxPaddleY())
}

// Tuning holds the rule constants of the game.
type Tuning struct {
	PlayerStep       float64 // units per tick while a key is held
	PointerSmoothing float64 // fraction of the remaining gap closed per tick
	OpponentStep     float64
	OpponentDeadZone float64
	SpinFactor       float64 // vy after a paddle hit at the very edge

	ServeBaseSpeed      float64
	ServeSpeedRange     float64
	ServeVerticalSpread float64

	KickoffHorizontal float64
	KickoffVertical   float64
}

// DefaultTuning returns the classic rules.
func DefaultTuning() Tuning {
	return Tuning{
		PlayerStep:          7,
		PointerSmoothing:    0.1,
		OpponentStep:        5,
		OpponentDeadZone:    10,
		SpinFactor:          5,
		ServeBaseSpeed:      4,
		ServeSpeedRange:     2,
		ServeVerticalSpread: 8,
		KickoffHorizontal:   5,
		KickoffVertical:     4,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
