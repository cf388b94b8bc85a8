package pong

// Events reports what happened while resolving one tick.
type Events struct {
	WallBounce bool
	PaddleHit  Side
	Scored     Side
}

// Resolve applies walls, paddles and scoring to a ball that has already
// moved this tick, in that order. Paddle positions must be the ones committed
// for the current tick. It is the only place the ball velocity and the score
// change.
func Resolve(st *State, pf Playfield, tun Tuning, rng RandSource) Events {
	var ev Events
	b := &st.Ball
	r := pf.BallRadius

	if b.Y-r < 0 || b.Y+r > pf.Height {
		b.VY = -b.VY
		ev.WallBounce = true
	}

	if b.X-r < pf.PaddleWidth && within(b.Y, st.Player, pf) {
		deflect(b, st.Player, pf, tun)
		b.X = pf.PaddleWidth + r
		ev.PaddleHit = SidePlayer
	}

	if b.X+r > pf.Width-pf.PaddleWidth && within(b.Y, st.Opponent, pf) {
		deflect(b, st.Opponent, pf, tun)
		b.X = pf.Width - pf.PaddleWidth - r
		ev.PaddleHit = SideComputer
	}

	// The serve goes toward whoever conceded.
	switch {
	case b.X < 0:
		st.Score.award(SideComputer)
		b.Reset(pf, tun, -1, rng)
		ev.Scored = SideComputer
	case b.X > pf.Width:
		st.Score.award(SidePlayer)
		b.Reset(pf, tun, 1, rng)
		ev.Scored = SidePlayer
	}

	return ev
}

// within reports whether y lies strictly inside the paddle's span.
func within(y float64, p Paddle, pf Playfield) bool {
	return y > p.Y && y < p.Y+pf.PaddleHeight
}

// deflect reverses the horizontal velocity and sets the vertical velocity
// from where the ball struck, linear in the offset from the paddle centre.
func deflect(b *Ball, p Paddle, pf Playfield, tun Tuning) {
	b.VX = -b.VX
	offset := (b.Y - p.Center(pf)) / pf.HalfPaddle()
	b.VY = tun.SpinFactor * offset
}
