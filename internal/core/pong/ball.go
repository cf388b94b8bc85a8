package pong

// RandSource supplies uniform values in [0, 1). *math/rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// Ball is the ball's centre position and per-tick velocity.
type Ball struct {
	X, Y   float64
	VX, VY float64
}

// Move advances the ball by one tick of velocity.
func (b *Ball) Move() {
	b.X += b.VX
	b.Y += b.VY
}

// Reset serves the ball from the centre. dir is +1 to serve right and -1 to
// serve left; the horizontal speed lands in [base, base+range) and the
// vertical speed in [-spread/2, spread/2).
func (b *Ball) Reset(pf Playfield, tun Tuning, dir float64, rng RandSource) {
	b.X, b.Y = pf.Center()
	b.VX = dir * (tun.ServeBaseSpeed + rng.Float64()*tun.ServeSpeedRange)
	b.VY = (rng.Float64() - 0.5) * tun.ServeVerticalSpread
}

// Kickoff is the opening serve: fixed speeds with random signs on each axis.
func (b *Ball) Kickoff(pf Playfield, tun Tuning, rng RandSource) {
	b.X, b.Y = pf.Center()
	b.VX = tun.KickoffHorizontal * coinSign(rng)
	b.VY = tun.KickoffVertical * coinSign(rng)
}

func coinSign(rng RandSource) float64 {
	if rng.Float64() > 0.5 {
		return 1
	}
	return -1
}
