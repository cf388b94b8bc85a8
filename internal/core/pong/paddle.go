package pong

// NextPlayerY computes the player paddle position for this tick. Held keys
// move the paddle by a fixed step and suppress pointer tracking; holding both
// cancels out. With no key held the paddle centre eases toward the pointer.
func NextPlayerY(y float64, in Input, pf Playfield, tun Tuning) float64 {
	next := y
	if in.Up {
		next -= tun.PlayerStep
	}
	if in.Down {
		next += tun.PlayerStep
	}
	if !in.Up && !in.Down {
		center := next + pf.HalfPaddle()
		next += (in.PointerY - center) * tun.PointerSmoothing
	}
	return pf.ClampPaddle(next)
}

// NextOpponentY moves the computer paddle one step toward ballY unless its
// centre is already inside the dead zone around the ball.
func NextOpponentY(y, ballY float64, pf Playfield, tun Tuning) float64 {
	center := y + pf.HalfPaddle()
	next := y
	switch {
	case center < ballY-tun.OpponentDeadZone:
		next += tun.OpponentStep
	case center > ballY+tun.OpponentDeadZone:
		next -= tun.OpponentStep
	}
	return pf.ClampPaddle(next)
}
