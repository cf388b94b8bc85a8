package pong

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

// fixedRand replays a fixed sequence of values, cycling when exhausted.
type fixedRand struct {
	vals []float64
	i    int
}

func (f *fixedRand) Float64() float64 {
	v := f.vals[f.i%len(f.vals)]
	f.i++
	return v
}

func newSim(vals ...float64) *Simulation {
	if len(vals) == 0 {
		vals = []float64{0.5}
	}
	return NewSimulation(DefaultPlayfield(), DefaultTuning(), &fixedRand{vals: vals})
}

func TestNextPlayerYEasesTowardPointer(t *testing.T) {
	pf, tun := DefaultPlayfield(), DefaultTuning()

	// Paddle centred at 50, pointer at 300: the centre closes 10% of the gap.
	y := NextPlayerY(10, Input{PointerY: 300}, pf, tun)
	assert.InDelta(t, 75.0, y+pf.HalfPaddle(), eps)
}

func TestNextPlayerYKeys(t *testing.T) {
	pf, tun := DefaultPlayfield(), DefaultTuning()

	tests := []struct {
		name string
		in   Input
		want float64
	}{
		{"up", Input{Up: true, PointerY: 400}, 93},
		{"down", Input{Down: true, PointerY: 0}, 107},
		{"both cancel", Input{Up: true, Down: true, PointerY: 0}, 100},
		{"pointer at centre", Input{PointerY: 140}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NextPlayerY(100, tt.in, pf, tun), eps)
		})
	}
}

func TestNextPlayerYClamps(t *testing.T) {
	pf, tun := DefaultPlayfield(), DefaultTuning()

	assert.Equal(t, 0.0, NextPlayerY(3, Input{Up: true}, pf, tun))
	assert.Equal(t, pf.MaxPaddleY(), NextPlayerY(pf.MaxPaddleY()-2, Input{Down: true}, pf, tun))
	// A pointer far outside the court is bounded by the clamp.
	assert.Equal(t, pf.MaxPaddleY(), NextPlayerY(pf.MaxPaddleY(), Input{PointerY: 1e6}, pf, tun))
	assert.Equal(t, 0.0, NextPlayerY(0, Input{PointerY: -1e6}, pf, tun))
}

func TestNextOpponentY(t *testing.T) {
	pf, tun := DefaultPlayfield(), DefaultTuning()

	// Centre at 150, ball at 100: outside the dead zone, moves up one step.
	assert.Equal(t, 105.0, NextOpponentY(110, 100, pf, tun))
	// Centre at 150, ball at 160: inside the dead zone, stays.
	assert.Equal(t, 110.0, NextOpponentY(110, 160, pf, tun))
	assert.Equal(t, 110.0, NextOpponentY(110, 140, pf, tun))
	// Ball below the dead zone, moves down.
	assert.Equal(t, 115.0, NextOpponentY(110, 161, pf, tun))
	// Clamped at the edges.
	assert.Equal(t, 0.0, NextOpponentY(2, 0, pf, tun))
	assert.Equal(t, pf.MaxPaddleY(), NextOpponentY(pf.MaxPaddleY()-1, pf.Height, pf, tun))
}

func TestStepCentreHitOnPlayerPaddle(t *testing.T) {
	sim := newSim()
	pf := sim.Playfield

	st := State{
		Player:   Paddle{Y: 160},
		Opponent: Paddle{Y: 160},
		Ball:     Ball{X: 5, Y: 200, VX: -5, VY: 0},
	}
	// Pointer at the paddle centre keeps the paddle still.
	st, ev := sim.Step(st, Input{PointerY: 200})

	require.Equal(t, 160.0, st.Player.Y)
	assert.Equal(t, pf.PaddleWidth+pf.BallRadius, st.Ball.X)
	assert.Equal(t, 5.0, st.Ball.VX)
	assert.InDelta(t, 0.0, st.Ball.VY, eps)
	assert.Equal(t, SidePlayer, ev.PaddleHit)
	assert.Equal(t, SideNone, ev.Scored)
	assert.Equal(t, uint64(1), st.Tick)
}

func TestStepPlayerScoresOnRightExit(t *testing.T) {
	sim := newSim(0.5, 0.25)

	st := State{
		Player:   Paddle{Y: 160},
		Opponent: Paddle{Y: 300},
		Ball:     Ball{X: 705, Y: 30, VX: 5, VY: 0},
	}
	st, ev := sim.Step(st, Input{PointerY: 200})

	assert.Equal(t, Score{Player: 1, Computer: 0}, st.Score)
	assert.Equal(t, SidePlayer, ev.Scored)
	assert.Equal(t, 350.0, st.Ball.X)
	assert.Equal(t, 200.0, st.Ball.Y)
	assert.InDelta(t, 5.0, st.Ball.VX, eps)
	assert.InDelta(t, -2.0, st.Ball.VY, eps)
}

func TestStepComputerScoresOnLeftExit(t *testing.T) {
	sim := newSim(0, 0.99)

	st := State{
		Player:   Paddle{Y: 300},
		Opponent: Paddle{Y: 160},
		Ball:     Ball{X: 3, Y: 30, VX: -5, VY: 0},
	}
	st, ev := sim.Step(st, Input{PointerY: 340})

	assert.Equal(t, Score{Player: 0, Computer: 1}, st.Score)
	assert.Equal(t, SideComputer, ev.Scored)
	assert.InDelta(t, -4.0, st.Ball.VX, eps)
	assert.InDelta(t, 3.92, st.Ball.VY, eps)
}

func TestStepPlayerHitUsesPaddleMovedThisTick(t *testing.T) {
	sim := newSim()
	pf := sim.Playfield

	// At Y=90 the paddle spans (90, 170) and would miss a ball at 86. Holding
	// up moves it to 83 first, and the hit lands in the same tick.
	st := State{
		Player:   Paddle{Y: 90},
		Opponent: Paddle{Y: 160},
		Ball:     Ball{X: 15, Y: 86, VX: -5, VY: 0},
	}
	st, ev := sim.Step(st, Input{Up: true})

	require.Equal(t, 83.0, st.Player.Y)
	assert.Equal(t, SidePlayer, ev.PaddleHit)
	assert.Equal(t, pf.PaddleWidth+pf.BallRadius, st.Ball.X)
	assert.Equal(t, 5.0, st.Ball.VX)
	assert.InDelta(t, 5*(86.0-123)/40, st.Ball.VY, eps)
	assert.Equal(t, SideNone, ev.Scored)
}

func TestStepOpponentHitUsesPaddleMovedThisTick(t *testing.T) {
	sim := newSim()
	pf := sim.Playfield

	// At Y=100 the opponent spans (100, 180) and would miss a ball at 96. It
	// steps up to 95 toward the ball before the collision is checked.
	st := State{
		Player:   Paddle{Y: 160},
		Opponent: Paddle{Y: 100},
		Ball:     Ball{X: 685, Y: 96, VX: 5, VY: 0},
	}
	st, ev := sim.Step(st, Input{PointerY: 200})

	require.Equal(t, 95.0, st.Opponent.Y)
	assert.Equal(t, SideComputer, ev.PaddleHit)
	assert.Equal(t, pf.Width-pf.PaddleWidth-pf.BallRadius, st.Ball.X)
	assert.Equal(t, -5.0, st.Ball.VX)
	assert.InDelta(t, 5*(96.0-135)/40, st.Ball.VY, eps)
	assert.Equal(t, SideNone, ev.Scored)
}

func TestResolveWallThenPaddleInSameTick(t *testing.T) {
	pf, tun := DefaultPlayfield(), DefaultTuning()

	// Past the top wall and inside the player paddle's span: the wall flips
	// vy, then the paddle overwrites it from the hit offset.
	st := State{
		Player:   Paddle{Y: 0},
		Opponent: Paddle{Y: 300},
		Ball:     Ball{X: 12, Y: 5, VX: -4, VY: -3},
	}
	ev := Resolve(&st, pf, tun, &fixedRand{vals: []float64{0.5}})

	assert.True(t, ev.WallBounce)
	assert.Equal(t, SidePlayer, ev.PaddleHit)
	assert.Equal(t, SideNone, ev.Scored)
	assert.Equal(t, 18.0, st.Ball.X)
	assert.Equal(t, 4.0, st.Ball.VX)
	assert.InDelta(t, -4.375, st.Ball.VY, eps)
}

func TestResolveWallReflection(t *testing.T) {
	pf, tun := DefaultPlayfield(), DefaultTuning()

	for _, v := range []float64{3, -3, 7.5} {
		st := State{
			Player:   Paddle{Y: 0},
			Opponent: Paddle{Y: 0},
			Ball:     Ball{X: 350, VX: 2, VY: v},
		}
		if v > 0 {
			st.Ball.Y = pf.Height - pf.BallRadius + 1
		} else {
			st.Ball.Y = pf.BallRadius - 1
		}
		ev := Resolve(&st, pf, tun, &fixedRand{vals: []float64{0.5}})

		assert.True(t, ev.WallBounce)
		assert.Equal(t, -v, st.Ball.VY)
		assert.Equal(t, 2.0, st.Ball.VX)
	}
}

func TestResolveHitOffsetIsLinear(t *testing.T) {
	pf, tun := DefaultPlayfield(), DefaultTuning()

	for _, f := range []float64{-0.9, -0.5, -0.25, 0, 0.25, 0.5, 0.9} {
		st := State{
			Player:   Paddle{Y: 160},
			Opponent: Paddle{Y: 0},
			Ball:     Ball{X: 12, Y: 200 + f*pf.HalfPaddle(), VX: -4, VY: 1},
		}
		ev := Resolve(&st, pf, tun, &fixedRand{vals: []float64{0.5}})

		require.Equal(t, SidePlayer, ev.PaddleHit, "offset %v", f)
		assert.InDelta(t, 5*f, st.Ball.VY, eps, "offset %v", f)
		assert.Equal(t, 4.0, st.Ball.VX)
	}
}

func TestResolveOpponentPaddleMirrors(t *testing.T) {
	pf, tun := DefaultPlayfield(), DefaultTuning()

	st := State{
		Player:   Paddle{Y: 0},
		Opponent: Paddle{Y: 100},
		Ball:     Ball{X: 690, Y: 160, VX: 5, VY: 0},
	}
	ev := Resolve(&st, pf, tun, &fixedRand{vals: []float64{0.5}})

	assert.Equal(t, SideComputer, ev.PaddleHit)
	assert.Equal(t, pf.Width-pf.PaddleWidth-pf.BallRadius, st.Ball.X)
	assert.Equal(t, -5.0, st.Ball.VX)
	assert.InDelta(t, 2.5, st.Ball.VY, eps)
}

func TestResolveMissesPaddleEdge(t *testing.T) {
	pf, tun := DefaultPlayfield(), DefaultTuning()

	// Exactly on the paddle's top edge is not a hit.
	st := State{
		Player:   Paddle{Y: 160},
		Opponent: Paddle{Y: 0},
		Ball:     Ball{X: 12, Y: 160, VX: -4, VY: 0},
	}
	ev := Resolve(&st, pf, tun, &fixedRand{vals: []float64{0.5}})

	assert.Equal(t, SideNone, ev.PaddleHit)
	assert.Equal(t, -4.0, st.Ball.VX)
}

func TestResetBounds(t *testing.T) {
	pf, tun := DefaultPlayfield(), DefaultTuning()
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		dir := 1.0
		if i%2 == 1 {
			dir = -1
		}
		var b Ball
		b.Reset(pf, tun, dir, rng)

		require.Equal(t, pf.Width/2, b.X)
		require.Equal(t, pf.Height/2, b.Y)
		speed := b.VX * dir
		require.GreaterOrEqual(t, speed, 4.0)
		require.Less(t, speed, 6.0)
		require.GreaterOrEqual(t, b.VY, -4.0)
		require.Less(t, b.VY, 4.0)
	}
}

func TestKickoff(t *testing.T) {
	pf, tun := DefaultPlayfield(), DefaultTuning()

	var b Ball
	b.Kickoff(pf, tun, &fixedRand{vals: []float64{0.9, 0.1}})
	assert.Equal(t, Ball{X: 350, Y: 200, VX: 5, VY: -4}, b)

	st := NewState(pf, tun, &fixedRand{vals: []float64{0.1, 0.9}})
	assert.Equal(t, 160.0, st.Player.Y)
	assert.Equal(t, 160.0, st.Opponent.Y)
	assert.Equal(t, -5.0, st.Ball.VX)
	assert.Equal(t, 4.0, st.Ball.VY)
}

func TestLongRunInvariants(t *testing.T) {
	sim := NewSimulation(DefaultPlayfield(), DefaultTuning(), rand.New(rand.NewSource(7)))
	pf := sim.Playfield
	inputs := rand.New(rand.NewSource(11))

	st := sim.NewState()
	scored := 0
	for i := 0; i < 20000; i++ {
		in := Input{
			Up:       inputs.Intn(4) == 0,
			Down:     inputs.Intn(4) == 0,
			PointerY: inputs.Float64()*1400 - 500,
		}
		prev := st.Score
		var ev Events
		st, ev = sim.Step(st, in)

		require.GreaterOrEqual(t, st.Player.Y, 0.0)
		require.LessOrEqual(t, st.Player.Y, pf.MaxPaddleY())
		require.GreaterOrEqual(t, st.Opponent.Y, 0.0)
		require.LessOrEqual(t, st.Opponent.Y, pf.MaxPaddleY())

		dp := st.Score.Player - prev.Player
		dc := st.Score.Computer - prev.Computer
		require.GreaterOrEqual(t, dp, 0)
		require.GreaterOrEqual(t, dc, 0)
		require.LessOrEqual(t, dp+dc, 1)
		if ev.Scored != SideNone {
			require.Equal(t, 1, dp+dc)
			scored++
		}
	}
	assert.Greater(t, scored, 0)
	assert.Equal(t, uint64(20000), st.Tick)
}

func TestInputStateLastWriteWins(t *testing.T) {
	s := NewInputState(200)
	require.Equal(t, Input{PointerY: 200}, s.Snapshot())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.SetPointerY(float64(i*100 + j))
				s.SetUp(j%2 == 0)
				_ = s.Snapshot()
			}
		}(i)
	}
	wg.Wait()

	s.SetUp(true)
	s.SetDown(false)
	s.SetPointerY(123.5)
	assert.Equal(t, Input{Up: true, PointerY: 123.5}, s.Snapshot())
}

func TestScoreString(t *testing.T) {
	assert.Equal(t, "3 : 1", Score{Player: 3, Computer: 1}.String())
	assert.Equal(t, "computer", SideComputer.String())
}
