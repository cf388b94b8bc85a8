// Package game ties the simulation to a host: it owns the match state, runs
// one simulation step per scheduled frame and paints the result when the
// host has a surface to paint on.
package game

import (
	"log"
	"sync"

	"chosenoffset.com/pong/internal/core/pong"
	"chosenoffset.com/pong/internal/loop"
	"chosenoffset.com/pong/internal/render"
	"chosenoffset.com/pong/internal/ui/hud"
)

// Game holds the match and drives it through a loop.Driver.
type Game struct {
	sim      *pong.Simulation
	input    *pong.InputState
	driver   *loop.Driver
	painter  *Painter
	hud      *hud.HUD
	surfaces render.SurfaceProvider
	sources  []render.InputSource

	// frameMu serialises frames with the pause repaint. Frames may run on a
	// timer goroutine while control keys arrive on the host's.
	frameMu   sync.Mutex
	state     pong.State
	surfaceOK bool

	mu     sync.RWMutex
	score  pong.Score
	mode   Mode
	closed bool

	closeOnce sync.Once
}

// New creates a stopped game. The input sources are attached immediately and
// write into the game's InputState; surfaces supplies the paint target each
// frame. A nil HUD gets the default one.
func New(sim *pong.Simulation, sched loop.Scheduler, surfaces render.SurfaceProvider, h *hud.HUD, sources ...render.InputSource) *Game {
	pf := sim.Playfield
	if h == nil {
		h = hud.New(nil)
	}

	g := &Game{
		sim:       sim,
		input:     pong.NewInputState(pf.Height / 2),
		painter:   NewPainter(pf),
		hud:       h,
		surfaces:  surfaces,
		sources:   sources,
		state:     sim.NewState(),
		surfaceOK: true,
		mode:      ModePlaying,
	}
	g.driver = loop.NewDriver(sched, g.frame)

	for _, src := range sources {
		src.Attach(g.input)
	}
	return g
}

// Start begins advancing the match. It also resumes a paused match. A closed
// game stays stopped.
func (g *Game) Start() {
	g.frameMu.Lock()
	g.hud.SetPaused(false)
	g.frameMu.Unlock()

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	g.mode = ModePlaying
	if !g.driver.Running() {
		log.Println("Match started")
	}
	g.driver.Start()
}

// Stop halts the match after the frame in flight, if any.
func (g *Game) Stop() {
	if g.driver.Running() {
		log.Println("Match stopped")
	}
	g.driver.Stop()
}

// Close stops the match for good and detaches every input source. It is safe
// to call more than once.
func (g *Game) Close() {
	g.closeOnce.Do(func() {
		g.mu.Lock()
		g.closed = true
		g.Stop()
		g.mu.Unlock()

		for _, src := range g.sources {
			src.Detach()
		}
	})
}

// TogglePause pauses a playing match or resumes a paused one and returns
// the new mode. A paused match is repainted once so the banner shows. A
// closed game keeps its mode.
func (g *Game) TogglePause() Mode {
	g.mu.Lock()
	if g.closed {
		defer g.mu.Unlock()
		return g.mode
	}
	if g.mode == ModePlaying {
		g.mode = ModePaused
		g.driver.Stop()
	} else {
		g.mode = ModePlaying
		g.driver.Start()
	}
	mode := g.mode
	g.mu.Unlock()

	log.Printf("Match %s", mode)
	g.frameMu.Lock()
	defer g.frameMu.Unlock()
	g.hud.SetPaused(mode == ModePaused)
	if mode == ModePaused {
		g.paint()
	}
	return mode
}

// Mode reports whether the match is playing or paused.
func (g *Game) Mode() Mode {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.mode
}

// Score returns a copy of the current score.
func (g *Game) Score() pong.Score {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.score
}

// Frames returns how many frames have run.
func (g *Game) Frames() uint64 {
	return g.driver.Frames()
}

// State returns a copy of the match state.
func (g *Game) State() pong.State {
	g.frameMu.Lock()
	defer g.frameMu.Unlock()
	return g.state
}

func (g *Game) frame() {
	g.frameMu.Lock()
	defer g.frameMu.Unlock()

	next, ev := g.sim.Step(g.state, g.input.Snapshot())
	g.state = next

	if ev.Scored != pong.SideNone {
		g.mu.Lock()
		g.score = next.Score
		g.mu.Unlock()
		g.hud.SetScore(next.Score)
		log.Printf("Score: player %d - computer %d", next.Score.Player, next.Score.Computer)
	}

	g.paint()
}

// paint draws the current state if the host has a surface. The simulation
// never waits on the display: without a surface the frame is just not drawn.
func (g *Game) paint() {
	screen, ok := g.surfaces.Surface()
	if ok != g.surfaceOK {
		if ok {
			log.Println("Surface available, rendering resumed")
		} else {
			log.Println("Surface unavailable, skipping render")
		}
		g.surfaceOK = ok
	}
	if !ok {
		return
	}

	g.painter.Paint(screen, g.state)
	g.hud.Draw(screen)
	if p, ok := screen.(render.Presenter); ok {
		p.Present()
	}
}
