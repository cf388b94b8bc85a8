package game

import (
	"log"

	"chosenoffset.com/pong/internal/render"
)

// Manager is the render.Game the host calls every tick. It handles the
// control keys and leaves the match itself to the Game's driver.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int
	Game         *Game
	Controls     render.ControlSource
}

// NewManager creates a manager for g with a logical screen of width x height.
func NewManager(g *Game, controls render.ControlSource, width, height int) *Manager {
	return &Manager{
		ScreenWidth:  width,
		ScreenHeight: height,
		Game:         g,
		Controls:     controls,
	}
}

// Update handles quit and pause.
func (m *Manager) Update() error {
	if m.Controls == nil {
		return nil
	}
	if m.Controls.IsKeyJustPressed(render.KeyQuit) {
		log.Println("Quit requested")
		m.Game.Close()
		return render.ErrQuit
	}
	if m.Controls.IsKeyJustPressed(render.KeyPause) {
		m.Game.TogglePause()
	}
	return nil
}

// Layout keeps the logical screen at the playfield size; the host scales it
// to the window.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	return m.ScreenWidth, m.ScreenHeight
}
