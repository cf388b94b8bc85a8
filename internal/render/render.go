package render

import (
	"errors"
	"image/color"
)

// ErrQuit is returned from Game.Update to end the run cleanly.
var ErrQuit = errors.New("render: quit requested")

// Surface is a drawable target of fixed logical size. Coordinates are in
// playfield units; backends scale to their own pixels or cells.
type Surface interface {
	// Size returns the logical width and height.
	Size() (width, height int)

	// Fill paints the whole surface.
	Fill(clr color.Color)

	// FillRect paints an axis-aligned rectangle from its top-left corner.
	FillRect(x, y, w, h float64, clr color.Color)

	// FillCircle paints a disc centred on (x, y).
	FillCircle(x, y, radius float64, clr color.Color)

	// DrawText draws a line of text with its top-left corner at (x, y).
	DrawText(text string, x, y int, clr color.Color)
}

// Presenter is implemented by surfaces that buffer drawing and need an
// explicit flush once the frame is painted.
type Presenter interface {
	Present()
}

// TextMeasurer is implemented by surfaces whose text advance is not the
// debug font's 6 units per character.
type TextMeasurer interface {
	// MeasureText returns the logical width DrawText would cover.
	MeasureText(text string) int
}

// SurfaceProvider hands out the surface for the current frame. ok is false
// when the host has nothing to draw on yet, or no longer.
type SurfaceProvider interface {
	Surface() (s Surface, ok bool)
}

// InputSink receives sampled control signals. Writes must not block.
type InputSink interface {
	SetUp(pressed bool)
	SetDown(pressed bool)
	SetPointerY(y float64)
}

// InputSource delivers key and pointer events from a host to a sink.
type InputSource interface {
	// Attach starts forwarding events to sink.
	Attach(sink InputSink)
	// Detach stops forwarding. No writes reach the sink after it returns.
	Detach()
}

// Key represents a control key the game reacts to outside of paddle input.
type Key int

// Key constants for control keys
const (
	KeyNone Key = iota
	KeyPause
	KeyQuit
)

// ControlSource reports control keys pressed since the last call.
type ControlSource interface {
	IsKeyJustPressed(key Key) bool
}

// Game represents the game interface that the engine will call.
type Game interface {
	// Update handles control input. It is called every host tick (typically
	// 60 times per second). Returning ErrQuit ends the run.
	Update() error

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the host that owns the window and the frame cadence.
type Engine interface {
	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// SetTPS sets the number of Update calls per second.
	SetTPS(tps int)

	// RunGame runs the game loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}
