package ebiten

import (
	"errors"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"chosenoffset.com/pong/internal/loop"
	"chosenoffset.com/pong/internal/render"
)

// Debug font glyph size.
const (
	glyphWidth  = 6
	glyphHeight = 16
)

// Surface wraps an ebiten.Image to implement the render.Surface interface.
// One logical unit is one pixel of the image.
type Surface struct {
	img  *ebiten.Image
	text *ebiten.Image // scratch for tinted debug text
}

// WrapImage wraps an existing ebiten.Image as a render.Surface.
func WrapImage(img *ebiten.Image) *Surface {
	return &Surface{img: img}
}

// Size returns the width and height of the image.
func (s *Surface) Size() (width, height int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Fill fills the entire image with the given color.
func (s *Surface) Fill(clr color.Color) {
	s.img.Fill(clr)
}

// FillRect draws a filled rectangle.
func (s *Surface) FillRect(x, y, w, h float64, clr color.Color) {
	vector.DrawFilledRect(s.img, float32(x), float32(y), float32(w), float32(h), clr, false)
}

// FillCircle draws a filled circle.
func (s *Surface) FillCircle(x, y, radius float64, clr color.Color) {
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(radius), clr, true)
}

// DrawText draws text using the debug font. The font renders white, so the
// line is printed to a scratch image and tinted with clr on the way over.
func (s *Surface) DrawText(text string, x, y int, clr color.Color) {
	w := len(text) * glyphWidth
	if w == 0 {
		return
	}
	if s.text == nil || s.text.Bounds().Dx() < w {
		if s.text != nil {
			s.text.Deallocate()
		}
		s.text = ebiten.NewImage(w, glyphHeight)
	}
	s.text.Clear()
	ebitenutil.DebugPrintAt(s.text, text, 0, 0)

	s.img.DrawImage(s.text, textOptions(x, y, clr))
}

func textOptions(x, y int, clr color.Color) *ebiten.DrawImageOptions {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	return op
}

// Input forwards arrow keys and cursor motion to a render.InputSink.
// It is polled once per ebiten Update, before the frame runs.
type Input struct {
	mu       sync.Mutex
	sink     render.InputSink
	lastY    int
	tracking bool
}

// NewInput creates a detached Input.
func NewInput() *Input {
	return &Input{}
}

// Attach starts forwarding events to sink.
func (in *Input) Attach(sink render.InputSink) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.sink = sink
	in.tracking = false
}

// Detach stops forwarding events.
func (in *Input) Detach() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.sink = nil
}

// Poll translates this tick's key transitions and cursor motion into sink writes.
func (in *Input) Poll() {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.sink == nil {
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		in.sink.SetUp(true)
	}
	if inpututil.IsKeyJustReleased(ebiten.KeyArrowUp) {
		in.sink.SetUp(false)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		in.sink.SetDown(true)
	}
	if inpututil.IsKeyJustReleased(ebiten.KeyArrowDown) {
		in.sink.SetDown(false)
	}

	// Only motion counts; a resting cursor leaves the last target alone.
	_, y := ebiten.CursorPosition()
	if in.tracking && y != in.lastY {
		in.sink.SetPointerY(float64(y))
	}
	in.lastY = y
	in.tracking = true
}

// Controls implements render.ControlSource using Ebiten's key state.
type Controls struct{}

// IsKeyJustPressed returns whether the control key was just pressed this tick.
func (Controls) IsKeyJustPressed(key render.Key) bool {
	switch key {
	case render.KeyPause:
		return inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeySpace)
	case render.KeyQuit:
		return inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ)
	default:
		return false
	}
}

// Host implements render.Engine and render.SurfaceProvider on top of Ebiten.
// Frames paint onto an offscreen canvas that Draw copies to the window.
type Host struct {
	width, height int

	mu     sync.Mutex
	canvas *Surface

	input    *Input
	controls Controls
	sched    *loop.PumpScheduler
}

// NewHost creates a host with a logical screen of width x height.
func NewHost(width, height int) *Host {
	return &Host{
		width:  width,
		height: height,
		input:  NewInput(),
		sched:  loop.NewPumpScheduler(),
	}
}

// Input returns the host's input source.
func (h *Host) Input() render.InputSource {
	return h.input
}

// Controls returns the host's control key source.
func (h *Host) Controls() render.ControlSource {
	return h.controls
}

// Scheduler returns the scheduler pumped from Update, so frames follow
// Ebiten's tick rate.
func (h *Host) Scheduler() loop.Scheduler {
	return h.sched
}

// Surface returns the canvas once Ebiten has drawn at least once.
func (h *Host) Surface() (render.Surface, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.canvas == nil {
		return nil, false
	}
	return h.canvas, true
}

// SetWindowSize sets the window size in pixels.
func (h *Host) SetWindowSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

// SetWindowTitle sets the window title.
func (h *Host) SetWindowTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// SetTPS sets how many times per second Update, and so the frame, runs.
func (h *Host) SetTPS(tps int) {
	ebiten.SetTPS(tps)
}

// RunGame runs the game loop with the provided game.
func (h *Host) RunGame(game render.Game) error {
	err := ebiten.RunGame(&gameAdapter{host: h, game: game})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// gameAdapter adapts a render.Game to ebiten.Game interface.
type gameAdapter struct {
	host *Host
	game render.Game
}

// Update implements ebiten.Game.
func (a *gameAdapter) Update() error {
	a.host.input.Poll()
	if err := a.game.Update(); err != nil {
		if errors.Is(err, render.ErrQuit) {
			return ebiten.Termination
		}
		return err
	}
	a.host.sched.Pump()
	return nil
}

// Draw implements ebiten.Game.
func (a *gameAdapter) Draw(screen *ebiten.Image) {
	a.host.mu.Lock()
	if a.host.canvas == nil {
		a.host.canvas = WrapImage(ebiten.NewImage(a.host.width, a.host.height))
	}
	canvas := a.host.canvas
	a.host.mu.Unlock()

	screen.DrawImage(canvas.img, nil)
}

// Layout implements ebiten.Game.
func (a *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}
