// Package terminal hosts the game in a terminal using tcell. The playfield is
// scaled onto the cell grid, arrow keys and mouse motion feed the input sink
// from tcell's event goroutine, and frames are driven by a fixed-rate
// scheduler rather than a display refresh.
package terminal

import (
	"errors"
	"image/color"
	"math"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/pong/internal/render"
)

// DefaultHoldTimeout is how long an arrow key counts as held after its last
// press or auto-repeat. Terminals report presses, never releases.
const DefaultHoldTimeout = 550 * time.Millisecond

// Host implements render.Engine, render.SurfaceProvider, render.InputSource
// and render.ControlSource on a tcell.Screen.
type Host struct {
	screen        tcell.Screen
	width, height float64 // logical playfield size
	holdTimeout   time.Duration

	tps atomic.Int32

	mu        sync.Mutex
	sink      render.InputSink
	upTimer   *time.Timer
	downTimer *time.Timer

	pausePressed atomic.Bool
	quitPressed  atomic.Bool

	started   bool
	done      chan struct{}
	polled    chan struct{}
	closeOnce sync.Once

	surface *Surface
}

// NewHost wraps screen for a playfield of width x height logical units. The
// screen is initialised by Open.
func NewHost(screen tcell.Screen, width, height float64) *Host {
	h := &Host{
		screen:      screen,
		width:       width,
		height:      height,
		holdTimeout: DefaultHoldTimeout,
		done:        make(chan struct{}),
		polled:      make(chan struct{}),
	}
	h.tps.Store(60)
	h.surface = &Surface{screen: screen, width: width, height: height}
	return h
}

// SetHoldTimeout overrides DefaultHoldTimeout.
func (h *Host) SetHoldTimeout(d time.Duration) {
	if d > 0 {
		h.holdTimeout = d
	}
}

// Open initialises the screen and starts the event goroutine.
func (h *Host) Open() error {
	if err := h.screen.Init(); err != nil {
		return err
	}
	h.screen.EnableMouse(tcell.MouseMotionEvents)
	h.screen.HideCursor()
	h.screen.Clear()

	h.mu.Lock()
	h.started = true
	h.mu.Unlock()

	go h.pollEvents()
	return nil
}

// Close detaches input, restores the terminal and waits for the event
// goroutine to exit. It is safe to call more than once.
func (h *Host) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
		h.Detach()

		h.mu.Lock()
		started := h.started
		h.mu.Unlock()

		h.screen.Fini()
		if started {
			<-h.polled
		}
	})
}

func (h *Host) pollEvents() {
	defer close(h.polled)
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return
		}
		h.HandleEvent(ev)
	}
}

// HandleEvent routes one tcell event. Arrow keys and mouse motion go to the
// attached sink; control keys are latched for IsKeyJustPressed.
func (h *Host) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		h.handleKey(ev)
	case *tcell.EventMouse:
		_, y := ev.Position()
		h.pointerMoved(y)
	case *tcell.EventResize:
		h.screen.Sync()
	}
}

func (h *Host) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyUp:
		h.hold(true)
	case tcell.KeyDown:
		h.hold(false)
	case tcell.KeyEscape, tcell.KeyCtrlC:
		h.quitPressed.Store(true)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			h.quitPressed.Store(true)
		case 'p', 'P', ' ':
			h.pausePressed.Store(true)
		}
	}
}

// hold marks one direction pressed, releases the other, and arms the
// release timer.
func (h *Host) hold(up bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sink == nil {
		return
	}
	sink := h.sink

	if up {
		sink.SetDown(false)
		stopTimer(h.downTimer)
		sink.SetUp(true)
		h.upTimer = h.rearm(h.upTimer, func() { h.release(sink, true) })
	} else {
		sink.SetUp(false)
		stopTimer(h.upTimer)
		sink.SetDown(true)
		h.downTimer = h.rearm(h.downTimer, func() { h.release(sink, false) })
	}
}

func (h *Host) rearm(t *time.Timer, fn func()) *time.Timer {
	if t != nil {
		t.Stop()
	}
	return time.AfterFunc(h.holdTimeout, fn)
}

func (h *Host) release(sink render.InputSink, up bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	// A detach or re-attach since the timer was armed makes it stale.
	if h.sink != sink {
		return
	}
	if up {
		sink.SetUp(false)
	} else {
		sink.SetDown(false)
	}
}

func (h *Host) pointerMoved(row int) {
	_, rows := h.screen.Size()
	if rows <= 0 {
		return
	}
	y := (float64(row) + 0.5) * h.height / float64(rows)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sink != nil {
		h.sink.SetPointerY(y)
	}
}

// Attach starts forwarding events to sink.
func (h *Host) Attach(sink render.InputSink) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sink = sink
}

// Detach stops forwarding events and cancels pending key releases.
func (h *Host) Detach() {
	h.mu.Lock()
	defer h.mu.Unlock()
	stopTimer(h.upTimer)
	stopTimer(h.downTimer)
	h.upTimer, h.downTimer = nil, nil
	h.sink = nil
}

func stopTimer(t *time.Timer) {
	if t != nil {
		t.Stop()
	}
}

// IsKeyJustPressed reports and clears a latched control key.
func (h *Host) IsKeyJustPressed(key render.Key) bool {
	switch key {
	case render.KeyPause:
		return h.pausePressed.Swap(false)
	case render.KeyQuit:
		return h.quitPressed.Swap(false)
	default:
		return false
	}
}

// Surface returns the cell surface while the terminal is large enough to
// show anything.
func (h *Host) Surface() (render.Surface, bool) {
	select {
	case <-h.done:
		return nil, false
	default:
	}
	cols, rows := h.screen.Size()
	if cols <= 0 || rows <= 0 {
		return nil, false
	}
	return h.surface, true
}

// SetWindowTitle sets the terminal title where supported.
func (h *Host) SetWindowTitle(title string) {
	h.screen.SetTitle(title)
}

// SetTPS sets how often RunGame calls Update.
func (h *Host) SetTPS(tps int) {
	if tps > 0 {
		h.tps.Store(int32(tps))
	}
}

// RunGame calls game.Update at the configured rate until it returns an
// error or the host is closed. ErrQuit ends the run without error.
func (h *Host) RunGame(game render.Game) error {
	cols, rows := h.screen.Size()
	game.Layout(cols, rows)

	ticker := time.NewTicker(time.Second / time.Duration(h.tps.Load()))
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := game.Update(); err != nil {
				if errors.Is(err, render.ErrQuit) {
					return nil
				}
				return err
			}
		case <-h.done:
			return nil
		}
	}
}

// Surface rasterises playfield primitives onto terminal cells. Cells that
// overlap a rectangle are painted; a circle paints the cells whose centres
// lie inside it, and always the cell under its centre.
type Surface struct {
	screen        tcell.Screen
	width, height float64

	mu sync.Mutex
	bg tcell.Color
}

// Size returns the logical size of the playfield.
func (s *Surface) Size() (width, height int) {
	return int(s.width), int(s.height)
}

func (s *Surface) scale() (sx, sy float64, cols, rows int) {
	cols, rows = s.screen.Size()
	return float64(cols) / s.width, float64(rows) / s.height, cols, rows
}

// Fill paints every cell.
func (s *Surface) Fill(clr color.Color) {
	c := toTcell(clr)
	s.mu.Lock()
	s.bg = c
	s.mu.Unlock()

	st := tcell.StyleDefault.Background(c)
	s.screen.Fill(' ', st)
}

// FillRect paints every cell the rectangle overlaps.
func (s *Surface) FillRect(x, y, w, h float64, clr color.Color) {
	sx, sy, cols, rows := s.scale()
	x0 := clampInt(int(math.Floor(x*sx)), 0, cols)
	x1 := clampInt(int(math.Ceil((x+w)*sx)), 0, cols)
	y0 := clampInt(int(math.Floor(y*sy)), 0, rows)
	y1 := clampInt(int(math.Ceil((y+h)*sy)), 0, rows)

	st := tcell.StyleDefault.Background(toTcell(clr))
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			s.screen.SetContent(cx, cy, ' ', nil, st)
		}
	}
}

// FillCircle paints the cells whose centres fall inside the circle.
func (s *Surface) FillCircle(x, y, radius float64, clr color.Color) {
	sx, sy, cols, rows := s.scale()
	st := tcell.StyleDefault.Background(toTcell(clr))

	x0 := clampInt(int(math.Floor((x-radius)*sx)), 0, cols)
	x1 := clampInt(int(math.Ceil((x+radius)*sx)), 0, cols)
	y0 := clampInt(int(math.Floor((y-radius)*sy)), 0, rows)
	y1 := clampInt(int(math.Ceil((y+radius)*sy)), 0, rows)
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			dx := (float64(cx)+0.5)/sx - x
			dy := (float64(cy)+0.5)/sy - y
			if dx*dx+dy*dy <= radius*radius {
				s.screen.SetContent(cx, cy, ' ', nil, st)
			}
		}
	}

	cx, cy := int(math.Floor(x*sx)), int(math.Floor(y*sy))
	if cx >= 0 && cx < cols && cy >= 0 && cy < rows {
		s.screen.SetContent(cx, cy, ' ', nil, st)
	}
}

// DrawText writes text starting at the cell under logical (x, y).
func (s *Surface) DrawText(text string, x, y int, clr color.Color) {
	sx, sy, cols, rows := s.scale()
	s.mu.Lock()
	bg := s.bg
	s.mu.Unlock()

	st := tcell.StyleDefault.Foreground(toTcell(clr)).Background(bg)
	cx, cy := int(float64(x)*sx), int(float64(y)*sy)
	if cy < 0 || cy >= rows {
		return
	}
	for _, r := range text {
		if cx >= cols {
			return
		}
		if cx >= 0 {
			s.screen.SetContent(cx, cy, r, nil, st)
		}
		cx++
	}
}

// MeasureText returns the logical width of text at one cell per character.
func (s *Surface) MeasureText(text string) int {
	sx, _, _, _ := s.scale()
	if sx <= 0 {
		return 0
	}
	return int(math.Ceil(float64(utf8.RuneCountInString(text)) / sx))
}

// Present flushes the painted frame to the terminal.
func (s *Surface) Present() {
	s.screen.Show()
}

func toTcell(clr color.Color) tcell.Color {
	r, g, b, _ := clr.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
