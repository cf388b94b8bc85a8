package hud

import (
	"image/color"
	"testing"

	"chosenoffset.com/pong/internal/core/pong"
)

type textCall struct {
	text string
	x, y int
}

type recordingSurface struct {
	width, height int
	texts         []textCall
}

func newSurface() *recordingSurface {
	return &recordingSurface{width: 700, height: 400}
}

func (r *recordingSurface) Size() (int, int) { return r.width, r.height }
func (r *recordingSurface) Fill(color.Color) {}
func (r *recordingSurface) FillRect(x, y, w, h float64, clr color.Color) {}
func (r *recordingSurface) FillCircle(x, y, radius float64, clr color.Color) {}
func (r *recordingSurface) DrawText(text string, x, y int, clr color.Color) {
	r.texts = append(r.texts, textCall{text: text, x: x, y: y})
}

func TestHUDDrawsCenteredScore(t *testing.T) {
	h := New(nil)
	h.SetScore(pong.Score{Player: 3, Computer: 1})

	surf := newSurface()
	h.Draw(surf)

	if len(surf.texts) != 2 {
		t.Fatalf("Expected score and help lines, got %d", len(surf.texts))
	}
	score := surf.texts[0]
	if score.text != "3 : 1" {
		t.Errorf("Expected '3 : 1', got '%s'", score.text)
	}
	if want := 350 - MeasureText("3 : 1")/2; score.x != want || score.y != 8 {
		t.Errorf("Expected score at (%d, 8), got (%d, %d)", want, score.x, score.y)
	}
	if surf.texts[1].text != HelpText {
		t.Errorf("Expected help text, got '%s'", surf.texts[1].text)
	}
}

func TestHUDPauseBanner(t *testing.T) {
	h := New(&Config{ShowScore: true})
	h.SetPaused(true)

	surf := newSurface()
	h.Draw(surf)

	if len(surf.texts) != 2 || surf.texts[1].text != PausedText {
		t.Fatalf("Expected score then pause banner, got %+v", surf.texts)
	}

	h.SetPaused(false)
	surf = newSurface()
	h.Draw(surf)
	if len(surf.texts) != 1 {
		t.Errorf("Expected only the score after resuming, got %+v", surf.texts)
	}
}

func TestHUDBottomPosition(t *testing.T) {
	h := New(&Config{ShowScore: true, Position: "bottom"})
	surf := newSurface()
	h.Draw(surf)

	if surf.texts[0].y != 380 {
		t.Errorf("Expected score at y=380, got %d", surf.texts[0].y)
	}
}

func TestHUDClampsWideTextToLeftEdge(t *testing.T) {
	h := New(&Config{ShowHelp: true})
	surf := &recordingSurface{width: 100, height: 400}
	h.Draw(surf)

	if surf.texts[0].x != 0 {
		t.Errorf("Expected wide text to start at x=0, got %d", surf.texts[0].x)
	}
}

type cellSurface struct {
	recordingSurface
}

// MeasureText reports one character per 10 units.
func (c *cellSurface) MeasureText(text string) int { return len(text) * 10 }

func TestHUDUsesSurfaceMeasurement(t *testing.T) {
	h := New(&Config{ShowScore: true})
	h.SetScore(pong.Score{Player: 3, Computer: 1})

	surf := &cellSurface{recordingSurface{width: 700, height: 400}}
	h.Draw(surf)

	if want := 350 - 25; surf.texts[0].x != want {
		t.Errorf("Expected score at x=%d, got %d", want, surf.texts[0].x)
	}
}

func TestHUDFollowsSurfaceSize(t *testing.T) {
	h := New(&Config{ShowScore: true, Position: "bottom"})
	surf := &recordingSurface{width: 1000, height: 600}
	h.Draw(surf)

	if surf.texts[0].y != 580 {
		t.Errorf("Expected score at y=580, got %d", surf.texts[0].y)
	}
	if want := 500 - MeasureText("0 : 0")/2; surf.texts[0].x != want {
		t.Errorf("Expected score at x=%d, got %d", want, surf.texts[0].x)
	}
}
