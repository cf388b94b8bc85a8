package game

import (
	"image/color"

	"chosenoffset.com/pong/internal/core/pong"
	"chosenoffset.com/pong/internal/render"
)

var (
	backgroundColor = color.RGBA{0, 0, 0, 255}
	entityColor     = color.RGBA{255, 255, 255, 255}
	midlineColor    = color.RGBA{0x88, 0x88, 0x88, 255}
)

// Midline dash geometry.
const (
	dashWidth  = 4
	dashLength = 15
	dashStart  = 10
	dashPitch  = 30
)

// Painter draws a State onto a render.Surface.
type Painter struct {
	pf pong.Playfield
}

// NewPainter creates a painter for the given court.
func NewPainter(pf pong.Playfield) *Painter {
	return &Painter{pf: pf}
}

// Paint renders one frame: background, paddles, ball and the centre line.
func (p *Painter) Paint(screen render.Surface, st pong.State) {
	pf := p.pf
	screen.Fill(backgroundColor)

	screen.FillRect(0, st.Player.Y, pf.PaddleWidth, pf.PaddleHeight, entityColor)
	screen.FillRect(pf.Width-pf.PaddleWidth, st.Opponent.Y, pf.PaddleWidth, pf.PaddleHeight, entityColor)
	screen.FillCircle(st.Ball.X, st.Ball.Y, pf.BallRadius, entityColor)

	p.drawMidline(screen)
}

func (p *Painter) drawMidline(screen render.Surface) {
	x := p.pf.Width/2 - dashWidth/2
	for y := float64(dashStart); y < p.pf.Height; y += dashPitch {
		screen.FillRect(x, y, dashWidth, dashLength, midlineColor)
	}
}
