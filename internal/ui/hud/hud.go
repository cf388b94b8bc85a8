// Package hud draws the scoreboard and the short status lines shown over the
// court.
package hud

import (
	"image/color"

	"chosenoffset.com/pong/internal/core/pong"
	"chosenoffset.com/pong/internal/render"
)

// charWidth approximates the debug font's advance per character.
const charWidth = 6

// Config defines what to display in the HUD
type Config struct {
	ShowScore bool   `json:"show_score" toml:"show_score" yaml:"show_score"`
	ShowHelp  bool   `json:"show_help" toml:"show_help" yaml:"show_help"`
	Position  string `json:"position" toml:"position" yaml:"position"` // "top" or "bottom"
}

// DefaultConfig returns a sensible default HUD configuration
func DefaultConfig() *Config {
	return &Config{
		ShowScore: true,
		ShowHelp:  true,
		Position:  "top",
	}
}

// HelpText is the instructions line.
const HelpText = "Mouse or arrow keys move the left paddle. P pauses, Esc quits."

// PausedText is shown while the game is paused.
const PausedText = "PAUSED - press P to resume"

var (
	scoreColor = color.RGBA{255, 255, 255, 255}
	helpColor  = color.RGBA{136, 136, 136, 255}
)

// HUD manages the heads-up display. It lays itself out against the size of
// the surface it is drawn on.
type HUD struct {
	config *Config

	score  pong.Score
	paused bool
}

// New creates a new HUD with the given configuration
func New(config *Config) *HUD {
	if config == nil {
		config = DefaultConfig()
	}
	return &HUD{config: config}
}

// SetScore updates the displayed score
func (h *HUD) SetScore(s pong.Score) {
	h.score = s
}

// SetPaused toggles the pause banner
func (h *HUD) SetPaused(paused bool) {
	h.paused = paused
}

// Draw renders the HUD to the screen
func (h *HUD) Draw(screen render.Surface) {
	width, height := screen.Size()
	scoreY, helpY := 8, height-20
	if h.config.Position == "bottom" {
		scoreY, helpY = height-20, 8
	}

	if h.config.ShowScore {
		drawCentered(screen, h.score.String(), width, scoreY, scoreColor)
	}
	if h.paused {
		drawCentered(screen, PausedText, width, height/2-6, scoreColor)
	}
	if h.config.ShowHelp {
		drawCentered(screen, HelpText, width, helpY, helpColor)
	}
}

func drawCentered(screen render.Surface, text string, width, y int, clr color.Color) {
	x := width/2 - measure(screen, text)/2
	if x < 0 {
		x = 0
	}
	screen.DrawText(text, x, y, clr)
}

// measure asks the surface for the text width when it knows better than
// the debug font.
func measure(screen render.Surface, text string) int {
	if m, ok := screen.(render.TextMeasurer); ok {
		return m.MeasureText(text)
	}
	return MeasureText(text)
}

// MeasureText returns the approximate pixel width of text in the debug font.
func MeasureText(text string) int {
	return len(text) * charWidth
}
