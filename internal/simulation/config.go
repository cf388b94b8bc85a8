// Package simulation provides configuration for the court, the rules and the
// display. Values are loaded from a JSON, TOML or YAML file so a court can be
// reshaped or the rules retuned without rebuilding.
package simulation

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"chosenoffset.com/pong/internal/core/pong"
	"chosenoffset.com/pong/internal/ui/hud"
)

// ErrInvalidConfig is returned by Validate for out-of-range values.
var ErrInvalidConfig = errors.New("invalid simulation config")

// Config holds all settings for a game
type Config struct {
	// Court geometry
	Playfield PlayfieldConfig `json:"playfield" toml:"playfield" yaml:"playfield"`

	// Paddle, AI and serve rules
	Rules RulesConfig `json:"rules" toml:"rules" yaml:"rules"`

	// Window and terminal settings
	Display DisplayConfig `json:"display" toml:"display" yaml:"display"`

	// Scoreboard
	HUD hud.Config `json:"hud" toml:"hud" yaml:"hud"`
}

// PlayfieldConfig defines the court and entity sizes
type PlayfieldConfig struct {
	Width        float64 `json:"width" toml:"width" yaml:"width"`
	Height       float64 `json:"height" toml:"height" yaml:"height"`
	PaddleWidth  float64 `json:"paddle_width" toml:"paddle_width" yaml:"paddle_width"`
	PaddleHeight float64 `json:"paddle_height" toml:"paddle_height" yaml:"paddle_height"`
	BallRadius   float64 `json:"ball_radius" toml:"ball_radius" yaml:"ball_radius"`
}

// RulesConfig defines paddle movement, the opponent and serves
type RulesConfig struct {
	// Units per tick while a key is held
	PlayerStep float64 `json:"player_step" toml:"player_step" yaml:"player_step"`
	// Fraction of the gap closed per tick, (0, 1]
	PointerSmoothing float64 `json:"pointer_smoothing" toml:"pointer_smoothing" yaml:"pointer_smoothing"`

	OpponentStep     float64 `json:"opponent_step" toml:"opponent_step" yaml:"opponent_step"`
	OpponentDeadZone float64 `json:"opponent_dead_zone" toml:"opponent_dead_zone" yaml:"opponent_dead_zone"`
	SpinFactor       float64 `json:"spin_factor" toml:"spin_factor" yaml:"spin_factor"`

	ServeBaseSpeed      float64 `json:"serve_base_speed" toml:"serve_base_speed" yaml:"serve_base_speed"`
	ServeSpeedRange     float64 `json:"serve_speed_range" toml:"serve_speed_range" yaml:"serve_speed_range"`
	ServeVerticalSpread float64 `json:"serve_vertical_spread" toml:"serve_vertical_spread" yaml:"serve_vertical_spread"`

	KickoffHorizontal float64 `json:"kickoff_horizontal" toml:"kickoff_horizontal" yaml:"kickoff_horizontal"`
	KickoffVertical   float64 `json:"kickoff_vertical" toml:"kickoff_vertical" yaml:"kickoff_vertical"`
}

// DisplayConfig defines the host window and frame rate
type DisplayConfig struct {
	Title string `json:"title" toml:"title" yaml:"title"`

	// Frames per second
	TPS int `json:"tps" toml:"tps" yaml:"tps"`

	// Window pixels per playfield unit
	Scale float64 `json:"scale" toml:"scale" yaml:"scale"`

	// Terminal only: how long a key press counts as held
	KeyHoldMS int `json:"key_hold_ms" toml:"key_hold_ms" yaml:"key_hold_ms"`
}

// DefaultConfig returns the classic 700x400 game at 60 frames per second
func DefaultConfig() *Config {
	pf := pong.DefaultPlayfield()
	tun := pong.DefaultTuning()
	return &Config{
		Playfield: PlayfieldConfig{
			Width:        pf.Width,
			Height:       pf.Height,
			PaddleWidth:  pf.PaddleWidth,
			PaddleHeight: pf.PaddleHeight,
			BallRadius:   pf.BallRadius,
		},
		Rules: RulesConfig{
			PlayerStep:          tun.PlayerStep,
			PointerSmoothing:    tun.PointerSmoothing,
			OpponentStep:        tun.OpponentStep,
			OpponentDeadZone:    tun.OpponentDeadZone,
			SpinFactor:          tun.SpinFactor,
			ServeBaseSpeed:      tun.ServeBaseSpeed,
			ServeSpeedRange:     tun.ServeSpeedRange,
			ServeVerticalSpread: tun.ServeVerticalSpread,
			KickoffHorizontal:   tun.KickoffHorizontal,
			KickoffVertical:     tun.KickoffVertical,
		},
		Display: DisplayConfig{
			Title:     "Pong",
			TPS:       60,
			Scale:     1,
			KeyHoldMS: 550,
		},
		HUD: *hud.DefaultConfig(),
	}
}

// LoadConfig loads config from a file, choosing the format by extension:
// .json, .toml, .yaml or .yml. Fields missing from the file keep their
// defaults, and a missing file yields DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read simulation config: %w", err)
	}

	config := DefaultConfig() // Start with defaults
	if err := decode(path, data, config); err != nil {
		return nil, fmt.Errorf("failed to parse simulation config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func decode(path string, data []byte, config *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return json.Unmarshal(data, config)
	case ".toml":
		_, err := toml.Decode(string(data), config)
		return err
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, config)
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
}

// Validate checks that the config describes a playable court
func (c *Config) Validate() error {
	p := c.Playfield
	switch {
	case p.Width <= 0 || p.Height <= 0:
		return fmt.Errorf("%w: playfield must have positive size, got %vx%v", ErrInvalidConfig, p.Width, p.Height)
	case p.PaddleWidth <= 0 || p.PaddleHeight <= 0:
		return fmt.Errorf("%w: paddle must have positive size, got %vx%v", ErrInvalidConfig, p.PaddleWidth, p.PaddleHeight)
	case p.PaddleHeight > p.Height:
		return fmt.Errorf("%w: paddle_height %v exceeds playfield height %v", ErrInvalidConfig, p.PaddleHeight, p.Height)
	case 2*p.PaddleWidth >= p.Width:
		return fmt.Errorf("%w: paddles leave no court between them", ErrInvalidConfig)
	case p.BallRadius <= 0 || 2*p.BallRadius >= p.Height:
		return fmt.Errorf("%w: ball_radius %v does not fit the playfield", ErrInvalidConfig, p.BallRadius)
	}

	r := c.Rules
	switch {
	case r.PointerSmoothing <= 0 || r.PointerSmoothing > 1:
		return fmt.Errorf("%w: pointer_smoothing must be in (0, 1], got %v", ErrInvalidConfig, r.PointerSmoothing)
	case r.PlayerStep < 0 || r.OpponentStep < 0 || r.OpponentDeadZone < 0:
		return fmt.Errorf("%w: paddle steps and dead zone must not be negative", ErrInvalidConfig)
	case r.ServeBaseSpeed <= 0 || r.ServeSpeedRange < 0 || r.ServeVerticalSpread < 0:
		return fmt.Errorf("%w: serve speeds must be positive", ErrInvalidConfig)
	}

	if c.Display.TPS <= 0 {
		return fmt.Errorf("%w: tps must be positive, got %d", ErrInvalidConfig, c.Display.TPS)
	}
	if c.Display.Scale <= 0 {
		return fmt.Errorf("%w: scale must be positive, got %v", ErrInvalidConfig, c.Display.Scale)
	}
	return nil
}

// Geometry converts the playfield section to the simulation's court
func (c *Config) Geometry() pong.Playfield {
	return pong.Playfield{
		Width:        c.Playfield.Width,
		Height:       c.Playfield.Height,
		PaddleWidth:  c.Playfield.PaddleWidth,
		PaddleHeight: c.Playfield.PaddleHeight,
		BallRadius:   c.Playfield.BallRadius,
	}
}

// Tuning converts the rules section to the simulation's constants
func (c *Config) Tuning() pong.Tuning {
	r := c.Rules
	return pong.Tuning{
		PlayerStep:          r.PlayerStep,
		PointerSmoothing:    r.PointerSmoothing,
		OpponentStep:        r.OpponentStep,
		OpponentDeadZone:    r.OpponentDeadZone,
		SpinFactor:          r.SpinFactor,
		ServeBaseSpeed:      r.ServeBaseSpeed,
		ServeSpeedRange:     r.ServeSpeedRange,
		ServeVerticalSpread: r.ServeVerticalSpread,
		KickoffHorizontal:   r.KickoffHorizontal,
		KickoffVertical:     r.KickoffVertical,
	}
}
