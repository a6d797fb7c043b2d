// Package config provides YAML-based configuration loading and difficulty
// presets for the puzzle. Configuration is resolved once, before a session
// starts, and never changes while it runs.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

// BlocksConfig contains all configuration for a puzzle session.
type BlocksConfig struct {
	Board   BoardConfig  `yaml:"board"`
	Timing  TimingConfig `yaml:"timing"`
	Preview int          `yaml:"preview"` // Upcoming pieces shown

	// PieceLimit ends the session after this many pieces. Zero is endless.
	PieceLimit int `yaml:"piece_limit,omitempty"`
}

// BoardConfig defines the well geometry.
type BoardConfig struct {
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	StartRow    int `yaml:"start_row"`    // Row new pieces spawn on
	VisibleRows int `yaml:"visible_rows"` // Rows inside the well frame; the rest is the spawn zone
}

// TimingConfig defines the frame-based timing rules. Frames are simulation ticks.
type TimingConfig struct {
	DAS       float64 `yaml:"das"`        // Delayed auto shift, frames
	ARR       float64 `yaml:"arr"`        // Auto repeat rate, frames per cell
	SDF       float64 `yaml:"sdf"`        // Soft drop factor
	Gravity   float64 `yaml:"gravity"`    // Cells per frame
	LockDelay int     `yaml:"lock_delay"` // Frames
	MaxResets int     `yaml:"max_resets"`
}

// EngineConfig converts the timing section into the engine's config.
func (c BlocksConfig) EngineConfig() core.Config {
	return core.Config{
		DAS:       c.Timing.DAS,
		ARR:       c.Timing.ARR,
		SDF:       c.Timing.SDF,
		Gravity:   c.Timing.Gravity,
		LockDelay: c.Timing.LockDelay,
		MaxResets: c.Timing.MaxResets,
	}
}

// Validate checks the board geometry and timings.
func (c BlocksConfig) Validate() error {
	b := c.Board
	switch {
	case b.Width < 4 || b.Width > 64:
		return fmt.Errorf("config: board width must be in [4, 64], got %d", b.Width)
	case b.Height < 4 || b.Height > 64:
		return fmt.Errorf("config: board height must be in [4, 64], got %d", b.Height)
	case b.StartRow < 0 || b.StartRow >= b.Height:
		return fmt.Errorf("config: start row must be in [0, %d), got %d", b.Height, b.StartRow)
	case b.VisibleRows < 1 || b.VisibleRows > b.Height:
		return fmt.Errorf("config: visible rows must be in [1, %d], got %d", b.Height, b.VisibleRows)
	case c.Preview < 0 || c.Preview > 12:
		return fmt.Errorf("config: preview must be in [0, 12], got %d", c.Preview)
	case c.PieceLimit < 0:
		return fmt.Errorf("config: piece limit must not be negative, got %d", c.PieceLimit)
	}
	if err := c.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("config: timing: %w", err)
	}
	return nil
}

// HiddenRows returns the number of spawn-zone rows above the well frame.
func (c BlocksConfig) HiddenRows() int {
	return c.Board.Height - c.Board.VisibleRows
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // Use the loaded file as-is
	DifficultyZen    DifficultyPreset = "zen"   // No gravity
)

// Presets lists the accepted preset names.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed, DifficultyZen}
}

// ParsePreset validates a preset name. An empty name means fixed.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyFixed, nil
	}
	for _, p := range Presets() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q", s)
}

// Setup returns the engine session setup for a seed.
func (c BlocksConfig) Setup(seed uint32) core.Setup {
	return core.Setup{
		Width:    c.Board.Width,
		Height:   c.Board.Height,
		StartRow: c.Board.StartRow,
		Preview:  c.Preview,
		Seed:     seed,
		Config:   c.EngineConfig(),

		PieceLimit: c.PieceLimit,
	}
}
