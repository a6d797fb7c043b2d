package config

import (
	_ "embed"
)

//go:embed defaults/blocks.yaml
var defaultBlocksYAML []byte

// DefaultBlocksConfig returns the built-in configuration: a 10x22 well with
// two spawn rows, five preview slots and guideline-like timings at 60 fps.
func DefaultBlocksConfig() BlocksConfig {
	return BlocksConfig{
		Board: BoardConfig{
			Width:       10,
			Height:      22,
			StartRow:    0,
			VisibleRows: 20,
		},
		Timing: TimingConfig{
			DAS:       7,
			ARR:       0,
			SDF:       20,
			Gravity:   0.02,
			LockDelay: 30,
			MaxResets: 15,
		},
		Preview: 5,
	}
}
