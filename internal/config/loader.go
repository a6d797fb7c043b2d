package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const blocksFile = "blocks.yaml"

// LoadBlocks loads the puzzle configuration.
// Search order: customPath -> ~/.blocks/configs/blocks.yaml -> ./configs/blocks.yaml -> embedded default.
// Fields missing from a file keep their built-in values. A custom path that
// cannot be read or is invalid is an error; the other locations are skipped.
func LoadBlocks(customPath string) (BlocksConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BlocksConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseBlocks(data)
		if err != nil {
			return BlocksConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(blocksFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseBlocks(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", blocksFile)); err == nil {
		if cfg, err := parseBlocks(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parseBlocks(defaultBlocksYAML)
	if err != nil {
		return DefaultBlocksConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parseBlocks(data []byte) (BlocksConfig, error) {
	cfg := DefaultBlocksConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BlocksConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return BlocksConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blocks", "configs", filename)
}

// ApplyBlocksPreset adjusts the timings for a difficulty preset.
// It must be called before the session is created.
func ApplyBlocksPreset(cfg *BlocksConfig, preset DifficultyPreset) {
	defaults := DefaultBlocksConfig().Timing

	switch preset {
	case DifficultyEasy:
		cfg.Timing = defaults
		cfg.Timing.Gravity = defaults.Gravity / 2
		cfg.Timing.LockDelay = 45
	case DifficultyNormal:
		cfg.Timing = defaults
	case DifficultyHard:
		cfg.Timing = defaults
		cfg.Timing.Gravity = 0.1
		cfg.Timing.LockDelay = 20
		cfg.Timing.MaxResets = 10
	case DifficultyZen:
		cfg.Timing.Gravity = 0
	}
}

// Marshal renders a config as YAML, the same format LoadBlocks reads.
func Marshal(cfg BlocksConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}
