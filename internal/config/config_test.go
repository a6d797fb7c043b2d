package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	cfg, err := parseBlocks(defaultBlocksYAML)
	if err != nil {
		t.Fatalf("parseBlocks(embedded) error: %v", err)
	}
	if cfg != DefaultBlocksConfig() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultBlocksConfig())
	}
}

func TestLoadBlocksCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocks.yaml")
	data := []byte("timing:\n  gravity: 0.5\n  das: 10\npreview: 3\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBlocks(path)
	if err != nil {
		t.Fatalf("LoadBlocks() error: %v", err)
	}
	if cfg.Timing.Gravity != 0.5 || cfg.Timing.DAS != 10 || cfg.Preview != 3 {
		t.Errorf("LoadBlocks() = %+v, expected overridden timing and preview", cfg)
	}
	// Unset fields keep the defaults.
	if cfg.Board != DefaultBlocksConfig().Board || cfg.Timing.LockDelay != 30 {
		t.Errorf("LoadBlocks() lost defaults: %+v", cfg)
	}
}

func TestLoadBlocksCustomPathErrors(t *testing.T) {
	dir := t.TempDir()
	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("board:\n  width: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("board: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{invalid, broken, filepath.Join(dir, "missing.yaml")} {
		if _, err := LoadBlocks(path); err == nil {
			t.Errorf("LoadBlocks(%s) expected an error", filepath.Base(path))
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BlocksConfig)
		ok     bool
	}{
		{"defaults", func(*BlocksConfig) {}, true},
		{"narrow", func(c *BlocksConfig) { c.Board.Width = 3 }, false},
		{"start row below board", func(c *BlocksConfig) { c.Board.StartRow = 22 }, false},
		{"too many visible rows", func(c *BlocksConfig) { c.Board.VisibleRows = 23 }, false},
		{"negative preview", func(c *BlocksConfig) { c.Preview = -1 }, false},
		{"zero sdf", func(c *BlocksConfig) { c.Timing.SDF = 0 }, false},
		{"no gravity", func(c *BlocksConfig) { c.Timing.Gravity = 0 }, true},
		{"piece limit", func(c *BlocksConfig) { c.PieceLimit = 40 }, true},
		{"negative piece limit", func(c *BlocksConfig) { c.PieceLimit = -1 }, false},
	}

	for _, tt := range tests {
		cfg := DefaultBlocksConfig()
		tt.mutate(&cfg)
		if err := cfg.Validate(); (err == nil) != tt.ok {
			t.Errorf("%s: Validate() = %v, expected ok=%v", tt.name, err, tt.ok)
		}
	}
}

func TestApplyBlocksPreset(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		gravity   float64
		lockDelay int
	}{
		{DifficultyEasy, 0.01, 45},
		{DifficultyNormal, 0.02, 30},
		{DifficultyHard, 0.1, 20},
		{DifficultyFixed, 0.3, 12},
		{DifficultyZen, 0, 12},
	}

	for _, tt := range tests {
		cfg := DefaultBlocksConfig()
		cfg.Timing.Gravity = 0.3
		cfg.Timing.LockDelay = 12

		ApplyBlocksPreset(&cfg, tt.preset)
		if cfg.Timing.Gravity != tt.gravity || cfg.Timing.LockDelay != tt.lockDelay {
			t.Errorf("%s: gravity=%v lock=%d, expected gravity=%v lock=%d",
				tt.preset, cfg.Timing.Gravity, cfg.Timing.LockDelay, tt.gravity, tt.lockDelay)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s: preset produced an invalid config: %v", tt.preset, err)
		}
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyFixed {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset(nightmare) expected an error")
	}
}

func TestEngineConfig(t *testing.T) {
	cfg := DefaultBlocksConfig()
	ec := cfg.EngineConfig()
	if ec.DAS != 7 || ec.SDF != 20 || ec.MaxResets != 15 {
		t.Errorf("EngineConfig() = %+v", ec)
	}
	if cfg.HiddenRows() != 2 {
		t.Errorf("HiddenRows() = %d, expected 2", cfg.HiddenRows())
	}

	cfg.PieceLimit = 40
	if s := cfg.Setup(9); s.PieceLimit != 40 || s.Seed != 9 || s.Width != 10 {
		t.Errorf("Setup(9) = %+v", s)
	}
}
