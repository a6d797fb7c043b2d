package core

import (
	"fmt"
	"math"
)

// Config holds the timing rules of a session. It must not change once the
// session has started.
type Config struct {
	DAS       float64 // Delayed auto shift, frames
	ARR       float64 // Auto repeat rate, frames per cell (0 = instant)
	SDF       float64 // Soft drop factor, multiplies gravity while soft drop is held
	Gravity   float64 // Cells per frame (0 disables gravity)
	LockDelay int     // Frames a landed piece may rest before it locks
	MaxResets int     // Landed moves allowed before a forced lock
}

// DefaultConfig returns guideline-like timings for a 60 fps driver.
func DefaultConfig() Config {
	return Config{
		DAS:       7,
		ARR:       0,
		SDF:       20,
		Gravity:   0.02,
		LockDelay: 30,
		MaxResets: 15,
	}
}

// Validate rejects values the state machine cannot run with.
func (c Config) Validate() error {
	switch {
	case c.DAS < 0 || math.IsNaN(c.DAS) || math.IsInf(c.DAS, 0):
		return fmt.Errorf("das must be a finite value >= 0, got %v", c.DAS)
	case c.ARR < 0 || math.IsNaN(c.ARR) || math.IsInf(c.ARR, 0):
		return fmt.Errorf("arr must be a finite value >= 0, got %v", c.ARR)
	case !(c.SDF > 0) || math.IsInf(c.SDF, 0):
		return fmt.Errorf("sdf must be a finite value > 0, got %v", c.SDF)
	case c.Gravity < 0 || math.IsNaN(c.Gravity) || math.IsInf(c.Gravity, 0):
		return fmt.Errorf("gravity must be a finite value >= 0, got %v", c.Gravity)
	case c.Gravity > 0 && c.Gravity < minGravity:
		return fmt.Errorf("gravity must be 0 or at least %v, got %v", minGravity, c.Gravity)
	case c.LockDelay < 0:
		return fmt.Errorf("lock delay must be >= 0, got %d", c.LockDelay)
	case c.MaxResets < 0:
		return fmt.Errorf("max resets must be >= 0, got %d", c.MaxResets)
	}
	return nil
}

// subframes is the fixed-point resolution of all timers. Fractional config
// values are converted once, when the session is built, so the simulation
// itself only does integer arithmetic.
const subframes = 1 << 10

const minGravity = 1e-6

// timing is Config converted to sub-frame units.
type timing struct {
	das          int64
	arr          int64
	gravityStep  int64 // sub-frames per cell, 0 when gravity is off
	softDropStep int64 // sub-frames per cell while soft drop is held
}

func toSubframes(frames float64) int64 {
	return int64(math.Round(frames * subframes))
}

// perCell converts cells/frame into sub-frames per cell. It never returns
// less than one sub-frame so the gravity loop always advances its timer.
func perCell(cellsPerFrame float64) int64 {
	step := int64(math.Round(subframes / cellsPerFrame))
	if step < 1 {
		step = 1
	}
	return step
}

func newTiming(c Config) timing {
	t := timing{
		das: toSubframes(c.DAS),
		arr: toSubframes(c.ARR),
	}
	if c.Gravity > 0 {
		t.gravityStep = perCell(c.Gravity)
		t.softDropStep = perCell(c.Gravity * c.SDF)
	}
	return t
}
