package core

import "fmt"

// Stats are plain facts about a session. They are not a score.
type Stats struct {
	Spawned     int
	Locked      int
	RowsCleared int
	Holds       int
	HardDrops   int
}

// Game is the frame-stepped state machine of one session.
//
// It is single-threaded and synchronous: every OnEvent call runs to
// completion and the only clock is the internal tick counter. Feeding the
// same events to a session built from the same seed and config reproduces
// the same trajectory.
type Game struct {
	cfg    Config
	timing timing
	field  *Playfield
	seq    Sequence

	tick int64

	held     int
	hasHeld  bool
	holdUsed bool

	gravityRef int64 // sub-frames

	leftDown   bool
	rightDown  bool
	direction  int   // -1, 0, 1
	moveRef    int64 // sub-frames
	autoRepeat bool

	softDropDown bool

	landedFrames int
	resets       int

	started bool
	ended   error
	stats   Stats
}

// New builds a session over a playfield and a piece sequence. The session
// has no active piece until Start is called.
func New(cfg Config, field *Playfield, seq Sequence) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if field == nil {
		return nil, fmt.Errorf("nil playfield")
	}
	if seq == nil {
		return nil, fmt.Errorf("nil sequence")
	}
	return &Game{
		cfg:    cfg,
		timing: newTiming(cfg),
		field:  field,
		seq:    seq,
	}, nil
}

// Start spawns the first piece. Calling it again is a no-op.
func (g *Game) Start() error {
	if g.ended != nil {
		return g.ended
	}
	if g.started {
		return nil
	}
	g.started = true
	return g.fail(g.spawnNext())
}

// OnEvent applies one event. The returned error is always nil or an
// *EndError; once a session has ended every call returns that same error.
func (g *Game) OnEvent(ev Event) error {
	if g.ended != nil {
		return g.ended
	}
	if !g.started {
		if err := g.Start(); err != nil {
			return err
		}
	}
	return g.fail(g.handle(ev))
}

func (g *Game) fail(err error) error {
	if err != nil {
		g.ended = err
	}
	return err
}

func (g *Game) now() int64 {
	return g.tick * subframes
}

func (g *Game) handle(ev Event) error {
	switch ev {
	case EventTick:
		return g.step()
	case EventRotateLeft:
		_, err := g.move(P(0, 0), 3)
		return err
	case EventRotateRight:
		_, err := g.move(P(0, 0), 1)
		return err
	case EventRotate180:
		_, err := g.move(P(0, 0), 2)
		return err
	case EventHold:
		return g.hold()
	case EventHardDrop:
		return g.hardDrop()
	case EventSoftDropFast:
		g.field.FastDrop()
		g.landedFrames = 0
		return nil
	case EventForfeit:
		return &EndError{Reason: EndForfeit}
	case EventMoveLeftBegin:
		g.leftDown = true
		return g.beginShift(-1)
	case EventMoveRightBegin:
		g.rightDown = true
		return g.beginShift(1)
	case EventMoveLeftEnd:
		g.leftDown = false
		return g.endShift(g.rightDown, 1)
	case EventMoveRightEnd:
		g.rightDown = false
		return g.endShift(g.leftDown, -1)
	case EventSoftDropBegin:
		g.softDropDown = true
		_, err := g.move(P(0, 1), 0)
		g.gravityRef = g.now()
		return err
	case EventSoftDropEnd:
		g.softDropDown = false
		return nil
	}
	return nil
}

func (g *Game) beginShift(dir int) error {
	g.direction = dir
	g.autoRepeat = false
	_, err := g.move(P(dir, 0), 0)
	g.moveRef = g.now()
	return err
}

func (g *Game) endShift(oppositeDown bool, opposite int) error {
	if !oppositeDown {
		g.direction = 0
		return nil
	}
	g.direction = opposite
	_, err := g.move(P(opposite, 0), 0)
	g.moveRef = g.now()
	return err
}

// step is one frame: gravity, auto-shift, landing, then the tick counter.
func (g *Game) step() error {
	now := g.now()

	if g.timing.gravityStep > 0 {
		perCell := g.timing.gravityStep
		if g.softDropDown {
			perCell = g.timing.softDropStep
		}
		for g.gravityRef+perCell <= now {
			g.gravityRef += perCell
			moved, err := g.move(P(0, 1), 0)
			if err != nil {
				return err
			}
			if !moved {
				break
			}
		}
	}

	if g.direction != 0 {
		if !g.autoRepeat && g.moveRef+g.timing.das <= now {
			if _, err := g.move(P(g.direction, 0), 0); err != nil {
				return err
			}
			g.moveRef = now
			g.autoRepeat = true
		}
		if g.autoRepeat {
			for g.moveRef+g.timing.arr <= now {
				g.moveRef += g.timing.arr
				moved, err := g.move(P(g.direction, 0), 0)
				if err != nil {
					return err
				}
				if !moved {
					break
				}
			}
		}
	}

	if g.field.IsLanded() {
		g.landedFrames++
		if g.landedFrames >= g.cfg.LockDelay || g.resets >= g.cfg.MaxResets {
			if err := g.lockAndSpawn(); err != nil {
				return err
			}
		}
	} else {
		g.landedFrames = 0
	}

	g.tick++
	return nil
}

// move applies a translation and rotation to the active piece with the
// lock-delay reset bookkeeping. A piece that reaches the reset limit while
// landed locks immediately.
func (g *Game) move(translation Point, rotation int) (bool, error) {
	wasLanded := g.field.IsLanded()
	if !g.field.Move(translation, rotation) {
		return false, nil
	}
	if wasLanded {
		g.resets++
	}
	if g.field.IsLanded() {
		g.landedFrames = 0
		if g.resets >= g.cfg.MaxResets {
			return true, g.lockAndSpawn()
		}
	}
	return true, nil
}

func (g *Game) hold() error {
	active, ok := g.field.Active()
	if !ok || g.holdUsed {
		return nil
	}
	var err error
	if g.hasHeld {
		err = g.spawn(g.held)
	} else {
		err = g.spawnNext()
	}
	if err != nil {
		return err
	}
	g.held = active.Type
	g.hasHeld = true
	g.holdUsed = true
	g.stats.Holds++
	return nil
}

func (g *Game) hardDrop() error {
	if _, ok := g.field.Active(); !ok {
		return nil
	}
	g.field.FastDrop()
	g.stats.HardDrops++
	return g.lockAndSpawn()
}

func (g *Game) lockAndSpawn() error {
	g.field.Lock()
	g.stats.Locked++
	cleared, _ := g.field.Board().ClearFilledRows()
	g.stats.RowsCleared += cleared
	return g.spawnNext()
}

func (g *Game) spawnNext() error {
	typ, ok := g.seq.Next()
	if !ok {
		return &EndError{Reason: EndSequenceExhausted}
	}
	return g.spawn(typ)
}

func (g *Game) spawn(typ int) error {
	if !g.field.SpawnDefault(typ) {
		return &EndError{Reason: EndSpawnBlocked}
	}
	g.holdUsed = false
	g.landedFrames = 0
	g.resets = 0
	g.stats.Spawned++
	return nil
}

// Tick returns the number of frames simulated so far.
func (g *Game) Tick() int64 {
	return g.tick
}

// Config returns the session config.
func (g *Game) Config() Config {
	return g.cfg
}

// Field returns the playfield. Render consumers must not mutate it.
func (g *Game) Field() *Playfield {
	return g.field
}

// Held returns the held piece type, if any.
func (g *Game) Held() (int, bool) {
	return g.held, g.hasHeld
}

// HoldUsed reports whether hold was already used for the current piece.
func (g *Game) HoldUsed() bool {
	return g.holdUsed
}

// Preview returns upcoming piece types when the sequence supports look-ahead.
func (g *Game) Preview() []int {
	if p, ok := g.seq.(Peeker); ok {
		return p.Peek()
	}
	return nil
}

func (g *Game) LandedFrames() int { return g.landedFrames }
func (g *Game) Resets() int       { return g.resets }
func (g *Game) Stats() Stats      { return g.stats }

// Ended returns the terminal error, or nil while the session is running.
func (g *Game) Ended() error {
	return g.ended
}
