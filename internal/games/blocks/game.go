// Package blocks adapts the puzzle engine to the platform: it turns input
// frames into engine events, records them for the replay archive and draws
// the well onto a character screen.
package blocks

import (
	"github.com/vovakirdan/tui-blocks/internal/config"
	platformcore "github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/replay"
)

// Variant selects the rules a session runs with.
type Variant string

const (
	VariantMarathon Variant = "blocks"
	VariantZen      Variant = "blocks_zen"
	Variant20G      Variant = "blocks_20g"
)

// Gravity of the 20G variant: pieces fall to the floor on every frame.
const maxGravity = 20

// Game implements registry.Game for one puzzle session.
type Game struct {
	variant Variant
	base    config.BlocksConfig // As configured, before variant rules
	cfg     config.BlocksConfig // What the session actually runs with

	seed     uint32
	engine   *core.Game
	setupErr error
	recorder replay.Recorder

	screenW int
	screenH int

	paused    bool
	tooSmall  bool
	allClears int
}

// New creates a game of the given variant with the built-in configuration.
func New(v Variant) *Game {
	return &Game{
		variant: v,
		base:    config.DefaultBlocksConfig(),
	}
}

func init() {
	for _, v := range []Variant{VariantMarathon, VariantZen, Variant20G} {
		registry.Register(string(v), func() registry.Game {
			return New(v)
		})
	}
}

// ID returns the variant key.
func (g *Game) ID() string {
	return string(g.variant)
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.variant {
	case VariantZen:
		return "Blocks (Zen)"
	case Variant20G:
		return "Blocks (20G)"
	default:
		return "Blocks"
	}
}

// Description returns a one-line summary for menus and `blocks list`.
func (g *Game) Description() string {
	switch g.variant {
	case VariantZen:
		return "No gravity; pieces stay put until you drop them"
	case Variant20G:
		return "Maximum gravity; pieces land the moment they spawn"
	default:
		return "Classic falling blocks with the configured gravity"
	}
}

// Configure replaces the base configuration. It takes effect on the next Reset.
func (g *Game) Configure(cfg config.BlocksConfig) {
	g.base = cfg
}

// Config returns the configuration of the current session, variant rules
// applied.
func (g *Game) Config() config.BlocksConfig {
	return g.cfg
}

// effectiveConfig applies the variant's rules on top of the base config.
func (g *Game) effectiveConfig() config.BlocksConfig {
	cfg := g.base
	switch g.variant {
	case VariantZen:
		cfg.Timing.Gravity = 0
	case Variant20G:
		cfg.Timing.Gravity = maxGravity
	}
	return cfg
}

// Reset starts a fresh session seeded from cfg.Seed.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.seed = cfg.Seed
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.allClears = 0
	g.recorder.Reset()

	g.cfg = g.effectiveConfig()
	g.engine, g.setupErr = nil, nil
	if err := g.cfg.Validate(); err != nil {
		g.setupErr = err
	} else {
		// A blocked first spawn still yields an ended session to show.
		g.engine, g.setupErr = core.NewSession(g.cfg.Setup(g.seed))
		if g.engine != nil {
			g.setupErr = nil
		}
	}

	g.checkScreenSize()
}

// checkScreenSize checks that the well and both side panels fit.
func (g *Game) checkScreenSize() {
	minW := 2*g.cfg.Board.Width + 2 + 2*panelWidth
	minH := g.cfg.Board.Height + 2
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Resize updates the screen dimensions without touching the session.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// Step applies the frame's actions in arrival order and then advances the
// session by exactly one tick. Nothing advances while paused.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if g.engine == nil {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) && g.engine.Ended() == nil {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	err := g.apply(in)
	st := g.State()
	if err != nil && !st.GameOver {
		st.GameOver = true
		st.EndReason = err.Error()
	}
	return platformcore.StepResult{State: st}
}

// apply sends the frame's events and then one tick, stopping at the first
// event the engine refuses.
func (g *Game) apply(in platformcore.InputFrame) error {
	for _, a := range in.Actions() {
		for _, ev := range eventsFor(a) {
			if err := g.send(ev); err != nil {
				return err
			}
		}
	}
	return g.send(core.EventTick)
}

// eventsFor maps an action to engine events. A key press in a terminal is a
// tap, so shifts and soft drop become a begin/end pair; the engine's
// auto-shift never triggers from taps alone.
func eventsFor(a platformcore.Action) []core.Event {
	switch a {
	case platformcore.ActionLeft:
		return []core.Event{core.EventMoveLeftBegin, core.EventMoveLeftEnd}
	case platformcore.ActionRight:
		return []core.Event{core.EventMoveRightBegin, core.EventMoveRightEnd}
	case platformcore.ActionSoftDrop:
		return []core.Event{core.EventSoftDropBegin, core.EventSoftDropEnd}
	case platformcore.ActionSonicDrop:
		return []core.Event{core.EventSoftDropFast}
	case platformcore.ActionHardDrop:
		return []core.Event{core.EventHardDrop}
	case platformcore.ActionRotateCW:
		return []core.Event{core.EventRotateRight}
	case platformcore.ActionRotateCCW:
		return []core.Event{core.EventRotateLeft}
	case platformcore.ActionRotate180:
		return []core.Event{core.EventRotate180}
	case platformcore.ActionHold:
		return []core.Event{core.EventHold}
	case platformcore.ActionForfeit:
		return []core.Event{core.EventForfeit}
	}
	return nil
}

// send feeds one event to the engine and records it. The event that ends the
// session is recorded; later ones are refused unrecorded so the recording
// replays exactly. A non-nil error means the session is over.
func (g *Game) send(ev core.Event) error {
	if err := g.engine.Ended(); err != nil {
		return err
	}
	before := g.engine.Stats()
	g.recorder.Record(ev)
	err := g.engine.OnEvent(ev)

	after := g.engine.Stats()
	if after.RowsCleared > before.RowsCleared && g.engine.Field().Board().FilledCount() == 0 {
		g.allClears++
	}
	return err
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.engine == nil {
		return platformcore.GameState{GameOver: true, EndReason: "invalid config"}
	}
	st := g.engine.Stats()
	s := platformcore.GameState{
		Tick:   g.engine.Tick(),
		Pieces: st.Locked,
		Rows:   st.RowsCleared,
		Paused: g.paused || g.tooSmall,
	}
	if reason, ok := core.ReasonOf(g.engine.Ended()); ok {
		s.GameOver = true
		s.EndReason = reason.String()
	}
	return s
}

// AllClears returns how many times a line clear emptied the whole well.
func (g *Game) AllClears() int {
	return g.allClears
}

// Snapshot returns the engine snapshot, or false before a session exists.
func (g *Game) Snapshot() (core.Snapshot, bool) {
	if g.engine == nil {
		return core.Snapshot{}, false
	}
	return g.engine.Snapshot(), true
}

// Events returns the number of engine events recorded this session.
func (g *Game) Events() int {
	return g.recorder.Len()
}

// Recording captures the session for the replay archive. The record replays
// to the same board through replay.Verify.
func (g *Game) Recording() (replay.Record, bool) {
	if g.engine == nil {
		return replay.Record{}, false
	}
	return replay.NewRecord(string(g.variant), g.seed, g.cfg, &g.recorder, g.engine), true
}
