package core_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

// stillConfig disables gravity and auto-shift so tests drive every move.
func stillConfig() core.Config {
	return core.Config{
		DAS:       1000,
		ARR:       0,
		SDF:       20,
		Gravity:   0,
		LockDelay: 1000,
		MaxResets: 1000,
	}
}

func newSession(t *testing.T, cfg core.Config, seq core.Sequence) *core.Game {
	t.Helper()
	field := core.NewPlayfield(10, 22, core.DefaultCatalog(), 0)
	g, err := core.New(cfg, field, core.NewPreview(seq, 5))
	require.NoError(t, err)
	require.NoError(t, g.Start())
	return g
}

func send(t *testing.T, g *core.Game, events ...core.Event) {
	t.Helper()
	for _, ev := range events {
		require.NoError(t, g.OnEvent(ev), "event %s", ev)
	}
}

func ticks(t *testing.T, g *core.Game, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		send(t, g, core.EventTick)
	}
}

func activePiece(t *testing.T, g *core.Game) core.Piece {
	t.Helper()
	p, ok := g.Field().Active()
	require.True(t, ok, "expected an active piece")
	return p
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*core.Config)
		ok     bool
	}{
		{"default", func(*core.Config) {}, true},
		{"negative das", func(c *core.Config) { c.DAS = -1 }, false},
		{"negative arr", func(c *core.Config) { c.ARR = -0.5 }, false},
		{"zero sdf", func(c *core.Config) { c.SDF = 0 }, false},
		{"negative gravity", func(c *core.Config) { c.Gravity = -1 }, false},
		{"zero gravity", func(c *core.Config) { c.Gravity = 0 }, true},
		{"tiny gravity", func(c *core.Config) { c.Gravity = 1e-9 }, false},
		{"negative lock delay", func(c *core.Config) { c.LockDelay = -1 }, false},
		{"negative resets", func(c *core.Config) { c.MaxResets = -1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := core.DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestParseEvent(t *testing.T) {
	for ev := core.EventTick; ev <= core.EventSoftDropEnd; ev++ {
		byName, err := core.ParseEvent(ev.String())
		require.NoError(t, err)
		assert.Equal(t, ev, byName)

		byCode, err := core.ParseEvent(ev.Code())
		require.NoError(t, err)
		assert.Equal(t, ev, byCode)
	}

	_, err := core.ParseEvent("Jump")
	assert.Error(t, err)
}

func TestStartSpawnsCentered(t *testing.T) {
	g := newSession(t, stillConfig(), core.NewFixed(core.PieceT, core.PieceO, core.PieceI))

	p := activePiece(t, g)
	assert.Equal(t, core.PieceT, p.Type)
	assert.Equal(t, core.P(3, 0), p.Position)
	assert.Equal(t, 0, p.Orientation)
	assert.Equal(t, 1, g.Stats().Spawned)
	assert.Equal(t, []int{core.PieceO, core.PieceI}, g.Preview())
}

func TestRotateEvents(t *testing.T) {
	g := newSession(t, stillConfig(), core.NewFixed(core.PieceT, core.PieceO))

	send(t, g, core.EventRotateRight)
	assert.Equal(t, 1, activePiece(t, g).Orientation)

	send(t, g, core.EventRotateLeft)
	assert.Equal(t, 0, activePiece(t, g).Orientation)

	send(t, g, core.EventRotateLeft)
	assert.Equal(t, 3, activePiece(t, g).Orientation)

	send(t, g, core.EventRotate180)
	assert.Equal(t, 1, activePiece(t, g).Orientation)
}

func TestHold(t *testing.T) {
	g := newSession(t, stillConfig(), core.NewFixed(core.PieceT, core.PieceO, core.PieceI, core.PieceS))

	send(t, g, core.EventHold)
	held, ok := g.Held()
	require.True(t, ok)
	assert.Equal(t, core.PieceT, held)
	assert.Equal(t, core.PieceO, activePiece(t, g).Type)
	assert.True(t, g.HoldUsed())

	// A second hold before the next spawn does nothing.
	send(t, g, core.EventHold)
	held, _ = g.Held()
	assert.Equal(t, core.PieceT, held)
	assert.Equal(t, core.PieceO, activePiece(t, g).Type)
	assert.Equal(t, 1, g.Stats().Holds)

	// Locking re-arms hold, which now swaps with the held piece.
	send(t, g, core.EventHardDrop)
	assert.False(t, g.HoldUsed())
	assert.Equal(t, core.PieceI, activePiece(t, g).Type)

	send(t, g, core.EventHold)
	held, _ = g.Held()
	assert.Equal(t, core.PieceI, held)
	p := activePiece(t, g)
	assert.Equal(t, core.PieceT, p.Type)
	assert.Equal(t, core.P(3, 0), p.Position)
	assert.Equal(t, []int{core.PieceS}, g.Preview())
}

func TestHardDropLocksAndSpawns(t *testing.T) {
	g := newSession(t, stillConfig(), core.NewFixed(core.PieceT, core.PieceO))

	send(t, g, core.EventHardDrop)

	b := g.Field().Board()
	assert.Equal(t, 4, b.FilledCount())
	for _, pt := range []core.Point{core.P(4, 20), core.P(3, 21), core.P(4, 21), core.P(5, 21)} {
		c, _ := b.Cell(pt.X, pt.Y)
		assert.True(t, c.Filled, "cell %v", pt)
		assert.Equal(t, core.PieceT, c.Type)
	}
	assert.Equal(t, core.PieceO, activePiece(t, g).Type)
	assert.Equal(t, 1, g.Stats().Locked)
	assert.Equal(t, 1, g.Stats().HardDrops)
}

func TestSoftDropFastDoesNotLock(t *testing.T) {
	g := newSession(t, stillConfig(), core.NewFixed(core.PieceO, core.PieceT))

	send(t, g, core.EventSoftDropFast)
	p := activePiece(t, g)
	assert.Equal(t, core.PieceO, p.Type)
	assert.Equal(t, 20, p.Position.Y)
	assert.True(t, g.Field().IsLanded())
	assert.Zero(t, g.Field().Board().FilledCount())
}

func TestGravity(t *testing.T) {
	cfg := stillConfig()
	cfg.Gravity = 1

	g := newSession(t, cfg, core.NewFixed(core.PieceO, core.PieceT))
	ticks(t, g, 5)

	assert.Equal(t, 4, activePiece(t, g).Position.Y)
	assert.Equal(t, int64(5), g.Tick())
}

func TestNoGravity(t *testing.T) {
	g := newSession(t, stillConfig(), core.NewFixed(core.PieceO, core.PieceT))
	ticks(t, g, 500)
	assert.Equal(t, 0, activePiece(t, g).Position.Y)
}

func TestSoftDropSpeedsUpGravity(t *testing.T) {
	cfg := stillConfig()
	cfg.Gravity = 0.1
	cfg.SDF = 10

	g := newSession(t, cfg, core.NewFixed(core.PieceO, core.PieceT))

	send(t, g, core.EventSoftDropBegin)
	assert.Equal(t, 1, activePiece(t, g).Position.Y, "soft drop moves one cell immediately")

	ticks(t, g, 4)
	assert.Equal(t, 4, activePiece(t, g).Position.Y)

	send(t, g, core.EventSoftDropEnd)
	ticks(t, g, 5)
	assert.Equal(t, 4, activePiece(t, g).Position.Y, "normal gravity needs ten frames per cell")
}

func TestDelayedAutoShiftInstantRepeat(t *testing.T) {
	cfg := stillConfig()
	cfg.DAS = 3
	cfg.ARR = 0

	g := newSession(t, cfg, core.NewFixed(core.PieceT, core.PieceO))

	send(t, g, core.EventMoveRightBegin)
	assert.Equal(t, 4, activePiece(t, g).Position.X, "begin moves one cell immediately")

	ticks(t, g, 3)
	assert.Equal(t, 4, activePiece(t, g).Position.X, "no repeat before the delay expires")

	ticks(t, g, 1)
	assert.Equal(t, 7, activePiece(t, g).Position.X, "instant repeat slides to the wall")

	send(t, g, core.EventMoveRightEnd)
	ticks(t, g, 10)
	assert.Equal(t, 7, activePiece(t, g).Position.X)
}

func TestAutoRepeatRate(t *testing.T) {
	cfg := stillConfig()
	cfg.DAS = 3
	cfg.ARR = 2

	g := newSession(t, cfg, core.NewFixed(core.PieceT, core.PieceO))
	send(t, g, core.EventMoveRightBegin)

	expected := []int{4, 4, 4, 5, 5, 6, 6, 7, 7, 7}
	for i, want := range expected {
		send(t, g, core.EventTick)
		assert.Equal(t, want, activePiece(t, g).Position.X, "after tick %d", i)
	}
}

func TestReleaseSwitchesToOppositeDirection(t *testing.T) {
	g := newSession(t, stillConfig(), core.NewFixed(core.PieceT, core.PieceO))

	send(t, g, core.EventMoveLeftBegin)
	assert.Equal(t, 2, activePiece(t, g).Position.X)

	send(t, g, core.EventMoveRightBegin)
	assert.Equal(t, 3, activePiece(t, g).Position.X)

	// Right is released while left is still held: shift left once.
	send(t, g, core.EventMoveRightEnd)
	assert.Equal(t, 2, activePiece(t, g).Position.X)

	send(t, g, core.EventMoveLeftEnd)
	assert.Equal(t, 2, activePiece(t, g).Position.X)
}

func TestLockDelay(t *testing.T) {
	cfg := stillConfig()
	cfg.LockDelay = 3

	g := newSession(t, cfg, core.NewFixed(core.PieceO, core.PieceT))
	send(t, g, core.EventSoftDropFast)

	ticks(t, g, 2)
	assert.Equal(t, 2, g.LandedFrames())
	assert.Equal(t, core.PieceO, activePiece(t, g).Type)

	ticks(t, g, 1)
	assert.Equal(t, core.PieceT, activePiece(t, g).Type)
	assert.Equal(t, 4, g.Field().Board().FilledCount())
}

func TestLandedMoveResetsLockDelay(t *testing.T) {
	cfg := stillConfig()
	cfg.LockDelay = 3

	g := newSession(t, cfg, core.NewFixed(core.PieceT, core.PieceO))
	send(t, g, core.EventSoftDropFast)
	ticks(t, g, 2)

	send(t, g, core.EventMoveLeftBegin, core.EventMoveLeftEnd)
	assert.Zero(t, g.LandedFrames())
	assert.Equal(t, 1, g.Resets())

	ticks(t, g, 2)
	assert.Equal(t, core.PieceT, activePiece(t, g).Type)
}

func TestMaxResetsForcesLock(t *testing.T) {
	cfg := stillConfig()
	cfg.MaxResets = 3

	g := newSession(t, cfg, core.NewFixed(core.PieceT, core.PieceO))
	send(t, g, core.EventSoftDropFast)

	send(t, g,
		core.EventMoveLeftBegin, core.EventMoveLeftEnd,
		core.EventMoveRightBegin, core.EventMoveRightEnd,
	)
	assert.Equal(t, 2, g.Resets())
	ticks(t, g, 1)
	assert.Equal(t, core.PieceT, activePiece(t, g).Type, "below the limit the lock delay still applies")

	send(t, g, core.EventMoveLeftBegin, core.EventMoveLeftEnd)
	ticks(t, g, 1)

	assert.Equal(t, 1, g.Stats().Locked)
	assert.Equal(t, core.PieceO, activePiece(t, g).Type)
	assert.Zero(t, g.Resets())
}

func TestLineClearDuringLock(t *testing.T) {
	field := core.NewPlayfield(10, 22, core.DefaultCatalog(), 0)
	for x := 0; x < 10; x++ {
		if x < 3 || x > 6 {
			field.Board().SetCell(x, 21, core.FilledCell(core.PieceZ))
		}
	}
	g, err := core.New(stillConfig(), field, core.NewFixed(core.PieceI, core.PieceO))
	require.NoError(t, err)
	require.NoError(t, g.Start())

	send(t, g, core.EventRotate180, core.EventHardDrop)

	assert.Equal(t, 1, g.Stats().RowsCleared)
	assert.Zero(t, field.Board().FilledCount())
}

func TestSpawnBlockedEndsSession(t *testing.T) {
	field := core.NewPlayfield(10, 22, core.DefaultCatalog(), 0)
	for x := 3; x < 7; x++ {
		field.Board().SetCell(x, 1, core.FilledCell(core.PieceZ))
	}

	g, err := core.New(stillConfig(), field, core.NewFixed(core.PieceT))
	require.NoError(t, err)

	err = g.Start()
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrSessionEnded))
	reason, ok := core.ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, core.EndSpawnBlocked, reason)

	// Termination is final.
	assert.Equal(t, err, g.OnEvent(core.EventTick))
	assert.Equal(t, err, g.Ended())
	assert.Equal(t, int64(0), g.Tick())
}

func TestSequenceExhaustedEndsSession(t *testing.T) {
	g := newSession(t, stillConfig(), core.NewFixed(core.PieceO))

	err := g.OnEvent(core.EventHardDrop)
	reason, ok := core.ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, core.EndSequenceExhausted, reason)
}

func TestPieceLimitEndsSession(t *testing.T) {
	g, err := core.NewSession(core.Setup{
		Width:      10,
		Height:     22,
		Preview:    5,
		Seed:       3,
		Config:     stillConfig(),
		PieceLimit: 2,
	})
	require.NoError(t, err)

	send(t, g, core.EventHardDrop)
	err = g.OnEvent(core.EventHardDrop)
	reason, ok := core.ReasonOf(err)
	require.True(t, ok, "second drop returned %v", err)
	assert.Equal(t, core.EndSequenceExhausted, reason)
	assert.Equal(t, 2, g.Stats().Locked)
}

func TestForfeit(t *testing.T) {
	g := newSession(t, stillConfig(), core.NewFixed(core.PieceO, core.PieceT))

	err := g.OnEvent(core.EventForfeit)
	assert.ErrorIs(t, err, core.ErrSessionEnded)
	reason, _ := core.ReasonOf(err)
	assert.Equal(t, core.EndForfeit, reason)
	assert.ErrorIs(t, g.OnEvent(core.EventRotateLeft), core.ErrSessionEnded)
}

func TestSnapshot(t *testing.T) {
	g := newSession(t, stillConfig(), core.NewFixed(core.PieceO, core.PieceT, core.PieceI))

	s := g.Snapshot()
	assert.True(t, s.HasActive)
	assert.Equal(t, 20, s.Drop)
	assert.Len(t, s.Footprint, 4)
	assert.Equal(t, []int{core.PieceT, core.PieceI}, s.Preview)
	assert.Len(t, s.Cells, 10*22)
	assert.False(t, s.Ended)

	// Taking a snapshot does not change what comes next.
	send(t, g, core.EventHardDrop)
	assert.Equal(t, core.PieceT, activePiece(t, g).Type)
	c, ok := g.Snapshot().Cell(4, 21)
	assert.True(t, ok)
	assert.True(t, c.Filled)
}

// scriptedEvents is a fixed pseudo-random input script covering every event but Forfeit.
func scriptedEvents(n int) []core.Event {
	inputs := []core.Event{
		core.EventRotateLeft, core.EventRotateRight, core.EventRotate180,
		core.EventHold, core.EventHardDrop, core.EventSoftDropFast,
		core.EventMoveLeftBegin, core.EventMoveLeftEnd,
		core.EventMoveRightBegin, core.EventMoveRightEnd,
		core.EventSoftDropBegin, core.EventSoftDropEnd,
	}
	state := uint32(2024)
	events := make([]core.Event, 0, n)
	for len(events) < n {
		r := core.PRNG(&state)
		if r%3 != 0 {
			events = append(events, core.EventTick)
			continue
		}
		events = append(events, inputs[int(r>>2)%len(inputs)])
	}
	return events
}

func TestDeterministicReplay(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Gravity = 0.5
	cfg.DAS = 4
	cfg.ARR = 1

	build := func() *core.Game {
		field := core.NewPlayfield(10, 22, core.DefaultCatalog(), 0)
		g, err := core.New(cfg, field, core.NewPreview(core.NewBag(77, core.PieceCount), 5))
		require.NoError(t, err)
		require.NoError(t, g.Start())
		return g
	}

	a, b := build(), build()
	for i, ev := range scriptedEvents(3000) {
		errA := a.OnEvent(ev)
		errB := b.OnEvent(ev)
		require.Equal(t, errA, errB, "event %d (%s)", i, ev)

		if diff := cmp.Diff(a.Snapshot(), b.Snapshot()); diff != "" {
			t.Fatalf("snapshots diverged at event %d (%s) (-a +b):\n%s", i, ev, diff)
		}
		if errA != nil {
			break
		}
	}
	assert.Equal(t, a.Field().Board().Hash(), b.Field().Board().Hash())
}
