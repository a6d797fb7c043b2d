package replay

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

// ErrMismatch is returned by Verify when re-simulation does not reproduce
// the recorded result.
var ErrMismatch = errors.New("replay: result mismatch")

// Record is an archived session.
type Record struct {
	ID        string              `yaml:"id"`
	Variant   string              `yaml:"variant"`
	Seed      uint32              `yaml:"seed"`
	Config    config.BlocksConfig `yaml:"config"`
	Trace     string              `yaml:"trace"`
	Frames    int64               `yaml:"frames"`
	Pieces    int                 `yaml:"pieces"`
	Rows      int                 `yaml:"rows"`
	Digest    string              `yaml:"digest"`
	EndReason string              `yaml:"end_reason,omitempty"` // Empty when the session was abandoned
	CreatedAt time.Time           `yaml:"created_at"`
}

// Result is the outcome of running an event stream on a fresh session.
type Result struct {
	Frames    int64
	Applied   int // Events accepted before the session ended
	Stats     core.Stats
	Digest    string
	Ended     bool
	EndReason core.EndReason
	Snapshot  core.Snapshot
}

// Digest formats a board hash the way records store it.
func Digest(b *core.Board) string {
	return fmt.Sprintf("%016x", b.Hash())
}

// NewRecord captures a finished or abandoned session.
func NewRecord(variant string, seed uint32, cfg config.BlocksConfig, rec *Recorder, g *core.Game) Record {
	r := Record{
		ID:        uuid.NewString(),
		Variant:   variant,
		Seed:      seed,
		Config:    cfg,
		Trace:     EncodeTrace(rec.Events()),
		Frames:    g.Tick(),
		Pieces:    g.Stats().Locked,
		Rows:      g.Stats().RowsCleared,
		Digest:    Digest(g.Field().Board()),
		CreatedAt: time.Now().UTC(),
	}
	if reason, ok := core.ReasonOf(g.Ended()); ok {
		r.EndReason = reason.String()
	}
	return r
}

// Run feeds events to a fresh session built from setup. Feeding stops at the
// first event that ends the session; the returned error is only for setups
// that cannot build a session at all.
func Run(setup core.Setup, events []core.Event) (Result, error) {
	g, err := core.NewSession(setup)
	if g == nil {
		return Result{}, fmt.Errorf("replay: cannot build session: %w", err)
	}

	applied := 0
	if err == nil {
		for _, ev := range events {
			applied++
			if g.OnEvent(ev) != nil {
				break
			}
		}
	}
	return result(g, applied), nil
}

func result(g *core.Game, applied int) Result {
	res := Result{
		Frames:   g.Tick(),
		Applied:  applied,
		Stats:    g.Stats(),
		Digest:   Digest(g.Field().Board()),
		Snapshot: g.Snapshot(),
	}
	if reason, ok := core.ReasonOf(g.Ended()); ok {
		res.Ended = true
		res.EndReason = reason
	}
	return res
}

// Verify re-simulates a record and checks frames, digest and end reason.
func Verify(rec Record) (Result, error) {
	events, err := DecodeTrace(rec.Trace)
	if err != nil {
		return Result{}, err
	}
	if err := rec.Config.Validate(); err != nil {
		return Result{}, fmt.Errorf("replay: %w", err)
	}

	res, err := Run(rec.Config.Setup(rec.Seed), events)
	if err != nil {
		return Result{}, err
	}

	reason := ""
	if res.Ended {
		reason = res.EndReason.String()
	}
	switch {
	case res.Applied != len(events):
		return res, fmt.Errorf("%w: session ended after %d of %d events", ErrMismatch, res.Applied, len(events))
	case res.Frames != rec.Frames:
		return res, fmt.Errorf("%w: frames %d, recorded %d", ErrMismatch, res.Frames, rec.Frames)
	case res.Digest != rec.Digest:
		return res, fmt.Errorf("%w: digest %s, recorded %s", ErrMismatch, res.Digest, rec.Digest)
	case reason != rec.EndReason:
		return res, fmt.Errorf("%w: end reason %q, recorded %q", ErrMismatch, reason, rec.EndReason)
	}
	return res, nil
}
