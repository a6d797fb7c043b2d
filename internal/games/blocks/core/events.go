package core

import (
	"errors"
	"fmt"
)

// Event is a discrete input to the game state machine.
type Event uint8

const (
	// EventTick advances the simulation by one frame: gravity, auto-shift,
	// landing and lock delay. It must be sent exactly once per frame, and the
	// state should be rendered right after it.
	EventTick Event = iota
	EventRotateLeft
	EventRotateRight
	EventRotate180
	EventHold
	EventHardDrop
	EventSoftDropFast
	EventForfeit
	EventMoveLeftBegin
	EventMoveLeftEnd
	EventMoveRightBegin
	EventMoveRightEnd
	EventSoftDropBegin
	EventSoftDropEnd

	eventCount
)

var eventNames = [eventCount]string{
	"Tick",
	"RotateLeft",
	"RotateRight",
	"Rotate180",
	"Hold",
	"HardDrop",
	"SoftDropFast",
	"Forfeit",
	"MoveLeftBegin",
	"MoveLeftEnd",
	"MoveRightBegin",
	"MoveRightEnd",
	"SoftDropBegin",
	"SoftDropEnd",
}

// Short codes used by the compact trace format.
var eventCodes = [eventCount]string{
	"T", "RL", "RR", "R2", "H", "HD", "SF", "FF",
	"MLB", "MLE", "MRB", "MRE", "SDB", "SDE",
}

// String returns the event name.
func (e Event) String() string {
	if e >= eventCount {
		return fmt.Sprintf("Event(%d)", uint8(e))
	}
	return eventNames[e]
}

// Code returns the short trace code of the event.
func (e Event) Code() string {
	if e >= eventCount {
		return "?"
	}
	return eventCodes[e]
}

// ParseEvent accepts either an event name or its short code.
func ParseEvent(s string) (Event, error) {
	for i := Event(0); i < eventCount; i++ {
		if s == eventNames[i] || s == eventCodes[i] {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown event %q", s)
}

// ErrSessionEnded is the only error the state machine produces. A session that
// returned it is finished and must be replaced.
var ErrSessionEnded = errors.New("blocks: session ended")

// EndReason says why a session ended.
type EndReason uint8

const (
	EndForfeit EndReason = iota + 1
	EndSpawnBlocked
	EndSequenceExhausted
)

// String returns a human-readable end reason.
func (r EndReason) String() string {
	switch r {
	case EndForfeit:
		return "forfeit"
	case EndSpawnBlocked:
		return "spawn blocked"
	case EndSequenceExhausted:
		return "sequence exhausted"
	default:
		return "unknown"
	}
}

// EndError carries the reason a session ended. It matches ErrSessionEnded
// with errors.Is.
type EndError struct {
	Reason EndReason
}

func (e *EndError) Error() string {
	return ErrSessionEnded.Error() + ": " + e.Reason.String()
}

func (e *EndError) Unwrap() error {
	return ErrSessionEnded
}

// ReasonOf extracts the end reason from an error returned by the game.
func ReasonOf(err error) (EndReason, bool) {
	var endErr *EndError
	if errors.As(err, &endErr) {
		return endErr.Reason, true
	}
	return 0, false
}
