// Package replay records engine event streams and re-simulates them.
//
// A session is fully determined by its seed, its config and the ordered
// events it received, so a replay is just those three things plus the digest
// of the final board for verification.
package replay

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

// Recorder collects the events sent to one session.
type Recorder struct {
	events []core.Event
	frames int64
}

// Record appends an event.
func (r *Recorder) Record(ev core.Event) {
	r.events = append(r.events, ev)
	if ev == core.EventTick {
		r.frames++
	}
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []core.Event {
	return append([]core.Event(nil), r.events...)
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	return len(r.events)
}

// Frames returns the number of recorded ticks.
func (r *Recorder) Frames() int64 {
	return r.frames
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.events = r.events[:0]
	r.frames = 0
}

// EncodeTrace writes events as space separated short codes. Runs of the same
// event collapse to CODE*N, so long stretches of ticks stay small:
//
//	T*120 MRB T*9 MRE T HD
func EncodeTrace(events []core.Event) string {
	var sb strings.Builder
	for i := 0; i < len(events); {
		j := i + 1
		for j < len(events) && events[j] == events[i] {
			j++
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(events[i].Code())
		if n := j - i; n > 1 {
			sb.WriteByte('*')
			sb.WriteString(strconv.Itoa(n))
		}
		i = j
	}
	return sb.String()
}

// MaxTraceEvents bounds a decoded trace, a little over 19 hours of ticks at
// 60 frames per second.
const MaxTraceEvents = 1 << 22

// ErrTraceTooLong is returned when a trace expands past MaxTraceEvents.
var ErrTraceTooLong = errors.New("replay: trace too long")

// DecodeTrace parses the EncodeTrace format. Event names are accepted in
// place of codes. The expanded length is checked before anything is
// allocated for a run.
func DecodeTrace(s string) ([]core.Event, error) {
	var events []core.Event
	for i, tok := range strings.Fields(s) {
		name, count := tok, 1
		if before, after, ok := strings.Cut(tok, "*"); ok {
			n, err := strconv.Atoi(after)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("replay: token %d %q: bad repeat count", i, tok)
			}
			name, count = before, n
		}
		ev, err := core.ParseEvent(name)
		if err != nil {
			return nil, fmt.Errorf("replay: token %d: %w", i, err)
		}
		if count > MaxTraceEvents-len(events) {
			return nil, fmt.Errorf("%w: token %d %q passes %d events", ErrTraceTooLong, i, tok, MaxTraceEvents)
		}
		for k := 0; k < count; k++ {
			events = append(events, ev)
		}
	}
	return events, nil
}
