// Package stats measures piece sequences: how often each type appears, the
// longest wait for a type, and whether a stream keeps the bag guarantee.
package stats

import (
	"fmt"
	"sort"

	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

// Distribution counts piece types.
type Distribution struct {
	counts *intmap.Map[int, int]
	total  int
}

// NewDistribution creates an empty distribution.
func NewDistribution() *Distribution {
	return &Distribution{counts: intmap.New[int, int](core.PieceCount)}
}

// Add counts one occurrence of typ.
func (d *Distribution) Add(typ int) {
	n, _ := d.counts.Get(typ)
	d.counts.Put(typ, n+1)
	d.total++
}

// Count returns how often typ was seen.
func (d *Distribution) Count(typ int) int {
	n, _ := d.counts.Get(typ)
	return n
}

// Total returns the number of values counted.
func (d *Distribution) Total() int {
	return d.total
}

// Types returns the seen types in ascending order.
func (d *Distribution) Types() []int {
	types := make([]int, 0, d.counts.Len())
	d.counts.ForEach(func(typ, _ int) bool {
		types = append(types, typ)
		return true
	})
	sort.Ints(types)
	return types
}

// Spread returns the difference between the most and least frequent of
// typeCount types. Types never seen count as zero.
func (d *Distribution) Spread(typeCount int) int {
	if typeCount <= 0 {
		return 0
	}
	lo, hi := d.Count(0), d.Count(0)
	for typ := 1; typ < typeCount; typ++ {
		n := d.Count(typ)
		lo = min(lo, n)
		hi = max(hi, n)
	}
	return hi - lo
}

// Sample pulls up to n values from seq.
func Sample(seq core.Sequence, n int) []int {
	out := make([]int, 0, n)
	for len(out) < n {
		typ, ok := seq.Next()
		if !ok {
			break
		}
		out = append(out, typ)
	}
	return out
}

// Count builds a distribution from values.
func Count(values []int) *Distribution {
	d := NewDistribution()
	for _, v := range values {
		d.Add(v)
	}
	return d
}

// BagAligned checks that every complete block of typeCount values, starting
// at index 0, contains each type exactly once. A trailing partial block is
// ignored.
func BagAligned(values []int, typeCount int) error {
	if typeCount <= 0 {
		return fmt.Errorf("type count must be positive, got %d", typeCount)
	}
	seen := intmap.NewSet[int](typeCount)
	for start := 0; start+typeCount <= len(values); start += typeCount {
		seen.Clear()
		for i, v := range values[start : start+typeCount] {
			if v < 0 || v >= typeCount {
				return fmt.Errorf("block %d: value %d at offset %d is not a piece type", start/typeCount, v, i)
			}
			if seen.Has(v) {
				return fmt.Errorf("block %d: type %d repeats at offset %d", start/typeCount, v, i)
			}
			seen.Add(v)
		}
	}
	return nil
}

// MaxGaps returns, per type, the longest run of values between two
// occurrences of it (or from the start of the stream to its first one).
func MaxGaps(values []int) *intmap.Map[int, int] {
	last := intmap.New[int, int](core.PieceCount)
	gaps := intmap.New[int, int](core.PieceCount)
	for i, v := range values {
		prev, ok := last.Get(v)
		if !ok {
			prev = -1
		}
		gap := i - prev - 1
		if best, _ := gaps.Get(v); gap > best || !gaps.Has(v) {
			gaps.Put(v, gap)
		}
		last.Put(v, i)
	}
	return gaps
}
