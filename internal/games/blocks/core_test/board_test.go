package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

// fillRow occupies the given columns of row y, or the whole row when xs is empty.
func fillRow(b *core.Board, y int, xs ...int) {
	if len(xs) == 0 {
		for x := 0; x < b.Width(); x++ {
			b.SetCell(x, y, core.FilledCell(0))
		}
		return
	}
	for _, x := range xs {
		b.SetCell(x, y, core.FilledCell(0))
	}
}

// rows renders the board as one '#'/'.' string per row.
func rows(b *core.Board) []string {
	out := make([]string, b.Height())
	for y := range out {
		row := make([]byte, b.Width())
		for x := range row {
			row[x] = '.'
			if c, _ := b.Cell(x, y); c.Filled {
				row[x] = '#'
			}
		}
		out[y] = string(row)
	}
	return out
}

func TestBoardBoundsChecks(t *testing.T) {
	b := core.NewBoard(4, 3)

	testCases := []struct {
		x, y int
		ok   bool
	}{
		{0, 0, true},
		{3, 2, true},
		{-1, 0, false},
		{0, -1, false},
		{4, 0, false},
		{0, 3, false},
	}

	for _, tc := range testCases {
		_, ok := b.Cell(tc.x, tc.y)
		assert.Equal(t, tc.ok, ok, "Cell(%d, %d)", tc.x, tc.y)
		assert.Equal(t, tc.ok, b.SetCell(tc.x, tc.y, core.FilledCell(1)), "SetCell(%d, %d)", tc.x, tc.y)
	}

	assert.Equal(t, 2, b.FilledCount(), "out-of-range writes must be rejected")
}

func TestRowFilledCount(t *testing.T) {
	b := core.NewBoard(5, 2)
	fillRow(b, 1, 0, 2, 4)

	assert.Equal(t, 3, b.RowFilledCount(1))
	assert.Equal(t, 0, b.RowFilledCount(0))
	assert.Equal(t, 0, b.RowFilledCount(7))
}

func TestClearFilledRows(t *testing.T) {
	b := core.NewBoard(4, 6)
	fillRow(b, 1)       // full
	fillRow(b, 2, 1)    // partial
	fillRow(b, 4)       // full
	fillRow(b, 5, 0, 3) // partial

	cleared, remaining := b.ClearFilledRows()
	require.Equal(t, 2, cleared)
	require.Equal(t, 2, remaining)

	assert.Equal(t, []string{"....", "....", "....", "....", ".#..", "#..#"}, rows(b))
}

func TestClearFilledRowsSkipsEmptyRows(t *testing.T) {
	b := core.NewBoard(3, 5)
	fillRow(b, 4, 0)
	fillRow(b, 2, 2) // row 3 is empty between two partial rows

	cleared, remaining := b.ClearFilledRows()
	require.Equal(t, 0, cleared)
	require.Equal(t, 2, remaining)

	// The empty gap is not preserved: row 2 is compacted onto row 3.
	assert.Equal(t, []string{"...", "...", "...", "..#", "#.."}, rows(b))
}

func TestClearSingleBottomRow(t *testing.T) {
	catalog := core.DefaultCatalog()
	b := core.NewBoard(10, 22)

	// Two horizontal I pieces cover columns 0..7 of row 21, the rest is filled by hand.
	b.LockPiece(&catalog[core.PieceI], 0, core.P(0, 20), core.PieceI)
	b.LockPiece(&catalog[core.PieceI], 0, core.P(4, 20), core.PieceI)
	fillRow(b, 21, 8, 9)
	require.Equal(t, 10, b.RowFilledCount(21))

	cleared, remaining := b.ClearFilledRows()
	assert.Equal(t, 1, cleared)
	assert.Equal(t, 0, remaining)
	assert.Zero(t, b.FilledCount())
}

func TestTestPiece(t *testing.T) {
	catalog := core.DefaultCatalog()
	o := &catalog[core.PieceO]

	b := core.NewBoard(6, 6)
	b.SetCell(3, 3, core.FilledCell(core.PieceZ))

	testCases := []struct {
		name string
		pos  core.Point
		ok   bool
	}{
		{"inside", core.P(0, 0), true},
		{"left edge", core.P(-1, 0), false},
		{"right edge", core.P(5, 0), false},
		{"above", core.P(0, -1), false},
		{"floor", core.P(0, 5), false},
		{"occupied", core.P(2, 2), false},
		{"next to occupied", core.P(4, 3), true},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.ok, b.TestPiece(o, 0, tc.pos), tc.name)
	}

	assert.False(t, b.TestPiece(o, 4, core.P(0, 0)), "orientation 4 should be rejected")
}

func TestKickTakesFirstCandidateInOrder(t *testing.T) {
	catalog := core.DefaultCatalog()
	tp := &catalog[core.PieceT]
	b := core.NewBoard(10, 20)

	// Blocks the unkicked 0 -> R target. Candidates (-1,0) and (-1,1) both fit;
	// (-1,0) is listed first.
	b.SetCell(5, 12, core.FilledCell(core.PieceZ))
	from := core.P(4, 10)

	pos, orientation, ok := b.TestMovePiece(tp, 0, from, core.P(0, 0), 1)
	require.True(t, ok, "rotation with a free kick was rejected")
	assert.Equal(t, core.P(3, 10), pos)
	assert.Equal(t, 1, orientation)

	assert.True(t, b.TestPiece(tp, 1, core.P(3, 9)), "the (-1,1) candidate should fit as well")
}

func TestTestMovePieceRejectedLeavesInput(t *testing.T) {
	catalog := core.DefaultCatalog()
	i := &catalog[core.PieceI]
	b := core.NewBoard(4, 4)

	pos, orientation, ok := b.TestMovePiece(i, 0, core.P(0, 0), core.P(1, 0), 0)
	require.False(t, ok, "I piece moved past the right wall")
	assert.Equal(t, core.P(0, 0), pos)
	assert.Equal(t, 0, orientation)
}

func TestLockPieceSkipsOutOfBounds(t *testing.T) {
	catalog := core.DefaultCatalog()
	b := core.NewBoard(4, 4)

	b.LockPiece(&catalog[core.PieceO], 0, core.P(3, 3), core.PieceO)

	assert.Equal(t, 1, b.FilledCount())
	c, _ := b.Cell(3, 3)
	assert.Equal(t, core.FilledCell(core.PieceO), c)
}

func TestBoardHash(t *testing.T) {
	a, b := core.NewBoard(5, 5), core.NewBoard(5, 5)
	fillRow(a, 4, 1, 2)
	fillRow(b, 4, 1, 2)
	require.Equal(t, a.Hash(), b.Hash(), "same contents must hash the same")

	b.SetCell(0, 0, core.FilledCell(3))
	assert.NotEqual(t, a.Hash(), b.Hash(), "hash did not change after a write")

	b.SetCell(0, 0, core.Empty())
	b.SetCell(1, 4, core.FilledCell(3))
	assert.NotEqual(t, a.Hash(), b.Hash(), "piece type must be part of the hash")
	assert.NotEqual(t, core.NewBoard(5, 4).Hash(), core.NewBoard(4, 5).Hash(), "size must be part of the hash")
}
