package core

import (
	"encoding/binary"
	"hash/fnv"
)

// Cell is a single board cell. Type is only meaningful when Filled is true.
type Cell struct {
	Filled bool
	Type   int
}

// Empty returns an empty cell.
func Empty() Cell {
	return Cell{}
}

// FilledCell returns a cell occupied by the given piece type.
func FilledCell(typ int) Cell {
	return Cell{Filled: true, Type: typ}
}

// Board is the fixed-size occupancy grid.
// Cells are stored in row-major order: index = y*width + x.
type Board struct {
	width  int
	height int
	cells  []Cell
}

// NewBoard creates an empty board with the given dimensions.
func NewBoard(width, height int) *Board {
	return &Board{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// Width returns the board width in cells.
func (b *Board) Width() int {
	return b.width
}

// Height returns the board height in cells.
func (b *Board) Height() int {
	return b.height
}

// index is the only place coordinates are bounds-checked.
func (b *Board) index(x, y int) (int, bool) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0, false
	}
	return y*b.width + x, true
}

// Cell returns the cell at (x, y). ok is false when the coordinate is off the board.
func (b *Board) Cell(x, y int) (c Cell, ok bool) {
	i, ok := b.index(x, y)
	if !ok {
		return Cell{}, false
	}
	return b.cells[i], true
}

// SetCell writes the cell at (x, y). Out-of-range writes are rejected and return false.
func (b *Board) SetCell(x, y int, c Cell) bool {
	i, ok := b.index(x, y)
	if !ok {
		return false
	}
	b.cells[i] = c
	return true
}

// Clear empties the whole board.
func (b *Board) Clear() {
	for i := range b.cells {
		b.cells[i] = Empty()
	}
}

// RowFilledCount returns the number of occupied cells in row y.
func (b *Board) RowFilledCount(y int) int {
	count := 0
	for x := 0; x < b.width; x++ {
		if c, ok := b.Cell(x, y); ok && c.Filled {
			count++
		}
	}
	return count
}

// CopyRow copies row src over row dst. Out-of-range rows are ignored.
func (b *Board) CopyRow(src, dst int) {
	if src < 0 || src >= b.height || dst < 0 || dst >= b.height {
		return
	}
	copy(b.cells[dst*b.width:(dst+1)*b.width], b.cells[src*b.width:(src+1)*b.width])
}

// ClearRow empties row y without moving anything.
func (b *Board) ClearRow(y int) {
	for x := 0; x < b.width; x++ {
		b.SetCell(x, y, Empty())
	}
}

// ClearFilledRows removes full rows and compacts the rest toward the bottom.
//
// Rows are scanned bottom to top with a write cursor. Empty rows are skipped
// outright: they are neither copied nor counted, so an empty row sitting
// between partial rows disappears. Full rows are counted and dropped. Partial
// rows are copied to the cursor, which then moves up. Everything from the
// final cursor up to row 0 is cleared.
func (b *Board) ClearFilledRows() (cleared, remaining int) {
	dst := b.height - 1
	for src := b.height - 1; src >= 0; src-- {
		filled := b.RowFilledCount(src)
		switch {
		case filled == 0:
			continue
		case filled == b.width:
			cleared++
		default:
			b.CopyRow(src, dst)
			dst--
			remaining++
		}
	}
	for y := dst; y >= 0; y-- {
		b.ClearRow(y)
	}
	return cleared, remaining
}

// TestPiece reports whether the piece fits at pos in the given orientation:
// every cell must be on the board and unoccupied.
func (b *Board) TestPiece(piece *PieceData, orientation int, pos Point) bool {
	cells := piece.Cells(orientation)
	if cells == nil {
		return false
	}
	for _, off := range cells {
		c, ok := b.Cell(pos.X+off.X, pos.Y+off.Y)
		if !ok || c.Filled {
			return false
		}
	}
	return true
}

// TestMovePiece tries to translate and rotate a piece. Translation is applied
// first, then each kick candidate for [orientation][rotation] is tried in table
// order. The kick table is up-positive, so its dy is subtracted.
// Returns the first position and orientation that fit.
func (b *Board) TestMovePiece(piece *PieceData, orientation int, pos, translation Point, rotation int) (Point, int, bool) {
	candidates := piece.Candidates(orientation, rotation)
	target := (orientation + rotation) % 4
	for _, kick := range candidates {
		next := Point{
			X: pos.X + translation.X + kick.X,
			Y: pos.Y + translation.Y - kick.Y,
		}
		if b.TestPiece(piece, target, next) {
			return next, target, true
		}
	}
	return pos, orientation, false
}

// LockPiece writes colorID into every cell of the piece. Cells that fall
// outside the board are skipped.
func (b *Board) LockPiece(piece *PieceData, orientation int, pos Point, colorID int) {
	for _, off := range piece.Cells(orientation) {
		b.SetCell(pos.X+off.X, pos.Y+off.Y, FilledCell(colorID))
	}
}

// FilledCount returns the number of occupied cells on the board.
func (b *Board) FilledCount() int {
	count := 0
	for _, c := range b.cells {
		if c.Filled {
			count++
		}
	}
	return count
}

// Hash returns an FNV-64a digest of the board contents.
func (b *Board) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[:4], uint32(b.width))
	binary.LittleEndian.PutUint32(buf[4:], uint32(b.height))
	h.Write(buf[:])
	for _, c := range b.cells {
		if !c.Filled {
			h.Write([]byte{0})
			continue
		}
		h.Write([]byte{1, byte(c.Type)})
	}
	return h.Sum64()
}
