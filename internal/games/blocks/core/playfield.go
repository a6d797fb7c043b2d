package core

// Piece is the currently falling piece.
type Piece struct {
	Type        int   // Index into the catalog
	Position    Point // Board position of the piece-local origin
	Orientation int   // 0, 1 (R), 2, 3 (L)
}

// Playfield is a board plus the active piece that is falling on it.
type Playfield struct {
	catalog  []PieceData
	board    *Board
	active   *Piece
	startRow int
}

// NewPlayfield creates an empty playfield. startRow is the row new pieces
// spawn on when placed at the default position.
func NewPlayfield(width, height int, catalog []PieceData, startRow int) *Playfield {
	return &Playfield{
		catalog:  catalog,
		board:    NewBoard(width, height),
		startRow: startRow,
	}
}

// Board returns the underlying board. Renderers must treat it as read-only.
func (f *Playfield) Board() *Board {
	return f.board
}

// PieceData returns the catalog entry for a piece type.
func (f *Playfield) PieceData(typ int) (*PieceData, bool) {
	if typ < 0 || typ >= len(f.catalog) {
		return nil, false
	}
	return &f.catalog[typ], true
}

// Active returns a copy of the active piece.
func (f *Playfield) Active() (Piece, bool) {
	if f.active == nil {
		return Piece{}, false
	}
	return *f.active, true
}

// Reset clears the board and removes the active piece.
func (f *Playfield) Reset() {
	f.board.Clear()
	f.active = nil
}

// Spawn places a piece of the given type at pos in the spawn orientation.
// It fails if the piece does not fit there.
func (f *Playfield) Spawn(typ int, pos Point) bool {
	data, ok := f.PieceData(typ)
	if !ok || !f.board.TestPiece(data, 0, pos) {
		return false
	}
	f.active = &Piece{Type: typ, Position: pos}
	return true
}

// SpawnDefault spawns a piece horizontally centered on the start row.
func (f *Playfield) SpawnDefault(typ int) bool {
	data, ok := f.PieceData(typ)
	if !ok {
		return false
	}
	x := (f.board.Width() - data.InitialWidth) / 2
	return f.Spawn(typ, P(x, f.startRow))
}

// Move translates and rotates the active piece. Rotation is 0 (none),
// 1 (clockwise), 2 (180) or 3 (counter-clockwise). It returns false and leaves
// the piece untouched when no kick candidate fits.
func (f *Playfield) Move(translation Point, rotation int) bool {
	if f.active == nil {
		return false
	}
	data, ok := f.PieceData(f.active.Type)
	if !ok {
		return false
	}
	pos, orientation, ok := f.board.TestMovePiece(data, f.active.Orientation, f.active.Position, translation, rotation)
	if !ok {
		return false
	}
	f.active.Position = pos
	f.active.Orientation = orientation
	return true
}

// DropDistance returns how many rows the active piece can fall before it
// lands. It does not move the piece.
func (f *Playfield) DropDistance() int {
	if f.active == nil {
		return 0
	}
	data, ok := f.PieceData(f.active.Type)
	if !ok {
		return 0
	}
	dy := 0
	for {
		_, _, ok := f.board.TestMovePiece(data, f.active.Orientation, f.active.Position, P(0, dy+1), 0)
		if !ok {
			return dy
		}
		dy++
	}
}

// FastDrop moves the active piece straight down as far as it can go, without locking.
func (f *Playfield) FastDrop() {
	if dy := f.DropDistance(); dy > 0 {
		f.Move(P(0, dy), 0)
	}
}

// IsLanded reports whether there is an active piece that cannot fall any further.
func (f *Playfield) IsLanded() bool {
	return f.active != nil && f.DropDistance() == 0
}

// Lock writes the active piece into the board, using its type as the color,
// and clears the active slot.
func (f *Playfield) Lock() {
	if f.active != nil {
		if data, ok := f.PieceData(f.active.Type); ok {
			f.board.LockPiece(data, f.active.Orientation, f.active.Position, f.active.Type)
		}
	}
	f.active = nil
}

// Footprint returns the board cells covered by the active piece, translated
// down by dy rows. It returns nil when there is no active piece.
func (f *Playfield) Footprint(dy int) []Point {
	if f.active == nil {
		return nil
	}
	data, ok := f.PieceData(f.active.Type)
	if !ok {
		return nil
	}
	cells := data.Cells(f.active.Orientation)
	out := make([]Point, 0, len(cells))
	for _, off := range cells {
		out = append(out, f.active.Position.Add(off).Add(P(0, dy)))
	}
	return out
}
