package core

// Snapshot is a read-only copy of everything a renderer needs.
// Comparing snapshots is how determinism is checked.
type Snapshot struct {
	Tick   int64
	Width  int
	Height int
	Cells  []Cell // Row-major, Width*Height

	HasActive bool
	Active    Piece
	Footprint []Point
	Drop      int // Rows the active piece can still fall (ghost offset)

	Held     int
	HasHeld  bool
	HoldUsed bool
	Preview  []int

	LandedFrames int
	Resets       int
	Stats        Stats
	Ended        bool
}

// Snapshot copies the current state. Peeking the preview tops up the look-ahead
// buffer but never changes the order of upcoming pieces.
func (g *Game) Snapshot() Snapshot {
	b := g.field.Board()
	s := Snapshot{
		Tick:         g.tick,
		Width:        b.Width(),
		Height:       b.Height(),
		Cells:        make([]Cell, 0, b.Width()*b.Height()),
		Held:         g.held,
		HasHeld:      g.hasHeld,
		HoldUsed:     g.holdUsed,
		Preview:      g.Preview(),
		LandedFrames: g.landedFrames,
		Resets:       g.resets,
		Stats:        g.stats,
		Ended:        g.ended != nil,
	}
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			c, _ := b.Cell(x, y)
			s.Cells = append(s.Cells, c)
		}
	}
	if active, ok := g.field.Active(); ok {
		s.HasActive = true
		s.Active = active
		s.Footprint = g.field.Footprint(0)
		s.Drop = g.field.DropDistance()
	}
	return s
}

// Cell returns the snapshot cell at (x, y).
func (s Snapshot) Cell(x, y int) (Cell, bool) {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return Cell{}, false
	}
	return s.Cells[y*s.Width+x], true
}
