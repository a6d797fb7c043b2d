package core

import "fmt"

// Setup is everything besides the event stream that determines a session.
type Setup struct {
	Width    int
	Height   int
	StartRow int
	Preview  int
	Seed     uint32
	Config   Config

	// PieceLimit ends the session once this many pieces were dealt and the
	// last one locked. Zero deals forever.
	PieceLimit int
}

// NewSession builds a session with the standard catalog and a seeded bag,
// optionally limited, behind a preview buffer, and spawns the first piece.
// When the first spawn fails the game is still returned, already ended, together with the error.
func NewSession(s Setup) (*Game, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("invalid board size %dx%d", s.Width, s.Height)
	}
	catalog := DefaultCatalog()
	field := NewPlayfield(s.Width, s.Height, catalog, s.StartRow)
	var seq Sequence = NewBag(s.Seed, len(catalog))
	if s.PieceLimit > 0 {
		seq = NewLimited(seq, s.PieceLimit)
	}

	g, err := New(s.Config, field, NewPreview(seq, s.Preview))
	if err != nil {
		return nil, err
	}
	return g, g.Start()
}
