package core

// Point is an integer offset or position on the board.
// X grows to the right, Y grows downward (screen coordinates).
type Point struct {
	X int
	Y int
}

// P is a convenience constructor for Point.
func P(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// PieceData is the static description of one piece type.
type PieceData struct {
	Name string

	// InitialWidth is the width of the spawn orientation, used to center new pieces.
	InitialWidth int

	// Orientations holds the cell offsets for 0 (spawn), R, 2 and L.
	Orientations [4][]Point

	// Kicks is indexed by [current orientation][rotation delta] and lists the
	// candidate offsets to try in order. Offsets are up-positive: dy > 0 moves up.
	Kicks [4][4][]Point
}

// Cells returns the offsets of the given orientation, or nil if it is out of range.
func (p *PieceData) Cells(orientation int) []Point {
	if orientation < 0 || orientation >= len(p.Orientations) {
		return nil
	}
	return p.Orientations[orientation]
}

// Candidates returns the kick candidates for rotating by rotation from orientation.
func (p *PieceData) Candidates(orientation, rotation int) []Point {
	if orientation < 0 || orientation > 3 || rotation < 0 || rotation > 3 {
		return nil
	}
	return p.Kicks[orientation][rotation]
}

// Standard piece ids, in catalog order.
const (
	PieceI = iota
	PieceJ
	PieceL
	PieceO
	PieceS
	PieceT
	PieceZ

	PieceCount
)

var noKick = []Point{{0, 0}}

// https://tetris.wiki/Super_Rotation_System
var srsJLSTZ = [4][4][]Point{
	{ // from 0
		noKick,
		{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}}, // 0 -> R
		noKick,
		{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}}, // 0 -> L
	},
	{ // from R
		noKick,
		{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}}, // R -> 2
		noKick,
		{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}}, // R -> 0
	},
	{ // from 2
		noKick,
		{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}}, // 2 -> L
		noKick,
		{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}}, // 2 -> R
	},
	{ // from L
		noKick,
		{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}}, // L -> 0
		noKick,
		{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}}, // L -> 2
	},
}

var srsI = [4][4][]Point{
	{
		noKick,
		{{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}}, // 0 -> R
		noKick,
		{{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}}, // 0 -> L
	},
	{
		noKick,
		{{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}}, // R -> 2
		noKick,
		{{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}}, // R -> 0
	},
	{
		noKick,
		{{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}}, // 2 -> L
		noKick,
		{{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}}, // 2 -> R
	},
	{
		noKick,
		{{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}}, // L -> 0
		noKick,
		{{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}}, // L -> 2
	},
}

var srsO = [4][4][]Point{
	{noKick, noKick, noKick, noKick},
	{noKick, noKick, noKick, noKick},
	{noKick, noKick, noKick, noKick},
	{noKick, noKick, noKick, noKick},
}

// DefaultCatalog returns the seven standard tetrominoes with SRS rotation data.
// The slice index is the piece type id.
func DefaultCatalog() []PieceData {
	return []PieceData{
		{
			Name:         "I",
			InitialWidth: 4,
			Orientations: [4][]Point{
				{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
				{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
				{{0, 2}, {1, 2}, {2, 2}, {3, 2}},
				{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
			},
			Kicks: srsI,
		},
		{
			Name:         "J",
			InitialWidth: 3,
			Orientations: [4][]Point{
				{{0, 1}, {1, 1}, {2, 1}, {0, 0}},
				{{1, 0}, {1, 1}, {1, 2}, {2, 0}},
				{{0, 1}, {1, 1}, {2, 1}, {2, 2}},
				{{1, 0}, {1, 1}, {1, 2}, {0, 2}},
			},
			Kicks: srsJLSTZ,
		},
		{
			Name:         "L",
			InitialWidth: 3,
			Orientations: [4][]Point{
				{{0, 1}, {1, 1}, {2, 1}, {2, 0}},
				{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
				{{0, 1}, {1, 1}, {2, 1}, {0, 2}},
				{{1, 0}, {1, 1}, {1, 2}, {0, 0}},
			},
			Kicks: srsJLSTZ,
		},
		{
			Name:         "O",
			InitialWidth: 2,
			Orientations: [4][]Point{
				{{0, 0}, {0, 1}, {1, 1}, {1, 0}},
				{{0, 0}, {0, 1}, {1, 1}, {1, 0}},
				{{0, 0}, {0, 1}, {1, 1}, {1, 0}},
				{{0, 0}, {0, 1}, {1, 1}, {1, 0}},
			},
			Kicks: srsO,
		},
		{
			Name:         "S",
			InitialWidth: 3,
			Orientations: [4][]Point{
				{{0, 1}, {1, 1}, {1, 0}, {2, 0}},
				{{1, 0}, {1, 1}, {2, 1}, {2, 2}},
				{{0, 2}, {1, 2}, {1, 1}, {2, 1}},
				{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
			},
			Kicks: srsJLSTZ,
		},
		{
			Name:         "T",
			InitialWidth: 3,
			Orientations: [4][]Point{
				{{1, 1}, {0, 1}, {1, 0}, {2, 1}},
				{{1, 1}, {1, 2}, {1, 0}, {2, 1}},
				{{1, 1}, {0, 1}, {1, 2}, {2, 1}},
				{{1, 1}, {0, 1}, {1, 0}, {1, 2}},
			},
			Kicks: srsJLSTZ,
		},
		{
			Name:         "Z",
			InitialWidth: 3,
			Orientations: [4][]Point{
				{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
				{{2, 0}, {2, 1}, {1, 1}, {1, 2}},
				{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
				{{1, 0}, {1, 1}, {0, 1}, {0, 2}},
			},
			Kicks: srsJLSTZ,
		},
	}
}
