package goban

// gridSize is the standard board. The rules layer never assumes it;
// anything implementing Board works there.
const gridSize = 19

// Grid19 is the default 19x19 board.
type Grid19 struct {
	state [gridSize][gridSize]Stone
}

// NewGrid19 constructs an empty 19x19 board.
func NewGrid19() *Grid19 {
	return &Grid19{}
}

func (g *Grid19) OnBoard(p Position) bool {
	return p.X >= 0 && p.X < gridSize && p.Y >= 0 && p.Y < gridSize
}

func (g *Grid19) At(p Position) Stone {
	return g.state[p.Y][p.X]
}

func (g *Grid19) Set(p Position, s Stone) {
	g.state[p.Y][p.X] = s
}

// SetHandicap places black stones on the star points. The point set per
// count follows the standard fixed placement; counts outside [2,9] place
// nothing.
func (g *Grid19) SetHandicap(n int) {
	if n >= 2 && n <= 9 { // upper right and lower left
		g.Set(Position{X: 14, Y: 4}, Black)
		g.Set(Position{X: 4, Y: 14}, Black)
	}
	if n >= 3 && n <= 9 { // lower right
		g.Set(Position{X: 14, Y: 14}, Black)
	}
	if n >= 4 && n <= 9 { // upper left
		g.Set(Position{X: 4, Y: 4}, Black)
	}
	if n == 5 || n == 7 || n == 9 { // middle
		g.Set(Position{X: 10, Y: 10}, Black)
	}
	if n >= 6 && n <= 9 { // left side and right side
		g.Set(Position{X: 4, Y: 10}, Black)
		g.Set(Position{X: 14, Y: 10}, Black)
	}
	if n == 8 || n == 9 { // upper side and lower side
		g.Set(Position{X: 10, Y: 4}, Black)
		g.Set(Position{X: 10, Y: 14}, Black)
	}
}

func (g *Grid19) Positions() []Position {
	out := make([]Position, 0, gridSize*gridSize)
	for x := 0; x < gridSize; x++ {
		for y := 0; y < gridSize; y++ {
			out = append(out, Position{X: x, Y: y})
		}
	}
	return out
}

func (g *Grid19) Neighbors(p Position) []Position {
	out := make([]Position, 0, 4)

	if p.X < gridSize-1 {
		out = append(out, Position{X: p.X + 1, Y: p.Y})
	}
	if p.X > 0 {
		out = append(out, Position{X: p.X - 1, Y: p.Y})
	}
	if p.Y < gridSize-1 {
		out = append(out, Position{X: p.X, Y: p.Y + 1})
	}
	if p.Y > 0 {
		out = append(out, Position{X: p.X, Y: p.Y - 1})
	}

	return out
}

func (g *Grid19) Clone() Board {
	clone := *g
	return &clone
}

// Key encodes the full grid, one byte per intersection in Positions
// order. Equal keys mean structurally equal boards.
func (g *Grid19) Key() string {
	buf := make([]byte, 0, gridSize*gridSize)
	for x := 0; x < gridSize; x++ {
		for y := 0; y < gridSize; y++ {
			switch g.state[y][x] {
			case Black:
				buf = append(buf, 'b')
			case White:
				buf = append(buf, 'w')
			default:
				buf = append(buf, '.')
			}
		}
	}
	return string(buf)
}
