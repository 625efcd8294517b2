// pkg/grid/grid.go
package grid

// CellState is the occupancy/category of one grid square.
type CellState int

const (
	Empty CellState = iota
	Path
	Blocked
	Tower
	Spawn
	Exit
)

func (s CellState) String() string {
	switch s {
	case Empty:
		return "EMPTY"
	case Path:
		return "PATH"
	case Blocked:
		return "BLOCKED"
	case Tower:
		return "TOWER"
	case Spawn:
		return "SPAWN"
	case Exit:
		return "EXIT"
	}
	return "UNKNOWN"
}

// Walkable reports whether enemies may traverse a cell in this state.
func (s CellState) Walkable() bool {
	switch s {
	case Empty, Path, Spawn, Exit:
		return true
	}
	return false
}

// Coord addresses one grid square.
type Coord struct {
	X, Y int
}

// Grid is a mutable cell-occupancy matrix. It is mutated only by tower
// placement/removal and level reset; everyone else reads.
type Grid struct {
	width  int
	height int
	cells  [][]CellState // cells[y][x]
}

// New creates an all-Empty grid of the given dimensions.
func New(width, height int) *Grid {
	g := &Grid{width: width, height: height}
	g.cells = make([][]CellState, height)
	for y := range g.cells {
		g.cells[y] = make([]CellState, width)
	}
	return g
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds reports whether c lies on the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// Cell returns the state at c. Out-of-bounds reads return Blocked, so
// callers can treat the world edge as a wall.
func (g *Grid) Cell(c Coord) CellState {
	if !g.InBounds(c) {
		return Blocked
	}
	return g.cells[c.Y][c.X]
}

// SetCell writes the state at c. Out-of-bounds writes are no-ops.
func (g *Grid) SetCell(c Coord, s CellState) {
	if !g.InBounds(c) {
		return
	}
	g.cells[c.Y][c.X] = s
}

// CanPlaceTower reports whether c is an in-bounds Empty cell.
func (g *Grid) CanPlaceTower(c Coord) bool {
	return g.InBounds(c) && g.cells[c.Y][c.X] == Empty
}

// Cells returns the full matrix, row-major. The returned slices alias the
// grid's storage; callers must not write through them.
func (g *Grid) Cells() [][]CellState {
	return g.cells
}

// Reset returns every cell to Empty.
func (g *Grid) Reset() {
	for y := range g.cells {
		for x := range g.cells[y] {
			g.cells[y][x] = Empty
		}
	}
}

// FindCell scans for the first cell in the given state. Used to locate the
// spawn and exit markers; ok is false when no such cell exists.
func (g *Grid) FindCell(s CellState) (Coord, bool) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y][x] == s {
				return Coord{X: x, Y: y}, true
			}
		}
	}
	return Coord{}, false
}
