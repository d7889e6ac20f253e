package game

// Coord addresses a cell on the unbounded grid.
type Coord struct {
	X, Y int
}

type Axis int

const (
	Horizontal Axis = iota // fixed Y, varying X
	Vertical               // fixed X, varying Y
)

func (a Axis) String() string {
	if a == Horizontal {
		return "row"
	}
	return "column"
}

// step returns the unit offset along the axis.
func (a Axis) step() Coord {
	if a == Horizontal {
		return Coord{X: 1}
	}
	return Coord{Y: 1}
}

func (c Coord) add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y}
}

func (c Coord) sub(d Coord) Coord {
	return Coord{X: c.X - d.X, Y: c.Y - d.Y}
}

// Board is a sparse grid of placed tiles. The zero value is not usable; use
// NewBoard.
type Board struct {
	cells map[Coord]Tile
}

func NewBoard() *Board {
	return &Board{cells: make(map[Coord]Tile)}
}

func (b *Board) Copy() *Board {
	cells := make(map[Coord]Tile, len(b.cells))
	for c, t := range b.cells {
		cells[c] = t
	}
	return &Board{cells: cells}
}

// Get returns the tile at c, if any.
func (b *Board) Get(c Coord) (Tile, bool) {
	t, ok := b.cells[c]
	return t, ok
}

func (b *Board) Occupied(c Coord) bool {
	_, ok := b.cells[c]
	return ok
}

func (b *Board) Size() int {
	return len(b.cells)
}

// Place puts a tile at c. It fails with ErrOccupiedCell if the cell is
// already filled.
func (b *Board) Place(c Coord, t Tile) error {
	if b.Occupied(c) {
		return ErrOccupiedCell
	}
	b.cells[c] = t
	return nil
}

// Coords enumerates every occupied coordinate, in no particular order.
func (b *Board) Coords() []Coord {
	coords := make([]Coord, 0, len(b.cells))
	for c := range b.cells {
		coords = append(coords, c)
	}
	return coords
}

// Neighbors returns the four orthogonal neighbor coordinates of c.
func (c Coord) Neighbors() [4]Coord {
	return [4]Coord{
		{c.X, c.Y - 1},
		{c.X, c.Y + 1},
		{c.X - 1, c.Y},
		{c.X + 1, c.Y},
	}
}

// HasNeighbor reports whether any orthogonal neighbor of c is occupied.
func (b *Board) HasNeighbor(c Coord) bool {
	for _, n := range c.Neighbors() {
		if b.Occupied(n) {
			return true
		}
	}
	return false
}

// LineThrough returns the maximal gapless run of tiles through c along the
// given axis, ordered by increasing coordinate. If c itself is empty the
// result is empty; an isolated tile yields a single-element run.
func (b *Board) LineThrough(c Coord, axis Axis) []PlacedTile {
	if !b.Occupied(c) {
		return nil
	}
	step := axis.step()

	start := c
	for b.Occupied(start.sub(step)) {
		start = start.sub(step)
	}

	var line []PlacedTile
	for cur := start; ; cur = cur.add(step) {
		t, ok := b.cells[cur]
		if !ok {
			break
		}
		line = append(line, PlacedTile{Coord: cur, Tile: t})
	}
	return line
}

// PlacedTile pairs a tile with the cell it sits on (or targets).
type PlacedTile struct {
	Coord Coord
	Tile  Tile
}
