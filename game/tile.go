package game

import "fmt"

// QSize is the number of distinct colors and shapes. A line of QSize tiles is
// a completed Q and earns the flat bonus.
const QSize = 6

// CopiesPerKind is how many copies of each (color, shape) kind the pool holds.
const CopiesPerKind = 3

// HandSize is the number of tiles a player holds while the pool lasts.
const HandSize = 6

type Color int

const (
	Red Color = iota
	Green
	Blue
	Yellow
	Orange
	Purple
)

type Shape int

const (
	Circle Shape = iota
	Square
	Diamond
	Star
	Clover
	Cross
)

var colorNames = [QSize]string{"red", "green", "blue", "yellow", "orange", "purple"}
var shapeNames = [QSize]string{"circle", "square", "diamond", "star", "clover", "cross"}

func (c Color) String() string {
	if c < 0 || int(c) >= len(colorNames) {
		return fmt.Sprintf("color(%d)", int(c))
	}
	return colorNames[c]
}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return fmt.Sprintf("shape(%d)", int(s))
	}
	return shapeNames[s]
}

// Tile is an immutable (color, shape) value. Tiles are compared by value;
// two tiles of the same kind are interchangeable.
type Tile struct {
	Color Color
	Shape Shape
}

func (t Tile) String() string {
	return fmt.Sprintf("%s %s", t.Color, t.Shape)
}

// Matches reports whether two tiles can sit on the same line at all: they
// must share a color or a shape but not both (identical tiles never share a
// line).
func (t Tile) Matches(other Tile) bool {
	if t == other {
		return false
	}
	return t.Color == other.Color || t.Shape == other.Shape
}

// validLine reports whether tiles form a legal line: all tiles share one
// color with pairwise-distinct shapes, or share one shape with
// pairwise-distinct colors. Lines of length 0 or 1 are trivially valid.
func validLine(tiles []Tile) bool {
	if len(tiles) <= 1 {
		return true
	}
	if len(tiles) > QSize {
		return false
	}

	var colors, shapes uint
	sameColor, sameShape := true, true
	for _, t := range tiles {
		if t.Color != tiles[0].Color {
			sameColor = false
		}
		if t.Shape != tiles[0].Shape {
			sameShape = false
		}
		colors |= 1 << uint(t.Color)
		shapes |= 1 << uint(t.Shape)
	}

	if sameColor {
		// All shapes must be distinct.
		return popcount(shapes) == len(tiles)
	}
	if sameShape {
		return popcount(colors) == len(tiles)
	}
	return false
}

func popcount(bits uint) int {
	n := 0
	for ; bits != 0; bits &= bits - 1 {
		n++
	}
	return n
}
