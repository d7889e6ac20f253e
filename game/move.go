package game

import (
	"fmt"
	"sort"
	"strings"
)

// Move is one turn's action: a Placement, an Exchange, or a Pass.
type Move interface {
	fmt.Stringer
	// IsStochastic reports whether playing the move draws random tiles
	// beyond the standard hand refill.
	IsStochastic() bool
}

// Placement puts one or more tiles from the mover's hand onto empty,
// collinear, connected cells as a single atomic turn.
type Placement struct {
	Tiles []PlacedTile
}

func (p Placement) IsStochastic() bool { return false }

func (p Placement) String() string {
	parts := make([]string, len(p.Tiles))
	for i, pt := range p.Tiles {
		parts[i] = fmt.Sprintf("%s@(%d,%d)", pt.Tile, pt.Coord.X, pt.Coord.Y)
	}
	return "place " + strings.Join(parts, " ")
}

// key is a canonical form of the coordinate->tile mapping. Placements that
// are permutations of each other share a key and count as one move.
func (p Placement) key() string {
	parts := make([]string, len(p.Tiles))
	for i, pt := range p.Tiles {
		parts[i] = fmt.Sprintf("%d,%d:%d/%d", pt.Coord.X, pt.Coord.Y, pt.Tile.Color, pt.Tile.Shape)
	}
	sort.Strings(parts)
	return strings.Join(parts, ";")
}

// Exchange returns the whole hand to the pool and redraws. Only legal while
// the pool holds at least a hand's worth of tiles.
type Exchange struct{}

func (e Exchange) IsStochastic() bool { return true }
func (e Exchange) String() string     { return "exchange hand" }

// Pass forfeits the turn. Always legal.
type Pass struct{}

func (p Pass) IsStochastic() bool { return false }
func (p Pass) String() string     { return "pass" }

// MovesEqual reports whether two moves denote the same action. Placements
// compare as coordinate->tile mappings regardless of tile order.
func MovesEqual(a, b Move) bool {
	switch am := a.(type) {
	case Placement:
		bm, ok := b.(Placement)
		return ok && len(am.Tiles) == len(bm.Tiles) && am.key() == bm.key()
	case Exchange:
		_, ok := b.(Exchange)
		return ok
	case Pass:
		_, ok := b.(Pass)
		return ok
	}
	return false
}
