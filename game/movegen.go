package game

import "sort"

// ScoredPlacement pairs a legal placement with the score delta it earns, so
// callers can order candidates without re-validating.
type ScoredPlacement struct {
	Placement
	Score int
}

// LegalMoves enumerates every distinct legal placement for hand against b,
// ordered by score descending (generation order breaks ties), and reports
// whether exchanging and passing are available. Exchanging needs a full
// hand's worth of tiles left in the pool; passing always is.
func LegalMoves(b *Board, hand []Tile, pool *Pool) (placements []ScoredPlacement, canExchange bool, canPass bool) {
	placements = LegalPlacements(b, hand)
	canExchange = len(hand) > 0 && pool.Remaining() >= len(hand)
	canPass = true
	return placements, canExchange, canPass
}

// LegalPlacements returns all legal placements, best-scoring first. Every
// returned placement passes ValidateAndScore; every placement that would
// pass appears exactly once.
func LegalPlacements(b *Board, hand []Tile) []ScoredPlacement {
	g := &generator{
		board: b,
		seen:  make(map[string]bool),
	}

	for _, anchor := range anchorCells(b) {
		for _, t := range distinctTiles(hand) {
			first := PlacedTile{Coord: anchor, Tile: t}
			rest := without(hand, t)
			if score, err := ValidateAndScore(b, Placement{Tiles: []PlacedTile{first}}); err == nil {
				g.emit([]PlacedTile{first}, score)
			} else {
				// A tile illegal on its own cannot head a longer line
				// through the same cell.
				continue
			}
			g.extend([]PlacedTile{first}, rest, Horizontal)
			g.extend([]PlacedTile{first}, rest, Vertical)
		}
	}

	sort.SliceStable(g.out, func(i, j int) bool {
		return g.out[i].Score > g.out[j].Score
	})
	return g.out
}

type generator struct {
	board *Board
	seen  map[string]bool
	out   []ScoredPlacement
}

func (g *generator) emit(tiles []PlacedTile, score int) {
	p := Placement{Tiles: append([]PlacedTile(nil), tiles...)}
	key := p.key()
	if g.seen[key] {
		return
	}
	g.seen[key] = true
	g.out = append(g.out, ScoredPlacement{Placement: p, Score: score})
}

// extend grows placed along axis with tiles from remaining, one cell past
// either end of the combined run, validating the whole placement at each
// step. An invalid partial placement is abandoned: adding tiles can never
// repair a line conflict already present.
func (g *generator) extend(placed []PlacedTile, remaining []Tile, axis Axis) {
	if len(remaining) == 0 {
		return
	}
	for _, end := range [2]Coord{
		g.nextEmpty(placed, lowEnd(placed, axis), axis.step(), true),
		g.nextEmpty(placed, highEnd(placed, axis), axis.step(), false),
	} {
		for _, t := range distinctTiles(remaining) {
			next := append(append([]PlacedTile(nil), placed...), PlacedTile{Coord: end, Tile: t})
			score, err := ValidateAndScore(g.board, Placement{Tiles: next})
			if err != nil {
				continue
			}
			g.emit(next, score)
			g.extend(next, without(remaining, t), axis)
		}
	}
}

// nextEmpty walks from c away from the run (backward or forward along step)
// past any occupied cells and returns the first free cell.
func (g *generator) nextEmpty(placed []PlacedTile, c Coord, step Coord, backward bool) Coord {
	isTaken := func(c Coord) bool {
		if g.board.Occupied(c) {
			return true
		}
		for _, pt := range placed {
			if pt.Coord == c {
				return true
			}
		}
		return false
	}
	for {
		if backward {
			c = c.sub(step)
		} else {
			c = c.add(step)
		}
		if !isTaken(c) {
			return c
		}
	}
}

func lowEnd(placed []PlacedTile, axis Axis) Coord {
	best := placed[0].Coord
	for _, pt := range placed[1:] {
		if axis == Horizontal && pt.Coord.X < best.X || axis == Vertical && pt.Coord.Y < best.Y {
			best = pt.Coord
		}
	}
	return best
}

func highEnd(placed []PlacedTile, axis Axis) Coord {
	best := placed[0].Coord
	for _, pt := range placed[1:] {
		if axis == Horizontal && pt.Coord.X > best.X || axis == Vertical && pt.Coord.Y > best.Y {
			best = pt.Coord
		}
	}
	return best
}

// anchorCells returns the empty neighbors of every occupied cell, or the
// origin when the board is empty.
func anchorCells(b *Board) []Coord {
	if b.Size() == 0 {
		return []Coord{{}}
	}
	seen := make(map[Coord]bool)
	var anchors []Coord
	for _, c := range sortedCoords(b) {
		for _, n := range c.Neighbors() {
			if !b.Occupied(n) && !seen[n] {
				seen[n] = true
				anchors = append(anchors, n)
			}
		}
	}
	return anchors
}

// sortedCoords fixes the anchor iteration order so generation, and with it
// tie-breaking, is deterministic.
func sortedCoords(b *Board) []Coord {
	coords := b.Coords()
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Y != coords[j].Y {
			return coords[i].Y < coords[j].Y
		}
		return coords[i].X < coords[j].X
	})
	return coords
}

// distinctTiles filters duplicate kinds; playing either copy of a kind is
// the same move.
func distinctTiles(hand []Tile) []Tile {
	seen := make(map[Tile]bool, len(hand))
	var out []Tile
	for _, t := range hand {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// without removes one copy of t from hand.
func without(hand []Tile, t Tile) []Tile {
	out := make([]Tile, 0, len(hand)-1)
	removed := false
	for _, h := range hand {
		if !removed && h == t {
			removed = true
			continue
		}
		out = append(out, h)
	}
	return out
}
