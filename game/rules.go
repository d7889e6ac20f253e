package game

// The rule engine. ValidateAndScore is the single entry point: it either
// rejects a placement with one of the sentinel rule violations or returns
// the score delta the placement is worth. The board is never mutated here;
// legality is checked against an overlay of board + placement.

type lineKey struct {
	axis  Axis
	start Coord
}

// ValidateAndScore checks every placement rule against the board and, when
// the placement is legal, computes its score: the length of every line the
// placed tiles participate in (counted once per line), plus a flat QSize
// bonus for each line completed to length QSize. A lone tile touching
// nothing scores 1.
func ValidateAndScore(b *Board, p Placement) (int, error) {
	if len(p.Tiles) == 0 {
		return 0, ErrEmptyPlacement
	}

	// No two tiles on one cell, none on an occupied cell.
	targets := make(map[Coord]bool, len(p.Tiles))
	for _, pt := range p.Tiles {
		if targets[pt.Coord] {
			return 0, ErrDuplicateTarget
		}
		if b.Occupied(pt.Coord) {
			return 0, ErrOccupiedCell
		}
		targets[pt.Coord] = true
	}

	axis, err := placementAxis(p.Tiles)
	if err != nil {
		return 0, err
	}

	// Connectivity: some placed tile must touch a pre-existing tile. The
	// board is pre-seeded with the starting tile, so an empty board only
	// occurs in isolation tests.
	if b.Size() > 0 {
		connected := false
		for _, pt := range p.Tiles {
			if b.HasNeighbor(pt.Coord) {
				connected = true
				break
			}
		}
		if !connected {
			return 0, ErrDisconnectedPlacement
		}
	}

	overlay := b.Copy()
	for _, pt := range p.Tiles {
		overlay.cells[pt.Coord] = pt.Tile
	}

	// The combined main line must be gapless: every placed tile has to lie
	// on the run through the first one.
	if len(p.Tiles) > 1 {
		run := overlay.LineThrough(p.Tiles[0].Coord, axis)
		onRun := make(map[Coord]bool, len(run))
		for _, pt := range run {
			onRun[pt.Coord] = true
		}
		for _, pt := range p.Tiles {
			if !onRun[pt.Coord] {
				return 0, ErrNotCollinear
			}
		}
	}

	// Every line a placed tile participates in must be internally
	// consistent.
	for _, pt := range p.Tiles {
		for _, a := range []Axis{Horizontal, Vertical} {
			if !validLine(tilesOf(overlay.LineThrough(pt.Coord, a))) {
				return 0, ErrAttributeConflict
			}
		}
	}

	return scorePlacement(overlay, p), nil
}

// placementAxis determines the row or column the placement occupies. A
// single tile fits either axis; Horizontal is reported and the caller never
// depends on the choice.
func placementAxis(tiles []PlacedTile) (Axis, error) {
	sameRow, sameCol := true, true
	for _, pt := range tiles[1:] {
		if pt.Coord.Y != tiles[0].Coord.Y {
			sameRow = false
		}
		if pt.Coord.X != tiles[0].Coord.X {
			sameCol = false
		}
	}
	switch {
	case sameRow:
		return Horizontal, nil
	case sameCol:
		return Vertical, nil
	default:
		return 0, ErrNotCollinear
	}
}

// scorePlacement totals the affected lines on the overlay board. Lines are
// deduplicated by (axis, start coordinate) so a line shared by several
// placed tiles counts once.
func scorePlacement(overlay *Board, p Placement) int {
	scored := make(map[lineKey]bool)
	score := 0
	for _, pt := range p.Tiles {
		for _, a := range []Axis{Horizontal, Vertical} {
			line := overlay.LineThrough(pt.Coord, a)
			if len(line) < 2 {
				continue
			}
			key := lineKey{axis: a, start: line[0].Coord}
			if scored[key] {
				continue
			}
			scored[key] = true
			score += len(line)
			if len(line) == QSize {
				score += QSize
			}
		}
	}
	if score == 0 {
		// Single tile touching nothing along either axis.
		score = 1
	}
	return score
}

func tilesOf(placed []PlacedTile) []Tile {
	tiles := make([]Tile, len(placed))
	for i, pt := range placed {
		tiles[i] = pt.Tile
	}
	return tiles
}
