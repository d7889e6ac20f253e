package game

// Heuristic evaluation. The categories are fixed; the weights are tuning
// knobs.
var (
	ScoreWeight     = 1.0  // points already banked
	PotentialWeight = 0.25 // best immediate score of each hand tile
	StrandedWeight  = 1.5  // per hand tile with nowhere legal to go
	QwirkleWeight   = 4.0  // a line one tile short of a Q this hand can finish
)

// EvaluatePosition scores a state from one player's perspective: positive is
// good for that player. It only reads the board, so it can be swapped for a
// differently tuned function without touching legality or scoring.
func EvaluatePosition(s State, perspective int) float64 {
	gs, ok := s.(*GameState)
	if !ok {
		panic("unexpected state type")
	}
	opponent := 1 - perspective

	value := ScoreWeight * float64(gs.Scores[perspective]-gs.Scores[opponent])

	potential, stranded, qwirkle := handProspects(gs.Board, gs.Hands[perspective])
	value += PotentialWeight * float64(potential)
	value -= StrandedWeight * float64(stranded)
	if qwirkle {
		value += QwirkleWeight
	}
	return value
}

// handProspects rates each hand tile by the best score a lone placement of
// it could earn right now. Every copy counts: two playable copies of a kind
// contribute twice, two unplayable copies are two stranded tiles. qwirkle
// reports whether some placement completes a line of QSize.
func handProspects(b *Board, hand []Tile) (potential int, stranded int, qwirkle bool) {
	anchors := anchorCells(b)
	copies := make(map[Tile]int, len(hand))
	for _, t := range hand {
		copies[t]++
	}
	for t, n := range copies {
		best := 0
		for _, anchor := range anchors {
			p := Placement{Tiles: []PlacedTile{{Coord: anchor, Tile: t}}}
			score, err := ValidateAndScore(b, p)
			if err != nil {
				continue
			}
			if score > best {
				best = score
			}
			if !qwirkle {
				for _, axis := range []Axis{Horizontal, Vertical} {
					if runLengthWith(b, anchor, axis) == QSize {
						qwirkle = true
					}
				}
			}
		}
		if best == 0 {
			stranded += n
		} else {
			potential += best * n
		}
	}
	return potential, stranded, qwirkle
}

// runLengthWith is the length of the line through c along axis if c were
// filled.
func runLengthWith(b *Board, c Coord, axis Axis) int {
	step := axis.step()
	n := 1
	for cur := c.sub(step); b.Occupied(cur); cur = cur.sub(step) {
		n++
	}
	for cur := c.add(step); b.Occupied(cur); cur = cur.add(step) {
		n++
	}
	return n
}
