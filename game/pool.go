package game

import "golang.org/x/exp/rand"

// Pool is the shared reserve of undrawn tiles, tracked as a count per tile
// kind. Draws are random but driven by an injected source so games replay
// deterministically under a fixed seed.
type Pool struct {
	counts map[Tile]int
	total  int
}

// NewPool returns a full pool: CopiesPerKind copies of each of the
// QSize*QSize tile kinds.
func NewPool() *Pool {
	counts := make(map[Tile]int, QSize*QSize)
	for c := 0; c < QSize; c++ {
		for s := 0; s < QSize; s++ {
			counts[Tile{Color: Color(c), Shape: Shape(s)}] = CopiesPerKind
		}
	}
	return &Pool{counts: counts, total: QSize * QSize * CopiesPerKind}
}

func (p *Pool) Copy() *Pool {
	counts := make(map[Tile]int, len(p.counts))
	for t, n := range p.counts {
		counts[t] = n
	}
	return &Pool{counts: counts, total: p.total}
}

// Remaining is the number of undrawn tiles.
func (p *Pool) Remaining() int {
	return p.total
}

// Count returns how many copies of kind t remain.
func (p *Pool) Count(t Tile) int {
	return p.counts[t]
}

// Draw removes up to n tiles from the pool, chosen uniformly among the
// remaining copies. It stops short when the pool runs dry; underflow is not
// an error.
func (p *Pool) Draw(n int, rng *rand.Rand) []Tile {
	var drawn []Tile
	for len(drawn) < n && p.total > 0 {
		pick := rng.Intn(p.total)
		// Walk kinds in a fixed order so the same seed draws the same tiles.
		for c := 0; c < QSize && pick >= 0; c++ {
			for s := 0; s < QSize; s++ {
				t := Tile{Color: Color(c), Shape: Shape(s)}
				if pick < p.counts[t] {
					p.counts[t]--
					p.total--
					drawn = append(drawn, t)
					pick = -1
					break
				}
				pick -= p.counts[t]
			}
		}
	}
	return drawn
}

// Return puts tiles back into the pool. Used by exchanges, which return the
// old tiles before redrawing.
func (p *Pool) Return(tiles []Tile) {
	for _, t := range tiles {
		p.counts[t]++
		p.total++
	}
}
