package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func drainedPool(keep int) *Pool {
	p := NewPool()
	rng := rand.New(rand.NewSource(7))
	p.Draw(p.Remaining()-keep, rng)
	return p
}

func TestLegalPlacementsSingleTiles(t *testing.T) {
	b := boardWith(map[Coord]Tile{
		{0, 0}: tile(Red, Circle),
	})
	hand := []Tile{tile(Red, Square), tile(Blue, Circle)}

	placements := LegalPlacements(b, hand)

	require.NotEmpty(t, placements)
	for _, sp := range placements {
		score, err := ValidateAndScore(b, sp.Placement)
		require.NoError(t, err, "generated placement %s must be legal", sp.Placement)
		require.Equal(t, score, sp.Score, "carried score must match the rule engine")
	}
}

// Every single-tile placement the rule engine accepts must be generated: no
// false negatives.
func TestLegalPlacementsComplete(t *testing.T) {
	b := boardWith(map[Coord]Tile{
		{0, 0}: tile(Red, Circle),
		{1, 0}: tile(Red, Square),
		{1, 1}: tile(Green, Square),
	})
	hand := []Tile{tile(Red, Star), tile(Green, Circle), tile(Blue, Cross)}

	placements := LegalPlacements(b, hand)
	generated := make(map[string]bool)
	for _, sp := range placements {
		generated[sp.key()] = true
	}

	// Brute force every hand tile on every cell near the board.
	for _, tl := range hand {
		for x := -3; x <= 4; x++ {
			for y := -3; y <= 4; y++ {
				p := Placement{Tiles: []PlacedTile{{Coord: Coord{x, y}, Tile: tl}}}
				if _, err := ValidateAndScore(b, p); err == nil {
					require.True(t, generated[p.key()],
						"legal placement %s missing from LegalPlacements", p)
				}
			}
		}
	}
}

func TestLegalPlacementsMultiTile(t *testing.T) {
	t.Run("two compatible tiles yield two-tile lines", func(t *testing.T) {
		b := boardWith(map[Coord]Tile{
			{0, 0}: tile(Red, Circle),
		})
		hand := []Tile{tile(Red, Square), tile(Red, Star)}

		placements := LegalPlacements(b, hand)

		want := Placement{Tiles: []PlacedTile{
			{Coord: Coord{1, 0}, Tile: tile(Red, Square)},
			{Coord: Coord{2, 0}, Tile: tile(Red, Star)},
		}}
		found := false
		for _, sp := range placements {
			if MovesEqual(sp.Placement, want) {
				found = true
				require.Equal(t, 3, sp.Score)
			}
		}
		require.True(t, found, "expected %s among placements", want)
	})

	t.Run("permutations of one mapping appear once", func(t *testing.T) {
		b := boardWith(map[Coord]Tile{
			{0, 0}: tile(Red, Circle),
		})
		hand := []Tile{tile(Red, Square), tile(Red, Star)}

		placements := LegalPlacements(b, hand)
		seen := make(map[string]int)
		for _, sp := range placements {
			seen[sp.key()]++
		}
		for key, n := range seen {
			require.Equal(t, 1, n, "placement %s generated %d times", key, n)
		}
	})

	t.Run("duplicate hand tiles do not duplicate moves", func(t *testing.T) {
		b := boardWith(map[Coord]Tile{
			{0, 0}: tile(Red, Circle),
		})
		one := LegalPlacements(b, []Tile{tile(Red, Square)})
		two := LegalPlacements(b, []Tile{tile(Red, Square), tile(Red, Square)})
		require.Equal(t, len(one), len(two))
	})
}

func TestLegalPlacementsOrdering(t *testing.T) {
	b := boardWith(map[Coord]Tile{
		{0, 0}: tile(Red, Circle),
		{1, 0}: tile(Red, Square),
	})
	hand := []Tile{tile(Red, Star), tile(Blue, Circle)}

	placements := LegalPlacements(b, hand)

	require.NotEmpty(t, placements)
	for i := 1; i < len(placements); i++ {
		require.GreaterOrEqual(t, placements[i-1].Score, placements[i].Score,
			"placements must be ordered by score descending")
	}
}

func TestLegalMovesExchangeAndPass(t *testing.T) {
	t.Run("exchange needs a full hand's worth in the pool", func(t *testing.T) {
		b := boardWith(map[Coord]Tile{
			{0, 0}: tile(Red, Circle),
		})
		hand := []Tile{tile(Red, Square), tile(Blue, Circle), tile(Green, Star)}

		_, canExchange, canPass := LegalMoves(b, hand, drainedPool(len(hand)))
		require.True(t, canExchange)
		require.True(t, canPass)

		_, canExchange, canPass = LegalMoves(b, hand, drainedPool(len(hand)-1))
		require.False(t, canExchange)
		require.True(t, canPass)
	})

	t.Run("stranded hand with a dry pool leaves only pass", func(t *testing.T) {
		// The hand tile shares neither color nor shape with the only tile
		// on the board, so every adjacent cell rejects it.
		b := boardWith(map[Coord]Tile{
			{0, 0}: tile(Red, Circle),
		})
		hand := []Tile{tile(Green, Square)}

		placements, canExchange, canPass := LegalMoves(b, hand, drainedPool(0))

		require.Empty(t, placements, "no cell accepts a tile sharing neither attribute")
		require.False(t, canExchange)
		require.True(t, canPass)
	})
}

func TestLegalPlacementsEmptyBoard(t *testing.T) {
	placements := LegalPlacements(NewBoard(), []Tile{tile(Red, Circle), tile(Red, Square)})

	require.NotEmpty(t, placements, "an empty board accepts placements at the origin")
	foundPair := false
	for _, sp := range placements {
		_, err := ValidateAndScore(NewBoard(), sp.Placement)
		require.NoError(t, err)
		if len(sp.Tiles) == 2 {
			foundPair = true
		}
	}
	require.True(t, foundPair, "two compatible tiles can open with a 2-line")
}
