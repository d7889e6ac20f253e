package searcher

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"qwirkle/game"
)

// treeState is a hand-built game tree: moves are labels, leaves carry a
// fixed value from player 0's perspective. It lets the tests pin exact
// minimax values without the combinatorics of a real board.
type treeState struct {
	player   int
	value    float64
	order    []string
	children map[string]*treeState
	over     bool
	winner   int
}

type treeMove string

func (m treeMove) IsStochastic() bool { return false }
func (m treeMove) String() string     { return string(m) }

func (s *treeState) Player() int { return s.player }

func (s *treeState) LegalMoves() []game.Move {
	moves := make([]game.Move, len(s.order))
	for i, label := range s.order {
		moves[i] = treeMove(label)
	}
	return moves
}

func (s *treeState) Play(m game.Move) game.State {
	if _, isPass := m.(game.Pass); isPass {
		// The searcher substitutes Pass when a live state has no moves; a
		// bare leaf answers it with a terminal copy carrying the same value.
		return &treeState{value: s.value, over: true, winner: game.NoPlayer}
	}
	child, ok := s.children[string(m.(treeMove))]
	if !ok {
		panic(fmt.Sprintf("no child for move %s", m))
	}
	return child
}

func (s *treeState) Hash() game.StateHash { return 0 }
func (s *treeState) Over() bool           { return s.over }
func (s *treeState) Winner() int          { return s.winner }

func leaf(value float64) *treeState {
	return &treeState{value: value, winner: game.NoPlayer}
}

func node(player int, children map[string]*treeState, order ...string) *treeState {
	return &treeState{player: player, order: order, children: children, winner: game.NoPlayer}
}

// evalTree reads the stored value, negating for player 1's perspective.
func evalTree(s game.State, perspective int) float64 {
	v := s.(*treeState).value
	if perspective == 1 {
		return -v
	}
	return v
}

// plainMinimax is the pruning-free reference implementation the alpha-beta
// search must agree with.
func plainMinimax(s game.State, depth int, maximizer int, evaluate game.Evaluate) float64 {
	if s.Over() {
		switch s.Winner() {
		case maximizer:
			return winValue + evaluate(s, maximizer)
		case game.NoPlayer:
			return evaluate(s, maximizer)
		default:
			return -winValue + evaluate(s, maximizer)
		}
	}
	if depth <= 0 {
		return evaluate(s, maximizer)
	}
	moves := s.LegalMoves()
	if len(moves) == 0 {
		return evaluate(s, maximizer)
	}
	best := math.Inf(-1)
	if s.Player() != maximizer {
		best = math.Inf(1)
	}
	for _, m := range moves {
		v := plainMinimax(s.Play(m), depth-1, maximizer, evaluate)
		if s.Player() == maximizer && v > best || s.Player() != maximizer && v < best {
			best = v
		}
	}
	return best
}

func TestFindBestMoveDepthOne(t *testing.T) {
	root := node(0, map[string]*treeState{
		"a": leaf(3),
		"b": leaf(7),
		"c": leaf(5),
	}, "a", "b", "c")

	m := NewMinimax(WithDepth(1), WithEvaluator(evalTree))
	move, value := m.FindBestMove(root)

	require.Equal(t, treeMove("b"), move)
	require.Equal(t, 7.0, value)
}

func TestFindBestMoveMinimizingOpponent(t *testing.T) {
	// The opponent answers each root move with its worst reply for us:
	// "safe" guarantees 4, "greedy" gets punished down to 1.
	root := node(0, map[string]*treeState{
		"greedy": node(1, map[string]*treeState{
			"punish":  leaf(1),
			"blunder": leaf(9),
		}, "punish", "blunder"),
		"safe": node(1, map[string]*treeState{
			"x": leaf(4),
			"y": leaf(6),
		}, "x", "y"),
	}, "greedy", "safe")

	m := NewMinimax(WithDepth(2), WithEvaluator(evalTree))
	move, value := m.FindBestMove(root)

	require.Equal(t, treeMove("safe"), move)
	require.Equal(t, 4.0, value)
}

func TestFindBestMoveTieBreaksFirstSeen(t *testing.T) {
	root := node(0, map[string]*treeState{
		"first":  leaf(5),
		"second": leaf(5),
	}, "first", "second")

	m := NewMinimax(WithDepth(1), WithEvaluator(evalTree))
	for i := 0; i < 3; i++ {
		move, _ := m.FindBestMove(root)
		require.Equal(t, treeMove("first"), move, "ties must go to generation order")
	}
}

func TestFindBestMoveInjectedTieBreak(t *testing.T) {
	root := node(0, map[string]*treeState{
		"first":  leaf(5),
		"second": leaf(5),
		"worse":  leaf(1),
	}, "first", "second", "worse")

	m := NewMinimax(WithDepth(1), WithEvaluator(evalTree), WithRand(rand.New(rand.NewSource(11))))
	picks := make(map[string]bool)
	for i := 0; i < 32; i++ {
		move, value := m.FindBestMove(root)
		require.Equal(t, 5.0, value, "tie-breaking must never change the value")
		require.NotEqual(t, treeMove("worse"), move)
		picks[move.String()] = true
	}
	require.Len(t, picks, 2, "the injected source should reach both tied moves")
}

func TestInjectedTieBreakIgnoresCutoffBounds(t *testing.T) {
	// "a" proves 5 first. "b" is a min node whose first leaf also reads 5,
	// so pruning cuts it off at alpha and reports 5, but its true value is
	// min(5, 3) = 3. The tie-break must never treat "b" as equal to "a".
	root := node(0, map[string]*treeState{
		"a": leaf(5),
		"b": node(1, map[string]*treeState{
			"x": leaf(5),
			"y": leaf(3),
		}, "x", "y"),
	}, "a", "b")

	m := NewMinimax(WithDepth(2), WithEvaluator(evalTree), WithRand(rand.New(rand.NewSource(3))))
	for i := 0; i < 32; i++ {
		move, value := m.FindBestMove(root)
		require.Equal(t, treeMove("a"), move, "a cut-off upper bound is not a tie")
		require.Equal(t, 5.0, value)
		require.Equal(t, 5.0, plainMinimax(root.Play(move), 1, 0, evalTree),
			"the chosen move's true value must match the reported value")
	}
}

func TestTerminalStateStopsRecursion(t *testing.T) {
	won := &treeState{over: true, winner: 0, value: 2}
	lost := &treeState{over: true, winner: 1, value: 2}
	root := node(0, map[string]*treeState{
		"win":  won,
		"lose": lost,
	}, "lose", "win")

	// Depth far beyond the tree: terminal detection must cut off first.
	m := NewMinimax(WithDepth(10), WithEvaluator(evalTree))
	move, value := m.FindBestMove(root)

	require.Equal(t, treeMove("win"), move)
	require.Greater(t, value, winValue/2, "a proven win dominates heuristics")
}

// randomTree builds a random game tree with alternating players.
func randomTree(rng *rand.Rand, depth, branching int) *treeState {
	var build func(player, depth int) *treeState
	build = func(player, depth int) *treeState {
		if depth == 0 {
			return leaf(float64(rng.Intn(41) - 20))
		}
		children := make(map[string]*treeState)
		var order []string
		n := 2 + rng.Intn(branching-1)
		for i := 0; i < n; i++ {
			label := fmt.Sprintf("m%d", i)
			order = append(order, label)
			children[label] = build(1-player, depth-1)
		}
		s := node(player, children, order...)
		s.value = float64(rng.Intn(41) - 20)
		return s
	}
	return build(0, depth)
}

// Pruning must change speed only, never the value.
func TestAlphaBetaMatchesPlainMinimax(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 50; i++ {
		for _, depth := range []int{1, 2, 3, 4} {
			root := randomTree(rng, 4, 4)

			m := NewMinimax(WithDepth(depth), WithEvaluator(evalTree))
			_, got := m.FindBestMove(root)
			want := plainMinimax(root, depth, 0, evalTree)

			require.Equal(t, want, got,
				"tree %d at depth %d: alpha-beta value diverged from plain minimax", i, depth)
		}
	}
}

func TestAlphaBetaMatchesPlainMinimaxOnRealGame(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	state := game.NewGameState(rng)
	// Advance a few plies with a shallow search to reach a midgame board.
	shallow := NewMinimax(WithDepth(1))
	var s game.State = state
	for i := 0; i < 4 && !s.Over(); i++ {
		move, _ := shallow.FindBestMove(s)
		s = s.Play(move)
	}

	m := NewMinimax(WithDepth(2))
	_, got := m.FindBestMove(s)
	want := plainMinimax(s, 2, s.Player(), game.EvaluatePosition)

	require.Equal(t, want, got)
}

func TestSearchStats(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	root := randomTree(rng, 4, 4)

	m := NewMinimax(WithDepth(4), WithEvaluator(evalTree))
	m.FindBestMove(root)

	stats := m.Stats()
	require.Greater(t, stats.Nodes, 0)
	require.Greater(t, stats.Leaves, 0)
	require.Equal(t, 4, stats.Depth)
	require.False(t, stats.TimedOut)
}
