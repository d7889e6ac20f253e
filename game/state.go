package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"sort"

	"golang.org/x/exp/rand"
)

// Two fixed seats. The engine decides which seat the human takes.
const NumPlayers = 2

// NoPlayer marks the absence of a winner (game running, or drawn).
const NoPlayer = -1

type StateHash uint64

// State is the game seen by the searcher. Operations on State always return
// a new copy; the authoritative instance is never mutated during search.
type State interface {
	Player() int
	LegalMoves() []Move
	Play(Move) State
	Hash() StateHash
	Over() bool
	Winner() int
}

// Evaluate scores a state from the given player's perspective, higher being
// better for that player.
type Evaluate func(s State, perspective int) float64

// GameState is the dynamic state of one game: the board, both hands, the
// pool, scores, and whose turn it is. It is owned by the turn driver; the
// searcher only works on copies obtained through Play.
type GameState struct {
	Board      *Board
	Hands      [NumPlayers][]Tile
	Pool       *Pool
	Scores     [NumPlayers]int
	Current    int
	PassStreak int
	LastMove   Move
	Finished   bool
	Victor     int
}

// NewGameState deals both hands, seeds the board with one drawn tile at the
// origin, and gives the first turn to player 0.
func NewGameState(rng *rand.Rand) *GameState {
	gs := &GameState{
		Board:  NewBoard(),
		Pool:   NewPool(),
		Victor: NoPlayer,
	}
	for i := range gs.Hands {
		gs.Hands[i] = gs.Pool.Draw(HandSize, rng)
	}
	seed := gs.Pool.Draw(1, rng)
	gs.Board.cells[Coord{}] = seed[0]
	return gs
}

func (gs *GameState) Copy() *GameState {
	hands := [NumPlayers][]Tile{}
	for i, hand := range gs.Hands {
		hands[i] = append([]Tile(nil), hand...)
	}
	return &GameState{
		Board:      gs.Board.Copy(),
		Hands:      hands,
		Pool:       gs.Pool.Copy(),
		Scores:     gs.Scores,
		Current:    gs.Current,
		PassStreak: gs.PassStreak,
		LastMove:   gs.LastMove,
		Finished:   gs.Finished,
		Victor:     gs.Victor,
	}
}

// Player returns the seat whose turn it is.
func (gs *GameState) Player() int {
	return gs.Current
}

func (gs *GameState) Opponent() int {
	return 1 - gs.Current
}

func (gs *GameState) Over() bool {
	return gs.Finished
}

// Winner returns the winning seat, or NoPlayer while the game runs or when
// it ends drawn.
func (gs *GameState) Winner() int {
	return gs.Victor
}

// LegalMoves returns the current player's actions: placements best-scoring
// first, then Exchange when the pool allows it, then Pass. The order is
// deterministic and doubles as the searcher's candidate order.
func (gs *GameState) LegalMoves() []Move {
	if gs.Finished {
		return nil
	}
	placements, canExchange, _ := LegalMoves(gs.Board, gs.Hands[gs.Current], gs.Pool)
	moves := make([]Move, 0, len(placements)+2)
	for _, sp := range placements {
		moves = append(moves, sp.Placement)
	}
	if canExchange {
		moves = append(moves, Exchange{})
	}
	moves = append(moves, Pass{})
	return moves
}

// Play applies a move and returns the resulting state, leaving gs untouched.
// The move must be legal: Play is only ever fed moves from LegalMoves or
// moves the engine has validated, so a rule violation here is a programming
// error and panics.
func (gs *GameState) Play(move Move) State {
	next := gs.Copy()
	// Draws inside a turn are derived from the pre-move hash so that the
	// same state and move always produce the same successor.
	rng := rand.New(rand.NewSource(uint64(gs.Hash())))

	switch m := move.(type) {
	case Placement:
		score, err := ValidateAndScore(next.Board, m)
		if err != nil {
			panic(fmt.Sprintf("illegal placement reached Play: %v (%s)", err, m))
		}
		for _, pt := range m.Tiles {
			next.takeFromHand(pt.Tile)
			next.Board.cells[pt.Coord] = pt.Tile
		}
		next.Scores[next.Current] += score
		next.Hands[next.Current] = append(next.Hands[next.Current],
			next.Pool.Draw(HandSize-len(next.Hands[next.Current]), rng)...)
		next.PassStreak = 0
		if len(next.Hands[next.Current]) == 0 && next.Pool.Remaining() == 0 {
			// Going out ends the game and earns the flat bonus.
			next.Scores[next.Current] += QSize
			next.finish()
		}
	case Exchange:
		hand := next.Hands[next.Current]
		if next.Pool.Remaining() < len(hand) {
			panic("exchange reached Play with an underfilled pool")
		}
		// Old tiles go back first, then the hand is redrawn.
		next.Pool.Return(hand)
		next.Hands[next.Current] = next.Pool.Draw(len(hand), rng)
		next.PassStreak = 0
	case Pass:
		next.PassStreak++
		if next.PassStreak >= NumPlayers {
			next.finish()
		}
	default:
		panic(fmt.Sprintf("unknown move type %T", move))
	}

	next.LastMove = move
	if !next.Finished {
		next.Current = next.Opponent()
	}
	return next
}

func (gs *GameState) takeFromHand(t Tile) {
	hand := gs.Hands[gs.Current]
	for i, h := range hand {
		if h == t {
			gs.Hands[gs.Current] = append(hand[:i], hand[i+1:]...)
			return
		}
	}
	panic(fmt.Sprintf("tile %s not in player %d's hand", t, gs.Current))
}

func (gs *GameState) finish() {
	gs.Finished = true
	switch {
	case gs.Scores[0] > gs.Scores[1]:
		gs.Victor = 0
	case gs.Scores[1] > gs.Scores[0]:
		gs.Victor = 1
	default:
		gs.Victor = NoPlayer
	}
}

// Hash folds the full state into a 64-bit key. Iteration orders are fixed so
// equal states hash equally.
func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()

	for _, c := range sortedCoords(gs.Board) {
		t, _ := gs.Board.Get(c)
		binary.Write(hasher, binary.LittleEndian, int64(c.X))
		binary.Write(hasher, binary.LittleEndian, int64(c.Y))
		binary.Write(hasher, binary.LittleEndian, int64(t.Color))
		binary.Write(hasher, binary.LittleEndian, int64(t.Shape))
	}

	for i, hand := range gs.Hands {
		sorted := append([]Tile(nil), hand...)
		sort.Slice(sorted, func(a, b int) bool {
			if sorted[a].Color != sorted[b].Color {
				return sorted[a].Color < sorted[b].Color
			}
			return sorted[a].Shape < sorted[b].Shape
		})
		binary.Write(hasher, binary.LittleEndian, int64(i))
		for _, t := range sorted {
			binary.Write(hasher, binary.LittleEndian, int64(t.Color))
			binary.Write(hasher, binary.LittleEndian, int64(t.Shape))
		}
		binary.Write(hasher, binary.LittleEndian, int64(gs.Scores[i]))
	}

	for c := 0; c < QSize; c++ {
		for s := 0; s < QSize; s++ {
			binary.Write(hasher, binary.LittleEndian, int64(gs.Pool.Count(Tile{Color: Color(c), Shape: Shape(s)})))
		}
	}

	binary.Write(hasher, binary.LittleEndian, int64(gs.Current))
	binary.Write(hasher, binary.LittleEndian, int64(gs.PassStreak))

	return StateHash(hasher.Sum64())
}
