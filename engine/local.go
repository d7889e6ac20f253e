package engine

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"qwirkle/game"
	"qwirkle/searcher"
)

// ErrGameOver is returned when a move arrives after the game has ended.
var ErrGameOver = errors.New("game is over - no moves allowed")

// ErrIllegalMove is returned when a submitted move is not among the current
// player's legal moves.
var ErrIllegalMove = errors.New("illegal move")

// MaxTurns caps self-play games that fail to terminate naturally.
const MaxTurns = 500

type Option func(*Engine)

// WithSeed fixes the random source for the pool shuffle and initial deal.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithSearcher replaces the default AI.
func WithSearcher(s *searcher.Minimax) Option {
	return func(e *Engine) {
		e.search = s
	}
}

// Engine is the local turn driver. It owns the authoritative GameState,
// validates every submitted move against the legal set before applying it,
// and drives the searcher on the AI's turn. The State field is for reading;
// all mutation goes through Play.
type Engine struct {
	State  *game.GameState
	rng    *rand.Rand
	search *searcher.Minimax
	turns  int
}

// New deals a fresh game: full pool, both hands drawn, starting tile on the
// origin, player 0 to move.
func New(options ...Option) *Engine {
	e := &Engine{
		rng:    rand.New(rand.NewSource(1)),
		search: searcher.NewMinimax(),
	}
	for _, option := range options {
		option(e)
	}
	e.State = game.NewGameState(e.rng)
	return e
}

// Play validates and applies one move for the current player. Rule
// violations are recoverable: the state is untouched and the caller may
// retry with a different move.
func (e *Engine) Play(move game.Move) error {
	if e.State.Over() {
		return ErrGameOver
	}

	if _, ok := move.(game.Exchange); ok {
		if e.State.Pool.Remaining() < len(e.State.Hands[e.State.Player()]) {
			return game.ErrInsufficientPool
		}
	}

	legal := false
	for _, lm := range e.State.LegalMoves() {
		if game.MovesEqual(lm, move) {
			legal = true
			break
		}
	}
	if !legal {
		return ErrIllegalMove
	}

	player := e.State.Player()
	e.State = e.State.Play(move).(*game.GameState)
	e.turns++

	log.Info().
		Int("turn", e.turns).
		Int("player", player).
		Str("move", move.String()).
		Int("score", e.State.Scores[player]).
		Msg("move applied")

	if e.State.Over() {
		log.Info().
			Int("winner", e.State.Winner()).
			Ints("scores", e.State.Scores[:]).
			Msg("game over")
	}
	return nil
}

// PlayAI lets the searcher choose and play a move for the current player.
// The searcher only yields pre-validated moves, so a rejection here is a
// generator/rules mismatch and treated as a programming error.
func (e *Engine) PlayAI() (game.Move, float64, error) {
	if e.State.Over() {
		return nil, 0, ErrGameOver
	}
	move, value := e.search.FindBestMove(e.State)
	if err := e.Play(move); err != nil {
		panic(fmt.Sprintf("searcher produced an illegal move %s: %v", move, err))
	}
	return move, value, nil
}

// Run plays the game out with the searcher on both seats and returns the
// winner (game.NoPlayer on a draw). Used for self-play testing and strength
// comparisons.
func (e *Engine) Run() int {
	for !e.State.Over() && e.turns < MaxTurns {
		if _, _, err := e.PlayAI(); err != nil {
			break
		}
	}
	return e.State.Winner()
}
