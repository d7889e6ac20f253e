package game

import "errors"

// Rule violations. All are recoverable: the board is never mutated by a
// rejected placement, and the caller decides whether to re-prompt. Match with
// errors.Is.
var (
	ErrOccupiedCell          = errors.New("a tile already sits on that cell")
	ErrNotCollinear          = errors.New("placed tiles must share one row or one column with no gaps")
	ErrDisconnectedPlacement = errors.New("placement must touch an existing tile")
	ErrAttributeConflict     = errors.New("a line must share one color with unique shapes, or one shape with unique colors")
	ErrDuplicateTarget       = errors.New("two tiles target the same cell")
	ErrEmptyPlacement        = errors.New("placement holds no tiles")
	ErrTileNotInHand         = errors.New("tile is not in the player's hand")
	ErrInsufficientPool      = errors.New("pool holds too few tiles for an exchange")
)

// ErrNoLegalMove marks a live state offering no action at all. Pass is
// always generated, so seeing this error means the move generator broke an
// invariant; callers treat it as fatal rather than as a game condition.
var ErrNoLegalMove = errors.New("no legal move available, not even pass")
