package board

// State classifies the position for the side to move.
type State uint8

const (
	// StateUnknown is when the game state has not been evaluated.
	StateUnknown State = iota

	// StateRunning is when the game is in progress.
	StateRunning

	// StateCheck is when the side to move is in check but has moves.
	StateCheck

	// StateCheckmate is when the side to move is checkmated.
	StateCheckmate

	// StateStalemate is when the side to move has no moves and is not in check.
	StateStalemate

	// StateInsufficientMaterial is when neither side can force checkmate.
	StateInsufficientMaterial

	// StateFiftyMoveDraw is when 50 full moves passed without a capture or
	// pawn advance.
	StateFiftyMoveDraw
)

func (s State) IsRunning() bool {
	return s == StateRunning || s == StateCheck
}

func (s State) IsTerminal() bool {
	switch s {
	case StateCheckmate, StateStalemate, StateInsufficientMaterial, StateFiftyMoveDraw:
		return true
	default:
		return false
	}
}

func (s State) IsDraw() bool {
	switch s {
	case StateStalemate, StateInsufficientMaterial, StateFiftyMoveDraw:
		return true
	default:
		return false
	}
}

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateCheck:
		return "check"
	case StateCheckmate:
		return "checkmate"
	case StateStalemate:
		return "stalemate"
	case StateInsufficientMaterial:
		return "insufficient_material"
	case StateFiftyMoveDraw:
		return "fifty_move_rule"
	default:
		return "unknown"
	}
}
