// Package game manages a single playable chess session: the live position,
// the move history with undo, and the JSON snapshot served to clients.
package game

import (
	"errors"
	"fmt"

	"github.com/steve-z-seattle/vibe-coding-for-chess/board"
	"github.com/steve-z-seattle/vibe-coding-for-chess/position"
)

var (
	// ErrCannotUndo is returned when fewer than two plies were played.
	// Undo always reverts a full move pair so the same player stays to
	// move.
	ErrCannotUndo = errors.New("cannot undo move")
)

// HistoryEntry records one applied ply together with the position it was
// played from, so undo is a snapshot restore rather than a move inversion.
type HistoryEntry struct {
	Move board.Move
	SAN  string

	prev *board.Board
}

type Game struct {
	board   *board.Board
	history []HistoryEntry
}

func New() *Game {
	return &Game{board: board.New()}
}

func NewFromFEN(fen string) (*Game, error) {
	b, err := board.NewFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Game{board: b}, nil
}

// Board exposes the live position. Callers must not apply moves to it
// directly; use MakeMove or Apply so history stays consistent.
func (g *Game) Board() *board.Board {
	return g.board
}

func (g *Game) History() []HistoryEntry {
	return g.history
}

func (g *Game) LastMove() (board.Move, bool) {
	if len(g.history) == 0 {
		return board.Move{}, false
	}
	return g.history[len(g.history)-1].Move, true
}

// MakeMove plays a move given in the row/column coordinates used by
// clients, where row 0 is rank 8. The promotion piece is a lowercase name
// such as "queen"; empty defaults to a queen.
func (g *Game) MakeMove(fromRow, fromCol, toRow, toCol int, promotion string) (board.Move, error) {
	from, err := position.FromRowCol(fromRow, fromCol)
	if err != nil {
		return board.Move{}, err
	}
	to, err := position.FromRowCol(toRow, toCol)
	if err != nil {
		return board.Move{}, err
	}
	promote := board.PieceUnknown
	if promotion != "" {
		if promote = board.PieceFromName(promotion); promote == board.PieceUnknown {
			return board.Move{}, fmt.Errorf("unknown promotion piece %q", promotion)
		}
	}
	mv, err := g.board.FindMove(from, to, promote)
	if err != nil {
		return board.Move{}, err
	}
	g.apply(mv)
	return mv, nil
}

// Apply plays a move that was already resolved against the current
// position, such as a searched engine move or a decoded PGN move.
func (g *Game) Apply(mv board.Move) error {
	legal, err := g.board.FindMove(mv.From, mv.To, mv.Promote)
	if err != nil {
		return err
	}
	g.apply(legal)
	return nil
}

func (g *Game) apply(mv board.Move) {
	prev := g.board.Clone()
	g.board.ApplyUnchecked(mv)

	san := mv.Algebra()
	switch g.board.State() {
	case board.StateCheckmate:
		san += "#"
	case board.StateCheck:
		san += "+"
	}
	g.history = append(g.history, HistoryEntry{Move: mv, SAN: san, prev: prev})
}

// ValidMoves lists the legal moves of the side to move from one square,
// addressed in client row/column coordinates.
func (g *Game) ValidMoves(row, col int) ([]board.Move, error) {
	from, err := position.FromRowCol(row, col)
	if err != nil {
		return nil, err
	}
	return g.board.LegalMovesFrom(from), nil
}

// Undo reverts the last two plies, one for each player, restoring the
// snapshot taken before the earlier of the two.
func (g *Game) Undo() error {
	if len(g.history) < 2 {
		return ErrCannotUndo
	}
	g.board = g.history[len(g.history)-2].prev
	g.history = g.history[:len(g.history)-2]
	return nil
}

func (g *Game) Reset() {
	g.board = board.New()
	g.history = nil
}

func (g *Game) State() board.State {
	return g.board.State()
}

// Captured lists the pieces each side has taken so far, recomputed from
// history so undo never leaves the lists stale.
func (g *Game) Captured() (byWhite, byBlack []board.Piece) {
	for _, h := range g.history {
		if !h.Move.IsCapture() {
			continue
		}
		if h.Move.Side == board.SideWhite {
			byWhite = append(byWhite, h.Move.Capture)
		} else {
			byBlack = append(byBlack, h.Move.Capture)
		}
	}
	return byWhite, byBlack
}
