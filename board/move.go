package board

import "github.com/steve-z-seattle/vibe-coding-for-chess/position"

// Move is a pure description of a move; applying it to a Board yields the
// next position. Capture records the kind of the captured piece, if any,
// so that application and undo bookkeeping never have to rediscover it.
type Move struct {
	From, To position.Pos
	Piece    Piece
	Side     Side

	Capture   Piece
	Castle    CastleDirection
	EnPassant bool
	Promote   Piece

	// Score is a transient ordering hint used by the search; it is not
	// part of the move's identity.
	Score uint8
}

func (m Move) IsCapture() bool {
	return m.Capture != PieceUnknown
}

func (m Move) IsZero() bool {
	return m.Piece == PieceUnknown
}

// Equal compares move identity, ignoring the ordering hint.
func (m Move) Equal(o Move) bool {
	return m.From == o.From &&
		m.To == o.To &&
		m.Piece == o.Piece &&
		m.Side == o.Side &&
		m.Capture == o.Capture &&
		m.Castle == o.Castle &&
		m.EnPassant == o.EnPassant &&
		m.Promote == o.Promote
}

func (m Move) String() string {
	return m.Algebra()
}

// Algebra renders the move in a SAN-like form, without check decorations
// (those depend on the position, which a Move does not carry).
func (m Move) Algebra() string {
	if m.Castle != CastleDirectionUnknown {
		return m.Castle.String()
	}
	nt := m.Piece.SymbolSAN()
	if m.IsCapture() {
		if m.Piece == PiecePawn {
			nt += m.From.X().NotationComponentX()
		} else {
			nt += m.From.Notation()
		}
		nt += "x"
	}
	nt += m.To.Notation()
	if m.Promote != PieceUnknown {
		nt += "=" + m.Promote.SymbolSAN()
	}
	return nt
}

// UCI renders the move in coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) UCI() string {
	nt := m.From.Notation() + m.To.Notation()
	if m.Promote != PieceUnknown {
		nt += m.Promote.SymbolFEN(SideBlack)
	}
	return nt
}
