package board

type Piece uint8

const (
	PieceUnknown Piece = iota
	PiecePawn
	PieceKnight
	PieceBishop
	PieceRook
	PieceQueen
	PieceKing
)

// PromoteCandidates lists the pieces a pawn may promote to.
var PromoteCandidates = []Piece{PieceQueen, PieceRook, PieceBishop, PieceKnight}

func (p Piece) String() string {
	return p.Name()
}

func (p Piece) Name() string {
	switch p {
	case PiecePawn:
		return "pawn"
	case PieceKnight:
		return "knight"
	case PieceBishop:
		return "bishop"
	case PieceRook:
		return "rook"
	case PieceQueen:
		return "queen"
	case PieceKing:
		return "king"
	default:
		return ""
	}
}

// SymbolSAN returns the capital piece letter used in algebraic notation,
// empty for pawns.
func (p Piece) SymbolSAN() string {
	if p == PiecePawn {
		return ""
	}
	return p.SymbolFEN(SideWhite)
}

func (p Piece) SymbolFEN(s Side) string {
	var sym rune
	switch p {
	case PiecePawn:
		sym = 'P'
	case PieceKnight:
		sym = 'N'
	case PieceBishop:
		sym = 'B'
	case PieceRook:
		sym = 'R'
	case PieceQueen:
		sym = 'Q'
	case PieceKing:
		sym = 'K'
	default:
		return ""
	}
	if s == SideBlack {
		sym |= 0x20 // lowercase is +32 uppercase
	}
	return string(sym)
}

func (p Piece) SymbolUnicode(s Side) string {
	switch s {
	case SideWhite:
		switch p {
		case PiecePawn:
			return "♙"
		case PieceKnight:
			return "♘"
		case PieceBishop:
			return "♗"
		case PieceRook:
			return "♖"
		case PieceQueen:
			return "♕"
		case PieceKing:
			return "♔"
		}
	case SideBlack:
		switch p {
		case PiecePawn:
			return "♟"
		case PieceKnight:
			return "♞"
		case PieceBishop:
			return "♝"
		case PieceRook:
			return "♜"
		case PieceQueen:
			return "♛"
		case PieceKing:
			return "♚"
		}
	}
	return ""
}

// PieceFromName parses the lowercase piece names used by hosting layers.
func PieceFromName(name string) Piece {
	switch name {
	case "pawn":
		return PiecePawn
	case "knight":
		return PieceKnight
	case "bishop":
		return PieceBishop
	case "rook":
		return PieceRook
	case "queen":
		return PieceQueen
	case "king":
		return PieceKing
	default:
		return PieceUnknown
	}
}

// PieceFromSAN parses a capital piece letter from algebraic notation.
func PieceFromSAN(c byte) Piece {
	switch c {
	case 'N':
		return PieceKnight
	case 'B':
		return PieceBishop
	case 'R':
		return PieceRook
	case 'Q':
		return PieceQueen
	case 'K':
		return PieceKing
	default:
		return PieceUnknown
	}
}
