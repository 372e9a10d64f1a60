package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/steve-z-seattle/vibe-coding-for-chess/position"
)

var (
	// ErrInvalidFEN represents an invalid FEN string error.
	ErrInvalidFEN = errors.New("invalid fen")
)

// NewFromFEN parses a full six-segment FEN record into a board.
func NewFromFEN(fen string) (*Board, error) {
	segments := strings.Split(strings.TrimSpace(fen), " ")
	if len(segments) != 6 {
		return nil, fmt.Errorf("%w: incorrect number of segments", ErrInvalidFEN)
	}

	b := Board{enPassant: flagNoEnPassant}

	rows := strings.Split(segments[0], "/")
	if len(rows) != int(Height) {
		return nil, fmt.Errorf("%w: incorrect number of rows", ErrInvalidFEN)
	}
	for i, row := range rows {
		y := position.Pos(Height) - 1 - position.Pos(i)
		x := position.Pos(0)
		for _, sym := range row {
			if sym >= '1' && sym <= '8' {
				x += position.Pos(sym - '0')
				continue
			}
			if x >= Width {
				return nil, fmt.Errorf("%w: row %s overflows", ErrInvalidFEN, row)
			}
			s := SideWhite
			if sym >= 'a' {
				s = SideBlack
				sym -= 0x20
			}
			p := PieceFromSAN(byte(sym))
			if p == PieceUnknown {
				if sym == 'P' {
					p = PiecePawn
				} else {
					return nil, fmt.Errorf("%w: unknown piece %q", ErrInvalidFEN, sym)
				}
			}
			b.put(s, p, y*Width+x)
			x++
		}
		if x != Width {
			return nil, fmt.Errorf("%w: row %s underflows", ErrInvalidFEN, row)
		}
	}

	switch segments[1] {
	case "w":
		b.turn = SideWhite
	case "b":
		b.turn = SideBlack
	default:
		return nil, fmt.Errorf("%w: invalid turn segment", ErrInvalidFEN)
	}

	if segments[2] != "-" {
		for _, sym := range segments[2] {
			switch sym {
			case 'K':
				b.castleRights.Set(CastleDirectionWhiteKing, true)
			case 'Q':
				b.castleRights.Set(CastleDirectionWhiteQueen, true)
			case 'k':
				b.castleRights.Set(CastleDirectionBlackKing, true)
			case 'q':
				b.castleRights.Set(CastleDirectionBlackQueen, true)
			default:
				return nil, fmt.Errorf("%w: invalid castling segment", ErrInvalidFEN)
			}
		}
	}

	if segments[3] != "-" {
		pos, err := position.FromNotation(segments[3])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid en passant segment", ErrInvalidFEN)
		}
		b.enPassant = pos
	}

	halfMove, err := strconv.ParseUint(segments[4], 10, 16)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid half move clock segment", ErrInvalidFEN)
	}
	b.halfMoveClock = uint16(halfMove)

	fullMove, err := strconv.ParseUint(segments[5], 10, 16)
	if err != nil || fullMove == 0 {
		return nil, fmt.Errorf("%w: invalid full move clock segment", ErrInvalidFEN)
	}
	b.fullMoveClock = uint16(fullMove)

	b.hash = b.computeHash()
	return &b, nil
}

// FEN serializes the board back into a six-segment FEN record.
func (b *Board) FEN() string {
	builder := strings.Builder{}

	for y := position.Pos(Height); y > 0; y-- {
		empty := 0
		for x := position.Pos(0); x < Width; x++ {
			s, p := b.PieceAt((y-1)*Width + x)
			if p == PieceUnknown {
				empty++
				continue
			}
			if empty > 0 {
				_, _ = builder.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			_, _ = builder.WriteString(p.SymbolFEN(s))
		}
		if empty > 0 {
			_, _ = builder.WriteString(strconv.Itoa(empty))
		}
		if y > 1 {
			_, _ = builder.WriteString("/")
		}
	}

	_, _ = builder.WriteString(" ")
	if b.turn == SideWhite {
		_, _ = builder.WriteString("w")
	} else {
		_, _ = builder.WriteString("b")
	}

	_, _ = builder.WriteString(" ")
	if b.castleRights == 0 {
		_, _ = builder.WriteString("-")
	} else {
		for i, sym := range []string{"K", "Q", "k", "q"} {
			if b.castleRights.IsAllowed(CastleDirection(i + 1)) {
				_, _ = builder.WriteString(sym)
			}
		}
	}

	_, _ = builder.WriteString(" ")
	if b.enPassant == flagNoEnPassant {
		_, _ = builder.WriteString("-")
	} else {
		_, _ = builder.WriteString(b.enPassant.Notation())
	}

	_, _ = builder.WriteString(fmt.Sprintf(" %d %d", b.halfMoveClock, b.fullMoveClock))
	return builder.String()
}
