package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/steve-z-seattle/vibe-coding-for-chess/position"
)

var (
	// ErrIllegalMove is returned when a requested move is not legal in the
	// current position, including moves that would leave the mover's king
	// in check.
	ErrIllegalMove = errors.New("illegal move")
)

// Board is the complete game position: piece placement plus the side to
// move, castling rights, en passant target, and the move clocks. All fields
// are values, so Clone is a plain copy.
type Board struct {
	sides    [2 + 1]bitmap
	pieces   [6 + 1]bitmap
	occupied bitmap

	turn          Side
	castleRights  CastleRights
	enPassant     position.Pos
	halfMoveClock uint16
	fullMoveClock uint16

	hash uint64
}

// New returns a board set up in the standard starting position.
func New() *Board {
	b, _ := NewFromFEN(DefaultStartingPositionFEN)
	return b
}

func (b *Board) Clone() *Board {
	cp := *b
	return &cp
}

func (b *Board) Turn() Side {
	return b.turn
}

// Hash is the Zobrist key of the position, maintained incrementally.
func (b *Board) Hash() uint64 {
	return b.hash
}

func (b *Board) HalfMoveClock() uint16 {
	return b.halfMoveClock
}

func (b *Board) FullMoveClock() uint16 {
	return b.fullMoveClock
}

func (b *Board) CastlingRights() CastleRights {
	return b.castleRights
}

// EnPassantTarget reports the square a pawn may capture onto en passant,
// if the previous move was a double push.
func (b *Board) EnPassantTarget() (position.Pos, bool) {
	return b.enPassant, b.enPassant != flagNoEnPassant
}

// Bitmap returns the occupancy of one piece kind for one side as a raw
// 64-bit board in little-endian rank-file order.
func (b *Board) Bitmap(s Side, p Piece) uint64 {
	return uint64(b.pieces[p] & b.sides[s])
}

// PieceAt reports the occupant of a square, SideUnknown/PieceUnknown when
// empty.
func (b *Board) PieceAt(pos position.Pos) (Side, Piece) {
	if b.occupied&maskCell[pos] == 0 {
		return SideUnknown, PieceUnknown
	}
	s := SideWhite
	if b.sides[SideBlack]&maskCell[pos] != 0 {
		s = SideBlack
	}
	for p := PiecePawn; p <= PieceKing; p++ {
		if b.pieces[p]&maskCell[pos] != 0 {
			return s, p
		}
	}
	return SideUnknown, PieceUnknown
}

func (b *Board) put(s Side, p Piece, pos position.Pos) {
	b.sides[s].Set(pos)
	b.pieces[p].Set(pos)
	b.occupied.Set(pos)
	b.hash ^= zobristPiece[s][p][pos]
}

func (b *Board) clear(s Side, p Piece, pos position.Pos) {
	b.sides[s].Unset(pos)
	b.pieces[p].Unset(pos)
	b.occupied.Unset(pos)
	b.hash ^= zobristPiece[s][p][pos]
}

func (b *Board) setCastleRights(c CastleRights) {
	b.hash ^= zobristCastleRights[b.castleRights] ^ zobristCastleRights[c]
	b.castleRights = c
}

func (b *Board) setEnPassant(pos position.Pos) {
	if b.enPassant != flagNoEnPassant {
		b.hash ^= zobristEnPassant[b.enPassant.X()]
	}
	if pos != flagNoEnPassant {
		b.hash ^= zobristEnPassant[pos.X()]
	}
	b.enPassant = pos
}

// destinations computes the pseudo destination set for a single piece,
// ignoring checks. Castling is handled separately.
func (b *Board) destinations(from position.Pos, s Side, p Piece) bitmap {
	own := b.sides[s]
	switch p {
	case PiecePawn:
		cell := maskCell[from]
		capturable := b.sides[s.Opposite()]
		if b.enPassant != flagNoEnPassant {
			capturable |= maskCell[b.enPassant]
		}
		if s == SideWhite {
			push := shiftN(cell) &^ b.occupied
			dbl := shiftN(push&maskRow[position.Rank3]) &^ b.occupied
			caps := (shiftNE(cell&^maskCol[position.FileH]) | shiftNW(cell&^maskCol[position.FileA])) & capturable
			return push | dbl | caps
		}
		push := shiftS(cell) &^ b.occupied
		dbl := shiftS(push&maskRow[position.Rank6]) &^ b.occupied
		caps := (shiftSE(cell&^maskCol[position.FileH]) | shiftSW(cell&^maskCol[position.FileA])) & capturable
		return push | dbl | caps
	case PieceKnight:
		return maskKnight[from] &^ own
	case PieceBishop:
		return hitDiagonals(from, b.occupied) &^ own
	case PieceRook:
		return hitLaterals(from, b.occupied) &^ own
	case PieceQueen:
		return (hitDiagonals(from, b.occupied) | hitLaterals(from, b.occupied)) &^ own
	case PieceKing:
		return maskKing[from] &^ own
	default:
		return 0
	}
}

// attackArea is the union of all squares attacked by s, including squares
// occupied by s's own pieces (defended squares count for check detection).
// Pawn forward pushes are not attacks and are excluded.
func (b *Board) attackArea(s Side) bitmap {
	area := bitmap(0)
	own := b.sides[s]

	pawns := b.pieces[PiecePawn] & own
	if s == SideWhite {
		area |= shiftNE(pawns&^maskCol[position.FileH]) | shiftNW(pawns&^maskCol[position.FileA])
	} else {
		area |= shiftSE(pawns&^maskCol[position.FileH]) | shiftSW(pawns&^maskCol[position.FileA])
	}
	for bm := b.pieces[PieceKnight] & own; bm != 0; bm &= bm - 1 {
		area |= maskKnight[bm.LS1B()]
	}
	for bm := (b.pieces[PieceBishop] | b.pieces[PieceQueen]) & own; bm != 0; bm &= bm - 1 {
		area |= hitDiagonals(bm.LS1B(), b.occupied)
	}
	for bm := (b.pieces[PieceRook] | b.pieces[PieceQueen]) & own; bm != 0; bm &= bm - 1 {
		area |= hitLaterals(bm.LS1B(), b.occupied)
	}
	for bm := b.pieces[PieceKing] & own; bm != 0; bm &= bm - 1 {
		area |= maskKing[bm.LS1B()]
	}
	return area
}

func (b *Board) IsSquareAttacked(pos position.Pos, by Side) bool {
	return b.attackArea(by)&maskCell[pos] != 0
}

func (b *Board) IsKingChecked(s Side) bool {
	king := b.pieces[PieceKing] & b.sides[s]
	if king == 0 {
		return false
	}
	return b.IsSquareAttacked(king.LS1B(), s.Opposite())
}

// PseudoLegalMoves generates all moves for s ignoring whether the mover's
// king is left in check. Promotions are expanded to one move per candidate
// piece, and king captures are never generated.
func (b *Board) PseudoLegalMoves(s Side) []Move {
	moves := make([]Move, 0, 48)
	for p := PiecePawn; p <= PieceKing; p++ {
		for bm := b.pieces[p] & b.sides[s]; bm != 0; bm &= bm - 1 {
			from := bm.LS1B()
			for dest := b.destinations(from, s, p) &^ b.pieces[PieceKing]; dest != 0; dest &= dest - 1 {
				to := dest.LS1B()
				mv := Move{From: from, To: to, Piece: p, Side: s}
				if _, victim := b.PieceAt(to); victim != PieceUnknown {
					mv.Capture = victim
				} else if p == PiecePawn && to == b.enPassant && from.X() != to.X() {
					mv.EnPassant = true
					mv.Capture = PiecePawn
				}
				if p == PiecePawn && (to.Y() == position.Rank8 || to.Y() == position.Rank1) {
					for _, promote := range PromoteCandidates {
						mv.Promote = promote
						moves = append(moves, mv)
					}
					continue
				}
				moves = append(moves, mv)
			}
		}
	}
	return b.appendCastleMoves(s, moves)
}

func (b *Board) appendCastleMoves(s Side, moves []Move) []Move {
	if !b.castleRights.IsSideAllowed(s) || b.IsKingChecked(s) {
		return moves
	}
	unsafe := b.attackArea(s.Opposite())
	for _, d := range castleDirectionsOf(s) {
		if !b.castleRights.IsAllowed(d) {
			continue
		}
		hop := castleHops[d]
		if b.pieces[PieceKing]&b.sides[s]&maskCell[hop.king[0]] == 0 ||
			b.pieces[PieceRook]&b.sides[s]&maskCell[hop.rook[0]] == 0 {
			continue
		}
		if b.occupied&maskCastleEmpty[d] != 0 || unsafe&maskCastleKingPath[d] != 0 {
			continue
		}
		moves = append(moves, Move{
			From:   hop.king[0],
			To:     hop.king[1],
			Piece:  PieceKing,
			Side:   s,
			Castle: d,
		})
	}
	return moves
}

// LegalMoves filters the pseudo moves down to those that do not leave s's
// own king in check.
func (b *Board) LegalMoves(s Side) []Move {
	pseudo := b.PseudoLegalMoves(s)
	moves := make([]Move, 0, len(pseudo))
	for _, mv := range pseudo {
		next := b.Clone()
		next.ApplyUnchecked(mv)
		if !next.IsKingChecked(s) {
			moves = append(moves, mv)
		}
	}
	return moves
}

// LegalMovesFrom returns the legal moves of the side to move originating
// from one square.
func (b *Board) LegalMovesFrom(from position.Pos) []Move {
	var moves []Move
	for _, mv := range b.LegalMoves(b.turn) {
		if mv.From == from {
			moves = append(moves, mv)
		}
	}
	return moves
}

// FindMove resolves a from/to pair against the legal move set of the side
// to move. For promotions, PieceUnknown selects a queen.
func (b *Board) FindMove(from, to position.Pos, promote Piece) (Move, error) {
	if !from.Valid() || !to.Valid() {
		return Move{}, position.ErrInvalidSquare
	}
	for _, mv := range b.LegalMoves(b.turn) {
		if mv.From != from || mv.To != to {
			continue
		}
		if mv.Promote != PieceUnknown {
			want := promote
			if want == PieceUnknown {
				want = PieceQueen
			}
			if mv.Promote != want {
				continue
			}
		}
		return mv, nil
	}
	return Move{}, ErrIllegalMove
}

// Apply validates mv against the legal move set and applies it. The board
// is left untouched on error.
func (b *Board) Apply(mv Move) error {
	legal, err := b.FindMove(mv.From, mv.To, mv.Promote)
	if err != nil {
		return err
	}
	if mv.Side != SideUnknown && mv.Side != legal.Side {
		return ErrIllegalMove
	}
	b.ApplyUnchecked(legal)
	return nil
}

// ApplyUnchecked applies a move that is assumed to come from the board's
// own move generator. Feeding it arbitrary moves corrupts the position.
func (b *Board) ApplyUnchecked(mv Move) {
	us, them := mv.Side, mv.Side.Opposite()

	if mv.Castle != CastleDirectionUnknown {
		hop := castleHops[mv.Castle]
		b.clear(us, PieceKing, hop.king[0])
		b.put(us, PieceKing, hop.king[1])
		b.clear(us, PieceRook, hop.rook[0])
		b.put(us, PieceRook, hop.rook[1])
	} else {
		if mv.IsCapture() {
			capturedAt := mv.To
			if mv.EnPassant {
				if us == SideWhite {
					capturedAt -= Width
				} else {
					capturedAt += Width
				}
			}
			b.clear(them, mv.Capture, capturedAt)
		}
		b.clear(us, mv.Piece, mv.From)
		if mv.Promote != PieceUnknown {
			b.put(us, mv.Promote, mv.To)
		} else {
			b.put(us, mv.Piece, mv.To)
		}
	}

	rights := b.castleRights
	if mv.Piece == PieceKing {
		for _, d := range castleDirectionsOf(us) {
			rights.Set(d, false)
		}
	} else if mv.Piece == PieceRook {
		if d, ok := rookHomeRights[mv.From]; ok && d.Side() == us {
			rights.Set(d, false)
		}
	}
	if mv.Capture == PieceRook {
		if d, ok := rookHomeRights[mv.To]; ok && d.Side() == them {
			rights.Set(d, false)
		}
	}
	if rights != b.castleRights {
		b.setCastleRights(rights)
	}

	ep := flagNoEnPassant
	if mv.Piece == PiecePawn {
		if diff := mv.To - mv.From; diff == 2*Width || diff == -2*Width {
			ep = (mv.From + mv.To) / 2
		}
	}
	b.setEnPassant(ep)

	if mv.Piece == PiecePawn || mv.IsCapture() {
		b.halfMoveClock = 0
	} else {
		b.halfMoveClock++
	}
	if us == SideBlack {
		b.fullMoveClock++
	}

	b.turn = them
	b.hash ^= zobristSideWhite
}

// State classifies the position for the side to move. Checkmate and
// stalemate take precedence over the draw counters.
func (b *Board) State() State {
	checked := b.IsKingChecked(b.turn)
	if len(b.LegalMoves(b.turn)) == 0 {
		if checked {
			return StateCheckmate
		}
		return StateStalemate
	}
	if b.IsInsufficientMaterial() {
		return StateInsufficientMaterial
	}
	if b.halfMoveClock >= 100 {
		return StateFiftyMoveDraw
	}
	if checked {
		return StateCheck
	}
	return StateRunning
}

func (b *Board) IsCheckmate(s Side) bool {
	return b.IsKingChecked(s) && len(b.LegalMoves(s)) == 0
}

func (b *Board) IsStalemate(s Side) bool {
	return !b.IsKingChecked(s) && len(b.LegalMoves(s)) == 0
}

// IsInsufficientMaterial reports whether neither side can force checkmate:
// king versus king, king and one minor piece versus king, or king and
// bishop on each side with both bishops on the same square color.
func (b *Board) IsInsufficientMaterial() bool {
	if b.pieces[PiecePawn]|b.pieces[PieceRook]|b.pieces[PieceQueen] != 0 {
		return false
	}
	white := b.sides[SideWhite] &^ b.pieces[PieceKing]
	black := b.sides[SideBlack] &^ b.pieces[PieceKing]
	if white.BitCount() > 1 || black.BitCount() > 1 {
		return false
	}
	if white == 0 || black == 0 {
		return true
	}
	whiteBishop := b.pieces[PieceBishop] & white
	blackBishop := b.pieces[PieceBishop] & black
	if whiteBishop == 0 || blackBishop == 0 {
		// knight versus minor piece cannot force mate either, but only
		// the bishop pairing is a dead position by rule
		return false
	}
	wp, bp := whiteBishop.LS1B(), blackBishop.LS1B()
	return (wp.X()+wp.Y())%2 == (bp.X()+bp.Y())%2
}

func (b *Board) Dump() string {
	builder := strings.Builder{}
	for y := position.Pos(Height); y > 0; y-- {
		_, _ = builder.WriteString(fmt.Sprintf(" %d |", y))
		for x := position.Pos(0); x < Width; x++ {
			s, p := b.PieceAt((y-1)*Width + x)
			if p == PieceUnknown {
				_, _ = builder.WriteString(" . ")
			} else {
				_, _ = builder.WriteString(fmt.Sprintf(" %s ", p.SymbolFEN(s)))
			}
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("    ------------------------\n    ")
	for x := position.Pos(0); x < Width; x++ {
		_, _ = builder.WriteString(fmt.Sprintf(" %s ", x.NotationComponentX()))
	}
	return builder.String()
}
