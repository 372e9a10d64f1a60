package game

import (
	"math/bits"

	"github.com/steve-z-seattle/vibe-coding-for-chess/board"
	"github.com/steve-z-seattle/vibe-coding-for-chess/position"
)

// The snapshot types mirror the JSON contract of the browser client: board
// rows run from rank 8 down to rank 1, and every square is either null or a
// {color, type} pair.

type PieceDTO struct {
	Color string `json:"color"`
	Type  string `json:"type"`
}

type PositionDTO struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type MoveDTO struct {
	From PositionDTO `json:"from"`
	To   PositionDTO `json:"to"`
}

type HistoryDTO struct {
	SAN      string      `json:"san"`
	From     PositionDTO `json:"from"`
	To       PositionDTO `json:"to"`
	Piece    PieceDTO    `json:"piece"`
	Captured *PieceDTO   `json:"captured"`
}

type Snapshot struct {
	Board           [8][8]*PieceDTO            `json:"board"`
	CurrentPlayer   string                     `json:"current_player"`
	MoveHistory     []HistoryDTO               `json:"move_history"`
	CapturedByWhite []PieceDTO                 `json:"captured_by_white"`
	CapturedByBlack []PieceDTO                 `json:"captured_by_black"`
	LastMove        *MoveDTO                   `json:"last_move"`
	KingPositions   map[string]PositionDTO     `json:"king_positions"`
	CastlingRights  map[string]map[string]bool `json:"castling_rights"`
	EnPassantTarget *PositionDTO               `json:"en_passant_target"`
	InCheck         bool                       `json:"in_check"`
	GameOver        bool                       `json:"game_over"`
	Winner          *string                    `json:"winner"`
	DrawReason      *string                    `json:"draw_reason"`
	FEN             string                     `json:"fen"`
}

func positionDTO(pos position.Pos) PositionDTO {
	row, col := pos.RowCol()
	return PositionDTO{Row: row, Col: col}
}

func pieceDTO(s board.Side, p board.Piece) PieceDTO {
	return PieceDTO{Color: s.String(), Type: p.Name()}
}

// Snapshot renders the full client-facing view of the session.
func (g *Game) Snapshot() *Snapshot {
	b := g.board
	snap := &Snapshot{
		CurrentPlayer:  b.Turn().String(),
		MoveHistory:    make([]HistoryDTO, 0, len(g.history)),
		KingPositions:  make(map[string]PositionDTO, 2),
		CastlingRights: make(map[string]map[string]bool, 2),
		FEN:            b.FEN(),
	}

	for pos := position.Pos(0); pos < board.TotalCells; pos++ {
		s, p := b.PieceAt(pos)
		if p == board.PieceUnknown {
			continue
		}
		row, col := pos.RowCol()
		dto := pieceDTO(s, p)
		snap.Board[row][col] = &dto
	}

	for _, h := range g.history {
		entry := HistoryDTO{
			SAN:   h.SAN,
			From:  positionDTO(h.Move.From),
			To:    positionDTO(h.Move.To),
			Piece: pieceDTO(h.Move.Side, h.Move.Piece),
		}
		if h.Move.IsCapture() {
			captured := pieceDTO(h.Move.Side.Opposite(), h.Move.Capture)
			entry.Captured = &captured
		}
		snap.MoveHistory = append(snap.MoveHistory, entry)
	}

	byWhite, byBlack := g.Captured()
	snap.CapturedByWhite = make([]PieceDTO, 0, len(byWhite))
	for _, p := range byWhite {
		snap.CapturedByWhite = append(snap.CapturedByWhite, pieceDTO(board.SideBlack, p))
	}
	snap.CapturedByBlack = make([]PieceDTO, 0, len(byBlack))
	for _, p := range byBlack {
		snap.CapturedByBlack = append(snap.CapturedByBlack, pieceDTO(board.SideWhite, p))
	}

	if mv, ok := g.LastMove(); ok {
		snap.LastMove = &MoveDTO{From: positionDTO(mv.From), To: positionDTO(mv.To)}
	}

	for _, s := range []board.Side{board.SideWhite, board.SideBlack} {
		if king := b.Bitmap(s, board.PieceKing); king != 0 {
			snap.KingPositions[s.String()] = positionDTO(position.Pos(bits.TrailingZeros64(king)))
		}
		snap.CastlingRights[s.String()] = castlingDTO(b.CastlingRights(), s)
	}

	if ep, ok := b.EnPassantTarget(); ok {
		dto := positionDTO(ep)
		snap.EnPassantTarget = &dto
	}

	state := b.State()
	snap.InCheck = state == board.StateCheck || state == board.StateCheckmate
	snap.GameOver = state.IsTerminal()
	if state == board.StateCheckmate {
		winner := b.Turn().Opposite().String()
		snap.Winner = &winner
	}
	if state.IsDraw() {
		reason := state.String()
		snap.DrawReason = &reason
	}
	return snap
}

func castlingDTO(rights board.CastleRights, s board.Side) map[string]bool {
	king, queen := board.CastleDirectionWhiteKing, board.CastleDirectionWhiteQueen
	if s == board.SideBlack {
		king, queen = board.CastleDirectionBlackKing, board.CastleDirectionBlackQueen
	}
	return map[string]bool{
		"kingSide":  rights.IsAllowed(king),
		"queenSide": rights.IsAllowed(queen),
	}
}
