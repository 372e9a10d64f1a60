package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/steve-z-seattle/vibe-coding-for-chess/board"
	"github.com/steve-z-seattle/vibe-coding-for-chess/engine"
	"github.com/steve-z-seattle/vibe-coding-for-chess/game"
	"github.com/steve-z-seattle/vibe-coding-for-chess/position"
)

type moveRequest struct {
	FromRow        int    `json:"from_row"`
	FromCol        int    `json:"from_col"`
	ToRow          int    `json:"to_row"`
	ToCol          int    `json:"to_col"`
	PromotionPiece string `json:"promotion_piece"`
}

type moveResponse struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message"`
	GameState *game.Snapshot `json:"game_state,omitempty"`
}

type validMove struct {
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	EnPassant bool   `json:"en_passant"`
	Castling  string `json:"castling,omitempty"`
}

type aiMoveResponse struct {
	Move      *game.MoveDTO  `json:"move,omitempty"`
	GameState *game.Snapshot `json:"game_state,omitempty"`
	Message   string         `json:"message"`
	Depth     uint8          `json:"depth,omitempty"`
	Nodes     uint32         `json:"nodes,omitempty"`
}

type gameEndResponse struct {
	GameOver   bool    `json:"game_over"`
	Winner     *string `json:"winner"`
	DrawReason *string `json:"draw_reason"`
}

func (h *Handler) state(w http.ResponseWriter, r *http.Request) {
	session := h.store.GetOrCreate(gameID(r))
	session.mu.Lock()
	snap := session.game.Snapshot()
	session.mu.Unlock()
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	session := h.store.GetOrCreate(gameID(r))
	session.mu.Lock()
	session.reset()
	snap := session.game.Snapshot()
	session.mu.Unlock()

	session.watchers.broadcast(snap)
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) move(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	session := h.store.GetOrCreate(gameID(r))
	session.mu.Lock()
	mv, err := session.game.MakeMove(req.FromRow, req.FromCol, req.ToRow, req.ToCol, req.PromotionPiece)
	var snap *game.Snapshot
	if err == nil {
		snap = session.game.Snapshot()
	}
	session.mu.Unlock()

	if err != nil {
		status := http.StatusOK // the client treats rejections as part of play
		if errors.Is(err, position.ErrInvalidSquare) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, moveResponse{Success: false, Message: err.Error()})
		return
	}

	session.watchers.broadcast(snap)
	writeJSON(w, http.StatusOK, moveResponse{
		Success:   true,
		Message:   mv.Algebra(),
		GameState: snap,
	})
}

func (h *Handler) validMoves(w http.ResponseWriter, r *http.Request) {
	row, errRow := strconv.Atoi(r.URL.Query().Get("row"))
	col, errCol := strconv.Atoi(r.URL.Query().Get("col"))
	if errRow != nil || errCol != nil {
		writeError(w, http.StatusBadRequest, "row and col query parameters are required")
		return
	}

	session := h.store.GetOrCreate(gameID(r))
	session.mu.Lock()
	mvs, err := session.game.ValidMoves(row, col)
	session.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out := make([]validMove, 0, len(mvs))
	for _, mv := range mvs {
		toRow, toCol := mv.To.RowCol()
		vm := validMove{Row: toRow, Col: toCol, EnPassant: mv.EnPassant}
		if mv.Castle != board.CastleDirectionUnknown {
			if mv.Castle.IsKingSide() {
				vm.Castling = "kingSide"
			} else {
				vm.Castling = "queenSide"
			}
		}
		out = append(out, vm)
	}
	writeJSON(w, http.StatusOK, map[string][]validMove{"moves": out})
}

func (h *Handler) undo(w http.ResponseWriter, r *http.Request) {
	session := h.store.GetOrCreate(gameID(r))
	session.mu.Lock()
	err := session.game.Undo()
	var snap *game.Snapshot
	if err == nil {
		snap = session.game.Snapshot()
	}
	session.mu.Unlock()

	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	session.watchers.broadcast(snap)
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) aiMove(w http.ResponseWriter, r *http.Request) {
	difficulty := engine.DefaultDifficulty
	if name := r.URL.Query().Get("difficulty"); name != "" {
		var err error
		if difficulty, err = engine.ParseDifficulty(name); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	session := h.store.GetOrCreate(gameID(r))
	session.mu.Lock()
	defer session.mu.Unlock()

	res, err := session.engine.Search(r.Context(), session.game.Board(), difficulty.Limits())
	if err != nil {
		if errors.Is(err, engine.ErrNoLegalMove) {
			writeJSON(w, http.StatusOK, aiMoveResponse{Message: "no valid moves available"})
			return
		}
		h.log.Error().Err(err).Msg("search failed")
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	if err := session.game.Apply(res.BestMove); err != nil {
		h.log.Error().Err(err).Str("move", res.BestMove.UCI()).Msg("engine produced unplayable move")
		writeError(w, http.StatusInternalServerError, "engine produced unplayable move")
		return
	}

	snap := session.game.Snapshot()
	session.watchers.broadcast(snap)

	fromRow, fromCol := res.BestMove.From.RowCol()
	toRow, toCol := res.BestMove.To.RowCol()
	writeJSON(w, http.StatusOK, aiMoveResponse{
		Move: &game.MoveDTO{
			From: game.PositionDTO{Row: fromRow, Col: fromCol},
			To:   game.PositionDTO{Row: toRow, Col: toCol},
		},
		GameState: snap,
		Message:   res.BestMove.Algebra(),
		Depth:     res.Depth,
		Nodes:     res.Nodes,
	})
}

func (h *Handler) check(w http.ResponseWriter, r *http.Request) {
	session := h.store.GetOrCreate(gameID(r))
	session.mu.Lock()
	snap := session.game.Snapshot()
	session.mu.Unlock()

	writeJSON(w, http.StatusOK, gameEndResponse{
		GameOver:   snap.GameOver,
		Winner:     snap.Winner,
		DrawReason: snap.DrawReason,
	})
}

func (h *Handler) importPGN(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PGN string `json:"pgn"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PGN == "" {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	imported, err := game.FromPGN(req.PGN)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	session := h.store.GetOrCreate(gameID(r))
	session.mu.Lock()
	session.replace(imported)
	snap := session.game.Snapshot()
	session.mu.Unlock()

	session.watchers.broadcast(snap)
	writeJSON(w, http.StatusOK, snap)
}
