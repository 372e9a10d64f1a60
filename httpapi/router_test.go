package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/steve-z-seattle/vibe-coding-for-chess/game"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewRouter(zerolog.Nop(), NewStore(1<<14)))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	var out map[string]bool
	if status := doJSON(t, http.MethodGet, srv.URL+"/healthz", nil, &out); status != http.StatusOK || !out["ok"] {
		t.Errorf("healthz: status %d body %v", status, out)
	}
}

func TestRouter_StateAndMove(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	var snap game.Snapshot
	if status := doJSON(t, http.MethodGet, srv.URL+"/api/game/g1/state", nil, &snap); status != http.StatusOK {
		t.Fatalf("state: status %d", status)
	}
	if snap.CurrentPlayer != "white" {
		t.Errorf("fresh game current_player: got %q", snap.CurrentPlayer)
	}

	var moved moveResponse
	body := moveRequest{FromRow: 6, FromCol: 4, ToRow: 4, ToCol: 4}
	if status := doJSON(t, http.MethodPost, srv.URL+"/api/game/g1/move", body, &moved); status != http.StatusOK {
		t.Fatalf("move: status %d", status)
	}
	if !moved.Success || moved.GameState == nil || moved.GameState.CurrentPlayer != "black" {
		t.Errorf("move response: %+v", moved)
	}

	// sessions are isolated by identifier
	var other game.Snapshot
	doJSON(t, http.MethodGet, srv.URL+"/api/game/g2/state", nil, &other)
	if other.CurrentPlayer != "white" {
		t.Error("a different game id should start fresh")
	}
}

func TestRouter_MoveRejected(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	var moved moveResponse
	body := moveRequest{FromRow: 6, FromCol: 4, ToRow: 3, ToCol: 4} // e2e5
	if status := doJSON(t, http.MethodPost, srv.URL+"/api/game/g1/move", body, &moved); status != http.StatusOK {
		t.Fatalf("move: status %d", status)
	}
	if moved.Success || moved.GameState != nil {
		t.Errorf("illegal move should be rejected: %+v", moved)
	}

	body = moveRequest{FromRow: -1, FromCol: 4, ToRow: 4, ToCol: 4}
	if status := doJSON(t, http.MethodPost, srv.URL+"/api/game/g1/move", body, &moved); status != http.StatusBadRequest {
		t.Errorf("out-of-board move: status %d, want 400", status)
	}
}

func TestRouter_ValidMoves(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	var out struct {
		Moves []validMove `json:"moves"`
	}
	if status := doJSON(t, http.MethodGet, srv.URL+"/api/game/g1/valid-moves?row=6&col=4", nil, &out); status != http.StatusOK {
		t.Fatalf("valid-moves: status %d", status)
	}
	if len(out.Moves) != 2 {
		t.Errorf("e2 pawn moves: got %d, want 2", len(out.Moves))
	}
	if status := doJSON(t, http.MethodGet, srv.URL+"/api/game/g1/valid-moves?row=banana&col=4", nil, nil); status != http.StatusBadRequest {
		t.Errorf("bad query: status %d, want 400", status)
	}
}

func TestRouter_UndoAndReset(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	if status := doJSON(t, http.MethodPost, srv.URL+"/api/game/g1/undo", nil, nil); status != http.StatusBadRequest {
		t.Errorf("undo on fresh game: status %d, want 400", status)
	}

	doJSON(t, http.MethodPost, srv.URL+"/api/game/g1/move", moveRequest{FromRow: 6, FromCol: 4, ToRow: 4, ToCol: 4}, nil)
	doJSON(t, http.MethodPost, srv.URL+"/api/game/g1/move", moveRequest{FromRow: 1, FromCol: 4, ToRow: 3, ToCol: 4}, nil)

	var snap game.Snapshot
	if status := doJSON(t, http.MethodPost, srv.URL+"/api/game/g1/undo", nil, &snap); status != http.StatusOK {
		t.Fatalf("undo: status %d", status)
	}
	if len(snap.MoveHistory) != 0 || snap.CurrentPlayer != "white" {
		t.Errorf("undo result: %d moves, player %q", len(snap.MoveHistory), snap.CurrentPlayer)
	}

	doJSON(t, http.MethodPost, srv.URL+"/api/game/g1/move", moveRequest{FromRow: 6, FromCol: 4, ToRow: 4, ToCol: 4}, nil)
	if status := doJSON(t, http.MethodPost, srv.URL+"/api/game/g1/reset", nil, &snap); status != http.StatusOK {
		t.Fatalf("reset: status %d", status)
	}
	if len(snap.MoveHistory) != 0 {
		t.Error("reset should clear history")
	}
}

func TestRouter_AIMove(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	var out aiMoveResponse
	if status := doJSON(t, http.MethodPost, srv.URL+"/api/game/g1/ai-move?difficulty=shallow", nil, &out); status != http.StatusOK {
		t.Fatalf("ai-move: status %d", status)
	}
	if out.Move == nil || out.GameState == nil {
		t.Fatalf("ai-move response: %+v", out)
	}
	if out.GameState.CurrentPlayer != "black" {
		t.Errorf("after the engine's white move: player %q", out.GameState.CurrentPlayer)
	}

	if status := doJSON(t, http.MethodPost, srv.URL+"/api/game/g1/ai-move?difficulty=impossible", nil, nil); status != http.StatusBadRequest {
		t.Errorf("bad difficulty: status %d, want 400", status)
	}
}

func TestRouter_ImportPGNAndCheck(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	pgnBody := map[string]string{"pgn": "1. f3 e5 2. g4 Qh4# 0-1"}
	var snap game.Snapshot
	if status := doJSON(t, http.MethodPost, srv.URL+"/api/game/g1/import-pgn", pgnBody, &snap); status != http.StatusOK {
		t.Fatalf("import-pgn: status %d", status)
	}
	if !snap.GameOver || snap.Winner == nil || *snap.Winner != "black" {
		t.Errorf("imported mate: %+v", snap)
	}

	var end gameEndResponse
	if status := doJSON(t, http.MethodGet, srv.URL+"/api/game/g1/check", nil, &end); status != http.StatusOK {
		t.Fatalf("check: status %d", status)
	}
	if !end.GameOver || end.Winner == nil || *end.Winner != "black" {
		t.Errorf("check response: %+v", end)
	}

	var out aiMoveResponse
	if status := doJSON(t, http.MethodPost, srv.URL+"/api/game/g1/ai-move", nil, &out); status != http.StatusOK {
		t.Fatalf("ai-move on finished game: status %d", status)
	}
	if out.Move != nil || out.Message != "no valid moves available" {
		t.Errorf("finished game ai-move: %+v", out)
	}

	if status := doJSON(t, http.MethodPost, srv.URL+"/api/game/g1/import-pgn", map[string]string{"pgn": "1. e9"}, nil); status != http.StatusBadRequest {
		t.Errorf("bad pgn: status %d, want 400", status)
	}
}

func TestRouter_ValidMovesQueryEncoding(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	url := fmt.Sprintf("%s/api/game/%s/valid-moves?row=%d&col=%d", srv.URL, "g9", 7, 1)
	var out struct {
		Moves []validMove `json:"moves"`
	}
	if status := doJSON(t, http.MethodGet, url, nil, &out); status != http.StatusOK {
		t.Fatalf("valid-moves: status %d", status)
	}
	// b1 knight has two developing squares
	if len(out.Moves) != 2 {
		t.Errorf("b1 knight moves: got %d, want 2", len(out.Moves))
	}
}
