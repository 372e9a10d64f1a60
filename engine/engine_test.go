package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/steve-z-seattle/vibe-coding-for-chess/board"
)

func discardLogger(...any) {}

func newTestEngine() *Engine {
	return New(&Config{TableSize: 1 << 16, Logger: discardLogger})
}

func TestSearch_FindsMateInOne(t *testing.T) {
	t.Parallel()
	// fool's mate: black to move mates with Qh4
	b := mustBoard(t, "rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq g3 0 2")
	e := newTestEngine()
	res, err := e.Search(context.Background(), b, SearchLimits{Depth: 3, Movetime: 30 * time.Second})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := res.BestMove.UCI(); got != "d8h4" {
		t.Errorf("best move: got %s, want d8h4", got)
	}
	if res.Score < scoreCheckmate-int32(MaxDepth) {
		t.Errorf("score: got %d, want a mate score", res.Score)
	}
}

func TestSearch_TakesHangingQueen(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, "k7/8/8/3q4/4P3/8/8/K7 w - - 0 1")
	e := newTestEngine()
	res, err := e.Search(context.Background(), b, SearchLimits{Depth: 2, Movetime: 30 * time.Second})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := res.BestMove.UCI(); got != "e4d5" {
		t.Errorf("best move: got %s, want e4d5", got)
	}
}

func TestSearch_NoLegalMove(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fen  string
	}{
		{name: "checkmate", fen: "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"},
		{name: "stalemate", fen: "k7/8/1Q6/8/8/8/8/7K b - - 0 1"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := mustBoard(t, tt.fen)
			e := newTestEngine()
			if _, err := e.Search(context.Background(), b, DifficultyShallow.Limits()); !errors.Is(err, ErrNoLegalMove) {
				t.Errorf("Search: got %v, want ErrNoLegalMove", err)
			}
		})
	}
}

func TestSearch_ReturnsLegalMove(t *testing.T) {
	t.Parallel()
	fens := []string{
		board.DefaultStartingPositionFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	for _, fen := range fens {
		b := mustBoard(t, fen)
		e := newTestEngine()
		res, err := e.Search(context.Background(), b, SearchLimits{Depth: 2, Movetime: 30 * time.Second})
		if err != nil {
			t.Fatalf("%s: %v", fen, err)
		}
		if _, err := b.FindMove(res.BestMove.From, res.BestMove.To, res.BestMove.Promote); err != nil {
			t.Errorf("%s: best move %s is not legal: %v", fen, res.BestMove.UCI(), err)
		}
	}
}

func TestSearch_PromotesOnlyToQueen(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, "8/P7/8/8/8/8/8/K6k w - - 0 1")
	e := newTestEngine()
	res, err := e.Search(context.Background(), b, SearchLimits{Depth: 1, Movetime: 30 * time.Second})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := res.BestMove.UCI(); got != "a7a8q" {
		t.Errorf("best move: got %s, want a7a8q", got)
	}
	// one node per root child: the queen promotion plus three king moves,
	// with the knight, bishop, and rook promotions never explored
	if res.Nodes != 4 {
		t.Errorf("nodes: got %d, want 4", res.Nodes)
	}
}

func TestSearch_MateOutranksFiftyMoveClock(t *testing.T) {
	t.Parallel()
	// Qg8 is mate on the very move that brings the half-move clock to 100;
	// checkmate takes precedence over the fifty-move draw
	b := mustBoard(t, "7k/5K2/8/8/8/8/8/6Q1 w - - 99 60")
	e := newTestEngine()
	res, err := e.Search(context.Background(), b, SearchLimits{Depth: 2, Movetime: 30 * time.Second})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := res.BestMove.UCI(); got != "g1g8" {
		t.Errorf("best move: got %s, want g1g8", got)
	}
	if res.Score < scoreCheckmate-int32(MaxDepth) {
		t.Errorf("score: got %d, want a mate score", res.Score)
	}
}

func TestSearch_RespectsCancelledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := board.New()
	e := newTestEngine()
	res, err := e.Search(ctx, b, SearchLimits{Depth: 6, Movetime: 30 * time.Second})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	// a cancelled clock still yields some legal move as a fallback
	if res.BestMove.IsZero() {
		t.Error("fallback move should be set even when the clock is already expired")
	}
}

// plainNegamax is a reference search without pruning or caching; alpha-beta
// must compute the same score.
func plainNegamax(b *board.Board, depth, dist uint8) int32 {
	if b.IsInsufficientMaterial() {
		return 0
	}
	if b.HalfMoveClock() >= 100 && b.State() != board.StateCheckmate {
		return 0
	}
	if depth == 0 {
		return Evaluate(b, b.Turn())
	}
	mvs := b.LegalMoves(b.Turn())
	if len(mvs) == 0 {
		if b.IsKingChecked(b.Turn()) {
			return -(scoreCheckmate - int32(dist))
		}
		return 0
	}
	best := -scoreInfinite
	for _, mv := range dropUnderpromotions(mvs) {
		next := b.Clone()
		next.ApplyUnchecked(mv)
		if score := -plainNegamax(next, depth-1, dist+1); score > best {
			best = score
		}
	}
	return best
}

func TestSearch_MatchesPlainMinimax(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		fen   string
		depth uint8
	}{
		{name: "starting position", fen: board.DefaultStartingPositionFEN, depth: 3},
		{name: "open middlegame", fen: "r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 3 3", depth: 3},
		{name: "rook endgame", fen: "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", depth: 3},
		{name: "queen endgame", fen: "k7/8/8/3q4/4P3/8/8/K7 w - - 0 1", depth: 2},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := mustBoard(t, tt.fen)
			want := int32(-scoreInfinite)
			for _, mv := range dropUnderpromotions(b.LegalMoves(b.Turn())) {
				next := b.Clone()
				next.ApplyUnchecked(mv)
				if score := -plainNegamax(next, tt.depth-1, 1); score > want {
					want = score
				}
			}

			e := newTestEngine()
			res, err := e.Search(context.Background(), b, SearchLimits{Depth: tt.depth, Movetime: 10 * time.Minute})
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if res.Score != want {
				t.Errorf("score: alpha-beta %d, plain minimax %d", res.Score, want)
			}
		})
	}
}

func TestDifficulty_Limits(t *testing.T) {
	t.Parallel()
	tests := []struct {
		difficulty Difficulty
		depth      uint8
		quiescence bool
	}{
		{difficulty: DifficultyShallow, depth: 2, quiescence: false},
		{difficulty: DifficultyMedium, depth: 3, quiescence: false},
		{difficulty: DifficultyDeep, depth: 5, quiescence: true},
	}
	for _, tt := range tests {
		limits := tt.difficulty.Limits()
		if limits.Depth != tt.depth || limits.Quiescence != tt.quiescence {
			t.Errorf("%v: got depth %d quiescence %v, want %d %v",
				tt.difficulty, limits.Depth, limits.Quiescence, tt.depth, tt.quiescence)
		}
		if limits.Movetime <= 0 {
			t.Errorf("%v: movetime should be positive", tt.difficulty)
		}
	}
}

func TestParseDifficulty(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"shallow", "medium", "deep"} {
		d, err := ParseDifficulty(name)
		if err != nil {
			t.Errorf("ParseDifficulty(%q): %v", name, err)
		}
		if d.String() != name {
			t.Errorf("ParseDifficulty(%q): got %v", name, d)
		}
	}
	if d, err := ParseDifficulty(""); err != nil || d != DefaultDifficulty {
		t.Errorf("empty difficulty should default to %v, got %v (%v)", DefaultDifficulty, d, err)
	}
	if _, err := ParseDifficulty("impossible"); err == nil {
		t.Error("unknown difficulty should error")
	}
}
