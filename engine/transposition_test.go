package engine

import (
	"testing"

	"github.com/steve-z-seattle/vibe-coding-for-chess/board"
	"github.com/steve-z-seattle/vibe-coding-for-chess/position"
)

func TestTranspositionTable_RoundsUpToPowerOfTwo(t *testing.T) {
	t.Parallel()
	tt := NewTranspositionTable(1000)
	if got := len(tt.entries); got != 1024 {
		t.Errorf("capacity: got %d, want 1024", got)
	}
	if tt.mask != 1023 {
		t.Errorf("mask: got %d, want 1023", tt.mask)
	}
}

func TestTranspositionTable_SetGet(t *testing.T) {
	t.Parallel()
	tt := NewTranspositionTable(1 << 10)
	mv := board.Move{From: position.E2, To: position.E4, Piece: board.PiecePawn, Side: board.SideWhite}
	tt.Set(0xDEADBEEF, BoundExact, mv, 42, 5)

	bound, gotMove, score, depth, ok := tt.Get(0xDEADBEEF)
	if !ok {
		t.Fatal("expected a hit")
	}
	if bound != BoundExact || score != 42 || depth != 5 || !gotMove.Equal(mv) {
		t.Errorf("entry mismatch: %v %v %d %d", bound, gotMove, score, depth)
	}

	if _, _, _, _, ok := tt.Get(0xCAFEBABE); ok {
		t.Error("unrelated hash should miss")
	}
}

func TestTranspositionTable_CollisionDetected(t *testing.T) {
	t.Parallel()
	tt := NewTranspositionTable(1 << 10)
	h1 := uint64(0x1234)
	h2 := h1 + uint64(len(tt.entries)) // same slot, different hash
	tt.Set(h1, BoundExact, board.Move{}, 1, 3)

	if _, _, _, _, ok := tt.Get(h2); ok {
		t.Error("colliding hash should miss, not return the stored entry")
	}

	tt.Set(h2, BoundLower, board.Move{}, 2, 1)
	if _, _, _, _, ok := tt.Get(h1); ok {
		t.Error("colliding write should evict the previous position")
	}
	if _, _, score, _, ok := tt.Get(h2); !ok || score != 2 {
		t.Errorf("colliding write should be readable: got %d (%v)", score, ok)
	}
}

func TestTranspositionTable_DepthPreferred(t *testing.T) {
	t.Parallel()
	tt := NewTranspositionTable(1 << 10)
	tt.Set(0x42, BoundExact, board.Move{}, 10, 6)
	tt.Set(0x42, BoundExact, board.Move{}, 99, 2) // shallower, must not replace

	if _, _, score, depth, ok := tt.Get(0x42); !ok || score != 10 || depth != 6 {
		t.Errorf("shallower write replaced a deeper entry: score %d depth %d (%v)", score, depth, ok)
	}

	tt.Set(0x42, BoundExact, board.Move{}, 77, 6) // equal depth refreshes
	if _, _, score, _, _ := tt.Get(0x42); score != 77 {
		t.Errorf("equal-depth write should refresh: got %d", score)
	}
}

func TestTranspositionTable_Clear(t *testing.T) {
	t.Parallel()
	tt := NewTranspositionTable(1 << 10)
	tt.Set(0x42, BoundExact, board.Move{}, 10, 6)
	tt.Clear()
	if _, _, _, _, ok := tt.Get(0x42); ok {
		t.Error("cleared table should miss")
	}
	if hits, misses, writes := tt.Stats(); hits != 0 || misses != 1 || writes != 0 {
		t.Errorf("stats after clear: %d/%d/%d", hits, misses, writes)
	}
}
