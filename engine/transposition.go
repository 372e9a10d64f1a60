package engine

import (
	"math/bits"

	"github.com/steve-z-seattle/vibe-coding-for-chess/board"
)

type Bound uint8

const (
	// DefaultTableSize is the number of transposition entries, not bytes.
	DefaultTableSize uint32 = 1 << 20

	BoundUnknown Bound = iota
	BoundExact
	BoundLower
	BoundUpper
)

// TranspositionTable is a fixed-size cache of search results keyed by the
// board's Zobrist hash. Indexing is a mask of the hash, so unrelated
// positions can collide; the stored hash is verified on every probe.
type TranspositionTable struct {
	entries []entry
	mask    uint64

	// stats
	hits   uint64
	misses uint64
	writes uint64
}

type entry struct {
	hash  uint64
	mv    board.Move
	score int32
	depth uint8
	bound Bound
}

// NewTranspositionTable allocates a table with at least size entries,
// rounded up to a power of two so indexing stays a mask.
func NewTranspositionTable(size uint32) *TranspositionTable {
	if size == 0 {
		size = DefaultTableSize
	}
	if size&(size-1) != 0 {
		size = 1 << bits.Len32(size)
	}
	return &TranspositionTable{
		entries: make([]entry, size),
		mask:    uint64(size) - 1,
	}
}

// Get probes the table. The hit flag is false on an empty slot or when the
// slot is occupied by a colliding position.
func (t *TranspositionTable) Get(hash uint64) (Bound, board.Move, int32, uint8, bool) {
	e := &t.entries[hash&t.mask]
	if e.bound == BoundUnknown || e.hash != hash {
		t.misses++
		return BoundUnknown, board.Move{}, 0, 0, false
	}
	t.hits++
	return e.bound, e.mv, e.score, e.depth, true
}

// Set stores a search result. An entry for the same position is only
// replaced by an equal or deeper search; colliding positions always evict.
func (t *TranspositionTable) Set(hash uint64, bound Bound, mv board.Move, score int32, depth uint8) {
	e := &t.entries[hash&t.mask]
	if e.bound != BoundUnknown && e.hash == hash && e.depth > depth {
		return
	}
	t.writes++
	*e = entry{
		hash:  hash,
		mv:    mv,
		score: score,
		depth: depth,
		bound: bound,
	}
}

func (t *TranspositionTable) Clear() {
	for i := range t.entries {
		t.entries[i] = entry{}
	}
	t.ResetStats()
}

func (t *TranspositionTable) ResetStats() {
	t.hits = 0
	t.misses = 0
	t.writes = 0
}

func (t *TranspositionTable) Stats() (hits, misses, writes uint64) {
	return t.hits, t.misses, t.writes
}
