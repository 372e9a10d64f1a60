package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/constraints"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/steve-z-seattle/vibe-coding-for-chess/board"
)

const (
	scoreInfinite  int32 = math.MaxInt32 / 2
	scoreCheckmate int32 = 1_000_000

	maxQuiescenceDepth uint8 = 4
)

var (
	// ErrNoLegalMove is returned when a search is requested on a terminal
	// position, where the side to move has no legal moves.
	ErrNoLegalMove = errors.New("no legal move")
)

func DefaultLogger(a ...any) {
	fmt.Println(a...)
}

type Config struct {
	// TableSize is the transposition table capacity in entries.
	TableSize uint32
	Logger    func(...any)
}

// Engine runs a fixed-depth negamax search with alpha-beta pruning,
// iterative deepening, and a transposition table. An Engine is not safe for
// concurrent searches; callers serialize access per game.
type Engine struct {
	tt      *TranspositionTable
	killers [MaxDepth][2]board.Move
	clock   *Clock

	nodes  uint32
	logger func(...any)
}

// Result describes the outcome of the deepest completed iteration.
type Result struct {
	BestMove board.Move
	Score    int32
	Depth    uint8
	Nodes    uint32
	Elapsed  time.Duration
}

func New(cfg *Config) *Engine {
	if cfg == nil {
		cfg = &Config{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = DefaultLogger
	}
	return &Engine{
		tt:     NewTranspositionTable(cfg.TableSize),
		clock:  NewClock(),
		logger: logger,
	}
}

// Search finds the best move for the side to move within the given limits.
// It deepens iteratively and keeps the result of the deepest iteration that
// finished inside the movetime budget, so an expired clock never yields a
// move from a partially explored depth.
func (e *Engine) Search(ctx context.Context, b *board.Board, limits SearchLimits) (*Result, error) {
	mvs := b.LegalMoves(b.Turn())
	if len(mvs) == 0 {
		return nil, ErrNoLegalMove
	}
	mvs = dropUnderpromotions(mvs)

	e.nodes = 0
	e.killers = [MaxDepth][2]board.Move{}
	e.clock.Start(ctx, limits)
	defer e.clock.Stop()

	startTime := time.Now()
	result := &Result{BestMove: mvs[0], Score: Evaluate(b, b.Turn())}
	printer := message.NewPrinter(language.English)
	for d := uint8(1); !e.clock.DoneByDepth(d) && !e.clock.Done(); d++ {
		mv, score, completed := e.searchRoot(b, mvs, d, limits)
		if !completed {
			break
		}
		result.BestMove = mv
		result.Score = score
		result.Depth = d
		result.Elapsed = time.Since(startTime)
		result.Nodes = e.nodes
		e.logger(printer.Sprintf("depth %d score %s nodes %d time %s best %s",
			d, formatScore(score), e.nodes, result.Elapsed.Round(time.Millisecond), mv))
		if abs(score) >= scoreCheckmate-int32(MaxDepth) {
			break
		}
	}
	result.Nodes = e.nodes
	result.Elapsed = time.Since(startTime)
	return result, nil
}

// searchRoot runs one full-width iteration. The completed flag is false
// when the clock expired mid-iteration, in which case the partial result
// must be discarded.
func (e *Engine) searchRoot(b *board.Board, mvs []board.Move, depth uint8, limits SearchLimits) (board.Move, int32, bool) {
	_, ttMove, _, _, _ := e.tt.Get(b.Hash())
	e.scoreMoves(ttMove, mvs, 0)

	alpha, beta := -scoreInfinite, scoreInfinite
	bestMove, bestScore := mvs[0], -scoreInfinite
	for i := range mvs {
		sortMoves(mvs, i)
		mv := mvs[i]

		next := b.Clone()
		next.ApplyUnchecked(mv)
		score := -e.negamax(next, depth-1, 1, -beta, -alpha, limits)
		if e.clock.Done() {
			return bestMove, bestScore, false
		}

		if score > bestScore {
			bestMove, bestScore = mv, score
		}
		alpha = max(alpha, score)
	}

	if abs(bestScore) < scoreCheckmate-int32(MaxDepth) {
		e.tt.Set(b.Hash(), BoundExact, bestMove, bestScore, depth)
	}
	return bestMove, bestScore, true
}

// negamax scores the position for the side to move; the score of a child is
// always negated, so both sides maximize. dist is the distance from the
// root, used to prefer faster mates and index killer moves.
func (e *Engine) negamax(b *board.Board, depth, dist uint8, alpha, beta int32, limits SearchLimits) int32 {
	e.nodes++

	if e.clock.Done() {
		return 0
	}

	if b.IsInsufficientMaterial() {
		return 0
	}
	// a mate on the hundredth half-move outranks the fifty-move draw
	if b.HalfMoveClock() >= 100 && b.State() != board.StateCheckmate {
		return 0
	}

	alphaOrig := alpha
	ttBound, ttMove, ttScore, ttDepth, ok := e.tt.Get(b.Hash())
	if ok && ttDepth >= depth {
		switch ttBound {
		case BoundExact:
			return ttScore
		case BoundLower:
			alpha = max(alpha, ttScore)
		case BoundUpper:
			beta = min(beta, ttScore)
		}
		if alpha >= beta {
			return ttScore
		}
	}

	if depth == 0 {
		if limits.Quiescence {
			return e.quiescence(b, dist, 0, alpha, beta)
		}
		return Evaluate(b, b.Turn())
	}

	mvs := b.LegalMoves(b.Turn())
	if len(mvs) == 0 {
		if b.IsKingChecked(b.Turn()) {
			return -(scoreCheckmate - int32(dist))
		}
		return 0
	}
	mvs = dropUnderpromotions(mvs)

	e.scoreMoves(ttMove, mvs, dist)

	var bestMove board.Move
	bestScore := -scoreInfinite
	for i := range mvs {
		sortMoves(mvs, i)
		mv := mvs[i]

		next := b.Clone()
		next.ApplyUnchecked(mv)
		score := -e.negamax(next, depth-1, dist+1, -beta, -alpha, limits)
		if e.clock.Done() {
			return 0
		}

		if score > bestScore {
			bestMove, bestScore = mv, score
		}
		alpha = max(alpha, score)
		if alpha >= beta {
			if !mv.IsCapture() && !mv.Equal(e.killers[dist][0]) {
				e.killers[dist][1] = e.killers[dist][0]
				e.killers[dist][0] = mv
			}
			break // fail-hard cutoff
		}
	}

	// mate scores are distance-dependent, caching them would leak a mate
	// distance measured from a different root
	if abs(bestScore) < scoreCheckmate-int32(MaxDepth) {
		bound := BoundExact
		switch {
		case bestScore <= alphaOrig:
			bound = BoundUpper
		case bestScore >= beta:
			bound = BoundLower
		}
		e.tt.Set(b.Hash(), bound, bestMove, bestScore, depth)
	}
	return bestScore
}

// quiescence keeps resolving captures past the horizon so the static
// evaluation is never taken in the middle of an exchange. The stand-pat
// score acts as a lower bound since the side to move may decline to
// capture.
func (e *Engine) quiescence(b *board.Board, dist, qdist uint8, alpha, beta int32) int32 {
	e.nodes++

	if e.clock.Done() {
		return 0
	}

	standPat := Evaluate(b, b.Turn())
	if qdist >= maxQuiescenceDepth || int(dist) >= int(MaxDepth)-1 {
		return standPat
	}
	if standPat >= beta {
		return standPat
	}
	alpha = max(alpha, standPat)

	mvs := dropUnderpromotions(b.LegalMoves(b.Turn()))
	e.scoreMoves(board.Move{}, mvs, dist)

	bestScore := standPat
	for i := range mvs {
		sortMoves(mvs, i)
		mv := mvs[i]
		if !mv.IsCapture() {
			continue
		}

		next := b.Clone()
		next.ApplyUnchecked(mv)
		score := -e.quiescence(next, dist+1, qdist+1, -beta, -alpha)
		if e.clock.Done() {
			return 0
		}

		if score > bestScore {
			bestScore = score
		}
		alpha = max(alpha, score)
		if alpha >= beta {
			break // fail-hard cutoff
		}
	}
	return bestScore
}

// dropUnderpromotions filters the move list in place so the search only
// considers queen promotions. Generation still enumerates all four pieces
// for callers; inside the search the promotion choice is fixed, not
// explored. A queen promotion is legal whenever any promotion is, so the
// filter never empties a non-empty list.
func dropUnderpromotions(mvs []board.Move) []board.Move {
	out := mvs[:0]
	for _, mv := range mvs {
		if mv.Promote == board.PieceUnknown || mv.Promote == board.PieceQueen {
			out = append(out, mv)
		}
	}
	return out
}

func formatScore(s int32) string {
	if s >= scoreCheckmate-int32(MaxDepth) {
		return fmt.Sprintf("mate %d", (scoreCheckmate-s+1)/2)
	}
	if s <= -(scoreCheckmate - int32(MaxDepth)) {
		return fmt.Sprintf("mate -%d", (scoreCheckmate+s)/2)
	}
	return fmt.Sprintf("cp %d", s)
}

func max[T constraints.Ordered](x1, x2 T) T {
	if x1 > x2 {
		return x1
	}
	return x2
}

func min[T constraints.Ordered](x1, x2 T) T {
	if x1 < x2 {
		return x1
	}
	return x2
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return x * -1
	}
	return x
}
