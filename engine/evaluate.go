package engine

import (
	"math/bits"

	"github.com/steve-z-seattle/vibe-coding-for-chess/board"
)

var (
	scorePieceMaterial = [6 + 1]int32{
		board.PiecePawn:   100,
		board.PieceKnight: 320,
		board.PieceBishop: 330,
		board.PieceRook:   500,
		board.PieceQueen:  900,
		board.PieceKing:   20000,
	}

	scoreCheckBonus int32 = 50

	// PST tables taken from https://www.chessprogramming.org/Simplified_Evaluation_Function,
	// written from White's point of view with rank 8 on the first row.
	scorePiecePosition = [6 + 1][64]int32{
		board.PiecePawn: {
			0, 0, 0, 0, 0, 0, 0, 0,
			50, 50, 50, 50, 50, 50, 50, 50,
			10, 10, 20, 30, 30, 20, 10, 10,
			5, 5, 10, 25, 25, 10, 5, 5,
			0, 0, 0, 20, 20, 0, 0, 0,
			5, -5, -10, 0, 0, -10, -5, 5,
			5, 10, 10, -20, -20, 10, 10, 5,
			0, 0, 0, 0, 0, 0, 0, 0,
		},
		board.PieceKnight: {
			-50, -40, -30, -30, -30, -30, -40, -50,
			-40, -20, 0, 0, 0, 0, -20, -40,
			-30, 0, 10, 15, 15, 10, 0, -30,
			-30, 5, 15, 20, 20, 15, 5, -30,
			-30, 0, 15, 20, 20, 15, 0, -30,
			-30, 5, 10, 15, 15, 10, 5, -30,
			-40, -20, 0, 5, 5, 0, -20, -40,
			-50, -40, -30, -30, -30, -30, -40, -50,
		},
		board.PieceBishop: {
			-20, -10, -10, -10, -10, -10, -10, -20,
			-10, 0, 0, 0, 0, 0, 0, -10,
			-10, 0, 5, 10, 10, 5, 0, -10,
			-10, 5, 5, 10, 10, 5, 5, -10,
			-10, 0, 10, 10, 10, 10, 0, -10,
			-10, 10, 10, 10, 10, 10, 10, -10,
			-10, 5, 0, 0, 0, 0, 5, -10,
			-20, -10, -10, -10, -10, -10, -10, -20,
		},
		board.PieceRook: {
			0, 0, 0, 0, 0, 0, 0, 0,
			5, 10, 10, 10, 10, 10, 10, 5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			0, 0, 0, 5, 5, 0, 0, 0,
		},
		board.PieceQueen: {
			-20, -10, -10, -5, -5, -10, -10, -20,
			-10, 0, 0, 0, 0, 0, 0, -10,
			-10, 0, 5, 5, 5, 5, 0, -10,
			-5, 0, 5, 5, 5, 5, 0, -5,
			0, 0, 5, 5, 5, 5, 0, -5,
			-10, 5, 5, 5, 5, 5, 0, -10,
			-10, 0, 5, 0, 0, 0, 0, -10,
			-20, -10, -10, -5, -5, -10, -10, -20,
		},
		board.PieceKing: {
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-20, -30, -30, -40, -40, -30, -30, -20,
			-10, -20, -20, -20, -20, -20, -20, -10,
			20, 20, 0, 0, 0, 0, 20, 20,
			20, 30, 10, 0, 0, 10, 30, 20,
		},
	}

	offsetPV     uint8 = 255
	offsetMVVLVA uint8 = offsetPV - 64
	scoreMVVLVA        = [6 + 1][6 + 1]uint8{
		//                     P   N   B   R   Q
		board.PiecePawn:   {0, 15, 25, 35, 45, 55},
		board.PieceKnight: {0, 14, 24, 34, 44, 54},
		board.PieceBishop: {0, 13, 23, 33, 43, 53},
		board.PieceRook:   {0, 12, 22, 32, 42, 52},
		board.PieceQueen:  {0, 11, 21, 31, 41, 51},
		board.PieceKing:   {0, 10, 20, 30, 40, 50},
	}
	scoreKiller uint8 = 10
)

// Evaluate scores the position relative to pov, in centipawns. The score is
// zero-sum: the same position scored for the opposite side negates. Material
// and piece placement dominate, with a flat bonus for giving check.
func Evaluate(b *board.Board, pov board.Side) int32 {
	score := sideScore(b, board.SideWhite) - sideScore(b, board.SideBlack)
	if pov == board.SideBlack {
		score = -score
	}
	if b.IsKingChecked(pov.Opposite()) {
		score += scoreCheckBonus
	} else if b.IsKingChecked(pov) {
		score -= scoreCheckBonus
	}
	return score
}

func sideScore(b *board.Board, s board.Side) int32 {
	var score int32
	for p := board.PiecePawn; p <= board.PieceKing; p++ {
		bm := b.Bitmap(s, p)
		score += int32(bits.OnesCount64(bm)) * scorePieceMaterial[p]
		for ; bm != 0; bm &= bm - 1 {
			pos := bits.TrailingZeros64(bm)
			if s == board.SideWhite {
				// the tables are laid out rank 8 first, flip for White
				pos ^= 56
			}
			score += scorePiecePosition[p][pos]
		}
	}
	return score
}

// scoreMoves assigns ordering hints: the table move first, then captures by
// MVV-LVA, then killers.
func (e *Engine) scoreMoves(ttMove board.Move, mvs []board.Move, dist uint8) {
	for i := range mvs {
		mv := &mvs[i]
		var score uint8
		switch {
		case mv.Equal(ttMove):
			score = offsetPV
		case mv.IsCapture():
			score = offsetMVVLVA + scoreMVVLVA[mv.Piece][mv.Capture]
		default:
			for k, killer := range e.killers[dist] {
				if mv.Equal(killer) {
					score = offsetMVVLVA - uint8(k+1)*scoreKiller
					break
				}
			}
		}
		mv.Score = score
	}
}

// sortMoves brings the highest-scored remaining move to index. Selecting
// lazily beats a full sort because cutoffs rarely need the whole list.
func sortMoves(mvs []board.Move, index int) {
	bestIndex, bestScore := index, mvs[index].Score
	for i := index + 1; i < len(mvs); i++ {
		if mvs[i].Score > bestScore {
			bestIndex = i
			bestScore = mvs[i].Score
		}
	}
	mvs[index], mvs[bestIndex] = mvs[bestIndex], mvs[index]
}
