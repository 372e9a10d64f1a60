package board

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/steve-z-seattle/vibe-coding-for-chess/position"
)

type bitmap uint64

func (bm *bitmap) Set(pos position.Pos) {
	*bm |= maskCell[pos]
}

func (bm *bitmap) Unset(pos position.Pos) {
	*bm &^= maskCell[pos]
}

// LS1B returns the position of the least significant set bit.
func (bm bitmap) LS1B() position.Pos {
	return position.Pos(bits.TrailingZeros64(uint64(bm)))
}

func (bm bitmap) BitCount() int {
	return bits.OnesCount64(uint64(bm))
}

func reverse(bm bitmap) bitmap {
	return bitmap(bits.Reverse64(uint64(bm)))
}

func shiftNW(bm bitmap) bitmap { return bm << 7 }
func shiftN(bm bitmap) bitmap  { return bm << 8 }
func shiftNE(bm bitmap) bitmap { return bm << 9 }
func shiftE(bm bitmap) bitmap  { return bm << 1 }
func shiftSE(bm bitmap) bitmap { return bm >> 7 }
func shiftS(bm bitmap) bitmap  { return bm >> 8 }
func shiftSW(bm bitmap) bitmap { return bm >> 9 }
func shiftW(bm bitmap) bitmap  { return bm >> 1 }

// scanHit projects sliding attacks along mask from cell, stopping at the
// first blocker in each direction, using the o^(o-2r) trick.
func scanHit(cell, occupied, mask bitmap) bitmap {
	blocker := occupied & mask
	return ((blocker - 2*cell) ^ reverse(reverse(blocker)-2*reverse(cell))) & mask
}

func hitDiagonals(pos position.Pos, occupied bitmap) bitmap {
	cell := maskCell[pos]
	return scanHit(cell, occupied, maskDia[pos]) | scanHit(cell, occupied, maskADia[pos])
}

func hitLaterals(pos position.Pos, occupied bitmap) bitmap {
	cell := maskCell[pos]
	return scanHit(cell, occupied, maskCol[pos.X()]) | scanHit(cell, occupied, maskRow[pos.Y()])
}

func (bm bitmap) Dump() string {
	builder := strings.Builder{}
	for y := position.Pos(Height); y > 0; y-- {
		_, _ = builder.WriteString(fmt.Sprintf(" %d |", y))
		for x := position.Pos(0); x < Width; x++ {
			if bm&maskCell[(y-1)*Width+x] != 0 {
				_, _ = builder.WriteString(" # ")
			} else {
				_, _ = builder.WriteString(" . ")
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
