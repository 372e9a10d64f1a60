package board

import (
	"math/rand"

	"github.com/steve-z-seattle/vibe-coding-for-chess/position"
)

const (
	Width      = position.MaxComponentScalar
	Height     = position.MaxComponentScalar
	TotalCells = Width * Height

	DefaultStartingPositionFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

	flagNoEnPassant position.Pos = -1

	zobristSeed = 7
)

var (
	maskCol = [Width]bitmap{
		position.FileA: 0x_01_01_01_01_01_01_01_01,
		position.FileB: 0x_02_02_02_02_02_02_02_02,
		position.FileC: 0x_04_04_04_04_04_04_04_04,
		position.FileD: 0x_08_08_08_08_08_08_08_08,
		position.FileE: 0x_10_10_10_10_10_10_10_10,
		position.FileF: 0x_20_20_20_20_20_20_20_20,
		position.FileG: 0x_40_40_40_40_40_40_40_40,
		position.FileH: 0x_80_80_80_80_80_80_80_80,
	}
	maskRow = [Height]bitmap{
		position.Rank1: 0x_00_00_00_00_00_00_00_FF,
		position.Rank2: 0x_00_00_00_00_00_00_FF_00,
		position.Rank3: 0x_00_00_00_00_00_FF_00_00,
		position.Rank4: 0x_00_00_00_00_FF_00_00_00,
		position.Rank5: 0x_00_00_00_FF_00_00_00_00,
		position.Rank6: 0x_00_00_FF_00_00_00_00_00,
		position.Rank7: 0x_00_FF_00_00_00_00_00_00,
		position.Rank8: 0x_FF_00_00_00_00_00_00_00,
	}
	maskCell   [TotalCells]bitmap
	maskDia    [TotalCells]bitmap
	maskADia   [TotalCells]bitmap
	maskKnight [TotalCells]bitmap
	maskKing   [TotalCells]bitmap

	// maskCastleEmpty holds the squares that must be unoccupied for the
	// castle; maskCastleKingPath the squares the king crosses or lands on,
	// which must not be attacked. The king's starting square is checked
	// separately.
	maskCastleEmpty    [4 + 1]bitmap
	maskCastleKingPath [4 + 1]bitmap

	castleHops = [4 + 1]struct {
		king [2]position.Pos
		rook [2]position.Pos
	}{
		CastleDirectionWhiteKing: {
			king: [2]position.Pos{position.E1, position.G1},
			rook: [2]position.Pos{position.H1, position.F1},
		},
		CastleDirectionWhiteQueen: {
			king: [2]position.Pos{position.E1, position.C1},
			rook: [2]position.Pos{position.A1, position.D1},
		},
		CastleDirectionBlackKing: {
			king: [2]position.Pos{position.E8, position.G8},
			rook: [2]position.Pos{position.H8, position.F8},
		},
		CastleDirectionBlackQueen: {
			king: [2]position.Pos{position.E8, position.C8},
			rook: [2]position.Pos{position.A8, position.D8},
		},
	}

	maskCastleRights = [4 + 1]CastleRights{
		CastleDirectionWhiteKing:  0b1000,
		CastleDirectionWhiteQueen: 0b0100,
		CastleDirectionBlackKing:  0b0010,
		CastleDirectionBlackQueen: 0b0001,
	}

	// rookHomeRights maps a rook home square to the right it anchors, so a
	// rook moving off (or being captured on) its home square clears it.
	rookHomeRights = map[position.Pos]CastleDirection{
		position.H1: CastleDirectionWhiteKing,
		position.A1: CastleDirectionWhiteQueen,
		position.H8: CastleDirectionBlackKing,
		position.A8: CastleDirectionBlackQueen,
	}

	zobristPiece        [2 + 1][6 + 1][TotalCells]uint64
	zobristCastleRights [16]uint64
	zobristEnPassant    [Width]uint64
	zobristSideWhite    uint64
)

func init() {
	initMasks()
	initZobrist()
}

func initMasks() {
	for pos := position.Pos(0); pos < TotalCells; pos++ {
		maskCell[pos] = 1 << pos
	}

	for pos := position.Pos(0); pos < TotalCells; pos++ {
		mask := bitmap(0)
		x, y := pos%Width, pos/Width
		x, y = x-min(x, y), y-min(x, y)
		for x < Width && y < Height {
			mask |= bitmap(1 << (y*Width + x))
			x++
			y++
		}
		maskDia[pos] = mask
	}

	for pos := position.Pos(0); pos < TotalCells; pos++ {
		mask := bitmap(0)
		x, y := pos%Width, pos/Width
		x, y = x-min(x, Height-y-1), y+min(x, Height-y-1)
		for x < Width && y >= 0 {
			mask |= bitmap(1 << (y*Width + x))
			x++
			y--
		}
		maskADia[pos] = mask
	}

	for pos := position.Pos(0); pos < TotalCells; pos++ {
		cell := maskCell[pos]
		mask := bitmap(0)
		mask |= shiftN(shiftN(shiftE(cell &^ maskRow[7] &^ maskRow[6] &^ maskCol[7])))
		mask |= shiftN(shiftN(shiftW(cell &^ maskRow[7] &^ maskRow[6] &^ maskCol[0])))
		mask |= shiftS(shiftS(shiftE(cell &^ maskRow[0] &^ maskRow[1] &^ maskCol[7])))
		mask |= shiftS(shiftS(shiftW(cell &^ maskRow[0] &^ maskRow[1] &^ maskCol[0])))
		mask |= shiftE(shiftE(shiftN(cell &^ maskCol[7] &^ maskCol[6] &^ maskRow[7])))
		mask |= shiftE(shiftE(shiftS(cell &^ maskCol[7] &^ maskCol[6] &^ maskRow[0])))
		mask |= shiftW(shiftW(shiftN(cell &^ maskCol[0] &^ maskCol[1] &^ maskRow[7])))
		mask |= shiftW(shiftW(shiftS(cell &^ maskCol[0] &^ maskCol[1] &^ maskRow[0])))
		maskKnight[pos] = mask
	}

	for pos := position.Pos(0); pos < TotalCells; pos++ {
		cell := maskCell[pos]
		mask := bitmap(0)
		mask |= shiftN(cell &^ maskRow[7])
		mask |= shiftNE(cell &^ maskRow[7] &^ maskCol[7])
		mask |= shiftE(cell &^ maskCol[7])
		mask |= shiftSE(cell &^ maskRow[0] &^ maskCol[7])
		mask |= shiftS(cell &^ maskRow[0])
		mask |= shiftSW(cell &^ maskRow[0] &^ maskCol[0])
		mask |= shiftW(cell &^ maskCol[0])
		mask |= shiftNW(cell &^ maskRow[7] &^ maskCol[0])
		maskKing[pos] = mask
	}

	maskCastleEmpty = [4 + 1]bitmap{
		CastleDirectionWhiteKing:  maskRow[0] & (maskCol[5] | maskCol[6]),
		CastleDirectionWhiteQueen: maskRow[0] & (maskCol[1] | maskCol[2] | maskCol[3]),
		CastleDirectionBlackKing:  maskRow[7] & (maskCol[5] | maskCol[6]),
		CastleDirectionBlackQueen: maskRow[7] & (maskCol[1] | maskCol[2] | maskCol[3]),
	}
	maskCastleKingPath = [4 + 1]bitmap{
		CastleDirectionWhiteKing:  maskRow[0] & (maskCol[5] | maskCol[6]),
		CastleDirectionWhiteQueen: maskRow[0] & (maskCol[2] | maskCol[3]),
		CastleDirectionBlackKing:  maskRow[7] & (maskCol[5] | maskCol[6]),
		CastleDirectionBlackQueen: maskRow[7] & (maskCol[2] | maskCol[3]),
	}
}

// initZobrist fills the hashing constants once at package initialization.
// The table must never be regenerated mid-process: stored hashes would all
// become invalid.
func initZobrist() {
	r := rand.New(rand.NewSource(zobristSeed))
	for _, s := range []Side{SideWhite, SideBlack} {
		for p := PiecePawn; p <= PieceKing; p++ {
			for pos := position.Pos(0); pos < TotalCells; pos++ {
				zobristPiece[s][p][pos] = r.Uint64()
			}
		}
	}
	for i := range zobristCastleRights {
		zobristCastleRights[i] = r.Uint64()
	}
	for i := range zobristEnPassant {
		zobristEnPassant[i] = r.Uint64()
	}
	zobristSideWhite = r.Uint64()
}
