package position

import (
	"errors"
)

const (
	// MaxComponentScalar is the maximum component scalar the position system supports.
	MaxComponentScalar Pos = 8
)

var (
	// ErrInvalidSquare represents an out-of-board coordinate error.
	ErrInvalidSquare = errors.New("invalid square")
)

// Pos addresses a cell on the board in little-endian rank-file order:
// A1 is 0, B1 is 1, H8 is 63.
type Pos int8

const (
	FileA Pos = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

const (
	Rank1 Pos = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

const (
	A1 Pos = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// New builds a Pos from a file and rank component, both in [0, 8).
func New(x, y Pos) (Pos, error) {
	if x < 0 || x >= MaxComponentScalar || y < 0 || y >= MaxComponentScalar {
		return 0, ErrInvalidSquare
	}
	return y*MaxComponentScalar + x, nil
}

// FromNotation parses an algebraic coordinate such as "e4".
func FromNotation(n string) (Pos, error) {
	if len(n) != 2 {
		return 0, ErrInvalidSquare
	}
	return New(Pos(n[0]-'a'), Pos(n[1]-'1'))
}

// FromRowCol builds a Pos from the zero-indexed row/column pair used by
// hosting layers, where row 0 is rank 8 and column 0 is file a.
func FromRowCol(row, col int) (Pos, error) {
	return New(Pos(col), MaxComponentScalar-1-Pos(row))
}

// RowCol is the inverse of FromRowCol.
func (p Pos) RowCol() (row, col int) {
	return int(MaxComponentScalar - 1 - p.Y()), int(p.X())
}

func (p Pos) Valid() bool {
	return p >= 0 && p < MaxComponentScalar*MaxComponentScalar
}

func (p Pos) X() Pos {
	return p % MaxComponentScalar
}

func (p Pos) Y() Pos {
	return p / MaxComponentScalar
}

func (p Pos) String() string {
	return p.Notation()
}

func (p Pos) Notation() string {
	if !p.Valid() {
		return ""
	}
	return string(rune('a'+p.X())) + string(rune('1'+p.Y()))
}

// NotationComponentX renders only the file letter of the component scalar.
func (p Pos) NotationComponentX() string {
	if p < 0 || p >= MaxComponentScalar {
		return ""
	}
	return string(rune('a' + p))
}

// NotationComponentY renders only the rank digit of the component scalar.
func (p Pos) NotationComponentY() string {
	if p < 0 || p >= MaxComponentScalar {
		return ""
	}
	return string(rune('1' + p))
}
