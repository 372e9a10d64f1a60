package board

type CastleDirection uint8

const (
	CastleDirectionUnknown CastleDirection = iota
	CastleDirectionWhiteKing
	CastleDirectionWhiteQueen
	CastleDirectionBlackKing
	CastleDirectionBlackQueen
)

func (d CastleDirection) String() string {
	switch d {
	case CastleDirectionWhiteKing, CastleDirectionBlackKing:
		return "O-O"
	case CastleDirectionWhiteQueen, CastleDirectionBlackQueen:
		return "O-O-O"
	default:
		return ""
	}
}

func (d CastleDirection) IsKingSide() bool {
	return d == CastleDirectionWhiteKing || d == CastleDirectionBlackKing
}

func (d CastleDirection) Side() Side {
	switch d {
	case CastleDirectionWhiteKing, CastleDirectionWhiteQueen:
		return SideWhite
	case CastleDirectionBlackKing, CastleDirectionBlackQueen:
		return SideBlack
	default:
		return SideUnknown
	}
}

// CastleRights packs the four independent castling permissions into one
// nibble. A cleared right is never restored.
type CastleRights uint8

func (c *CastleRights) Set(d CastleDirection, allow bool) {
	if allow {
		*c |= maskCastleRights[d]
	} else {
		*c &^= maskCastleRights[d]
	}
}

func (c CastleRights) IsAllowed(d CastleDirection) bool {
	return c&maskCastleRights[d] != 0
}

func (c CastleRights) IsSideAllowed(s Side) bool {
	if s == SideWhite {
		return c&(maskCastleRights[CastleDirectionWhiteKing]|maskCastleRights[CastleDirectionWhiteQueen]) != 0
	}
	return c&(maskCastleRights[CastleDirectionBlackKing]|maskCastleRights[CastleDirectionBlackQueen]) != 0
}

func castleDirectionsOf(s Side) [2]CastleDirection {
	if s == SideWhite {
		return [2]CastleDirection{CastleDirectionWhiteKing, CastleDirectionWhiteQueen}
	}
	return [2]CastleDirection{CastleDirectionBlackKing, CastleDirectionBlackQueen}
}
