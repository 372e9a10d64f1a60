package board

type Side uint8

const (
	SideUnknown Side = iota
	SideWhite
	SideBlack
)

func (s Side) String() string {
	switch s {
	case SideWhite:
		return "white"
	case SideBlack:
		return "black"
	default:
		return ""
	}
}

func (s Side) Opposite() Side {
	switch s {
	case SideWhite:
		return SideBlack
	case SideBlack:
		return SideWhite
	default:
		return SideUnknown
	}
}

// SideFromName parses the lowercase color names used by hosting layers.
func SideFromName(name string) Side {
	switch name {
	case "white":
		return SideWhite
	case "black":
		return SideBlack
	default:
		return SideUnknown
	}
}
