package engine

import (
	"fmt"
	"time"
)

// Difficulty selects a preset search budget. Presets trade strength for
// latency; Deep additionally extends leaves with a quiescence search.
type Difficulty uint8

const (
	DifficultyUnknown Difficulty = iota
	DifficultyShallow
	DifficultyMedium
	DifficultyDeep
)

const DefaultDifficulty = DifficultyMedium

// SearchLimits bounds a single search. Depth and Movetime are both upper
// limits; whichever is hit first ends the search.
type SearchLimits struct {
	Depth      uint8
	Movetime   time.Duration
	Quiescence bool
}

func (d Difficulty) String() string {
	switch d {
	case DifficultyShallow:
		return "shallow"
	case DifficultyMedium:
		return "medium"
	case DifficultyDeep:
		return "deep"
	default:
		return "unknown"
	}
}

func (d Difficulty) Limits() SearchLimits {
	switch d {
	case DifficultyShallow:
		return SearchLimits{Depth: 2, Movetime: 1 * time.Second}
	case DifficultyDeep:
		return SearchLimits{Depth: 5, Movetime: 8 * time.Second, Quiescence: true}
	default:
		return SearchLimits{Depth: 3, Movetime: 3 * time.Second}
	}
}

func ParseDifficulty(name string) (Difficulty, error) {
	switch name {
	case "shallow":
		return DifficultyShallow, nil
	case "medium", "":
		return DifficultyMedium, nil
	case "deep":
		return DifficultyDeep, nil
	default:
		return DifficultyUnknown, fmt.Errorf("unknown difficulty %q", name)
	}
}
