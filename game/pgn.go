package game

import (
	"fmt"

	"github.com/steve-z-seattle/vibe-coding-for-chess/pgn"
)

// FromPGN builds a session by replaying a PGN record from the starting
// position, keeping the full history so the imported game can be undone and
// continued.
func FromPGN(text string) (*Game, error) {
	record, err := pgn.Parse(text)
	if err != nil {
		return nil, err
	}
	g := New()
	for i, token := range record.Moves {
		mv, err := pgn.DecodeSAN(g.board, token)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		g.apply(mv)
	}
	return g, nil
}
