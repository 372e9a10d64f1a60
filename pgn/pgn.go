// Package pgn parses Portable Game Notation records and resolves their
// standard algebraic moves against a live position.
package pgn

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/steve-z-seattle/vibe-coding-for-chess/board"
	"github.com/steve-z-seattle/vibe-coding-for-chess/position"
)

var (
	ErrInvalidSAN = errors.New("invalid algebraic move")

	headerPattern     = regexp.MustCompile(`\[(\w+)\s+"([^"]*)"\]`)
	commentPattern    = regexp.MustCompile(`\{[^}]*\}`)
	variationPattern  = regexp.MustCompile(`\([^)]*\)`)
	moveNumberPattern = regexp.MustCompile(`\d+\.(\.\.)?`)
	sanPattern        = regexp.MustCompile(`^(?:([NBRQK])([a-h])?([1-8])?(x)?([a-h][1-8])|([a-h])?(x)?([a-h][1-8])(?:=([QRNB]))?)$`)
)

var resultTokens = []string{"1-0", "0-1", "1/2-1/2", "*"}

// Game is one parsed PGN record: tag pairs, the move tokens in order, and
// the game result when the movetext carries one.
type Game struct {
	Headers map[string]string
	Moves   []string
	Result  string
}

// Parse splits one PGN record into headers and move tokens. Comments,
// variations, move numbers, and annotations are discarded.
func Parse(text string) (*Game, error) {
	g := &Game{Headers: map[string]string{}}

	var movetext strings.Builder
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "[") {
			if m := headerPattern.FindStringSubmatch(line); m != nil {
				g.Headers[m[1]] = m[2]
			}
			continue
		}
		_, _ = movetext.WriteString(line)
		_, _ = movetext.WriteString(" ")
	}

	body := movetext.String()
	for _, result := range resultTokens {
		if strings.Contains(body, result) {
			g.Result = result
			break
		}
	}

	body = commentPattern.ReplaceAllString(body, " ")
	body = variationPattern.ReplaceAllString(body, " ")
	body = moveNumberPattern.ReplaceAllString(body, " ")
	for _, result := range resultTokens {
		body = strings.ReplaceAll(body, result, " ")
	}

	for _, token := range strings.Fields(body) {
		if strings.HasPrefix(token, "$") { // numeric annotation glyph
			continue
		}
		g.Moves = append(g.Moves, token)
	}
	return g, nil
}

// DecodeSAN resolves one standard algebraic move against the position,
// returning the unique legal move it denotes.
func DecodeSAN(b *board.Board, san string) (board.Move, error) {
	token := strings.TrimRight(san, "+#!?")
	if token == "" {
		return board.Move{}, fmt.Errorf("%w: empty token", ErrInvalidSAN)
	}

	if token == "O-O" || token == "0-0" {
		return findCastle(b, true, san)
	}
	if token == "O-O-O" || token == "0-0-0" {
		return findCastle(b, false, san)
	}

	m := sanPattern.FindStringSubmatch(token)
	if m == nil {
		return board.Move{}, fmt.Errorf("%w: %q", ErrInvalidSAN, san)
	}

	piece := board.PiecePawn
	var fromFile, fromRank, target, promote string
	if m[1] != "" {
		piece = board.PieceFromSAN(m[1][0])
		fromFile, fromRank, target = m[2], m[3], m[5]
	} else {
		fromFile, target, promote = m[6], m[8], m[9]
	}

	to, err := position.FromNotation(target)
	if err != nil {
		return board.Move{}, fmt.Errorf("%w: %q", ErrInvalidSAN, san)
	}
	wantPromote := board.PieceUnknown
	if promote != "" {
		wantPromote = board.PieceFromSAN(promote[0])
	}

	var found []board.Move
	for _, mv := range b.LegalMoves(b.Turn()) {
		if mv.Castle != board.CastleDirectionUnknown || mv.Piece != piece || mv.To != to {
			continue
		}
		if fromFile != "" && mv.From.X() != position.Pos(fromFile[0]-'a') {
			continue
		}
		if fromRank != "" && mv.From.Y() != position.Pos(fromRank[0]-'1') {
			continue
		}
		if mv.Promote != wantPromote {
			continue
		}
		found = append(found, mv)
	}
	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return board.Move{}, fmt.Errorf("%w: %q matches no legal move", ErrInvalidSAN, san)
	default:
		return board.Move{}, fmt.Errorf("%w: %q is ambiguous", ErrInvalidSAN, san)
	}
}

func findCastle(b *board.Board, kingSide bool, san string) (board.Move, error) {
	for _, mv := range b.LegalMoves(b.Turn()) {
		if mv.Castle != board.CastleDirectionUnknown && mv.Castle.IsKingSide() == kingSide {
			return mv, nil
		}
	}
	return board.Move{}, fmt.Errorf("%w: %q matches no legal move", ErrInvalidSAN, san)
}

// Replay applies every move of a parsed record onto a fresh board,
// returning the boards visited, the resolved moves, and the final position.
func Replay(g *Game) (*board.Board, []board.Move, error) {
	b := board.New()
	mvs := make([]board.Move, 0, len(g.Moves))
	for i, token := range g.Moves {
		mv, err := DecodeSAN(b, token)
		if err != nil {
			return nil, nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		b.ApplyUnchecked(mv)
		mvs = append(mvs, mv)
	}
	return b, mvs, nil
}
