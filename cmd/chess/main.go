package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/steve-z-seattle/vibe-coding-for-chess/board"
	"github.com/steve-z-seattle/vibe-coding-for-chess/engine"
	"github.com/steve-z-seattle/vibe-coding-for-chess/game"
	"github.com/steve-z-seattle/vibe-coding-for-chess/position"
)

const (
	exitOK = iota
	exitErr
)

var (
	fen        = flag.String("fen", board.DefaultStartingPositionFEN, "starting position")
	difficulty = flag.String("difficulty", engine.DefaultDifficulty.String(), "engine strength: shallow, medium, or deep")
	side       = flag.String("side", "white", "side to play: white or black")
)

func main() {
	flag.Parse()

	if err := realMain(); err != nil {
		log.Println(err)
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

func realMain() error {
	d, err := engine.ParseDifficulty(*difficulty)
	if err != nil {
		return err
	}
	var human board.Side
	switch *side {
	case "white":
		human = board.SideWhite
	case "black":
		human = board.SideBlack
	default:
		return fmt.Errorf("unknown side %q", *side)
	}

	g, err := game.NewFromFEN(*fen)
	if err != nil {
		return err
	}
	e := engine.New(&engine.Config{Logger: func(...any) {}})

	fmt.Println(draw(g.Board()))
	scanner := bufio.NewScanner(os.Stdin)
	for g.State().IsRunning() {
		if g.Board().Turn() == human {
			if !humanTurn(g, scanner) {
				return nil
			}
		} else {
			if err := engineTurn(g, e, d); err != nil {
				return err
			}
		}
		fmt.Println(draw(g.Board()))
		if g.State() == board.StateCheck {
			fmt.Println("check!")
		}
	}

	return reportResult(g)
}

// humanTurn reads commands until a move is applied. It returns false when
// the user quits.
func humanTurn(g *game.Game, scanner *bufio.Scanner) bool {
	for {
		fmt.Printf("%s> ", g.Board().Turn())
		if !scanner.Scan() {
			return false
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "quit" || line == "resign":
			return false
		case line == "fen":
			fmt.Println(g.Board().FEN())
			continue
		case line == "undo":
			if err := g.Undo(); err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println(draw(g.Board()))
			continue
		case strings.HasPrefix(line, "moves "):
			printMoves(g, strings.TrimPrefix(line, "moves "))
			continue
		}

		mv, err := parseMove(g.Board(), line)
		if err != nil {
			fmt.Println(err)
			continue
		}
		if err := g.Apply(mv); err != nil {
			fmt.Println(err)
			continue
		}
		return true
	}
}

func engineTurn(g *game.Game, e *engine.Engine, d engine.Difficulty) error {
	res, err := e.Search(context.Background(), g.Board(), d.Limits())
	if err != nil {
		return err
	}
	if err := g.Apply(res.BestMove); err != nil {
		return fmt.Errorf("unplayable engine move %s: %w", res.BestMove.UCI(), err)
	}
	fmt.Printf("engine plays %s (depth=%d nodes=%d in %s)\n",
		res.BestMove.Algebra(), res.Depth, res.Nodes, res.Elapsed)
	return nil
}

// parseMove reads coordinate notation, e.g. e2e4 or a7a8q.
func parseMove(b *board.Board, text string) (board.Move, error) {
	if len(text) != 4 && len(text) != 5 {
		return board.Move{}, fmt.Errorf("expected a move like e2e4 or a7a8q")
	}
	from, err := position.FromNotation(text[:2])
	if err != nil {
		return board.Move{}, err
	}
	to, err := position.FromNotation(text[2:4])
	if err != nil {
		return board.Move{}, err
	}
	promote := board.PieceUnknown
	if len(text) == 5 {
		if promote = board.PieceFromSAN(text[4] &^ 0x20); promote == board.PieceUnknown {
			return board.Move{}, fmt.Errorf("unknown promotion piece %q", text[4])
		}
	}
	return b.FindMove(from, to, promote)
}

func printMoves(g *game.Game, square string) {
	from, err := position.FromNotation(strings.TrimSpace(square))
	if err != nil {
		fmt.Println(err)
		return
	}
	mvs := g.Board().LegalMovesFrom(from)
	if len(mvs) == 0 {
		fmt.Println("no moves")
		return
	}
	parts := make([]string, 0, len(mvs))
	for _, mv := range mvs {
		parts = append(parts, mv.Algebra())
	}
	fmt.Println(strings.Join(parts, " "))
}

func reportResult(g *game.Game) error {
	switch g.State() {
	case board.StateCheckmate:
		fmt.Printf("checkmate, %s wins\n", g.Board().Turn().Opposite())
	case board.StateStalemate:
		fmt.Println("draw by stalemate")
	case board.StateInsufficientMaterial:
		fmt.Println("draw by insufficient material")
	case board.StateFiftyMoveDraw:
		fmt.Println("draw by the fifty move rule")
	}
	return nil
}

var (
	darkSquare  = color.New(color.FgBlack, color.BgGreen)
	lightSquare = color.New(color.FgBlack, color.BgHiWhite)
	boardLabel  = color.New(color.Bold)
)

func draw(b *board.Board) string {
	builder := strings.Builder{}
	for y := position.Pos(board.Height) - 1; y >= 0; y-- {
		_, _ = builder.WriteString(boardLabel.Sprintf(" %d ", y+1))
		for x := position.Pos(0); x < board.Width; x++ {
			s, p := b.PieceAt(y*board.Width + x)
			sym := " "
			if p != board.PieceUnknown {
				sym = p.SymbolUnicode(s)
			}
			sq := lightSquare
			if x%2^y%2 == 0 {
				sq = darkSquare
			}
			_, _ = builder.WriteString(sq.Sprintf(" %s ", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   ")
	for x := position.Pos(0); x < board.Width; x++ {
		_, _ = builder.WriteString(boardLabel.Sprintf(" %s ", x.NotationComponentX()))
	}
	return builder.String()
}
