package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"chessbot/bots"
	"chessbot/config"
	"chessbot/rules"

	"github.com/notnil/chess"
	"github.com/rs/zerolog"
)

type session struct {
	game   *chess.Game
	depth  int
	logger zerolog.Logger
	out    io.Writer
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	// stdout belongs to the protocol
	logger, err := cfg.Logs.Logger(os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	s := &session{game: chess.NewGame(), depth: cfg.Engine.Depth, logger: logger, out: os.Stdout}
	s.loop(os.Stdin)
}

func (s *session) loop(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if !s.handle(scanner.Text()) {
			return
		}
	}
}

// handle runs one command and reports whether the loop should continue.
func (s *session) handle(line string) bool {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return true
	}
	switch strings.ToLower(tokens[0]) {
	case "uci":
		fmt.Fprintln(s.out, "id name chessbot cascade")
		fmt.Fprintln(s.out, "id author chessbot")
		fmt.Fprintln(s.out, "uciok")
	case "isready":
		fmt.Fprintln(s.out, "readyok")
	case "ucinewgame":
		s.game = chess.NewGame()
	case "position":
		if err := s.position(tokens[1:]); err != nil {
			fmt.Fprintf(s.out, "info string %v\n", err)
		}
	case "go":
		s.search(tokens[1:])
	case "quit":
		return false
	default:
		fmt.Fprintln(s.out, "info string Unknown command", tokens[0])
	}
	return true
}

func (s *session) position(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("malformed position command")
	}

	var g *chess.Game
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		g = chess.NewGame()
	case "fen":
		n := len(rest)
		for i, tok := range rest {
			if tok == "moves" {
				n = i
				break
			}
		}
		opt, err := chess.FEN(strings.Join(rest[:n], " "))
		if err != nil {
			return fmt.Errorf("invalid fen position: %w", err)
		}
		g = chess.NewGame(opt)
		rest = rest[n:]
	default:
		return fmt.Errorf("invalid position subcommand %s", args[0])
	}

	if len(rest) > 0 && rest[0] == "moves" {
		for _, text := range rest[1:] {
			m := rules.DecodeUCI(g.Position(), text)
			if m == nil {
				return fmt.Errorf("%w: %s", rules.ErrIllegalMove, text)
			}
			if err := g.Move(m); err != nil {
				return fmt.Errorf("applying %s: %w", text, err)
			}
		}
	}
	s.game = g
	return nil
}

func (s *session) search(args []string) {
	depth := s.depth
	for i := 0; i < len(args); i++ {
		if strings.ToLower(args[i]) != "depth" || i+1 >= len(args) {
			continue
		}
		n, err := strconv.Atoi(args[i+1])
		if err != nil || n < 1 {
			fmt.Fprintln(s.out, "info string Malformed go command option depth")
			continue
		}
		depth = n
		i++
	}

	bot := bots.NewCascadeBot(bots.WithDepth(depth), bots.WithLogger(s.logger))
	b := rules.FromGame(s.game)
	d, err := bot.Decide(b)
	if err != nil {
		fmt.Fprintf(s.out, "info string %v\n", err)
		fmt.Fprintln(s.out, "bestmove (none)")
		return
	}
	fmt.Fprintf(s.out, "info string %s\n", d.Rationale)
	fmt.Fprintf(s.out, "bestmove %s\n", rules.UCI(b.Position(), d.Move))
}
