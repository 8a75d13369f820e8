package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"chessbot/bots"
	"chessbot/config"
	"chessbot/rules"
	"chessbot/store"

	"github.com/notnil/chess"
	"github.com/rs/zerolog"
)

// how many legal moves an illegal-move reply lists
const legalHint = 10

var errGameOver = errors.New("game is over")

type app struct {
	store  *store.Store
	bot    *bots.CascadeBot
	logger zerolog.Logger
	out    io.Writer
}

func main() {
	move := flag.String("move", "", "player move in SAN or UCI, or \"reset\" to start over")
	fen := flag.String("fen", "", "analyse a position without touching the saved game")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger, err := cfg.Logs.Logger(os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	a := &app{
		store:  store.New(cfg.Files.State, cfg.Files.PGN),
		bot:    bots.NewCascadeBot(bots.WithDepth(cfg.Engine.Depth), bots.WithLogger(logger)),
		logger: logger,
		out:    os.Stdout,
	}

	switch {
	case *fen != "":
		err = a.analyse(*fen)
	case *move != "":
		err = a.play(*move)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil && !errors.Is(err, errGameOver) {
		logger.Error().Err(err).Msg("move not processed")
		os.Exit(1)
	}
}

// play applies the player's move to the saved game, answers it and saves the
// result.
func (a *app) play(text string) error {
	if strings.EqualFold(strings.TrimSpace(text), "reset") {
		if _, err := a.store.Reset(); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Game reset! White to move.")
		return nil
	}

	g, err := a.store.Load()
	if err != nil {
		return err
	}
	if b := rules.FromGame(g); b.GameOver() {
		fmt.Fprintf(a.out, "Game is over: %s\n", b.StatusText())
		return errGameOver
	}

	pos := g.Position()
	m, err := rules.ParseMove(pos, text)
	if err != nil {
		fmt.Fprintf(a.out, "Invalid move: %s\n%s\nCurrent position: %s\n", text, describe(err, pos), g.FEN())
		return err
	}
	san := rules.SAN(pos, m)
	if err := g.Move(m); err != nil {
		return fmt.Errorf("applying %s: %w", san, err)
	}
	a.logger.Info().Str("move", san).Str("fen", g.FEN()).Msg("player moved")
	fmt.Fprintf(a.out, "Move accepted: %s\n", san)

	reply, err := a.respond(g)
	switch {
	case errors.Is(err, errGameOver):
		fmt.Fprintln(a.out, "Game is over")
	case err != nil:
		return err
	default:
		fmt.Fprintf(a.out, "Engine responds with: %s\n", reply)
	}

	if err := a.store.Save(g); err != nil {
		return err
	}
	fmt.Fprintln(a.out, rules.FromGame(g).StatusText())
	return nil
}

// respond plays the engine's move in g and describes it.
func (a *app) respond(g *chess.Game) (string, error) {
	b := rules.FromGame(g)
	if b.GameOver() {
		return "", errGameOver
	}
	d, err := a.bot.Decide(b)
	if err != nil {
		return "", err
	}
	san := rules.SAN(g.Position(), d.Move)
	if err := g.Move(d.Move); err != nil {
		return "", fmt.Errorf("applying engine move %s: %w", san, err)
	}
	return fmt.Sprintf("%s - %s", san, d.Rationale), nil
}

func (a *app) analyse(fen string) error {
	b, err := rules.FromFEN(fen)
	if err != nil {
		return err
	}
	if b.GameOver() {
		fmt.Fprintf(a.out, "Game is over: %s\n", b.StatusText())
		return errGameOver
	}
	d, err := a.bot.Decide(b)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s - %s (%s phase)\n", rules.SAN(b.Position(), d.Move), d.Rationale, d.Phase)
	return nil
}

func describe(err error, pos *chess.Position) string {
	if !errors.Is(err, rules.ErrIllegalMove) {
		return fmt.Sprintf("Could not parse move (%v)", err)
	}
	legal := rules.LegalSAN(pos, 0)
	msg := "Illegal move. Legal moves: " + strings.Join(legal[:min(len(legal), legalHint)], ", ")
	if len(legal) > legalHint {
		msg += "..."
	}
	return msg
}
