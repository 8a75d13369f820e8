package bots

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"chessbot/rules"

	"github.com/notnil/chess"
	"github.com/rs/zerolog"
)

func TestCascadeDecisions(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		rationale Rationale
		phase     string
	}{
		{"mate in one", "7k/6pp/6Q1/8/8/2B5/8/6K1 w - - 0 1", MateInOne, PhaseTactics},
		{"mate in two", mateInTwoFEN, MateInTwo, PhaseTactics},
		{"only escape", "k6R/8/2K5/8/8/8/8/8 b - - 0 1", Defending, PhaseTactics},
		{"free queen", "4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1", WinsMaterial, PhaseTactics},
		{"quiet start", startFEN, PositionalAdvantage, PhasePositional},
		{"every escape gives check", escapesGiveCheckFEN, PositionalAdvantage, PhasePositional},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, tt.fen)
			bot := NewCascadeBot(WithDepth(1), WithEntropy(fixedEntropy(0)))
			d, err := bot.Decide(b)
			if err != nil {
				t.Fatalf("Decide failed: %v", err)
			}
			if d.Rationale != tt.rationale || d.Phase != tt.phase {
				t.Fatalf("expected %q from %s, got %q from %s", tt.rationale, tt.phase, d.Rationale, d.Phase)
			}
			assertUntouched(t, b, tt.fen)
			assertLegal(t, b, d.Move)
		})
	}
}

func TestCascadeMateEndsGame(t *testing.T) {
	b := mustBoard(t, "7k/6pp/6Q1/8/8/2B5/8/6K1 w - - 0 1")
	d, err := NewCascadeBot().Decide(b)
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	b.Enter(d.Move)
	if got := b.StatusText(); got != "Checkmate! White wins!" {
		t.Fatalf("unexpected status %q", got)
	}
}

func TestCascadeNoMoves(t *testing.T) {
	for _, fen := range []string{
		"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3",
		"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
	} {
		_, err := NewCascadeBot().Decide(mustBoard(t, fen))
		if !errors.Is(err, ErrNoMoves) {
			t.Fatalf("%s: expected ErrNoMoves, got %v", fen, err)
		}
	}
}

func TestCascadeWithoutAnyPhase(t *testing.T) {
	bot := NewCascadeBot(WithoutPhases(PhaseTactics, PhasePositional, PhaseOpening, PhaseEndgame, PhaseSearch))
	if _, err := bot.Decide(mustBoard(t, startFEN)); !errors.Is(err, ErrNoCandidate) {
		t.Fatalf("expected ErrNoCandidate, got %v", err)
	}
}

func TestCascadeReachesLaterPhases(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		skip      []string
		rationale Rationale
		phase     string
	}{
		{"book", "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1",
			[]string{PhaseTactics, PhasePositional}, OpeningTheory, PhaseOpening},
		{"book closed after twelve plies", "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 7",
			[]string{PhaseTactics, PhasePositional}, DeepCalculation, PhaseSearch},
		{"king and pawn", "8/8/8/4k3/8/8/4P3/4K3 w - - 0 40",
			[]string{PhaseTactics, PhasePositional, PhaseOpening}, EndgameTechnique, PhaseEndgame},
		{"search", kiwipete,
			[]string{PhaseTactics, PhasePositional, PhaseOpening, PhaseEndgame}, DeepCalculation, PhaseSearch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, tt.fen)
			bot := NewCascadeBot(WithDepth(2), WithEntropy(fixedEntropy(0)), WithoutPhases(tt.skip...))
			d, err := bot.Decide(b)
			if err != nil {
				t.Fatalf("Decide failed: %v", err)
			}
			if d.Rationale != tt.rationale || d.Phase != tt.phase {
				t.Fatalf("expected %q from %s, got %q from %s", tt.rationale, tt.phase, d.Rationale, d.Phase)
			}
			assertUntouched(t, b, tt.fen)
		})
	}
}

func TestCascadeIsDeterministic(t *testing.T) {
	bot := NewCascadeBot(WithDepth(2), WithEntropy(fixedEntropy(0)))
	b := mustBoard(t, kiwipete)
	first, err := bot.Decide(b)
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		d, err := bot.Decide(b)
		if err != nil {
			t.Fatalf("Decide failed: %v", err)
		}
		if !rules.Same(d.Move, first.Move) || d.Rationale != first.Rationale {
			t.Fatalf("run %d: %s (%s) differs from %s (%s)", i, d.Move, d.Rationale, first.Move, first.Rationale)
		}
	}
}

func TestCascadeAlongRandomGame(t *testing.T) {
	g := chess.NewGame()
	opponent := NewRandomBot(seededEntropy(3))
	bot := NewCascadeBot(WithDepth(1), WithEntropy(fixedEntropy(0)))

	for i := 0; i < 30 && g.Outcome() == chess.NoOutcome; i++ {
		b := rules.FromGame(g)
		if len(b.LegalMoves()) == 0 {
			break
		}
		fen := b.FEN()
		d, err := bot.Decide(b)
		if err != nil {
			t.Fatalf("ply %d: Decide failed: %v", b.Ply(), err)
		}
		assertUntouched(t, b, fen)
		assertLegal(t, b, d.Move)
		if b.Ply() >= rules.OpeningPlies && (d.Rationale == OpeningTheory || d.Rationale == OpeningPrinciples) {
			t.Fatalf("ply %d: opening rationale %q", b.Ply(), d.Rationale)
		}

		if err := g.Move(opponent.BestMove(g)); err != nil {
			t.Fatalf("random move rejected: %v", err)
		}
	}
}

func TestCascadeBestMoveAndLogging(t *testing.T) {
	var buf bytes.Buffer
	bot := NewCascadeBot(WithLogger(zerolog.New(&buf)))
	if bot.Name() != "Cascade" {
		t.Fatalf("unexpected name %q", bot.Name())
	}
	if m := bot.BestMove(nil); m != nil {
		t.Fatalf("expected nil for a nil game, got %s", m)
	}

	g := chess.NewGame()
	m := bot.BestMove(g)
	if m == nil {
		t.Fatalf("expected a move")
	}
	if err := g.Move(m); err != nil {
		t.Fatalf("engine move rejected: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"message":"move chosen"`) || !strings.Contains(out, `"phase":"positional"`) {
		t.Fatalf("missing decision log: %s", out)
	}
}

func TestDecidePosition(t *testing.T) {
	fen, err := chess.FEN(kiwipete)
	if err != nil {
		t.Fatal(err)
	}
	pos := chess.NewGame(fen).Position()
	d, err := NewCascadeBot(WithDepth(1)).DecidePosition(pos)
	if err != nil {
		t.Fatalf("DecidePosition failed: %v", err)
	}
	if d.Phase == "" || d.Rationale == "" {
		t.Fatalf("incomplete decision %+v", d)
	}
}
