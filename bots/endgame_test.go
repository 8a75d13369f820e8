package bots

import (
	"testing"

	"github.com/notnil/chess"
)

func TestEndgameRacesPawn(t *testing.T) {
	// e4 scores 15*(7-4) = 45, beating Kd2 (10 + 20) and e3 (30)
	b := mustBoard(t, "8/8/8/4k3/8/8/4P3/4K3 w - - 0 40")
	d, ok := Endgame{}.Propose(b, b.LegalMoves())
	if !ok || d.Rationale != EndgameTechnique {
		t.Fatalf("expected %q, got %+v (ok=%v)", EndgameTechnique, d, ok)
	}
	if d.Move.S1() != chess.E2 || d.Move.S2() != chess.E4 {
		t.Fatalf("expected e4, got %s", d.Move)
	}
}

func TestEndgameCentralisesKing(t *testing.T) {
	// black king on a8: Kb7 advances one rank and is five steps from the centre
	b := mustBoard(t, "k7/8/8/8/8/8/8/6RK b - - 0 50")
	d, ok := Endgame{}.Propose(b, b.LegalMoves())
	if !ok || d.Move.S2() != chess.B7 {
		t.Fatalf("expected Kb7, got %+v (ok=%v)", d, ok)
	}
}

func TestEndgameInactiveInMiddlegame(t *testing.T) {
	b := mustBoard(t, kiwipete)
	if _, ok := (Endgame{}).Propose(b, b.LegalMoves()); ok {
		t.Fatalf("expected no candidate with full material")
	}
}
