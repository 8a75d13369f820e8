package rules

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func mustBoard(t *testing.T, fen string) *Board {
	t.Helper()
	b, err := FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN(%q) failed: %v", fen, err)
	}
	return b
}

func mustSAN(t *testing.T, b *Board, san string) *chess.Move {
	t.Helper()
	m := DecodeSAN(b.Position(), san)
	if m == nil {
		t.Fatalf("move %s is not legal in %s", san, b.FEN())
	}
	return m
}

func TestEnterLeaveRestoresPosition(t *testing.T) {
	b := mustBoard(t, startFEN)
	before := b.FEN()

	f := b.Enter(mustSAN(t, b, "e4"))
	if b.Depth() != 1 {
		t.Fatalf("expected depth 1 after Enter, got %d", b.Depth())
	}
	inner := b.Enter(mustSAN(t, b, "e5"))
	_ = inner
	// leaving the outer frame also discards the inner one
	f.Leave()
	f.Leave()
	if b.Depth() != 0 {
		t.Fatalf("expected depth 0 after Leave, got %d", b.Depth())
	}
	if b.FEN() != before {
		t.Fatalf("position changed: %s != %s", b.FEN(), before)
	}
}

func TestProbeRestoresOnPanic(t *testing.T) {
	b := mustBoard(t, startFEN)
	before := b.FEN()
	m := mustSAN(t, b, "Nf3")

	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("expected panic to propagate")
			}
		}()
		b.Probe(m, func() bool {
			b.Enter(mustSAN(t, b, "Nf6"))
			panic("boom")
		})
	}()

	if b.Depth() != 0 || b.FEN() != before {
		t.Fatalf("board not restored after panic: depth %d fen %s", b.Depth(), b.FEN())
	}
}

func TestScoreSeesAppliedMove(t *testing.T) {
	b := mustBoard(t, startFEN)
	got := b.Score(mustSAN(t, b, "e4"), func() int { return b.Ply() })
	if got != 1 {
		t.Fatalf("expected ply 1 inside Score, got %d", got)
	}
	if b.Ply() != 0 {
		t.Fatalf("expected ply 0 after Score, got %d", b.Ply())
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want chess.Method
	}{
		{"fools mate", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", chess.Checkmate},
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", chess.Stalemate},
		{"bare kings", "8/8/4k3/8/8/3K4/8/8 w - - 0 1", chess.InsufficientMaterial},
		{"knight versus king", "8/8/4k3/8/8/3KN3/8/8 w - - 0 1", chess.InsufficientMaterial},
		{"same coloured bishops", "8/8/4k3/2b5/8/3KB3/8/8 w - - 0 1", chess.InsufficientMaterial},
		{"rook can mate", "8/8/4k3/8/8/3K4/7R/8 w - - 0 1", chess.NoMethod},
		{"seventy five moves", "8/8/4k3/8/8/3K4/7R/8 w - - 150 120", chess.SeventyFiveMoveRule},
		{"start", startFEN, chess.NoMethod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, tt.fen)
			if got := b.Status(); got != tt.want {
				t.Fatalf("Status() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatusAgreesWithPosition(t *testing.T) {
	for _, fen := range []string{
		"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3",
		"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
		"7k/6Qp/8/8/8/2B5/8/6K1 b - - 0 1",
	} {
		b := mustBoard(t, fen)
		if got, want := b.Status(), b.Position().Status(); got != want {
			t.Fatalf("%s: Status() = %v, position says %v", fen, got, want)
		}
	}
}

func TestFivefoldRepetition(t *testing.T) {
	b := mustBoard(t, startFEN)
	for i := 0; i < 4; i++ {
		for _, san := range []string{"Nf3", "Nf6", "Ng1", "Ng8"} {
			b.Enter(mustSAN(t, b, san))
		}
	}
	if got := b.Status(); got != chess.FivefoldRepetition {
		t.Fatalf("Status() = %v, want fivefold repetition", got)
	}
}

func TestFromGameKeepsHistoryBelowRoot(t *testing.T) {
	g := chess.NewGame()
	for _, san := range []string{"e4", "e5", "Nf3"} {
		if err := g.MoveStr(san); err != nil {
			t.Fatalf("MoveStr(%s) failed: %v", san, err)
		}
	}
	b := FromGame(g)
	if b.Depth() != 0 {
		t.Fatalf("expected no open frames, got %d", b.Depth())
	}
	if b.FEN() != g.Position().String() {
		t.Fatalf("expected current game position, got %s", b.FEN())
	}
	if b.Ply() != 3 {
		t.Fatalf("expected ply 3, got %d", b.Ply())
	}
}

func TestPhase(t *testing.T) {
	tests := []struct {
		fen  string
		want GamePhase
	}{
		{startFEN, Opening},
		{"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 3 7", Middlegame},
		{"8/5pk1/6p1/8/8/6P1/5PK1/8 w - - 0 40", Endgame},
		{"r3k2r/pp3ppp/8/8/8/8/PP3PPP/R3K2R w KQkq - 0 20", Endgame},
	}
	for _, tt := range tests {
		if got := mustBoard(t, tt.fen).Phase(); got != tt.want {
			t.Fatalf("Phase(%s) = %v, want %v", tt.fen, got, tt.want)
		}
	}
}

func TestInCheckAgreesWithDragontooth(t *testing.T) {
	fens := []string{
		startFEN,
		"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3",
		"4k3/8/8/8/8/8/8/4K2r w - - 0 1",
		"4k3/8/3N4/8/8/8/8/4K3 b - - 0 1",
		"4k3/8/8/1B6/8/8/8/4K3 b - - 0 1",
		"4k3/5P2/8/8/8/8/8/4K3 b - - 0 1",
	}
	for _, fen := range fens {
		b := mustBoard(t, fen)
		want := dragontoothmg.ParseFen(fen)
		if got := b.InCheck(); got != want.OurKingInCheck() {
			t.Fatalf("InCheck(%s) = %v, dragontooth says %v", fen, got, want.OurKingInCheck())
		}
	}
}
