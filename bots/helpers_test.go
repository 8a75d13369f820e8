package bots

import (
	"testing"

	"chessbot/rules"

	"github.com/notnil/chess"
	"lukechampine.com/frand"
)

const (
	startFEN     = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	kiwipete     = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	mateInTwoFEN = "7k/8/8/8/8/8/1R6/R5K1 w - - 0 1"
	// Ka7 is checked by Rh7; both king moves uncover Ra8 against Ka1
	escapesGiveCheckFEN = "r1B5/k6R/8/8/8/8/8/K7 b - - 0 1"
)

type fixedEntropy int

func (f fixedEntropy) Intn(n int) int { return int(f) % n }

func seededEntropy(seed byte) Entropy {
	key := make([]byte, 32)
	key[0] = seed
	return frand.NewCustom(key, 1024, 12)
}

func mustBoard(t *testing.T, fen string) *rules.Board {
	t.Helper()
	b, err := rules.FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN(%q) failed: %v", fen, err)
	}
	return b
}

func mustSAN(t *testing.T, b *rules.Board, san string) *chess.Move {
	t.Helper()
	m := rules.DecodeSAN(b.Position(), san)
	if m == nil {
		t.Fatalf("move %s is not legal in %s", san, b.FEN())
	}
	return m
}

func assertLegal(t *testing.T, b *rules.Board, m *chess.Move) {
	t.Helper()
	if m == nil {
		t.Fatalf("no move returned for %s", b.FEN())
	}
	if rules.Find(b.LegalMoves(), m) == nil {
		t.Fatalf("move %s is not legal in %s", m, b.FEN())
	}
}

func assertUntouched(t *testing.T, b *rules.Board, fen string) {
	t.Helper()
	if b.Depth() != 0 {
		t.Fatalf("exploration frames left open: %d", b.Depth())
	}
	if b.FEN() != fen {
		t.Fatalf("board changed: %s != %s", b.FEN(), fen)
	}
}
