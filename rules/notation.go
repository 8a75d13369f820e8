package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

var (
	ErrUnparsableMove = errors.New("unparsable move")
	ErrIllegalMove    = errors.New("illegal move")
)

// SAN encodes m in standard algebraic notation for pos.
func SAN(pos *chess.Position, m *chess.Move) string {
	return chess.AlgebraicNotation{}.Encode(pos, m)
}

// UCI encodes m in UCI long algebraic notation.
func UCI(pos *chess.Position, m *chess.Move) string {
	return chess.UCINotation{}.Encode(pos, m)
}

// Same reports whether a and b move the same piece between the same squares
// with the same promotion.
func Same(a, b *chess.Move) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.S1() == b.S1() && a.S2() == b.S2() && a.Promo() == b.Promo()
}

// Find returns the element of moves that is the same move as m.
func Find(moves []*chess.Move, m *chess.Move) *chess.Move {
	for _, candidate := range moves {
		if Same(candidate, m) {
			return candidate
		}
	}
	return nil
}

// DecodeSAN returns the legal move of pos written as text in standard
// algebraic notation, or nil. Check and annotation suffixes are ignored and
// zeros are accepted for castling.
func DecodeSAN(pos *chess.Position, text string) *chess.Move {
	want := normalizeSAN(text)
	if want == "" {
		return nil
	}
	for _, m := range pos.ValidMoves() {
		if normalizeSAN(SAN(pos, m)) == want {
			return m
		}
	}
	return nil
}

// DecodeUCI returns the legal move of pos written as text in UCI notation, or
// nil.
func DecodeUCI(pos *chess.Position, text string) *chess.Move {
	want := strings.ToLower(strings.TrimSpace(text))
	if want == "" {
		return nil
	}
	for _, m := range pos.ValidMoves() {
		if UCI(pos, m) == want {
			return m
		}
	}
	return nil
}

// ParseMove reads a player's move, trying standard algebraic notation first and
// UCI second. A well-formed UCI move that is not legal yields ErrIllegalMove.
func ParseMove(pos *chess.Position, text string) (*chess.Move, error) {
	if m := DecodeSAN(pos, text); m != nil {
		return m, nil
	}
	if m := DecodeUCI(pos, text); m != nil {
		return m, nil
	}
	if _, err := (chess.UCINotation{}).Decode(pos, strings.ToLower(strings.TrimSpace(text))); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrIllegalMove, text)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnparsableMove, text)
}

// LegalSAN lists up to limit legal moves of pos in standard algebraic notation.
func LegalSAN(pos *chess.Position, limit int) []string {
	moves := pos.ValidMoves()
	if limit > 0 && len(moves) > limit {
		moves = moves[:limit]
	}
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, SAN(pos, m))
	}
	return out
}

func normalizeSAN(text string) string {
	s := strings.TrimSpace(text)
	s = strings.TrimRight(s, "+#!?")
	s = strings.ReplaceAll(s, "0", "O")
	return s
}
