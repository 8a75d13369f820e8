package bots

import (
	"chessbot/rules"

	"github.com/notnil/chess"
)

// openingResponses maps a FEN piece placement to replies in order of
// preference, written in standard algebraic notation.
var openingResponses = map[string][]string{
	// 1.e4
	"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR": {"c5", "e5", "c6"},
	// 1.d4
	"rnbqkbnr/pppppppp/8/8/3P4/8/PPP1PPPP/RNBQKBNR": {"Nf6", "d5", "f5"},
	// Italian Game
	"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R": {"f5", "Be7", "Nf6"},
}

var (
	goodKnightSquares = []chess.Square{chess.F3, chess.C3, chess.F6, chess.C6}
	goodBishopSquares = []chess.Square{chess.C4, chess.F4, chess.E2, chess.C5, chess.F5, chess.E7}
)

const principlesPlies = 8

// OpeningBook answers known positions from a fixed table and otherwise falls
// back to development rules for the first few moves.
type OpeningBook struct{}

func (OpeningBook) Propose(b *rules.Board, moves []*chess.Move) (Decision, bool) {
	ply := b.Ply()
	if ply >= rules.OpeningPlies {
		return Decision{}, false
	}
	if m := bookMove(b, moves); m != nil {
		return Decision{Move: m, Rationale: OpeningTheory}, true
	}
	if ply >= principlesPlies {
		return Decision{}, false
	}
	if m, ok := developingMove(b, moves); ok {
		return Decision{Move: m, Rationale: OpeningPrinciples}, true
	}
	return Decision{}, false
}

func bookMove(b *rules.Board, moves []*chess.Move) *chess.Move {
	responses, ok := openingResponses[b.Placement()]
	if !ok {
		return nil
	}
	pos := b.Position()
	for _, san := range responses {
		if m := rules.DecodeSAN(pos, san); m != nil {
			if legal := rules.Find(moves, m); legal != nil {
				return legal
			}
		}
	}
	return nil
}

func developingMove(b *rules.Board, moves []*chess.Move) (*chess.Move, bool) {
	board := b.Position().Board()
	var scored []scoredMove
	for _, m := range moves {
		switch board.Piece(m.S1()).Type() {
		case chess.Pawn:
			if containsSquare(centerSquares, m.S2()) {
				scored = append(scored, scoredMove{move: m, score: 40})
			}
		case chess.Knight:
			if containsSquare(goodKnightSquares, m.S2()) {
				scored = append(scored, scoredMove{move: m, score: 35})
			}
		case chess.Bishop:
			if containsSquare(goodBishopSquares, m.S2()) {
				scored = append(scored, scoredMove{move: m, score: 30})
			}
		}
	}
	return pickBest(scored)
}
