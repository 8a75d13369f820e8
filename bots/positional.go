package bots

import (
	"chessbot/rules"

	"github.com/notnil/chess"
)

var (
	centerSquares = []chess.Square{chess.D4, chess.E4, chess.D5, chess.E5}
	// minor piece home squares on the first rank
	developmentSquares = []chess.Square{chess.B1, chess.G1, chess.C1, chess.F1}
	castledSquares     = []chess.Square{chess.G1, chess.C1}
)

const (
	centerBonus       = 30
	developmentBonus  = 25
	castleBonus       = 50
	controlWeight     = 2
	developmentPlies  = 16
	castlingPlies     = 20
	pawnAdvanceWeight = 5
)

// Positional scores every legal move with a handful of additive heuristics.
type Positional struct{}

func (Positional) Propose(b *rules.Board, moves []*chess.Move) (Decision, bool) {
	pos := b.Position()
	board := pos.Board()
	ply := b.Ply()

	scored := make([]scoredMove, 0, len(moves))
	for _, m := range moves {
		piece := board.Piece(m.S1())
		score := pieceSquareValue(piece, m.S2())

		if containsSquare(centerSquares, m.S2()) {
			score += centerBonus
		}
		if ply < developmentPlies && (piece.Type() == chess.Knight || piece.Type() == chess.Bishop) &&
			containsSquare(developmentSquares, m.S1()) {
			score += developmentBonus
		}
		if ply < castlingPlies && piece.Type() == chess.King && containsSquare(castledSquares, m.S2()) {
			score += castleBonus
		}

		to := m.S2()
		score += controlWeight * b.Score(m, func() int {
			return rules.AttackCount(b.Position().Board(), to)
		})
		scored = append(scored, scoredMove{move: m, score: score})
	}

	best, ok := pickBest(scored)
	if !ok {
		return Decision{}, false
	}
	return Decision{Move: best, Rationale: PositionalAdvantage}, true
}

func pieceSquareValue(piece chess.Piece, sq chess.Square) int {
	switch piece.Type() {
	case chess.Pawn:
		return relativeRank(piece.Color(), sq) * pawnAdvanceWeight
	case chess.Knight, chess.Bishop:
		return 10 - centerDistance2(sq)
	}
	return 0
}
