package bots

import (
	"chessbot/rules"

	"github.com/notnil/chess"
)

// Endgame walks the king forward and towards the centre and races pawns to
// promotion once material is reduced.
type Endgame struct{}

func (Endgame) Propose(b *rules.Board, moves []*chess.Move) (Decision, bool) {
	board := b.Position().Board()
	if !rules.IsEndgame(board) {
		return Decision{}, false
	}

	scored := make([]scoredMove, 0, len(moves))
	for _, m := range moves {
		piece := board.Piece(m.S1())
		score := 0
		switch piece.Type() {
		case chess.King:
			score += relativeRank(piece.Color(), m.S2()) * 10
			// (7 - d) * 5 with d the Manhattan distance from the centre
			score += (14 - centerDistance2(m.S2())) * 5 / 2
		case chess.Pawn:
			toPromotion := 7 - relativeRank(piece.Color(), m.S2())
			score += (7 - toPromotion) * 15
		}
		scored = append(scored, scoredMove{move: m, score: score})
	}

	best, ok := pickBest(scored)
	if !ok {
		return Decision{}, false
	}
	return Decision{Move: best, Rationale: EndgameTechnique}, true
}
