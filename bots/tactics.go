package bots

import (
	"chessbot/rules"

	"github.com/notnil/chess"
)

// captureGain values the piece a capture removes, in pawns.
var captureGain = map[chess.PieceType]int{
	chess.Pawn:   1,
	chess.Knight: 3,
	chess.Bishop: 3,
	chess.Rook:   5,
	chess.Queen:  9,
}

// Tactics looks for decisive moves: mate in one, forced mate in two, the best
// escape from check and the most valuable capture, in that order.
type Tactics struct {
	KingSafety KingSafetyFunc
}

func (t Tactics) Propose(b *rules.Board, moves []*chess.Move) (Decision, bool) {
	if m := mateInOne(b, moves); m != nil {
		return Decision{Move: m, Rationale: MateInOne}, true
	}
	if m := mateInTwo(b, moves); m != nil {
		return Decision{Move: m, Rationale: MateInTwo}, true
	}
	if b.InCheck() {
		if m, ok := t.defend(b, moves); ok {
			return Decision{Move: m, Rationale: Defending}, true
		}
	}
	if m, ok := winMaterial(b, moves); ok {
		return Decision{Move: m, Rationale: WinsMaterial}, true
	}
	return Decision{}, false
}

// checkmated reports whether the side to move has been mated.
func checkmated(b *rules.Board) bool {
	return b.Position().Status() == chess.Checkmate
}

// mateInOne returns the first move in enumeration order that mates.
func mateInOne(b *rules.Board, moves []*chess.Move) *chess.Move {
	for _, m := range moves {
		if b.Probe(m, func() bool { return checkmated(b) }) {
			return m
		}
	}
	return nil
}

// mateInTwo returns the first move after which every reply allows a mate.
// A move that leaves the opponent without replies does not qualify.
func mateInTwo(b *rules.Board, moves []*chess.Move) *chess.Move {
	for _, m := range moves {
		forced := b.Probe(m, func() bool {
			replies := b.LegalMoves()
			if len(replies) == 0 {
				return false
			}
			for _, reply := range replies {
				mates := b.Probe(reply, func() bool {
					return mateInOne(b, b.LegalMoves()) != nil
				})
				if !mates {
					return false
				}
			}
			return true
		})
		if forced {
			return m
		}
	}
	return nil
}

// defend picks among the moves that do not give check in return, scored by
// king safety. Escapes that check the opponent are left to later phases.
func (t Tactics) defend(b *rules.Board, moves []*chess.Move) (*chess.Move, bool) {
	safety := t.KingSafety
	if safety == nil {
		safety = FlatKingSafety
	}
	var scored []scoredMove
	for _, m := range moves {
		b.Probe(m, func() bool {
			if b.InCheck() {
				return false
			}
			scored = append(scored, scoredMove{move: m, score: safety(b.Position())})
			return true
		})
	}
	return pickBest(scored)
}

func winMaterial(b *rules.Board, moves []*chess.Move) (*chess.Move, bool) {
	board := b.Position().Board()
	var scored []scoredMove
	for _, m := range moves {
		if !m.HasTag(chess.Capture) {
			continue
		}
		// en passant leaves the destination empty and gains nothing here
		if gain := captureGain[board.Piece(m.S2()).Type()]; gain > 0 {
			scored = append(scored, scoredMove{move: m, score: gain})
		}
	}
	return pickBest(scored)
}
