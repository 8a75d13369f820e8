package bots

import (
	"chessbot/rules"

	"github.com/notnil/chess"
)

const (
	MateScore        = 10000
	KingSafetyWeight = 20
	MobilityWeight   = 10
)

// KingSafetyFunc scores how safe the kings are in pos.
type KingSafetyFunc func(pos *chess.Position) int

// FlatKingSafety rates every position the same. The engine ships with king
// safety switched off; plug a real heuristic in with WithKingSafety.
func FlatKingSafety(*chess.Position) int { return 0 }

// Evaluator scores positions from White's point of view in centipawns.
type Evaluator struct {
	KingSafety KingSafetyFunc
}

func (e Evaluator) Evaluate(b *rules.Board) int {
	pos := b.Position()
	switch b.Status() {
	case chess.Checkmate:
		if pos.Turn() == chess.White {
			return -MateScore
		}
		return MateScore
	case chess.Stalemate, chess.InsufficientMaterial:
		return 0
	}

	return materialScore(pos.Board()) +
		e.kingSafety(pos)*KingSafetyWeight +
		len(b.LegalMoves())*MobilityWeight
}

func (e Evaluator) kingSafety(pos *chess.Position) int {
	if e.KingSafety == nil {
		return FlatKingSafety(pos)
	}
	return e.KingSafety(pos)
}

func materialScore(board *chess.Board) int {
	score := 0
	for sq := chess.A1; sq <= chess.H8; sq++ {
		piece := board.Piece(sq)
		if piece == chess.NoPiece {
			continue
		}
		value := pieceValue(piece.Type())
		if piece.Color() == chess.White {
			score += value
		} else {
			score -= value
		}
	}
	return score
}

func pieceValue(piece chess.PieceType) int {
	switch piece {
	case chess.Pawn:
		return 100
	case chess.Knight:
		return 320
	case chess.Bishop:
		return 330
	case chess.Rook:
		return 500
	case chess.Queen:
		return 900
	default:
		return 0
	}
}
