package rules

import "github.com/notnil/chess"

// GamePhase is derived from the position, never stored.
type GamePhase int

const (
	Middlegame GamePhase = iota
	Opening
	Endgame
)

func (p GamePhase) String() string {
	switch p {
	case Opening:
		return "opening"
	case Endgame:
		return "endgame"
	default:
		return "middlegame"
	}
}

// OpeningPlies is the number of half-moves that count as the opening.
const OpeningPlies = 12

// Phase classifies the current position.
func (b *Board) Phase() GamePhase {
	if b.Ply() < OpeningPlies {
		return Opening
	}
	if IsEndgame(b.Position().Board()) {
		return Endgame
	}
	return Middlegame
}

// IsEndgame is true with at most 12 pieces on the board, or at most 16 when
// neither side has a queen. Kings and pawns count as pieces.
func IsEndgame(board *chess.Board) bool {
	pieces, queens := 0, 0
	for sq := chess.A1; sq <= chess.H8; sq++ {
		p := board.Piece(sq)
		if p == chess.NoPiece {
			continue
		}
		pieces++
		if p.Type() == chess.Queen {
			queens++
		}
	}
	return pieces <= 12 || (pieces <= 16 && queens == 0)
}

// InsufficientMaterial reports whether neither side can possibly mate.
func InsufficientMaterial(board *chess.Board) bool {
	return insufficientFor(board, chess.White) && insufficientFor(board, chess.Black)
}

type material struct {
	pawns, knights, bishops, rooks, queens, total int
	bishopSquares                                 uint64
}

func countMaterial(board *chess.Board, c chess.Color) material {
	var m material
	for sq := chess.A1; sq <= chess.H8; sq++ {
		p := board.Piece(sq)
		if p == chess.NoPiece || p.Color() != c {
			continue
		}
		m.total++
		switch p.Type() {
		case chess.Pawn:
			m.pawns++
		case chess.Knight:
			m.knights++
		case chess.Bishop:
			m.bishops++
			m.bishopSquares |= uint64(1) << uint(sq)
		case chess.Rook:
			m.rooks++
		case chess.Queen:
			m.queens++
		}
	}
	return m
}

func insufficientFor(board *chess.Board, c chess.Color) bool {
	us := countMaterial(board, c)
	them := countMaterial(board, c.Other())
	if us.pawns+us.rooks+us.queens > 0 {
		return false
	}
	if us.knights > 0 {
		// a lone knight cannot mate unless the opponent has pieces to block with
		return us.total <= 2 && them.pawns+them.knights+them.bishops+them.rooks == 0
	}
	if us.bishops > 0 {
		all := us.bishopSquares | them.bishopSquares
		sameColour := all&darkSquares == 0 || all&^darkSquares == 0
		return sameColour && them.pawns == 0 && them.knights == 0
	}
	return true
}
