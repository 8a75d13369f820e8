package rules

import (
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
)

const (
	bitboardFileA  uint64 = 0x0101010101010101
	bitboardFileB         = bitboardFileA << 1
	bitboardFileG         = bitboardFileA << 6
	bitboardFileH         = bitboardFileA << 7
	bitboardFileAB        = bitboardFileA | bitboardFileB
	bitboardFileGH        = bitboardFileG | bitboardFileH

	darkSquares uint64 = 0xAA55AA55AA55AA55
)

var (
	knightAttacks [64]uint64
	kingAttacks   [64]uint64
)

func init() {
	for i := 0; i < 64; i++ {
		sqBB := uint64(1) << uint(i)

		top := sqBB << 8
		bottom := sqBB >> 8
		right := (sqBB << 1) &^ bitboardFileA
		left := (sqBB >> 1) &^ bitboardFileH
		topRight := (sqBB << 9) &^ bitboardFileA
		topLeft := (sqBB << 7) &^ bitboardFileH
		bottomRight := (sqBB >> 7) &^ bitboardFileA
		bottomLeft := (sqBB >> 9) &^ bitboardFileH
		kingAttacks[i] = top | bottom | right | left | topRight | topLeft | bottomRight | bottomLeft

		knightAttacks[i] = (sqBB<<17)&^bitboardFileA |
			(sqBB<<15)&^bitboardFileH |
			(sqBB<<10)&^bitboardFileAB |
			(sqBB<<6)&^bitboardFileGH |
			(sqBB>>17)&^bitboardFileH |
			(sqBB>>15)&^bitboardFileA |
			(sqBB>>10)&^bitboardFileGH |
			(sqBB>>6)&^bitboardFileAB
	}
}

// Attacks returns the squares attacked by the piece standing on sq, including
// squares occupied by either side. An empty square attacks nothing.
func Attacks(board *chess.Board, sq chess.Square) uint64 {
	return pieceAttacks(board.Piece(sq), sq, occupancy(board))
}

// AttackCount is the number of squares attacked from sq.
func AttackCount(board *chess.Board, sq chess.Square) int {
	return bits.OnesCount64(Attacks(board, sq))
}

// Attacked reports whether any piece of colour by attacks sq.
func Attacked(board *chess.Board, sq chess.Square, by chess.Color) bool {
	occ := occupancy(board)
	target := uint64(1) << uint(sq)
	for from := chess.A1; from <= chess.H8; from++ {
		p := board.Piece(from)
		if p == chess.NoPiece || p.Color() != by {
			continue
		}
		if pieceAttacks(p, from, occ)&target != 0 {
			return true
		}
	}
	return false
}

// KingInCheck reports whether the king of colour c is attacked. A board
// without that king is never in check.
func KingInCheck(board *chess.Board, c chess.Color) bool {
	for sq := chess.A1; sq <= chess.H8; sq++ {
		if p := board.Piece(sq); p.Type() == chess.King && p.Color() == c {
			return Attacked(board, sq, c.Other())
		}
	}
	return false
}

func pieceAttacks(p chess.Piece, sq chess.Square, occ uint64) uint64 {
	switch p.Type() {
	case chess.Pawn:
		return pawnAttacks(p.Color(), sq)
	case chess.Knight:
		return knightAttacks[sq]
	case chess.King:
		return kingAttacks[sq]
	case chess.Bishop:
		return dragontoothmg.CalculateBishopMoveBitboard(uint8(sq), occ)
	case chess.Rook:
		return dragontoothmg.CalculateRookMoveBitboard(uint8(sq), occ)
	case chess.Queen:
		return dragontoothmg.CalculateBishopMoveBitboard(uint8(sq), occ) |
			dragontoothmg.CalculateRookMoveBitboard(uint8(sq), occ)
	}
	return 0
}

func pawnAttacks(c chess.Color, sq chess.Square) uint64 {
	sqBB := uint64(1) << uint(sq)
	if c == chess.White {
		return (sqBB<<7)&^bitboardFileH | (sqBB<<9)&^bitboardFileA
	}
	return (sqBB>>9)&^bitboardFileH | (sqBB>>7)&^bitboardFileA
}

func occupancy(board *chess.Board) uint64 {
	var occ uint64
	for sq := chess.A1; sq <= chess.H8; sq++ {
		if board.Piece(sq) != chess.NoPiece {
			occ |= uint64(1) << uint(sq)
		}
	}
	return occ
}
