package rules

import (
	"fmt"

	"github.com/notnil/chess"
)

// StatusText describes the current position for a human.
func (b *Board) StatusText() string {
	turn := b.Position().Turn()
	switch b.Status() {
	case chess.Checkmate:
		return fmt.Sprintf("Checkmate! %s wins!", turn.Other().Name())
	case chess.Stalemate:
		return "Stalemate! It's a draw!"
	case chess.InsufficientMaterial:
		return "Draw by insufficient material!"
	case chess.SeventyFiveMoveRule:
		return "Draw by 75-move rule!"
	case chess.FivefoldRepetition:
		return "Draw by fivefold repetition!"
	}
	if b.InCheck() {
		return "Check!"
	}
	return fmt.Sprintf("%s to move", turn.Name())
}

// GameOver reports whether the current position is terminal.
func (b *Board) GameOver() bool {
	return b.Status() != chess.NoMethod
}
