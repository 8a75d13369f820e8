// bot.go
package bots

import (
	"errors"

	"chessbot/rules"

	"github.com/notnil/chess"
)

// ChessBot is the interface every bot exposes to the front ends.
type ChessBot interface {
	BestMove(game *chess.Game) *chess.Move
	Name() string
}

// Rationale tags the reason a move was chosen.
type Rationale string

const (
	MateInOne           Rationale = "Checkmate!"
	MateInTwo           Rationale = "Forced mate in 2!"
	Defending           Rationale = "Defending!"
	WinsMaterial        Rationale = "Wins material!"
	PositionalAdvantage Rationale = "Positional advantage!"
	OpeningTheory       Rationale = "Opening theory!"
	OpeningPrinciples   Rationale = "Opening principles!"
	EndgameTechnique    Rationale = "Endgame technique!"
	DeepCalculation     Rationale = "Deep calculation!"
	Strategic           Rationale = "Strategic!"
)

// Decision is the single result of a move search.
type Decision struct {
	Move      *chess.Move
	Rationale Rationale
	Phase     string // set by CascadeBot
}

// Phase proposes a move or reports that it has no candidate. Having no
// candidate is a normal outcome, not an error. Every move a phase applies to
// the board is undone before Propose returns.
type Phase interface {
	Propose(b *rules.Board, moves []*chess.Move) (Decision, bool)
}

var (
	ErrNoMoves     = errors.New("bots: no legal moves")
	ErrNoCandidate = errors.New("bots: no phase proposed a move")
)

// Entropy is the only source of randomness in the engine.
type Entropy interface {
	Intn(n int) int
}
