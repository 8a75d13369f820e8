package bots

import (
	"github.com/notnil/chess"
	"lukechampine.com/frand"
)

// RandomBot plays a uniformly random legal move.
type RandomBot struct {
	Entropy Entropy
}

func NewRandomBot(entropy Entropy) *RandomBot {
	if entropy == nil {
		entropy = frand.New()
	}
	return &RandomBot{Entropy: entropy}
}

func (b *RandomBot) BestMove(game *chess.Game) *chess.Move {
	moves := game.ValidMoves()
	if len(moves) > 0 {
		return moves[b.Entropy.Intn(len(moves))]
	}
	return nil
}

func (b *RandomBot) Name() string {
	return "Random Bot"
}
