package bots

import "github.com/notnil/chess"

type scoredMove struct {
	move  *chess.Move
	score int
}

// pickBest returns the first move with the highest score.
func pickBest(scored []scoredMove) (*chess.Move, bool) {
	if len(scored) == 0 {
		return nil, false
	}
	best := scored[0]
	for _, sm := range scored[1:] {
		if sm.score > best.score {
			best = sm
		}
	}
	return best.move, true
}

func containsSquare(squares []chess.Square, sq chess.Square) bool {
	for _, s := range squares {
		if s == sq {
			return true
		}
	}
	return false
}

// centerDistance2 is twice the Manhattan distance of sq from the middle of the
// board, which keeps the half-square offsets integral.
func centerDistance2(sq chess.Square) int {
	return abs(2*int(sq.File())-7) + abs(2*int(sq.Rank())-7)
}

// relativeRank counts ranks from c's own back rank.
func relativeRank(c chess.Color, sq chess.Square) int {
	if c == chess.Black {
		return 7 - int(sq.Rank())
	}
	return int(sq.Rank())
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
