package bots

import (
	"fmt"

	"chessbot/rules"

	"github.com/notnil/chess"
	"lukechampine.com/frand"
)

const (
	DefaultDepth = 3
	// BranchLimit caps the moves expanded at every node below the root.
	BranchLimit = 8

	infinity = 1 << 30
)

// MinimaxBot is the last phase of the cascade: a shallow alpha-beta search
// over the first few moves of every node.
type MinimaxBot struct {
	Depth     int
	Evaluator Evaluator
	Entropy   Entropy
}

// SearchStats counts what one search visited.
type SearchStats struct {
	Nodes     int
	MaxBranch int // most children entered at a single interior node
	MaxPly    int // deepest node reached, counted from the root position
}

func NewMinimaxBot(depth int, entropy Entropy) *MinimaxBot {
	if entropy == nil {
		entropy = frand.New()
	}
	return &MinimaxBot{
		Depth:   depth,
		Entropy: entropy,
	}
}

func (s *MinimaxBot) Name() string {
	return fmt.Sprintf("Minimax Bot (depth %d)", s.depth())
}

func (s *MinimaxBot) BestMove(game *chess.Game) *chess.Move {
	if game == nil {
		return nil
	}
	b := rules.FromGame(game)
	d, ok := s.Propose(b, b.LegalMoves())
	if !ok {
		return nil
	}
	return d.Move
}

func (s *MinimaxBot) Propose(b *rules.Board, moves []*chess.Move) (Decision, bool) {
	d, _, ok := s.Run(b, moves)
	return d, ok
}

// Run scores every root move as the static evaluation after it minus the
// opponent's best counter found by minimax at depth-1, and picks the highest.
// When no move beats the initial bound the choice is uniformly random.
func (s *MinimaxBot) Run(b *rules.Board, moves []*chess.Move) (Decision, SearchStats, bool) {
	var stats SearchStats
	if len(moves) == 0 {
		return Decision{}, stats, false
	}

	var best *chess.Move
	bestScore := -infinity
	for _, m := range moves {
		score := b.Score(m, func() int {
			return s.Evaluator.Evaluate(b) - s.minimax(b, s.depth()-1, 1, false, -infinity, infinity, &stats)
		})
		if score > bestScore {
			best, bestScore = m, score
		}
	}

	if best == nil {
		m := moves[s.entropy().Intn(len(moves))]
		return Decision{Move: m, Rationale: Strategic}, stats, true
	}
	return Decision{Move: best, Rationale: DeepCalculation}, stats, true
}

func (s *MinimaxBot) minimax(b *rules.Board, depth, ply int, maximizing bool, alpha, beta int, stats *SearchStats) int {
	stats.Nodes++
	stats.MaxPly = max(stats.MaxPly, ply)
	if depth <= 0 || b.GameOver() {
		return s.Evaluator.Evaluate(b)
	}

	moves := b.LegalMoves()
	if len(moves) > BranchLimit {
		moves = moves[:BranchLimit]
	}

	if maximizing {
		bestScore := -infinity
		for i, m := range moves {
			stats.MaxBranch = max(stats.MaxBranch, i+1)
			score := b.Score(m, func() int {
				return s.minimax(b, depth-1, ply+1, false, alpha, beta, stats)
			})
			bestScore = max(bestScore, score)
			alpha = max(alpha, score)
			if beta <= alpha {
				break
			}
		}
		return bestScore
	}

	bestScore := infinity
	for i, m := range moves {
		stats.MaxBranch = max(stats.MaxBranch, i+1)
		score := b.Score(m, func() int {
			return s.minimax(b, depth-1, ply+1, true, alpha, beta, stats)
		})
		bestScore = min(bestScore, score)
		beta = min(beta, score)
		if beta <= alpha {
			break
		}
	}
	return bestScore
}

func (s *MinimaxBot) depth() int {
	if s.Depth < 1 {
		return DefaultDepth
	}
	return s.Depth
}

func (s *MinimaxBot) entropy() Entropy {
	if s.Entropy == nil {
		return frand.New()
	}
	return s.Entropy
}
