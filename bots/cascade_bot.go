package bots

import (
	"chessbot/rules"

	"github.com/notnil/chess"
	"github.com/rs/zerolog"
	"lukechampine.com/frand"
)

// Phase names, in dispatch order.
const (
	PhaseTactics    = "tactics"
	PhasePositional = "positional"
	PhaseOpening    = "opening"
	PhaseEndgame    = "endgame"
	PhaseSearch     = "search"
)

type stage struct {
	name  string
	phase Phase
}

// CascadeBot tries its phases in a fixed order and plays the first move any of
// them proposes. Phases never see each other's scores.
type CascadeBot struct {
	stages []stage
	logger zerolog.Logger
}

type cascadeOptions struct {
	depth      int
	entropy    Entropy
	logger     zerolog.Logger
	kingSafety KingSafetyFunc
	skip       map[string]bool
}

// Option configures a CascadeBot.
type Option func(*cascadeOptions)

// WithDepth sets the search depth of the final phase.
func WithDepth(depth int) Option {
	return func(o *cascadeOptions) { o.depth = depth }
}

// WithEntropy replaces the random source used by the last-resort pick.
func WithEntropy(e Entropy) Option {
	return func(o *cascadeOptions) { o.entropy = e }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *cascadeOptions) { o.logger = logger }
}

// WithKingSafety installs a king safety heuristic for check defence and
// static evaluation.
func WithKingSafety(fn KingSafetyFunc) Option {
	return func(o *cascadeOptions) { o.kingSafety = fn }
}

// WithoutPhases drops the named phases from the cascade. Useful for analysing
// what the later phases would play.
func WithoutPhases(names ...string) Option {
	return func(o *cascadeOptions) {
		for _, name := range names {
			o.skip[name] = true
		}
	}
}

func NewCascadeBot(opts ...Option) *CascadeBot {
	o := cascadeOptions{
		depth:      DefaultDepth,
		logger:     zerolog.Nop(),
		kingSafety: FlatKingSafety,
		skip:       make(map[string]bool),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.entropy == nil {
		o.entropy = frand.New()
	}

	search := &MinimaxBot{
		Depth:     o.depth,
		Evaluator: Evaluator{KingSafety: o.kingSafety},
		Entropy:   o.entropy,
	}
	all := []stage{
		{PhaseTactics, Tactics{KingSafety: o.kingSafety}},
		{PhasePositional, Positional{}},
		{PhaseOpening, OpeningBook{}},
		{PhaseEndgame, Endgame{}},
		{PhaseSearch, search},
	}

	c := &CascadeBot{logger: o.logger}
	for _, s := range all {
		if !o.skip[s.name] {
			c.stages = append(c.stages, s)
		}
	}
	return c
}

func (c *CascadeBot) Name() string {
	return "Cascade"
}

// BestMove implements ChessBot. It returns nil when the game has no legal move.
func (c *CascadeBot) BestMove(game *chess.Game) *chess.Move {
	if game == nil {
		return nil
	}
	d, err := c.Decide(rules.FromGame(game))
	if err != nil {
		c.logger.Warn().Err(err).Str("fen", game.FEN()).Msg("no move")
		return nil
	}
	return d.Move
}

// DecidePosition is Decide for a position without game history.
func (c *CascadeBot) DecidePosition(pos *chess.Position) (Decision, error) {
	return c.Decide(rules.NewBoard(pos))
}

// Decide picks exactly one move for the side to move on b. b is left as it
// was found. ErrNoMoves is returned for a position without legal moves.
func (c *CascadeBot) Decide(b *rules.Board) (Decision, error) {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return Decision{}, ErrNoMoves
	}

	for _, s := range c.stages {
		d, ok := s.phase.Propose(b, moves)
		if !ok {
			c.logger.Debug().Str("phase", s.name).Msg("no candidate")
			continue
		}
		d.Phase = s.name
		c.logger.Info().
			Str("phase", d.Phase).
			Str("move", rules.SAN(b.Position(), d.Move)).
			Str("rationale", string(d.Rationale)).
			Int("ply", b.Ply()).
			Msg("move chosen")
		return d, nil
	}
	return Decision{}, ErrNoCandidate
}
