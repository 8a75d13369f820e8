package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/notnil/chess"
)

// Board is a mutable handle over immutable chess positions. Exploratory moves
// are pushed with Enter and removed again when the returned Frame is left, so a
// phase can walk a line of play without ever rebuilding the game.
type Board struct {
	stack []*chess.Position
	// root is the index of the position handed to the engine; everything
	// below it is game history kept for repetition counting.
	root int
}

// NewBoard wraps a single position with no history.
func NewBoard(pos *chess.Position) *Board {
	return &Board{stack: []*chess.Position{pos}}
}

// FromGame wraps the current position of g and keeps the positions that led to
// it as history.
func FromGame(g *chess.Game) *Board {
	history := g.Positions()
	if len(history) == 0 {
		return NewBoard(g.Position())
	}
	stack := make([]*chess.Position, len(history))
	copy(stack, history)
	return &Board{stack: stack, root: len(stack) - 1}
}

// FromFEN imports a position from Forsyth-Edwards Notation.
func FromFEN(fen string) (*Board, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("rules: import fen %q: %w", fen, err)
	}
	return NewBoard(chess.NewGame(opt).Position()), nil
}

// Position returns the position at the top of the exploration stack.
func (b *Board) Position() *chess.Position {
	return b.stack[len(b.stack)-1]
}

// FEN exports the current position.
func (b *Board) FEN() string {
	return b.Position().String()
}

// Depth is the number of exploration frames currently open.
func (b *Board) Depth() int {
	return len(b.stack) - 1 - b.root
}

// LegalMoves enumerates the legal moves of the side to move in oracle order.
func (b *Board) LegalMoves() []*chess.Move {
	return b.Position().ValidMoves()
}

// InCheck reports whether the side to move is in check.
func (b *Board) InCheck() bool {
	pos := b.Position()
	return KingInCheck(pos.Board(), pos.Turn())
}

// Ply is the number of half-moves played before the current position, derived
// from the fullmove counter and the side to move.
func (b *Board) Ply() int {
	return Ply(b.Position())
}

// Placement is the piece-placement field of the exported FEN.
func (b *Board) Placement() string {
	return fenFields(b.Position())[0]
}

// Status reports the terminal state of the current position, or
// chess.NoMethod while play continues.
func (b *Board) Status() chess.Method {
	pos := b.Position()
	if method := pos.Status(); method != chess.NoMethod {
		return method
	}
	if InsufficientMaterial(pos.Board()) {
		return chess.InsufficientMaterial
	}
	halfmove, _ := Counters(pos)
	if halfmove >= 150 {
		return chess.SeventyFiveMoveRule
	}
	// fivefold repetition needs at least sixteen reversible half-moves
	if halfmove >= 16 && b.repetitions(halfmove) >= 5 {
		return chess.FivefoldRepetition
	}
	return chess.NoMethod
}

func (b *Board) repetitions(halfmove int) int {
	key := positionKey(b.Position())
	count := 0
	last := len(b.stack) - 1
	for i := last; i >= 0 && last-i <= halfmove; i-- {
		if positionKey(b.stack[i]) == key {
			count++
		}
	}
	return count
}

// Frame is one exploratory move applied to a Board.
type Frame struct {
	b     *Board
	depth int
}

// Enter applies m on top of the current position. The caller must Leave the
// returned frame; Probe and Score do this on every exit path.
func (b *Board) Enter(m *chess.Move) *Frame {
	f := &Frame{b: b, depth: len(b.stack)}
	b.stack = append(b.stack, b.Position().Update(m))
	return f
}

// Leave restores the board to the position it had when the frame was entered,
// discarding any inner frames that were not left. Calling it twice is harmless.
func (f *Frame) Leave() {
	if len(f.b.stack) <= f.depth {
		return
	}
	for i := f.depth; i < len(f.b.stack); i++ {
		f.b.stack[i] = nil
	}
	f.b.stack = f.b.stack[:f.depth]
}

// Probe evaluates fn with m applied and undoes m before returning.
func (b *Board) Probe(m *chess.Move, fn func() bool) bool {
	defer b.Enter(m).Leave()
	return fn()
}

// Score evaluates fn with m applied and undoes m before returning.
func (b *Board) Score(m *chess.Move, fn func() int) int {
	defer b.Enter(m).Leave()
	return fn()
}

// Counters returns the halfmove clock and fullmove number of pos.
func Counters(pos *chess.Position) (halfmove, fullmove int) {
	fields := fenFields(pos)
	fullmove = 1
	if len(fields) > 4 {
		halfmove, _ = strconv.Atoi(fields[4])
	}
	if len(fields) > 5 {
		if n, err := strconv.Atoi(fields[5]); err == nil && n > 0 {
			fullmove = n
		}
	}
	return halfmove, fullmove
}

// Ply converts the fullmove counter of pos into half-moves played.
func Ply(pos *chess.Position) int {
	_, fullmove := Counters(pos)
	ply := 2 * (fullmove - 1)
	if pos.Turn() == chess.Black {
		ply++
	}
	return ply
}

func fenFields(pos *chess.Position) []string {
	return strings.Fields(pos.String())
}

// positionKey identifies a position for repetition: placement, side to move,
// castling rights and en passant square.
func positionKey(pos *chess.Position) string {
	fields := fenFields(pos)
	if len(fields) > 4 {
		fields = fields[:4]
	}
	return strings.Join(fields, " ")
}
