// Package store keeps a game between runs: the current position as a FEN
// file and the moves played as a PGN file.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/notnil/chess"
)

type Store struct {
	StatePath string
	PGNPath   string
}

func New(statePath, pgnPath string) *Store {
	return &Store{StatePath: statePath, PGNPath: pgnPath}
}

// Load restores the saved game. A missing or empty state file starts a new
// game. The PGN history is replayed when it leads to the saved position, so
// repetitions survive a restart; otherwise the game starts from the FEN alone.
func (s *Store) Load() (*chess.Game, error) {
	fen, err := readTrimmed(s.StatePath)
	if err != nil {
		return nil, fmt.Errorf("reading state: %w", err)
	}
	if fen == "" {
		return chess.NewGame(), nil
	}

	if g := s.replay(fen); g != nil {
		return g, nil
	}

	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parsing state %s: %w", s.StatePath, err)
	}
	return chess.NewGame(opt), nil
}

func (s *Store) replay(fen string) *chess.Game {
	if s.PGNPath == "" {
		return nil
	}
	data, err := os.ReadFile(s.PGNPath)
	if err != nil || len(data) == 0 {
		return nil
	}
	g := chess.NewGame()
	if err := g.UnmarshalText(data); err != nil {
		return nil
	}
	if g.FEN() != fen {
		return nil
	}
	return g
}

// Save writes the current position and the game record.
func (s *Store) Save(g *chess.Game) error {
	if err := os.WriteFile(s.StatePath, []byte(g.FEN()+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	if s.PGNPath == "" {
		return nil
	}
	if start := g.Positions()[0]; start.String() != chess.StartingPosition().String() {
		g.AddTagPair("SetUp", "1")
		g.AddTagPair("FEN", start.String())
	}
	pgn, err := g.MarshalText()
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if err := os.WriteFile(s.PGNPath, pgn, 0o644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}

// Reset starts a new game and clears the history.
func (s *Store) Reset() (*chess.Game, error) {
	g := chess.NewGame()
	if err := os.WriteFile(s.StatePath, []byte(g.FEN()+"\n"), 0o644); err != nil {
		return nil, fmt.Errorf("writing state: %w", err)
	}
	if s.PGNPath != "" {
		if err := os.WriteFile(s.PGNPath, nil, 0o644); err != nil {
			return nil, fmt.Errorf("clearing history: %w", err)
		}
	}
	return g, nil
}

func readTrimmed(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
