package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	// this will automatically load your .env file:
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
)

const (
	DefaultStateFile = "game_state.fen"
	DefaultPGNFile   = "game_history.pgn"
	DefaultDepth     = 3
)

type Config struct {
	Logs   LogConfig
	Engine EngineConfig
	Files  FileConfig
}

type LogConfig struct {
	Style string
	Level string
}

type EngineConfig struct {
	Depth int
}

type FileConfig struct {
	State string // FEN of the game in progress
	PGN   string
}

func LoadConfig() (*Config, error) {
	depth := DefaultDepth
	if raw := os.Getenv("ENGINE_DEPTH"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("converting ENGINE_DEPTH: %w", err)
		}
		if n < 1 {
			return nil, fmt.Errorf("ENGINE_DEPTH must be at least 1, got %d", n)
		}
		depth = n
	}

	cfg := &Config{
		Logs: LogConfig{
			Style: os.Getenv("LOG_STYLE"),
			Level: os.Getenv("LOG_LEVEL"),
		},
		Engine: EngineConfig{
			Depth: depth,
		},
		Files: FileConfig{
			State: getenv("STATE_FILE", DefaultStateFile),
			PGN:   getenv("PGN_FILE", DefaultPGNFile),
		},
	}

	return cfg, nil
}

// Logger builds a logger writing to w. Style "console" gives human readable
// output, anything else JSON lines.
func (c LogConfig) Logger(w io.Writer) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if c.Level != "" {
		l, err := zerolog.ParseLevel(strings.ToLower(c.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("parsing LOG_LEVEL: %w", err)
		}
		level = l
	}

	if strings.EqualFold(c.Style, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
