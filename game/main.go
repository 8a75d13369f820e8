package main

import (
	"fmt"
	"image/color"
	"os"
	"strings"
	"sync"
	"time"

	"chessbot/bots"
	"chessbot/config"
	"chessbot/rules"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/notnil/chess"
	"github.com/rs/zerolog"
)

const (
	squareSize   = 80
	boardOffsetX = 40
	boardOffsetY = 60
	screenWidth  = squareSize*8 + 2*boardOffsetX
	screenHeight = squareSize*8 + boardOffsetY + 60

	btnWidth  = 200
	btnHeight = 60

	botDelay = 300 * time.Millisecond
)

var (
	lightSquare = color.RGBA{240, 217, 181, 255}
	darkSquare  = color.RGBA{181, 136, 99, 255}
	whiteMan    = color.RGBA{200, 70, 60, 255}
	blackMan    = color.RGBA{40, 40, 40, 255}
	highlight   = color.RGBA{120, 170, 90, 160}
)

var pieceLetters = map[chess.PieceType]string{
	chess.King:   "K",
	chess.Queen:  "Q",
	chess.Rook:   "R",
	chess.Bishop: "B",
	chess.Knight: "N",
	chess.Pawn:   "P",
}

// decider is implemented by bots that can explain their move.
type decider interface {
	Decide(b *rules.Board) (bots.Decision, error)
}

type Game struct {
	mu           sync.Mutex
	chessGame    *chess.Game
	glyphs       map[chess.Piece]*ebiten.Image
	selected     chess.Square
	dragging     *chess.Piece
	dragX, dragY int
	playerColor  chess.Color
	gameStarted  bool
	botThinking  bool
	bots         []bots.ChessBot
	currentBot   int
	lastReply    string
	logger       zerolog.Logger
}

func NewGame(depth int, logger zerolog.Logger) *Game {
	g := &Game{
		glyphs: make(map[chess.Piece]*ebiten.Image),
		bots: []bots.ChessBot{
			bots.NewCascadeBot(bots.WithDepth(depth), bots.WithLogger(logger)),
			bots.NewMinimaxBot(depth, nil),
			bots.NewRandomBot(nil),
		},
		logger: logger,
	}
	g.buildGlyphs()
	return g
}

// buildGlyphs renders every piece as a coloured disc with its letter, scaled
// up from the debug font.
func (g *Game) buildGlyphs() {
	for pt, letter := range pieceLetters {
		for _, c := range []chess.Color{chess.White, chess.Black} {
			piece := pieceOf(c, pt)
			fill := whiteMan
			if c == chess.Black {
				fill = blackMan
			}

			img := ebiten.NewImage(squareSize, squareSize)
			vector.DrawFilledCircle(img, squareSize/2, squareSize/2, squareSize*0.4, fill, true)

			text := ebiten.NewImage(8, 16)
			ebitenutil.DebugPrint(text, letter)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(3, 3)
			op.GeoM.Translate(squareSize/2-9, squareSize/2-24)
			img.DrawImage(text, op)

			g.glyphs[piece] = img
		}
	}
}

func pieceOf(c chess.Color, pt chess.PieceType) chess.Piece {
	for _, p := range allPieces {
		if p.Color() == c && p.Type() == pt {
			return p
		}
	}
	return chess.NoPiece
}

var allPieces = []chess.Piece{
	chess.WhiteKing, chess.WhiteQueen, chess.WhiteRook, chess.WhiteBishop, chess.WhiteKnight, chess.WhitePawn,
	chess.BlackKing, chess.BlackQueen, chess.BlackRook, chess.BlackBishop, chess.BlackKnight, chess.BlackPawn,
}

func (g *Game) Update() error {
	if !g.gameStarted {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			x, y := ebiten.CursorPosition()
			btnY := screenHeight/2 + 40
			if y > btnY && y < btnY+btnHeight {
				if x > screenWidth/2-btnWidth-20 && x < screenWidth/2-20 {
					g.startGame(chess.White)
				} else if x > screenWidth/2+20 && x < screenWidth/2+20+btnWidth {
					g.startGame(chess.Black)
				}
			}
		}
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.currentBot = (g.currentBot + 1) % len(g.bots)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && !g.botThinking {
		g.gameStarted = false
		return nil
	}

	myTurn := g.chessGame.Position().Turn() == g.playerColor
	if myTurn && !g.botThinking {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			if sq, ok := squareAt(ebiten.CursorPosition()); ok {
				piece := g.chessGame.Position().Board().Piece(sq)
				if piece != chess.NoPiece && piece.Color() == g.playerColor {
					g.selected = sq
					g.dragging = &piece
				}
			}
		}
		if g.dragging != nil {
			g.dragX, g.dragY = ebiten.CursorPosition()
		}
		if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && g.dragging != nil {
			if target, ok := squareAt(ebiten.CursorPosition()); ok {
				if move := findMove(g.chessGame, g.selected, target); move != nil {
					if err := g.chessGame.Move(move); err != nil {
						g.logger.Warn().Err(err).Msg("player move rejected")
					}
				}
			}
			g.selected = 0
			g.dragging = nil
		}
	}

	if !g.botThinking && g.chessGame.Position().Turn() != g.playerColor && g.chessGame.Outcome() == chess.NoOutcome {
		g.botThinking = true
		go func() {
			time.Sleep(botDelay)
			g.makeBotMove()
		}()
	}
	return nil
}

func (g *Game) startGame(c chess.Color) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.chessGame = chess.NewGame()
	g.playerColor = c
	g.lastReply = ""
	g.gameStarted = true
}

func (g *Game) makeBotMove() {
	g.mu.Lock()
	game := g.chessGame
	bot := g.bots[g.currentBot]
	g.mu.Unlock()

	// the search runs without the lock; positions are immutable
	var (
		move  *chess.Move
		reply string
	)
	if d, ok := bot.(decider); ok {
		decision, err := d.Decide(rules.FromGame(game))
		if err == nil {
			move = decision.Move
			reply = string(decision.Rationale)
		}
	} else {
		move = bot.BestMove(game)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.botThinking = false
	if move == nil || game != g.chessGame {
		return
	}
	san := rules.SAN(game.Position(), move)
	if err := game.Move(move); err != nil {
		g.logger.Error().Err(err).Str("move", san).Msg("bot move rejected")
		return
	}
	g.lastReply = strings.TrimSpace(fmt.Sprintf("%s %s", san, reply))
}

func squareAt(x, y int) (chess.Square, bool) {
	x -= boardOffsetX
	y -= boardOffsetY
	if x < 0 || x >= squareSize*8 || y < 0 || y >= squareSize*8 {
		return 0, false
	}
	file := x / squareSize
	rank := 7 - y/squareSize
	return chess.Square(file + rank*8), true
}

func findMove(game *chess.Game, from, to chess.Square) *chess.Move {
	for _, m := range game.ValidMoves() {
		if m.S1() == from && m.S2() == to {
			// always queen
			if m.Promo() != chess.NoPieceType && m.Promo() != chess.Queen {
				continue
			}
			return m
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if !g.gameStarted {
		g.drawMenu(screen)
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			clr := lightSquare
			if (x+y)%2 == 1 {
				clr = darkSquare
			}
			vector.DrawFilledRect(screen, float32(x*squareSize+boardOffsetX), float32(y*squareSize+boardOffsetY),
				squareSize, squareSize, clr, false)
		}
	}

	if g.dragging != nil {
		x, y := int(g.selected.File()), 7-int(g.selected.Rank())
		vector.DrawFilledRect(screen, float32(x*squareSize+boardOffsetX), float32(y*squareSize+boardOffsetY),
			squareSize, squareSize, highlight, false)
	}

	board := g.chessGame.Position().Board()
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			sq := chess.Square(x + (7-y)*8)
			piece := board.Piece(sq)
			if piece == chess.NoPiece || (g.dragging != nil && sq == g.selected) {
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(x*squareSize+boardOffsetX), float64(y*squareSize+boardOffsetY))
			screen.DrawImage(g.glyphs[piece], op)
		}
	}

	if g.dragging != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(g.dragX-squareSize/2), float64(g.dragY-squareSize/2))
		screen.DrawImage(g.glyphs[*g.dragging], op)
	}

	status := rules.FromGame(g.chessGame).StatusText()
	if g.botThinking {
		status = "Bot is thinking..."
	}
	ebitenutil.DebugPrintAt(screen, status, boardOffsetX, 20)
	if g.lastReply != "" {
		ebitenutil.DebugPrintAt(screen, "Bot played "+g.lastReply, screenWidth/2, 20)
	}
	ebitenutil.DebugPrintAt(screen, "Bot: "+g.bots[g.currentBot].Name()+"  [B] switch  [R] new game",
		boardOffsetX, screenHeight-40)
}

func (g *Game) drawMenu(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, "Chess against the cascade", screenWidth/2-75, screenHeight/2-50)
	ebitenutil.DebugPrintAt(screen, "Choose your colour:", screenWidth/2-55, screenHeight/2)

	btnY := float32(screenHeight/2 + 40)
	vector.DrawFilledRect(screen, float32(screenWidth/2-btnWidth-20), btnY, btnWidth, btnHeight, color.RGBA{200, 200, 200, 255}, false)
	ebitenutil.DebugPrintAt(screen, "Play white", screenWidth/2-btnWidth+40, int(btnY)+22)
	vector.DrawFilledRect(screen, float32(screenWidth/2+20), btnY, btnWidth, btnHeight, color.RGBA{50, 50, 50, 255}, false)
	ebitenutil.DebugPrintAt(screen, "Play black", screenWidth/2+80, int(btnY)+22)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger, err := cfg.Logs.Logger(os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	game := NewGame(cfg.Engine.Depth, logger)
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("chessbot")
	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal().Err(err).Msg("game loop stopped")
	}
}
