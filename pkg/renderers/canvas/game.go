package canvas

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-promoform/pkg/particles"
)

// Game adapts an Animator to ebiten.Game. The first Layout call mounts the
// animator at the window size and later size changes resize it.
type Game struct {
	animator *particles.Animator
	canvas   *Canvas
	logger   zerolog.Logger
	quit     func() bool
	stopped  atomic.Bool
	width    int
	height   int
}

var _ ebiten.Game = (*Game)(nil)

// GameOption configures a Game.
type GameOption func(*Game)

// WithGameLogger sets the logger used for frame errors.
func WithGameLogger(logger zerolog.Logger) GameOption {
	return func(g *Game) {
		g.logger = logger
	}
}

// WithQuitFunc overrides the key check that ends the game. It is polled once
// per Update.
func WithQuitFunc(fn func() bool) GameOption {
	return func(g *Game) {
		if fn != nil {
			g.quit = fn
		}
	}
}

// NewGame wraps animator. The animator must not be mounted yet.
func NewGame(animator *particles.Animator, options ...GameOption) (*Game, error) {
	if animator == nil {
		return nil, errors.New("canvas: animator is nil")
	}
	g := &Game{
		animator: animator,
		canvas:   NewCanvas(),
		logger:   zerolog.Nop(),
		quit:     quitKeyPressed,
	}
	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}
	return g, nil
}

// Stop asks the game to tear down on its next Update. Safe to call from any
// goroutine.
func (g *Game) Stop() {
	g.stopped.Store(true)
}

// Update steps the animation. It returns ebiten.Termination once the game was
// stopped or a quit key was pressed, tearing the animator down first.
func (g *Game) Update() error {
	if g.stopped.Load() || g.quit() {
		g.animator.Teardown()
		return ebiten.Termination
	}
	if g.animator.State() != particles.StateRunning {
		return nil
	}
	return g.animator.Step()
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.animator.State() != particles.StateRunning {
		return
	}
	g.canvas.SetTarget(screen)
	if err := g.animator.Draw(g.canvas); err != nil {
		g.logger.Error().Err(err).Msg("particles draw failed")
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return max(outsideWidth, 1), max(outsideHeight, 1)
	}
	if outsideWidth == g.width && outsideHeight == g.height {
		return outsideWidth, outsideHeight
	}
	g.width, g.height = outsideWidth, outsideHeight

	w, h := float64(outsideWidth), float64(outsideHeight)
	var err error
	switch g.animator.State() {
	case particles.StateRunning:
		err = g.animator.Resize(w, h)
	case particles.StateUninitialized:
		err = g.animator.Mount(w, h)
	}
	if err != nil {
		g.logger.Error().Err(err).Int("width", outsideWidth).Int("height", outsideHeight).Msg("particles layout failed")
	}
	return outsideWidth, outsideHeight
}

// WindowConfig describes the host window.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	// TPS sets ebiten's update rate, which is the animation frame rate.
	TPS int
}

// Run opens a resizable window and blocks until the game ends or ctx is done.
func Run(ctx context.Context, game *Game, window WindowConfig) error {
	if game == nil {
		return errors.New("canvas: game is nil")
	}
	if window.Width > 0 && window.Height > 0 {
		ebiten.SetWindowSize(window.Width, window.Height)
	}
	if window.Title != "" {
		ebiten.SetWindowTitle(window.Title)
	}
	if window.TPS > 0 {
		ebiten.SetTPS(window.TPS)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			game.Stop()
		case <-done:
		}
	}()

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func quitKeyPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ)
}
