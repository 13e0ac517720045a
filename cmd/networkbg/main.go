package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-promoform"
	"github.com/goliatone/go-promoform/pkg/config"
	"github.com/goliatone/go-promoform/pkg/renderers/canvas"
	"github.com/goliatone/go-promoform/pkg/renderers/terminal"
)

func main() {
	configPath := flag.String("config", "", "JSON or YAML config file")
	inTerminal := flag.Bool("terminal", false, "render in the terminal instead of a window")
	width := flag.Int("width", 1280, "initial window width")
	height := flag.Int("height", 720, "initial window height")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *inTerminal {
		if err := runTerminal(ctx, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "networkbg: %v\n", err)
			os.Exit(1)
		}
		return
	}

	logger := cfg.Log.NewLogger(os.Stderr)
	animator, err := promoform.NewAnimator(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("configure particles")
	}
	game, err := canvas.NewGame(animator, canvas.WithGameLogger(logger))
	if err != nil {
		logger.Fatal().Err(err).Msg("configure window")
	}
	if err := canvas.Run(ctx, game, canvas.WindowConfig{
		Title:  "Spidr network",
		Width:  *width,
		Height: *height,
		TPS:    cfg.Particles.FrameRate,
	}); err != nil {
		logger.Fatal().Err(err).Msg("run window")
	}
}

// runTerminal disables logging while the screen is active; errors are
// reported after the screen is released.
func runTerminal(ctx context.Context, cfg config.Config) error {
	logger := zerolog.Nop()

	animator, err := promoform.NewAnimator(cfg, logger)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	host, err := terminal.NewHost(screen, animator,
		terminal.WithFrameRate(cfg.Particles.FrameRate),
		terminal.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	return host.Run(ctx)
}
