package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	promoform "github.com/goliatone/go-promoform"
	"github.com/goliatone/go-promoform/pkg/config"
	"github.com/goliatone/go-promoform/pkg/render"
	"github.com/goliatone/go-promoform/pkg/renderers/tui"
	"github.com/goliatone/go-promoform/pkg/renderers/vanilla"
)

func main() {
	configPath := flag.String("config", "", "JSON or YAML config file")
	rendererName := flag.String("renderer", "tui", "renderer: tui prompts for an entry, vanilla prints the HTML page")
	action := flag.String("action", "/", "form action used by the vanilla renderer")
	format := flag.String("format", "pretty", "output format: json, form or pretty")
	output := flag.String("output", "", "output file (stdout if empty)")
	confirm := flag.Bool("confirm", true, "ask before submitting")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := cfg.Log.NewLogger(os.Stderr)

	prompts, err := tui.New(
		tui.WithOutputFormat(tui.OutputFormat(*format)),
		tui.WithConfirmSubmit(*confirm),
		tui.WithFormOptions(promoform.FormOptions(cfg, logger)...),
		tui.WithTheme(tui.Theme{ErrorPrefix: "✗ ", InfoPrefix: "› "}),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("configure prompts")
	}
	page, err := vanilla.New(vanilla.WithDefaultStyles())
	if err != nil {
		logger.Fatal().Err(err).Msg("configure page renderer")
	}
	registry, err := render.NewRegistry(prompts, page)
	if err != nil {
		logger.Fatal().Err(err).Msg("register renderers")
	}
	renderer, err := registry.Get(*rendererName)
	if err != nil {
		logger.Fatal().Err(err).Msg("select renderer")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out, err := renderer.Render(ctx, render.DefaultPage(*action), render.RenderOptions{})
	if err != nil {
		if errors.Is(err, tui.ErrAborted) {
			fmt.Fprintln(os.Stderr, "aborted")
			os.Exit(130)
		}
		logger.Fatal().Err(err).Msg("render failed")
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			logger.Fatal().Err(err).Msg("write output")
		}
		fmt.Printf("%s output written to %s\n", renderer.Name(), *output)
		return
	}
	fmt.Println(string(out))
}
