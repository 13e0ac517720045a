package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-promoform"
	"github.com/goliatone/go-promoform/pkg/config"
)

func main() {
	var (
		configPath    = flag.String("config", "", "JSON or YAML config file")
		addrFlag      = flag.String("addr", "", "listen address (overrides config)")
		shutdownGrace = flag.Duration("grace", 5*time.Second, "Shutdown grace period")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLogger := config.Default().Log.NewLogger(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("load config")
	}
	if *addrFlag != "" {
		cfg.Addr = *addrFlag
	}
	logger := cfg.Log.NewLogger(os.Stderr)

	component, err := promoform.NewComponent(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("configure entry form")
	}

	mux := http.NewServeMux()
	routes, err := component.RegisterRoutes(mux, cfg.BasePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("register routes")
	}
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info().Str("addr", cfg.Addr).Str("page", routes.Page).Str("mask", routes.Mask).Msg("listening")

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errChan:
		logger.Fatal().Err(err).Msg("listen")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), *shutdownGrace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}
