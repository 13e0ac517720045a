package terminal

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-promoform/pkg/particles"
)

// Host drives an animator on a tcell screen. Frames and screen events both run
// on a particles.Loop.
type Host struct {
	screen   tcell.Screen
	animator *particles.Animator
	canvas   *Canvas
	loop     *particles.Loop
	logger   zerolog.Logger
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithFrameRate overrides particles.DefaultFrameRate.
func WithFrameRate(fps int) HostOption {
	return func(h *Host) {
		if fps > 0 {
			h.loop = particles.NewLoop(fps)
		}
	}
}

// WithLogger sets the host logger.
func WithLogger(logger zerolog.Logger) HostOption {
	return func(h *Host) {
		h.logger = logger
	}
}

// NewHost binds animator to an initialised screen. The caller owns the screen
// and must call Fini on it.
func NewHost(screen tcell.Screen, animator *particles.Animator, options ...HostOption) (*Host, error) {
	if screen == nil || animator == nil {
		return nil, errors.New("terminal: screen and animator are required")
	}
	h := &Host{
		screen:   screen,
		animator: animator,
		canvas:   NewCanvas(screen),
		loop:     particles.NewLoop(particles.DefaultFrameRate),
		logger:   zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(h)
		}
	}
	return h, nil
}

// Canvas exposes the canvas the host draws on.
func (h *Host) Canvas() *Canvas {
	return h.canvas
}

// Run mounts the animator at the screen's viewport and animates until ctx is
// done or Escape, Ctrl+C or q is pressed. Screen events are queued on the
// loop as frame callbacks, so the animator is only touched from the goroutine
// running the loop. The animator is torn down before Run returns.
func (h *Host) Run(ctx context.Context) error {
	width, height := h.canvas.Viewport()
	if err := h.animator.Mount(width, height); err != nil {
		return fmt.Errorf("terminal: mount: %w", err)
	}
	defer h.animator.Teardown()

	if err := h.animator.Start(h.loop, h.canvas); err != nil {
		return fmt.Errorf("terminal: start: %w", err)
	}
	h.logger.Debug().Float64("width", width).Float64("height", height).Msg("particles mounted")

	runCtx, quit := context.WithCancel(ctx)
	defer quit()

	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil || runCtx.Err() != nil {
				return
			}
			h.loop.RequestFrame(func() {
				if !h.handleEvent(ev) {
					quit()
				}
			})
		}
	}()

	// Loop.Run only reports runCtx ending, which is how every run finishes.
	_ = h.loop.Run(runCtx)
	return nil
}

func (h *Host) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
	case *tcell.EventResize:
		h.screen.Sync()
		width, height := h.canvas.Viewport()
		if err := h.animator.Resize(width, height); err != nil {
			h.logger.Warn().Err(err).Msg("particles resize ignored")
		}
	}
	return true
}
