package terminal

import (
	"context"
	"image/color"
	"math/rand"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/goliatone/go-promoform/pkg/particles"
)

func newSimScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func TestCanvas_Viewport(t *testing.T) {
	screen := newSimScreen(t, 40, 12)
	w, h := NewCanvas(screen).Viewport()
	if w != 320 || h != 192 {
		t.Fatalf("expected 320x192, got %gx%g", w, h)
	}
}

func TestCanvas_StrokeLineHorizontal(t *testing.T) {
	screen := newSimScreen(t, 10, 3)
	c := NewCanvas(screen)
	c.Clear(color.NRGBA{})

	c.StrokeLine(4, 20, 76, 20, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	for x := 0; x <= 9; x++ {
		if got := runeAt(screen, x, 1); got != '-' {
			t.Fatalf("cell %d: expected '-', got %q", x, got)
		}
	}
	if got := runeAt(screen, 0, 0); got == '-' {
		t.Fatalf("line leaked into row 0")
	}
}

func TestCanvas_StrokeLineSkipsZeroWidth(t *testing.T) {
	screen := newSimScreen(t, 10, 3)
	c := NewCanvas(screen)
	c.Clear(color.NRGBA{})

	c.StrokeLine(4, 20, 76, 20, 0, color.NRGBA{A: 255})
	if got := runeAt(screen, 3, 1); got == '-' {
		t.Fatalf("expected zero-width line to be skipped")
	}
}

func TestCanvas_FillDiskWithGlow(t *testing.T) {
	screen := newSimScreen(t, 10, 3)
	c := NewCanvas(screen)
	c.Clear(color.NRGBA{})

	c.FillDisk(44, 20, 2.5, 8, color.NRGBA{R: 62, G: 198, B: 224, A: 179})

	if got := runeAt(screen, 5, 1); got != dotRune {
		t.Fatalf("expected dot at (5,1), got %q", got)
	}
	if runeAt(screen, 4, 1) != glowRune || runeAt(screen, 6, 1) != glowRune {
		t.Fatalf("expected glow on both sides")
	}

	c.FillDisk(-50, -50, 2.5, 8, color.NRGBA{A: 255})
}

func TestBlendOverBackground(t *testing.T) {
	got := toTcell(blend(colorfulBlack(), color.NRGBA{R: 255, G: 255, B: 255, A: 0}))
	if got != tcell.NewRGBColor(0, 0, 0) {
		t.Fatalf("expected fully transparent colour to keep the background, got %v", got)
	}
	got = toTcell(blend(colorfulBlack(), color.NRGBA{R: 255, G: 0, B: 0, A: 255}))
	if got != tcell.NewRGBColor(255, 0, 0) {
		t.Fatalf("expected opaque colour unchanged, got %v", got)
	}
}

func TestHost_RunAnimatesUntilCancelled(t *testing.T) {
	screen := newSimScreen(t, 40, 12)
	animator, err := particles.New(particles.DefaultConfig(), particles.WithRand(rand.New(rand.NewSource(3))))
	if err != nil {
		t.Fatalf("new animator: %v", err)
	}
	host, err := NewHost(screen, animator, WithFrameRate(120))
	if err != nil {
		t.Fatalf("new host: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	if err := host.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}

	if animator.State() != particles.StateTornDown {
		t.Fatalf("expected torn down after run, got %s", animator.State())
	}

	cells, _, _ := screen.GetContents()
	dots := 0
	for _, cell := range cells {
		if len(cell.Runes) > 0 && cell.Runes[0] == dotRune {
			dots++
		}
	}
	if dots == 0 {
		t.Fatalf("expected at least one frame with particles on screen")
	}
}

func TestHost_QuitKey(t *testing.T) {
	screen := newSimScreen(t, 40, 12)
	animator, _ := particles.New(particles.DefaultConfig())
	host, _ := NewHost(screen, animator)

	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := host.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if ctx.Err() != nil {
		t.Fatalf("expected the quit key to end the run before the deadline")
	}
	if animator.State() != particles.StateTornDown {
		t.Fatalf("expected torn down, got %s", animator.State())
	}
}

func TestHost_ResizeUpdatesBounds(t *testing.T) {
	screen := newSimScreen(t, 40, 12)
	animator, _ := particles.New(particles.DefaultConfig())
	host, _ := NewHost(screen, animator, WithFrameRate(120))

	go func() {
		time.Sleep(50 * time.Millisecond)
		screen.SetSize(60, 20)
		_ = screen.PostEvent(tcell.NewEventResize(60, 20))
		screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := host.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if ctx.Err() != nil {
		t.Fatalf("expected q to end the run before the deadline")
	}

	width, height := animator.Bounds()
	if width != 60*DefaultCellWidth || height != 20*DefaultCellHeight {
		t.Fatalf("expected bounds 480x320, got %gx%g", width, height)
	}
}

func TestNewHost_RequiresScreenAndAnimator(t *testing.T) {
	if _, err := NewHost(nil, nil); err == nil {
		t.Fatalf("expected error")
	}
}

func colorfulBlack() colorful.Color {
	return colorful.Color{}
}
