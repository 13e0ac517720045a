package canvas

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/goliatone/go-promoform/pkg/particles"
)

// GlowAlpha is the alpha factor applied to the halo drawn behind each dot.
const GlowAlpha = 0.25

// Canvas draws onto an ebiten image. The target is swapped each frame by Game.
type Canvas struct {
	target    *ebiten.Image
	antialias bool
}

var _ particles.Canvas = (*Canvas)(nil)

// NewCanvas returns a canvas with antialiasing enabled.
func NewCanvas() *Canvas {
	return &Canvas{antialias: true}
}

// SetTarget selects the image subsequent calls draw onto.
func (c *Canvas) SetTarget(img *ebiten.Image) {
	c.target = img
}

func (c *Canvas) Clear(bg color.NRGBA) {
	if c.target == nil {
		return
	}
	if bg.A == 0 {
		c.target.Clear()
		return
	}
	c.target.Fill(bg)
}

func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.NRGBA) {
	if c.target == nil || width <= 0 || clr.A == 0 {
		return
	}
	vector.StrokeLine(c.target, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), clr, c.antialias)
}

// FillDisk approximates the blurred glow with a translucent halo disk under
// the dot.
func (c *Canvas) FillDisk(x, y, radius, glow float64, clr color.NRGBA) {
	if c.target == nil || radius <= 0 {
		return
	}
	if glow > radius {
		vector.DrawFilledCircle(c.target, float32(x), float32(y), float32(glow), particles.ScaleAlpha(clr, GlowAlpha), c.antialias)
	}
	vector.DrawFilledCircle(c.target, float32(x), float32(y), float32(radius), clr, c.antialias)
}
