// Package terminal hosts the particle animator on a tcell screen. Particles
// move in a virtual pixel space that maps onto character cells.
package terminal

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/goliatone/go-promoform/pkg/particles"
)

// Default virtual pixel size of one character cell.
const (
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
)

const (
	dotRune  = '●'
	glowRune = '·'
)

// Canvas renders onto a tcell screen. tcell has no alpha channel, so colours
// are blended over the current background before being set.
type Canvas struct {
	screen tcell.Screen
	cellW  float64
	cellH  float64
	bg     colorful.Color
}

var (
	_ particles.Canvas    = (*Canvas)(nil)
	_ particles.Presenter = (*Canvas)(nil)
)

// NewCanvas wraps screen using the default cell size.
func NewCanvas(screen tcell.Screen) *Canvas {
	return &Canvas{
		screen: screen,
		cellW:  DefaultCellWidth,
		cellH:  DefaultCellHeight,
	}
}

// Viewport returns the virtual size covered by the screen.
func (c *Canvas) Viewport() (width, height float64) {
	cols, rows := c.screen.Size()
	return float64(cols) * c.cellW, float64(rows) * c.cellH
}

func (c *Canvas) Clear(bg color.NRGBA) {
	c.bg = blend(colorful.Color{}, bg)
	c.screen.Clear()
	if bg.A == 0 {
		return
	}
	style := tcell.StyleDefault.Background(toTcell(c.bg))
	cols, rows := c.screen.Size()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// StrokeLine rasterises the segment with Bresenham's algorithm. The rune
// follows the segment's slope.
func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.NRGBA) {
	if width <= 0 || clr.A == 0 {
		return
	}
	cx0, cy0 := c.cell(x0, y0)
	cx1, cy1 := c.cell(x1, y1)
	r := lineRune(x1-x0, y1-y0)
	style := c.style(clr)

	dx := abs(cx1 - cx0)
	dy := -abs(cy1 - cy0)
	sx, sy := 1, 1
	if cx0 > cx1 {
		sx = -1
	}
	if cy0 > cy1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.set(cx0, cy0, r, style)
		if cx0 == cx1 && cy0 == cy1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			cx0 += sx
		}
		if e2 <= dx {
			e += dx
			cy0 += sy
		}
	}
}

// FillDisk draws the dot in its cell. A glow wider than half a cell lights the
// horizontal neighbours when they are empty.
func (c *Canvas) FillDisk(x, y, radius, glow float64, clr color.NRGBA) {
	if radius <= 0 || clr.A == 0 {
		return
	}
	cx, cy := c.cell(x, y)
	if glow-radius >= c.cellW/2 {
		halo := c.style(particles.ScaleAlpha(clr, 0.5))
		for _, nx := range []int{cx - 1, cx + 1} {
			if primary, _, _, _ := c.content(nx, cy); primary == ' ' || primary == 0 {
				c.set(nx, cy, glowRune, halo)
			}
		}
	}
	c.set(cx, cy, dotRune, c.style(clr))
}

// Present flushes the frame to the terminal.
func (c *Canvas) Present() {
	c.screen.Show()
}

func (c *Canvas) cell(x, y float64) (int, int) {
	return int(math.Floor(x / c.cellW)), int(math.Floor(y / c.cellH))
}

func (c *Canvas) set(x, y int, r rune, style tcell.Style) {
	cols, rows := c.screen.Size()
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return
	}
	c.screen.SetContent(x, y, r, nil, style)
}

func (c *Canvas) content(x, y int) (rune, []rune, tcell.Style, int) {
	cols, rows := c.screen.Size()
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return -1, nil, tcell.StyleDefault, 0
	}
	return c.screen.GetContent(x, y)
}

func (c *Canvas) style(clr color.NRGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(toTcell(blend(c.bg, clr))).Background(toTcell(c.bg))
}

func blend(bg colorful.Color, clr color.NRGBA) colorful.Color {
	fg := colorful.Color{R: float64(clr.R) / 255, G: float64(clr.G) / 255, B: float64(clr.B) / 255}
	return bg.BlendRgb(fg, float64(clr.A)/255)
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func lineRune(dx, dy float64) rune {
	adx, ady := math.Abs(dx), math.Abs(dy)
	switch {
	case ady*2 < adx:
		return '-'
	case adx*2 < ady:
		return '|'
	case (dx > 0) == (dy > 0):
		return '\\'
	default:
		return '/'
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
