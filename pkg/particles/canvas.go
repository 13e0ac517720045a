package particles

import "image/color"

// Canvas is the drawing surface the animator renders onto. Coordinates are in
// viewport units, the same space particles move in.
type Canvas interface {
	// Clear wipes the surface and fills it with bg.
	Clear(bg color.NRGBA)
	// StrokeLine draws a line segment of the given width.
	StrokeLine(x0, y0, x1, y1, width float64, clr color.NRGBA)
	// FillDisk draws a filled disk with a halo of the given glow radius.
	FillDisk(x, y, radius, glow float64, clr color.NRGBA)
}

// Presenter is implemented by canvases that buffer drawing and need an
// explicit flush once a frame is complete.
type Presenter interface {
	Present()
}

// ScaleAlpha returns clr with its alpha multiplied by factor, clamped to [0,1].
func ScaleAlpha(clr color.NRGBA, factor float64) color.NRGBA {
	if factor <= 0 {
		clr.A = 0
		return clr
	}
	if factor >= 1 {
		return clr
	}
	clr.A = uint8(float64(clr.A)*factor + 0.5)
	return clr
}
