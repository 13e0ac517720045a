// Package canvas hosts the particle animator in an ebiten window. Game maps
// ebiten's Update/Draw/Layout cycle onto Step/Draw/Resize, so the window's
// refresh rate drives the animation.
package canvas
