// Package surface defines the drawable 2D surface the test card paints on,
// together with the in-process implementations used by the hosts.
//
// A surface has two sizes: the rendered size is what the host lays out on
// screen (fractional, owned by the host), the backing size is the pixel grid
// drawing happens in. Renderers read the former and write the latter so that
// drawing coordinates map 1:1 onto visible pixels.
package surface

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Surface is the canvas-style drawing capability consumed by the renderer
type Surface interface {
	// RenderedSize returns the displayed width and height in layout units
	RenderedSize() (width, height float64)
	// SetBackingSize resizes the pixel store; contents are cleared
	SetBackingSize(width, height int)

	SetFillStyle(c colorful.Color)
	SetStrokeStyle(c colorful.Color)
	SetLineWidth(w float64)

	FillRect(x, y, w, h float64)
	// StrokeRect strokes the rectangle outline, the stroke straddles the bounds
	StrokeRect(x, y, w, h float64)

	BeginPath()
	// Arc appends a circular arc to the current path, angles in radians
	Arc(x, y, radius, startAngle, endAngle float64)
	// Stroke strokes the current path with the current stroke style and width
	Stroke()
}
