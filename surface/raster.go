package surface

import (
	"image"
	"io"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Raster is an in-memory Surface backed by a gg context.
// The host owns the rendered size and updates it on layout changes.
type Raster struct {
	dc *gg.Context

	renderedW, renderedH float64

	fill   colorful.Color
	stroke colorful.Color
	line   float64

	// current path; gg consumes its own path on every fill or stroke, so the
	// canvas path is kept here and replayed
	path []arc
}

type arc struct {
	x, y, radius, start, end float64
}

// NewRaster creates a raster whose rendered size is width x height.
// The backing store starts at 1x1 until a renderer sizes it.
func NewRaster(width, height float64) *Raster {
	return &Raster{
		dc:        gg.NewContext(1, 1),
		renderedW: width,
		renderedH: height,
		line:      1,
	}
}

// SetRenderedSize updates the layout size reported to renderers
func (r *Raster) SetRenderedSize(width, height float64) {
	r.renderedW = width
	r.renderedH = height
}

func (r *Raster) RenderedSize() (float64, float64) {
	return r.renderedW, r.renderedH
}

// SetBackingSize replaces the pixel store. Like a canvas, resizing resets
// the drawing state as well as the pixels.
func (r *Raster) SetBackingSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	r.dc = gg.NewContext(width, height)
	r.fill = colorful.Color{}
	r.stroke = colorful.Color{}
	r.line = 1
	r.path = r.path[:0]
}

// BackingSize returns the current pixel store dimensions
func (r *Raster) BackingSize() (int, int) {
	return r.dc.Width(), r.dc.Height()
}

func (r *Raster) SetFillStyle(c colorful.Color)   { r.fill = c }
func (r *Raster) SetStrokeStyle(c colorful.Color) { r.stroke = c }
func (r *Raster) SetLineWidth(w float64)          { r.line = w }

func (r *Raster) FillRect(x, y, w, h float64) {
	r.dc.ClearPath()
	r.dc.DrawRectangle(x, y, w, h)
	r.dc.SetColor(r.fill.Clamped())
	r.dc.Fill()
}

func (r *Raster) StrokeRect(x, y, w, h float64) {
	r.dc.ClearPath()
	r.dc.DrawRectangle(x, y, w, h)
	r.dc.SetColor(r.stroke.Clamped())
	r.dc.SetLineWidth(r.line)
	r.dc.Stroke()
}

func (r *Raster) BeginPath() {
	r.path = r.path[:0]
}

func (r *Raster) Arc(x, y, radius, startAngle, endAngle float64) {
	r.path = append(r.path, arc{x, y, radius, startAngle, endAngle})
}

// Stroke keeps the path, so a second Stroke redraws the same geometry
func (r *Raster) Stroke() {
	r.dc.ClearPath()
	for _, a := range r.path {
		r.dc.NewSubPath()
		r.dc.DrawArc(a.x, a.y, a.radius, a.start, a.end)
	}
	r.dc.SetColor(r.stroke.Clamped())
	r.dc.SetLineWidth(r.line)
	r.dc.Stroke()
}

// DrawLabel prints s centered on (cx, cy) in white on a black box, using
// gg's built-in bitmap face. Labels are not part of Surface; hosts overlay
// them after the pattern.
func (r *Raster) DrawLabel(s string, cx, cy float64) {
	if s == "" {
		return
	}
	const pad = 4
	w, h := r.dc.MeasureString(s)
	r.dc.ClearPath()
	r.dc.DrawRectangle(cx-w/2-pad, cy-h/2-pad, w+2*pad, h+2*pad)
	r.dc.SetRGB(0, 0, 0)
	r.dc.Fill()
	r.dc.SetRGB(1, 1, 1)
	r.dc.DrawStringAnchored(s, cx, cy, 0.5, 0.5)
}

// Image returns the backing store
func (r *Raster) Image() image.Image {
	return r.dc.Image()
}

// EncodePNG writes the backing store as PNG
func (r *Raster) EncodePNG(w io.Writer) error {
	if err := r.dc.EncodePNG(w); err != nil {
		return errors.Wrap(err, "encode png")
	}
	return nil
}
