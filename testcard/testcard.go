// Package testcard draws the calibration pattern: color plates, grayscale
// plates, a screen-edge border and a proportion circle.
package testcard

import (
	"math"

	"github.com/denschub/calscreen/surface"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	plateCount = 7

	borderWidth = 16

	circleInset      = 40
	circleOuterWidth = 24
	circleInnerWidth = 12
)

// ColorPlates are painted left to right across the top half
var ColorPlates = [plateCount]colorful.Color{
	{R: 1, G: 0, B: 0}, // red
	{R: 0, G: 1, B: 0}, // green
	{R: 0, G: 0, B: 1}, // blue
	{R: 0, G: 1, B: 1}, // cyan
	{R: 1, G: 0, B: 1}, // magenta
	{R: 1, G: 1, B: 0}, // yellow
	{R: 0, G: 0, B: 0}, // black
}

var (
	BorderColor      = colorful.Color{R: 1, G: 0, B: 1}
	CircleOuterColor = colorful.Color{R: 0, G: 0, B: 0}
	CircleInnerColor = colorful.Color{R: 1, G: 1, B: 1}
)

// GrayLightness returns the HSL lightness in percent of grayscale plate i
func GrayLightness(i int) float64 {
	return 100 - float64(i)*(100.0/plateCount)
}

// GrayPlate returns the color of grayscale plate i
func GrayPlate(i int) colorful.Color {
	return colorful.Hsl(0, 0, GrayLightness(i)/100)
}

// Renderer owns a surface and repaints the pattern on every Refresh
type Renderer struct {
	surface surface.Surface

	width  int
	height int
}

// New binds the renderer to s and paints the first frame
func New(s surface.Surface) *Renderer {
	r := &Renderer{surface: s}
	r.Refresh()
	return r
}

// Width returns the backing width used by the last Refresh
func (r *Renderer) Width() int { return r.width }

// Height returns the backing height used by the last Refresh
func (r *Renderer) Height() int { return r.height }

// Refresh re-reads the rendered size, resizes the backing store to match and
// repaints all layers back to front. Hosts call it on every resize.
func (r *Renderer) Refresh() {
	w, h := r.surface.RenderedSize()
	r.width = int(w)
	r.height = int(h)
	r.surface.SetBackingSize(r.width, r.height)

	r.drawColorPlates()
	r.drawGrayscalePlates()
	r.drawBorder()
	r.drawCircle()
}

// plateSize is shared by both plate rows; rounding drift on the right edge
// is left uncorrected
func (r *Renderer) plateSize() (float64, float64) {
	return math.Round(float64(r.width) / plateCount), math.Round(float64(r.height) / 2)
}

func (r *Renderer) drawColorPlates() {
	pw, ph := r.plateSize()
	for i, c := range ColorPlates {
		r.surface.SetFillStyle(c)
		r.surface.FillRect(float64(i)*pw, 0, pw, ph)
	}
}

func (r *Renderer) drawGrayscalePlates() {
	pw, ph := r.plateSize()
	for i := 0; i < plateCount; i++ {
		r.surface.SetFillStyle(GrayPlate(i))
		r.surface.FillRect(float64(i)*pw, ph, pw, ph)
	}
}

func (r *Renderer) drawBorder() {
	r.surface.SetStrokeStyle(BorderColor)
	r.surface.SetLineWidth(borderWidth)
	r.surface.StrokeRect(0, 0, float64(r.width), float64(r.height))
}

// CircleRadius returns the proportion circle radius for a w x h surface
func CircleRadius(w, h int) float64 {
	return float64(min(w, h))/2 - circleInset
}

func (r *Renderer) drawCircle() {
	cx := float64(r.width) / 2
	cy := float64(r.height) / 2
	radius := CircleRadius(r.width, r.height)
	// canvas arc() rejects negative radii, the layer is left out
	if radius < 0 {
		return
	}

	r.surface.BeginPath()
	r.surface.Arc(cx, cy, radius, 0, 2*math.Pi)

	r.surface.SetStrokeStyle(CircleOuterColor)
	r.surface.SetLineWidth(circleOuterWidth)
	r.surface.Stroke()

	r.surface.SetStrokeStyle(CircleInnerColor)
	r.surface.SetLineWidth(circleInnerWidth)
	r.surface.Stroke()
}
