package terminal

import (
	"image"

	"github.com/denschub/calscreen/surface"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

const halfBlock = '▀'

var labelStyle = tcell.StyleDefault.
	Foreground(tcell.NewRGBColor(255, 255, 255)).
	Background(tcell.NewRGBColor(0, 0, 0))

// Display is a surface.Surface drawing into a tcell screen
type Display struct {
	screen tcell.Screen
	raster *surface.Raster

	// cell styles rebuilt from the raster after drawing
	cells []tcell.Style
	cols  int
	rows  int
	dirty bool

	date *Label
	time *Label
}

// NewDisplay wraps an initialized screen
func NewDisplay(screen tcell.Screen) *Display {
	return &Display{
		screen: screen,
		raster: surface.NewRaster(0, 0),
		date:   &Label{},
		time:   &Label{},
	}
}

// DateLabel is the text target for the date readout
func (d *Display) DateLabel() *Label { return d.date }

// TimeLabel is the text target for the time readout
func (d *Display) TimeLabel() *Label { return d.time }

// RenderedSize reports the screen in half-block pixels
func (d *Display) RenderedSize() (float64, float64) {
	cols, rows := d.screen.Size()
	return float64(cols), float64(rows * 2)
}

func (d *Display) SetBackingSize(width, height int) {
	d.raster.SetBackingSize(width, height)
	d.dirty = true
}

func (d *Display) SetFillStyle(c colorful.Color)   { d.raster.SetFillStyle(c) }
func (d *Display) SetStrokeStyle(c colorful.Color) { d.raster.SetStrokeStyle(c) }
func (d *Display) SetLineWidth(w float64)          { d.raster.SetLineWidth(w) }

func (d *Display) FillRect(x, y, w, h float64) {
	d.raster.FillRect(x, y, w, h)
	d.dirty = true
}

func (d *Display) StrokeRect(x, y, w, h float64) {
	d.raster.StrokeRect(x, y, w, h)
	d.dirty = true
}

func (d *Display) BeginPath() { d.raster.BeginPath() }

func (d *Display) Arc(x, y, radius, startAngle, endAngle float64) {
	d.raster.Arc(x, y, radius, startAngle, endAngle)
}

func (d *Display) Stroke() {
	d.raster.Stroke()
	d.dirty = true
}

// Present copies the pattern and the labels to the screen and shows it
func (d *Display) Present() {
	if d.dirty {
		d.rebuild()
	}

	for y := 0; y < d.rows; y++ {
		for x := 0; x < d.cols; x++ {
			d.screen.SetContent(x, y, halfBlock, nil, d.cells[y*d.cols+x])
		}
	}

	mid := d.rows / 2
	d.drawLabel(d.date, mid-1)
	d.drawLabel(d.time, mid)

	d.screen.Show()
}

// rebuild converts raster pixel pairs into cell styles
func (d *Display) rebuild() {
	img := d.raster.Image()
	b := img.Bounds()
	d.cols = b.Dx()
	d.rows = b.Dy() / 2

	if cap(d.cells) < d.cols*d.rows {
		d.cells = make([]tcell.Style, d.cols*d.rows)
	}
	d.cells = d.cells[:d.cols*d.rows]

	for y := 0; y < d.rows; y++ {
		for x := 0; x < d.cols; x++ {
			d.cells[y*d.cols+x] = cellStyle(img, b.Min.X+x, b.Min.Y+2*y)
		}
	}
	d.dirty = false
}

// cellStyle returns the half-block style for the pixel pair at (x, y) and
// (x, y+1)
func cellStyle(img image.Image, x, y int) tcell.Style {
	return tcell.StyleDefault.
		Foreground(toTcell(img.At(x, y))).
		Background(toTcell(img.At(x, y+1)))
}

func (d *Display) drawLabel(l *Label, row int) {
	if l.text == "" || row < 0 || row >= d.rows {
		return
	}
	runes := []rune(l.text)
	x := (d.cols - len(runes)) / 2
	for i, r := range runes {
		if x+i < 0 || x+i >= d.cols {
			continue
		}
		d.screen.SetContent(x+i, row, r, nil, labelStyle)
	}
}

// Label is a clock.TextTarget shown on the display at the next Present
type Label struct {
	text string
}

func (l *Label) SetText(s string) { l.text = s }

// Text returns the last text set
func (l *Label) Text() string { return l.text }
