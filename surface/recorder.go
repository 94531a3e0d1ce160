package surface

import (
	"slices"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// OpKind names a recorded drawing call
type OpKind string

const (
	OpBackingSize OpKind = "backing-size"
	OpFillStyle   OpKind = "fill-style"
	OpStrokeStyle OpKind = "stroke-style"
	OpLineWidth   OpKind = "line-width"
	OpFillRect    OpKind = "fill-rect"
	OpStrokeRect  OpKind = "stroke-rect"
	OpBeginPath   OpKind = "begin-path"
	OpArc         OpKind = "arc"
	OpStroke      OpKind = "stroke"
)

// Op is one recorded call; only the fields relevant to Kind are set
type Op struct {
	Kind  OpKind    `yaml:"op"`
	Color string    `yaml:"color,omitempty"`
	Args  []float64 `yaml:"args,omitempty,flow"`
}

// Recorder is a Surface that records calls instead of drawing them
type Recorder struct {
	renderedW, renderedH float64
	backingW, backingH   int

	ops []Op
}

// NewRecorder creates a recorder reporting the given rendered size
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{renderedW: width, renderedH: height}
}

// SetRenderedSize simulates a layout change
func (r *Recorder) SetRenderedSize(width, height float64) {
	r.renderedW = width
	r.renderedH = height
}

// BackingSize returns the last size written by SetBackingSize
func (r *Recorder) BackingSize() (int, int) {
	return r.backingW, r.backingH
}

// Ops returns a copy of the recorded calls in order
func (r *Recorder) Ops() []Op {
	return slices.Clone(r.ops)
}

// Reset drops recorded calls, the backing size is kept. Slices returned by
// earlier Ops calls stay intact.
func (r *Recorder) Reset() {
	r.ops = nil
}

func (r *Recorder) RenderedSize() (float64, float64) {
	return r.renderedW, r.renderedH
}

func (r *Recorder) SetBackingSize(width, height int) {
	r.backingW, r.backingH = width, height
	r.add(Op{Kind: OpBackingSize, Args: []float64{float64(width), float64(height)}})
}

func (r *Recorder) SetFillStyle(c colorful.Color) {
	r.add(Op{Kind: OpFillStyle, Color: c.Hex()})
}

func (r *Recorder) SetStrokeStyle(c colorful.Color) {
	r.add(Op{Kind: OpStrokeStyle, Color: c.Hex()})
}

func (r *Recorder) SetLineWidth(w float64) {
	r.add(Op{Kind: OpLineWidth, Args: []float64{w}})
}

func (r *Recorder) FillRect(x, y, w, h float64) {
	r.add(Op{Kind: OpFillRect, Args: []float64{x, y, w, h}})
}

func (r *Recorder) StrokeRect(x, y, w, h float64) {
	r.add(Op{Kind: OpStrokeRect, Args: []float64{x, y, w, h}})
}

func (r *Recorder) BeginPath() {
	r.add(Op{Kind: OpBeginPath})
}

func (r *Recorder) Arc(x, y, radius, startAngle, endAngle float64) {
	r.add(Op{Kind: OpArc, Args: []float64{x, y, radius, startAngle, endAngle}})
}

func (r *Recorder) Stroke() {
	r.add(Op{Kind: OpStroke})
}

func (r *Recorder) add(op Op) {
	r.ops = append(r.ops, op)
}

// DumpYAML dumps the recorded calls as a YAML document
func (r *Recorder) DumpYAML() ([]byte, error) {
	doc := struct {
		Rendered []float64 `yaml:"rendered,flow"`
		Backing  []int     `yaml:"backing,flow"`
		Ops      []Op      `yaml:"ops"`
	}{
		Rendered: []float64{r.renderedW, r.renderedH},
		Backing:  []int{r.backingW, r.backingH},
		Ops:      r.ops,
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "marshal ops")
	}
	return out, nil
}
