//go:build js && wasm

// Package web hosts the test card in a browser page through syscall/js.
package web

import (
	"strconv"
	"strings"
	"syscall/js"

	"github.com/lucasb-eyer/go-colorful"
)

// Canvas is a surface.Surface over an HTML canvas element
type Canvas struct {
	el  js.Value
	ctx js.Value
}

// NewCanvas binds the 2D context of el
func NewCanvas(el js.Value) *Canvas {
	return &Canvas{
		el:  el,
		ctx: el.Call("getContext", "2d", map[string]any{"alpha": false}),
	}
}

// RenderedSize returns the computed CSS size of the element
func (c *Canvas) RenderedSize() (float64, float64) {
	style := js.Global().Call("getComputedStyle", c.el)
	return cssPixels(style.Call("getPropertyValue", "width").String()),
		cssPixels(style.Call("getPropertyValue", "height").String())
}

func cssPixels(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "px"), 64)
	if err != nil {
		return 0
	}
	return f
}

func (c *Canvas) SetBackingSize(width, height int) {
	c.el.Set("width", width)
	c.el.Set("height", height)
}

func (c *Canvas) SetFillStyle(col colorful.Color)   { c.ctx.Set("fillStyle", col.Hex()) }
func (c *Canvas) SetStrokeStyle(col colorful.Color) { c.ctx.Set("strokeStyle", col.Hex()) }
func (c *Canvas) SetLineWidth(w float64)            { c.ctx.Set("lineWidth", w) }

func (c *Canvas) FillRect(x, y, w, h float64)   { c.ctx.Call("fillRect", x, y, w, h) }
func (c *Canvas) StrokeRect(x, y, w, h float64) { c.ctx.Call("strokeRect", x, y, w, h) }

func (c *Canvas) BeginPath() { c.ctx.Call("beginPath") }

func (c *Canvas) Arc(x, y, radius, startAngle, endAngle float64) {
	c.ctx.Call("arc", x, y, radius, startAngle, endAngle)
}

func (c *Canvas) Stroke() { c.ctx.Call("stroke") }

// Element is a clock.TextTarget writing an element's text content
type Element struct {
	el js.Value
}

func NewElement(el js.Value) *Element { return &Element{el: el} }

func (e *Element) SetText(s string) { e.el.Set("textContent", s) }

// OnResize registers fn as the window resize listener
func OnResize(fn func()) js.Func {
	cb := js.FuncOf(func(js.Value, []js.Value) any {
		fn()
		return nil
	})
	js.Global().Call("addEventListener", "resize", cb)
	return cb
}
