//go:build js && wasm

package web

import (
	"syscall/js"

	"github.com/denschub/calscreen/frame"
)

// AnimationFrames ticks registered tickers once per browser animation
// frame, re-requesting the next frame from every callback
type AnimationFrames struct {
	clock   frame.TimeProvider
	tickers []frame.Ticker
	cb      js.Func
	stopped bool
}

func NewAnimationFrames(clock frame.TimeProvider) *AnimationFrames {
	if clock == nil {
		clock = frame.SystemTime{}
	}
	return &AnimationFrames{clock: clock}
}

// Register adds a ticker, must be called before Start
func (a *AnimationFrames) Register(t frame.Ticker) {
	a.tickers = append(a.tickers, t)
}

func (a *AnimationFrames) Start() {
	a.cb = js.FuncOf(func(js.Value, []js.Value) any {
		if a.stopped {
			a.cb.Release()
			return nil
		}
		now := a.clock.Now()
		for _, t := range a.tickers {
			t.Tick(now)
		}
		js.Global().Call("requestAnimationFrame", a.cb)
		return nil
	})
	js.Global().Call("requestAnimationFrame", a.cb)
}

// Stop ends the frame sequence; the pending callback releases itself
func (a *AnimationFrames) Stop() {
	a.stopped = true
}
