//go:build js && wasm

package web

import (
	"syscall/js"

	"github.com/denschub/calscreen/metronome"
	"github.com/pkg/errors"
)

// AudioContext is a metronome.AudioContext over WebAudio
type AudioContext struct {
	ctx js.Value
}

// NewAudioContext creates a WebAudio context
func NewAudioContext() (*AudioContext, error) {
	ctor := js.Global().Get("AudioContext")
	if ctor.IsUndefined() {
		ctor = js.Global().Get("webkitAudioContext")
	}
	if ctor.IsUndefined() {
		return nil, errors.New("web audio unavailable")
	}
	return &AudioContext{ctx: ctor.New()}, nil
}

func (a *AudioContext) CurrentTime() float64 {
	return a.ctx.Get("currentTime").Float()
}

func (a *AudioContext) NewOscillator() metronome.Oscillator {
	return &oscillator{ctx: a.ctx, node: a.ctx.Call("createOscillator")}
}

type oscillator struct {
	ctx  js.Value
	node js.Value
	cb   js.Func
}

func (o *oscillator) SetType(w metronome.Waveform) { o.node.Set("type", w.String()) }

func (o *oscillator) SetFrequency(hz float64) {
	o.node.Get("frequency").Set("value", hz)
}

func (o *oscillator) Connect() {
	o.node.Call("connect", o.ctx.Get("destination"))
}

func (o *oscillator) OnEnded(fn func()) {
	o.cb = js.FuncOf(func(js.Value, []js.Value) any {
		fn()
		o.cb.Release()
		return nil
	})
	o.node.Set("onended", o.cb)
}

func (o *oscillator) Start(at float64) { o.node.Call("start", at) }
func (o *oscillator) Stop(at float64)  { o.node.Call("stop", at) }
