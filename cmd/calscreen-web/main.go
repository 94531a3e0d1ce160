//go:build js && wasm

// Command calscreen-web runs the test card in a browser page. Build with
// GOOS=js GOARCH=wasm and serve next to index.html and wasm_exec.js.
package main

import (
	"log"
	"syscall/js"

	"github.com/denschub/calscreen/clock"
	"github.com/denschub/calscreen/frame"
	"github.com/denschub/calscreen/metronome"
	"github.com/denschub/calscreen/testcard"
	"github.com/denschub/calscreen/web"
)

func main() {
	doc := js.Global().Get("document")

	renderer := testcard.New(web.NewCanvas(doc.Call("getElementById", "canvas")))
	web.OnResize(renderer.Refresh)

	frames := web.NewAnimationFrames(frame.SystemTime{})
	frames.Register(clock.New(
		web.NewElement(doc.Call("getElementById", "date")),
		web.NewElement(doc.Call("getElementById", "time")),
	))

	// Audio failure only costs the beep
	if actx, err := web.NewAudioContext(); err == nil {
		frames.Register(metronome.New(actx))
	} else {
		log.Printf("calscreen: %v", err)
	}

	frames.Start()
	select {}
}
