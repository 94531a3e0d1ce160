package terminal

import (
	"log"

	"github.com/gdamore/tcell/v2"
)

// Run pumps screen events until the user quits or the screen is finalized.
// Resizes are handed to post as onResize, so the resize handler runs on the
// frame loop and is its only subscriber.
func Run(screen tcell.Screen, post func(func()), onResize func()) {
	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			w, h := ev.Size()
			log.Printf("terminal: resize %dx%d", w, h)
			screen.Sync()
			post(onResize)
		case *tcell.EventKey:
			if quitKey(ev) {
				return
			}
		}
	}
}

func quitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
