// Package crash restores the terminal and reports a panic from any goroutine.
//
// A panic outside the main goroutine cannot be caught by main's deferred
// recover, so background work is started through Go instead of the go
// keyword.
package crash

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

// Terminal is anything holding the terminal in raw mode
type Terminal interface {
	Fini()
}

var (
	mu       sync.Mutex
	terminal Terminal

	output io.Writer = os.Stderr
	exit             = os.Exit
)

// SetTerminal registers the terminal restored before a crash report. Pass
// nil once the terminal has been released normally.
func SetTerminal(t Terminal) {
	mu.Lock()
	terminal = t
	mu.Unlock()
}

// HandleCrash resets the terminal, prints r with the stack trace and exits.
// A nil r is ignored so it can be called as HandleCrash(recover()).
func HandleCrash(r any) {
	if r == nil {
		return
	}

	mu.Lock()
	t := terminal
	terminal = nil
	mu.Unlock()
	if t != nil {
		t.Fini()
	}

	fmt.Fprintf(output, "\r\n\x1b[31mCALSCREEN CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(output, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	exit(1)
}

// Go runs fn in a new goroutine with HandleCrash as its panic handler
func Go(fn func()) {
	GoWith(HandleCrash, fn)
}

// GoWith runs fn in a new goroutine, passing a recovered panic to handle
func GoWith(handle func(any), fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				handle(r)
			}
		}()
		fn()
	}()
}
