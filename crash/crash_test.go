package crash

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

type fakeTerminal struct {
	out   *bytes.Buffer
	finis int
}

func (f *fakeTerminal) Fini() {
	f.finis++
	f.out.WriteString("[fini]")
}

// captureExit swaps the process exit for a channel receiving the code
func captureExit(t *testing.T) (*bytes.Buffer, <-chan int) {
	t.Helper()

	var buf bytes.Buffer
	codes := make(chan int, 1)

	prevOut, prevExit := output, exit
	output = &buf
	exit = func(code int) { codes <- code }
	t.Cleanup(func() {
		output, exit = prevOut, prevExit
		SetTerminal(nil)
	})
	return &buf, codes
}

func waitExit(t *testing.T, codes <-chan int) int {
	t.Helper()
	select {
	case code := <-codes:
		return code
	case <-time.After(time.Second):
		t.Fatal("crash handler did not exit")
		return 0
	}
}

func TestHandleCrashNil(t *testing.T) {
	buf, codes := captureExit(t)
	term := &fakeTerminal{out: buf}
	SetTerminal(term)

	HandleCrash(nil)

	select {
	case code := <-codes:
		t.Errorf("exited with %d on nil panic", code)
	default:
	}
	if term.finis != 0 || buf.Len() != 0 {
		t.Errorf("nil panic touched terminal: finis=%d output=%q", term.finis, buf.String())
	}
}

func TestGoRestoresTerminalBeforeReport(t *testing.T) {
	buf, codes := captureExit(t)
	term := &fakeTerminal{out: buf}
	SetTerminal(term)

	Go(func() { panic("renderer exploded") })

	if code := waitExit(t, codes); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if term.finis != 1 {
		t.Errorf("Fini called %d times, want 1", term.finis)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "[fini]") {
		t.Errorf("report written before terminal restore:\n%s", out)
	}
	for _, want := range []string{"CALSCREEN CRASHED: renderer exploded", "Stack Trace:"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestHandleCrashFinisOnce(t *testing.T) {
	buf, codes := captureExit(t)
	term := &fakeTerminal{out: buf}
	SetTerminal(term)

	HandleCrash("first")
	waitExit(t, codes)
	HandleCrash("second")
	waitExit(t, codes)

	if term.finis != 1 {
		t.Errorf("Fini called %d times, want 1", term.finis)
	}
}

func TestGoWith(t *testing.T) {
	got := make(chan any, 1)
	GoWith(func(r any) { got <- r }, func() { panic(42) })

	select {
	case r := <-got:
		if r != 42 {
			t.Errorf("recovered %v, want 42", r)
		}
	case <-time.After(time.Second):
		t.Fatal("handler not called")
	}
}
