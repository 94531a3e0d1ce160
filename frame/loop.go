// Package frame drives per-frame work on a single goroutine.
//
// Everything the test card components do happens inside Loop: frame ticks,
// resize handling and audio completion notifications are all funnelled onto
// the loop goroutine, so components never need locks.
package frame

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/denschub/calscreen/crash"
)

// DefaultInterval is one frame at 60 Hz
const DefaultInterval = time.Second / 60

const taskQueueSize = 64

// Ticker receives one call per frame
type Ticker interface {
	Tick(now time.Time)
}

// TickFunc adapts a function to Ticker
type TickFunc func(now time.Time)

func (f TickFunc) Tick(now time.Time) { f(now) }

// Loop delivers frame ticks and posted tasks on one goroutine
type Loop struct {
	interval time.Duration
	clock    TimeProvider

	tickers []Ticker
	tasks   chan func()

	crashHandler func(any)

	tickCount atomic.Uint64

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewLoop creates a stopped loop ticking every interval
func NewLoop(interval time.Duration, clock TimeProvider) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if clock == nil {
		clock = SystemTime{}
	}
	return &Loop{
		interval: interval,
		clock:    clock,
		tasks:    make(chan func(), taskQueueSize),
		stopChan: make(chan struct{}),

		crashHandler: crash.HandleCrash,
	}
}

// SetCrashHandler replaces the handler for a panic on the loop goroutine,
// must be called before Start
func (l *Loop) SetCrashHandler(handler func(any)) {
	l.crashHandler = handler
}

// Register adds a ticker, must be called before Start
func (l *Loop) Register(t Ticker) {
	l.tickers = append(l.tickers, t)
}

// Interval returns the frame interval
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Ticks returns the number of frames delivered
func (l *Loop) Ticks() uint64 {
	return l.tickCount.Load()
}

// Post queues fn to run on the loop goroutine. Safe from any goroutine;
// tasks posted after Stop are dropped.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.stopChan:
		return
	default:
	}
	select {
	case l.tasks <- fn:
	case <-l.stopChan:
	}
}

// Start begins the loop goroutine
func (l *Loop) Start() {
	if l.running.CompareAndSwap(false, true) {
		l.wg.Add(1)
		crash.GoWith(l.crashHandler, l.run)
	}
}

// Stop halts the loop and waits for the goroutine to exit
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
		if l.running.CompareAndSwap(true, false) {
			l.wg.Wait()
		}
	})
}

// Done is closed once Stop has been called
func (l *Loop) Done() <-chan struct{} {
	return l.stopChan
}

// Step delivers one frame synchronously on the caller's goroutine, after
// draining queued tasks. Used by offline hosts and tests instead of Start.
func (l *Loop) Step() {
	l.drain()
	l.tick()
}

func (l *Loop) run() {
	defer l.wg.Done()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case fn := <-l.tasks:
			fn()
		case <-ticker.C:
			l.tick()
		}
	}
}

func (l *Loop) drain() {
	for {
		select {
		case fn := <-l.tasks:
			fn()
		default:
			return
		}
	}
}

func (l *Loop) tick() {
	now := l.clock.Now()
	for _, t := range l.tickers {
		t.Tick(now)
	}
	l.tickCount.Add(1)
}
