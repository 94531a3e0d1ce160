// Package audio implements the metronome's audio context on top of beep.
//
// The context keeps its own sample clock: every sample pulled through its
// mixer advances CurrentTime. Oscillators are gated to their [start, stop)
// window on that clock, so scheduling is sample accurate regardless of when
// the frame loop runs.
package audio

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/denschub/calscreen/metronome"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
)

const renderChunk = 512

// Context is a beep-backed metronome.AudioContext
type Context struct {
	rate   beep.SampleRate
	volume float64
	post   func(func())

	mu    sync.Mutex // guards mixer when offline; live uses speaker.Lock
	mixer *beep.Mixer
	clock *sampleClock

	live   bool
	closed atomic.Bool
}

// NewLive opens the default audio device and starts playback.
// post delivers completion handlers onto the caller's event loop; nil runs
// them on the audio goroutine.
func NewLive(cfg Config, post func(func())) (*Context, error) {
	c := newContext(cfg, post)
	if err := speaker.Init(c.rate, c.rate.N(time.Duration(cfg.normalized().BufferMs)*time.Millisecond)); err != nil {
		return nil, errors.Wrap(err, "init speaker")
	}
	c.live = true
	speaker.Play(c.clock)
	return c, nil
}

// NewOffline creates a context with no device; samples are produced only
// when Render is called
func NewOffline(cfg Config, post func(func())) *Context {
	return newContext(cfg, post)
}

func newContext(cfg Config, post func(func())) *Context {
	cfg = cfg.normalized()
	if post == nil {
		post = func(fn func()) { fn() }
	}
	mixer := &beep.Mixer{}
	vol := cfg.Volume
	if !cfg.Enabled {
		vol = 0
	}
	return &Context{
		rate:   beep.SampleRate(cfg.SampleRate),
		volume: vol,
		post:   post,
		mixer:  mixer,
		clock:  &sampleClock{src: mixer},
	}
}

// SampleRate returns the output rate
func (c *Context) SampleRate() beep.SampleRate {
	return c.rate
}

// Live reports whether the context plays to a device
func (c *Context) Live() bool {
	return c.live
}

// CurrentTime returns the number of seconds of audio produced so far
func (c *Context) CurrentTime() float64 {
	return float64(c.clock.pos.Load()) / float64(c.rate)
}

// NewOscillator returns an unstarted sine oscillator at 440 Hz
func (c *Context) NewOscillator() metronome.Oscillator {
	return &Oscillator{
		ctx:  c,
		wave: metronome.WaveSine,
		freq: 440,
		stop: -1,
	}
}

// Voices returns the number of oscillators currently mixed
func (c *Context) Voices() int {
	c.lock()
	defer c.unlock()
	return c.mixer.Len()
}

// Render pulls d worth of samples through the mixer and returns them.
// Only meaningful on an offline context.
func (c *Context) Render(d time.Duration) [][2]float64 {
	out := make([][2]float64, c.rate.N(d))
	for i := 0; i < len(out); i += renderChunk {
		end := min(i+renderChunk, len(out))
		c.lock()
		c.clock.Stream(out[i:end])
		c.unlock()
	}
	return out
}

// Pump renders in real time until stop is closed, so an offline context's
// clock keeps pace with the wall clock
func (c *Context) Pump(stop <-chan struct{}, step time.Duration) {
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			c.Render(now.Sub(last))
			last = now
		}
	}
}

// Close silences all voices and detaches from the device
func (c *Context) Close() {
	if !c.closed.CompareAndSwap(false, true) {
		return
	}
	c.lock()
	c.mixer.Clear()
	c.unlock()
	if c.live {
		speaker.Clear()
	}
}

func (c *Context) lock() {
	if c.live {
		speaker.Lock()
		return
	}
	c.mu.Lock()
}

func (c *Context) unlock() {
	if c.live {
		speaker.Unlock()
		return
	}
	c.mu.Unlock()
}

// add starts mixing the streamer built by s, which receives the sample
// clock position its first sample will be played at
func (c *Context) add(s func(pos int64) beep.Streamer) {
	if c.closed.Load() {
		log.Printf("audio: oscillator started on closed context")
		return
	}
	c.lock()
	defer c.unlock()
	c.mixer.Add(s(c.clock.pos.Load()))
}

// sampleClock counts samples streamed from src and never drains
type sampleClock struct {
	src beep.Streamer
	pos atomic.Int64
}

func (s *sampleClock) Stream(samples [][2]float64) (int, bool) {
	n, _ := s.src.Stream(samples)
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	s.pos.Add(int64(len(samples)))
	return len(samples), true
}

func (s *sampleClock) Err() error {
	return s.src.Err()
}
