package audio

import (
	"log"
	"math"
	"sync/atomic"

	"github.com/denschub/calscreen/crash"
	"github.com/denschub/calscreen/metronome"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/pkg/errors"
)

// Oscillator is a single-use tone source scheduled on a Context's clock.
// Setters take effect only before Start.
type Oscillator struct {
	ctx *Context

	wave      metronome.Waveform
	freq      float64
	connected bool
	ended     func()

	started bool
	start   int64
	stop    int64 // -1 until Stop

	voice *voice
}

func (o *Oscillator) SetType(w metronome.Waveform) { o.wave = w }
func (o *Oscillator) SetFrequency(hz float64)      { o.freq = hz }

// Connect routes the oscillator to the output. Unconnected oscillators
// still run and fire ended, but are inaudible.
func (o *Oscillator) Connect() { o.connected = true }

func (o *Oscillator) OnEnded(fn func()) { o.ended = fn }

// Start schedules the tone to begin at the given context time. Calling it
// twice has no effect.
func (o *Oscillator) Start(at float64) {
	if o.started {
		return
	}
	o.started = true
	o.start = o.ctx.samplesAt(at)

	tone, err := newTone(o.wave, o.ctx.rate, o.freq)
	if err != nil {
		log.Printf("audio: %v, oscillator is silent", err)
		tone = beep.Silence(-1)
	}

	vol := o.ctx.volume
	if !o.connected {
		vol = 0
	}

	o.voice = &voice{
		tone:  newVolume(tone, vol),
		start: o.start,
	}
	o.voice.stop.Store(o.stop)

	ended := o.ended
	o.ctx.add(func(pos int64) beep.Streamer {
		o.voice.pos = pos
		return beep.Seq(o.voice, beep.Callback(func() {
			if ended == nil {
				return
			}
			// Never block the audio goroutine on the event loop
			crash.Go(func() { o.ctx.post(ended) })
		}))
	})
}

// Stop schedules the tone to end at the given context time. Before Start it
// only records the time.
func (o *Oscillator) Stop(at float64) {
	o.stop = o.ctx.samplesAt(at)
	if o.voice != nil {
		o.voice.stop.Store(o.stop)
	}
}

func (c *Context) samplesAt(seconds float64) int64 {
	if seconds < 0 {
		seconds = 0
	}
	return int64(math.Round(seconds * float64(c.rate)))
}

// voice gates a tone to [start, stop) on the context clock
type voice struct {
	tone  beep.Streamer
	pos   int64 // context clock of the next sample
	start int64
	stop  atomic.Int64
}

func (v *voice) Stream(samples [][2]float64) (int, bool) {
	n := len(samples)
	if stop := v.stop.Load(); stop >= 0 {
		if v.pos >= stop {
			return 0, false
		}
		if rem := stop - v.pos; rem < int64(n) {
			n = int(rem)
		}
	}

	i := 0
	if v.pos < v.start {
		i = int(min(v.start-v.pos, int64(n)))
		clear(samples[:i])
	}
	if i < n {
		tn, _ := v.tone.Stream(samples[i:n])
		clear(samples[i+tn : n])
	}

	v.pos += int64(n)
	return n, true
}

func (v *voice) Err() error {
	return v.tone.Err()
}

func newTone(w metronome.Waveform, rate beep.SampleRate, freq float64) (beep.Streamer, error) {
	var (
		s   beep.Streamer
		err error
	)
	switch w {
	case metronome.WaveSine:
		s, err = generators.SineTone(rate, freq)
	case metronome.WaveSquare:
		s, err = generators.SquareTone(rate, freq)
	case metronome.WaveTriangle:
		s, err = generators.TriangleTone(rate, freq)
	case metronome.WaveSawtooth:
		s, err = generators.SawtoothTone(rate, freq)
	default:
		return nil, errors.Errorf("unknown waveform %d", w)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%s tone at %.1f Hz", w, freq)
	}
	return s, nil
}

// newVolume scales s linearly by vol.
// math.Log2(0) is -Inf, so 0 volume is handled by making it silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
