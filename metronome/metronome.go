// Package metronome sounds a short tone at a fixed cadence of the wall clock.
package metronome

import "time"

const (
	// Period is the beep cadence in wall-clock seconds
	Period = 15
	// Frequency of the beep in Hz
	Frequency = 550
	// Duration of the beep in audio-clock seconds
	Duration = 1.0
)

// Waveform selects the oscillator shape
type Waveform int

const (
	WaveSine Waveform = iota
	WaveSquare
	WaveTriangle
	WaveSawtooth
)

func (w Waveform) String() string {
	switch w {
	case WaveSine:
		return "sine"
	case WaveSquare:
		return "square"
	case WaveTriangle:
		return "triangle"
	case WaveSawtooth:
		return "sawtooth"
	default:
		return "unknown"
	}
}

// AudioContext is the audio output the metronome schedules tones on
type AudioContext interface {
	// CurrentTime returns the output clock in seconds
	CurrentTime() float64
	NewOscillator() Oscillator
}

// Oscillator is a single-use tone generator
type Oscillator interface {
	SetType(w Waveform)
	SetFrequency(hz float64)
	// Connect routes the oscillator to the context's output
	Connect()
	// OnEnded registers fn to run once playback has stopped
	OnEnded(fn func())
	Start(at float64)
	Stop(at float64)
}

// State of the metronome
type State int

const (
	Idle State = iota
	Sounding
)

func (s State) String() string {
	if s == Sounding {
		return "sounding"
	}
	return "idle"
}

// Metronome starts one tone per period and never overlaps two tones
type Metronome struct {
	ctx   AudioContext
	state State
	beeps int
}

// New creates an idle metronome on ctx
func New(ctx AudioContext) *Metronome {
	return &Metronome{ctx: ctx}
}

// State returns the current state
func (m *Metronome) State() State { return m.state }

// Sounding reports whether a tone is playing
func (m *Metronome) Sounding() bool { return m.state == Sounding }

// Beeps returns the number of tones started so far
func (m *Metronome) Beeps() int { return m.beeps }

// Due reports whether now falls in the trigger second, one second before
// each period boundary
func Due(now time.Time) bool {
	return (now.UTC().Second()+1)%Period == 0
}

// Tick is the per-frame entry point. A tick that misses the trigger second
// entirely skips that beep; there is no catch-up.
func (m *Metronome) Tick(now time.Time) {
	if m.state == Idle && Due(now) {
		m.start()
	}
}

// start is the Idle -> Sounding transition
func (m *Metronome) start() {
	m.state = Sounding
	m.beeps++

	osc := m.ctx.NewOscillator()
	osc.SetType(WaveSine)
	osc.SetFrequency(Frequency)
	osc.Connect()
	osc.OnEnded(m.finish)

	at := m.ctx.CurrentTime()
	osc.Start(at)
	osc.Stop(at + Duration)
}

// finish is the Sounding -> Idle transition, driven only by the tone ending
func (m *Metronome) finish() {
	m.state = Idle
}
