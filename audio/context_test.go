package audio

import (
	"math"
	"testing"
	"time"

	"github.com/denschub/calscreen/metronome"
)

func testConfig() Config {
	return Config{Enabled: true, Volume: 1, SampleRate: 8000, BufferMs: 50}
}

func peak(samples [][2]float64) float64 {
	var p float64
	for _, s := range samples {
		p = math.Max(p, math.Abs(s[0]))
	}
	return p
}

// queue collects posted completion handlers the way the frame loop would
type queue chan func()

func (q queue) post(fn func()) { q <- fn }

func (q queue) wait(t *testing.T) {
	t.Helper()
	select {
	case fn := <-q:
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("completion handler never posted")
	}
}

func (q queue) empty(t *testing.T) {
	t.Helper()
	select {
	case <-q:
		t.Fatal("unexpected completion handler")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestOfflineClockAdvancesWithRender(t *testing.T) {
	ctx := NewOffline(testConfig(), nil)

	if ctx.CurrentTime() != 0 {
		t.Fatalf("CurrentTime() = %v before rendering, want 0", ctx.CurrentTime())
	}

	out := ctx.Render(250 * time.Millisecond)
	if len(out) != 2000 {
		t.Errorf("rendered %d samples, want 2000", len(out))
	}
	if ctx.CurrentTime() != 0.25 {
		t.Errorf("CurrentTime() = %v, want 0.25", ctx.CurrentTime())
	}
	if peak(out) != 0 {
		t.Error("idle context produced sound")
	}
}

func TestOscillatorWindow(t *testing.T) {
	q := make(queue, 4)
	ctx := NewOffline(testConfig(), q.post)

	ended := 0
	osc := ctx.NewOscillator()
	osc.SetType(metronome.WaveSine)
	osc.SetFrequency(550)
	osc.Connect()
	osc.OnEnded(func() { ended++ })
	osc.Start(0.5)
	osc.Stop(1.5)

	if ctx.Voices() != 1 {
		t.Fatalf("Voices() = %d, want 1", ctx.Voices())
	}

	before := ctx.Render(500 * time.Millisecond)
	if peak(before) != 0 {
		t.Error("sound before scheduled start")
	}

	during := ctx.Render(time.Second)
	if peak(during) < 0.5 {
		t.Errorf("peak during tone = %v, want audible", peak(during))
	}
	q.empty(t)

	after := ctx.Render(100 * time.Millisecond)
	if peak(after) != 0 {
		t.Error("sound after scheduled stop")
	}
	q.wait(t)

	if ended != 1 {
		t.Errorf("ended fired %d times, want 1", ended)
	}
	if ctx.Voices() != 0 {
		t.Errorf("Voices() = %d after stop, want 0", ctx.Voices())
	}

	ctx.Render(time.Second)
	q.empty(t)
}

func TestUnconnectedOscillatorIsSilent(t *testing.T) {
	q := make(queue, 1)
	ctx := NewOffline(testConfig(), q.post)

	osc := ctx.NewOscillator()
	osc.SetFrequency(550)
	osc.OnEnded(func() {})
	osc.Start(0)
	osc.Stop(0.1)

	if out := ctx.Render(200 * time.Millisecond); peak(out) != 0 {
		t.Error("unconnected oscillator was audible")
	}
	q.wait(t)
}

func TestStopBeforeStartNeverSounds(t *testing.T) {
	q := make(queue, 1)
	ctx := NewOffline(testConfig(), q.post)

	osc := ctx.NewOscillator()
	osc.Connect()
	osc.OnEnded(func() { t.Error("never-started oscillator fired ended") })
	osc.Stop(0.1)

	if out := ctx.Render(200 * time.Millisecond); peak(out) != 0 {
		t.Error("never-started oscillator was audible")
	}
	q.empty(t)
}

func TestMutedConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	q := make(queue, 1)
	ctx := NewOffline(cfg, q.post)

	osc := ctx.NewOscillator()
	osc.Connect()
	osc.OnEnded(func() {})
	osc.Start(0)
	osc.Stop(0.2)

	if out := ctx.Render(300 * time.Millisecond); peak(out) != 0 {
		t.Error("disabled audio produced sound")
	}
	// Completion still fires so the metronome cycles
	q.wait(t)
}

func TestMetronomeCycleOnOfflineContext(t *testing.T) {
	q := make(queue, 1)
	ctx := NewOffline(testConfig(), q.post)
	m := metronome.New(ctx)

	trigger := time.Date(2024, 1, 2, 3, 4, 14, 0, time.UTC)
	m.Tick(trigger)
	if !m.Sounding() {
		t.Fatal("metronome did not start")
	}

	ctx.Render(900 * time.Millisecond)
	m.Tick(trigger.Add(900 * time.Millisecond))
	if !m.Sounding() || m.Beeps() != 1 {
		t.Fatalf("state = %v beeps = %d, want one sounding tone", m.State(), m.Beeps())
	}

	ctx.Render(200 * time.Millisecond)
	q.wait(t)
	if m.Sounding() {
		t.Error("metronome still sounding after tone ended")
	}
}

func TestConfigNormalized(t *testing.T) {
	cfg := Config{Volume: 3, SampleRate: -1}.normalized()
	def := DefaultConfig()
	if cfg.Volume != 1 || cfg.SampleRate != def.SampleRate || cfg.BufferMs != def.BufferMs {
		t.Errorf("normalized() = %+v", cfg)
	}
}
