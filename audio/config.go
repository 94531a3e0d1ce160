package audio

// Config holds the audio output settings
type Config struct {
	Enabled    bool    `toml:"enabled"`
	Volume     float64 `toml:"volume"`      // 0.0 - 1.0
	SampleRate int     `toml:"sample_rate"` // Hz
	BufferMs   int     `toml:"buffer_ms"`   // speaker buffer length
}

// DefaultConfig returns the settings used when nothing is configured
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		Volume:     0.5,
		SampleRate: 44100,
		BufferMs:   100,
	}
}

// normalized clamps out-of-range values back to usable ones
func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.Volume < 0 {
		c.Volume = 0
	}
	if c.Volume > 1 {
		c.Volume = 1
	}
	if c.SampleRate <= 0 {
		c.SampleRate = def.SampleRate
	}
	if c.BufferMs <= 0 {
		c.BufferMs = def.BufferMs
	}
	return c
}
