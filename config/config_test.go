package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 60, cfg.FPS)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, 0.5, cfg.Audio.Volume)
	assert.Equal(t, time.Second/60, cfg.FrameInterval())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
fps = 30
color = "256"

[audio]
enabled = false
volume = 0.25
sample_rate = 48000
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.FPS)
	assert.Equal(t, Color256, cfg.Color)
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, 0.25, cfg.Audio.Volume)
	assert.Equal(t, 48000, cfg.Audio.SampleRate)
	// Unset keys keep their defaults
	assert.Equal(t, 100, cfg.Audio.BufferMs)
	assert.Equal(t, "logs", cfg.LogDir)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "fps = 30\nbeep_period = 10\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "beep_period")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadInvalidTOML(t *testing.T) {
	path := writeConfig(t, "fps = = 3")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "fps = 30\n[audio]\nvolume = 0.25\n")

	cfg := Default()
	require.NoError(t, cfg.loadFile(path, true))
	require.NoError(t, cfg.ApplyEnv(env(map[string]string{
		"CALSCREEN_FPS":           "50",
		"CALSCREEN_VOLUME":        "80",
		"CALSCREEN_AUDIO_ENABLED": "false",
		"CALSCREEN_DEBUG":         "1",
		"CALSCREEN_COLOR":         "truecolor",
	})))

	assert.Equal(t, 50, cfg.FPS)
	assert.Equal(t, 0.8, cfg.Audio.Volume)
	assert.False(t, cfg.Audio.Enabled)
	assert.True(t, cfg.Debug)
	assert.Equal(t, ColorTrueColor, cfg.Color)
}

func TestApplyEnvClampsVolume(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(env(map[string]string{"CALSCREEN_VOLUME": "250"})))
	assert.Equal(t, 1.0, cfg.Audio.Volume)

	require.NoError(t, cfg.ApplyEnv(env(map[string]string{"CALSCREEN_VOLUME": "-5"})))
	assert.Equal(t, 0.0, cfg.Audio.Volume)
}

func TestApplyEnvErrors(t *testing.T) {
	for _, key := range []string{"CALSCREEN_FPS", "CALSCREEN_DEBUG", "CALSCREEN_AUDIO_ENABLED", "CALSCREEN_VOLUME", "CALSCREEN_SAMPLE_RATE"} {
		cfg := Default()
		err := cfg.ApplyEnv(env(map[string]string{key: "not-a-value"}))
		assert.Error(t, err, key)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"Zero fps", func(c *Config) { c.FPS = 0 }},
		{"Huge fps", func(c *Config) { c.FPS = 5000 }},
		{"Bad color", func(c *Config) { c.Color = "16" }},
		{"Loud", func(c *Config) { c.Audio.Volume = 1.5 }},
		{"Low rate", func(c *Config) { c.Audio.SampleRate = 100 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
