// Package config loads calscreen settings from a TOML file and the
// environment. Only host settings are configurable; the pattern, the clock
// format and the beep cadence are fixed.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/denschub/calscreen/audio"
	"github.com/pkg/errors"
)

const (
	envPrefix = "CALSCREEN_"

	fileName = "config.toml"
	appDir   = "calscreen"
)

// Color modes accepted by the terminal host
const (
	ColorAuto      = "auto"
	ColorTrueColor = "truecolor"
	Color256       = "256"
)

// Config is the full set of host settings
type Config struct {
	FPS    int          `toml:"fps"`
	Color  string       `toml:"color"`
	Debug  bool         `toml:"debug"`
	LogDir string       `toml:"log_dir"`
	Audio  audio.Config `toml:"audio"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		FPS:    60,
		Color:  ColorAuto,
		LogDir: "logs",
		Audio:  audio.DefaultConfig(),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/calscreen/config.toml, or "" when the
// user config directory cannot be determined
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appDir, fileName)
}

// Load reads defaults, then the file at path, then CALSCREEN_* variables.
// An empty path falls back to DefaultPath and tolerates it being absent.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.loadFile(path, explicit); err != nil {
			return cfg, err
		}
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) loadFile(path string, mustExist bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !mustExist {
			return nil
		}
		return errors.Wrapf(err, "config %s", path)
	}

	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrapf(err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnv overrides settings from CALSCREEN_* variables read through getenv
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(envPrefix + "FPS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "%sFPS", envPrefix)
		}
		c.FPS = n
	}

	if v := getenv(envPrefix + "COLOR"); v != "" {
		c.Color = v
	}

	if v := getenv(envPrefix + "DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "%sDEBUG", envPrefix)
		}
		c.Debug = b
	}

	if v := getenv(envPrefix + "LOG_DIR"); v != "" {
		c.LogDir = v
	}

	if v := getenv(envPrefix + "AUDIO_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "%sAUDIO_ENABLED", envPrefix)
		}
		c.Audio.Enabled = b
	}

	// Volume is given in percent
	if v := getenv(envPrefix + "VOLUME"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "%sVOLUME", envPrefix)
		}
		c.Audio.Volume = min(max(float64(n)/100, 0), 1)
	}

	if v := getenv(envPrefix + "SAMPLE_RATE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "%sSAMPLE_RATE", envPrefix)
		}
		c.Audio.SampleRate = n
	}
	return nil
}

// Validate rejects settings no host can run with
func (c Config) Validate() error {
	if c.FPS < 1 || c.FPS > 1000 {
		return errors.Errorf("fps %d out of range 1-1000", c.FPS)
	}
	switch c.Color {
	case ColorAuto, ColorTrueColor, Color256:
	default:
		return errors.Errorf("unknown color mode %q", c.Color)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return errors.Errorf("audio volume %v out of range 0-1", c.Audio.Volume)
	}
	if c.Audio.SampleRate < 8000 {
		return errors.Errorf("audio sample rate %d too low", c.Audio.SampleRate)
	}
	return nil
}

// FrameInterval returns the frame loop period
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}
