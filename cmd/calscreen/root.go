package main

import (
	"log"
	"os"
	"time"

	"github.com/denschub/calscreen/audio"
	"github.com/denschub/calscreen/clock"
	"github.com/denschub/calscreen/config"
	"github.com/denschub/calscreen/crash"
	"github.com/denschub/calscreen/frame"
	"github.com/denschub/calscreen/metronome"
	"github.com/denschub/calscreen/terminal"
	"github.com/denschub/calscreen/testcard"
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Offline audio is pumped at this step when no device is available
const pumpStep = 20 * time.Millisecond

type options struct {
	configPath string
	debug      bool
	fps        int
	mute       bool
	color      string
}

// load resolves the configuration: file, then environment, then flags the
// user actually set
func (o *options) load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug = o.debug
	}
	if flags.Changed("fps") {
		cfg.FPS = o.fps
	}
	if flags.Changed("mute") {
		cfg.Audio.Enabled = !o.mute
	}
	if flags.Changed("color") {
		cfg.Color = o.color
	}
	return cfg, cfg.Validate()
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "calscreen",
		Short: "Full-screen display and audio calibration test card",
		Long: `calscreen shows a broadcast-style test card: color and grayscale plates,
a screen-edge border, a proportion circle, a live UTC clock and a beep every
15 seconds. Press q, Esc or Ctrl-C to quit.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if f := setupLogging(cfg.Debug, cfg.LogDir); f != nil {
				defer f.Close()
			}
			return runTerminal(cfg)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/calscreen/config.toml)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "write a debug log to the log directory")
	cmd.Flags().IntVar(&opts.fps, "fps", 60, "frame rate of the clock and metronome loop")
	cmd.Flags().BoolVar(&opts.mute, "mute", false, "keep the metronome silent")
	cmd.Flags().StringVar(&opts.color, "color", config.ColorAuto, "color mode: auto, truecolor, 256")

	cmd.AddCommand(newSnapshotCmd(), newOpsCmd())
	return cmd
}

func runTerminal(cfg config.Config) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal, use the snapshot command instead")
	}

	terminal.ApplyColorMode(cfg.Color)
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "create screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "init screen")
	}
	defer screen.Fini()

	// Panics on the main goroutine and on every crash.Go goroutine restore
	// the screen before the stack trace is printed
	crash.SetTerminal(screen)
	defer crash.SetTerminal(nil)
	defer func() { crash.HandleCrash(recover()) }()

	loop := frame.NewLoop(cfg.FrameInterval(), frame.SystemTime{})

	display := terminal.NewDisplay(screen)
	renderer := testcard.New(display)
	view := clock.New(display.DateLabel(), display.TimeLabel())

	actx := openAudio(cfg.Audio, loop)
	defer actx.Close()
	metro := metronome.New(actx)

	loop.Register(view)
	loop.Register(metro)
	loop.Register(frame.TickFunc(func(time.Time) { display.Present() }))

	log.Printf("calscreen: started %dx%d at %d fps", renderer.Width(), renderer.Height(), cfg.FPS)
	loop.Start()
	defer loop.Stop()

	terminal.Run(screen, loop.Post, func() {
		renderer.Refresh()
		display.Present()
	})
	log.Printf("calscreen: quit after %d frames, %d beeps", loop.Ticks(), metro.Beeps())
	return nil
}

// openAudio prefers the speaker; without one the metronome runs on an
// offline context kept in step with the wall clock
func openAudio(cfg audio.Config, loop *frame.Loop) *audio.Context {
	if cfg.Enabled {
		actx, err := audio.NewLive(cfg, loop.Post)
		if err == nil {
			return actx
		}
		log.Printf("audio: %v (continuing without sound)", err)
	}

	actx := audio.NewOffline(cfg, loop.Post)
	crash.Go(func() { actx.Pump(loop.Done(), pumpStep) })
	return actx
}
