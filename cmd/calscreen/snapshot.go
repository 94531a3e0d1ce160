package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/denschub/calscreen/clock"
	"github.com/denschub/calscreen/surface"
	"github.com/denschub/calscreen/testcard"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// parseSize reads WIDTHxHEIGHT, fractional sizes allowed
func parseSize(s string) (float64, float64, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, errors.Errorf("size %q: want WIDTHxHEIGHT", s)
	}
	w, err := strconv.ParseFloat(ws, 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "size %q width", s)
	}
	h, err := strconv.ParseFloat(hs, 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "size %q height", s)
	}
	if w < 1 || h < 1 {
		return 0, 0, errors.Errorf("size %q: both sides must be at least 1", s)
	}
	return w, h, nil
}

// rasterLabel is a clock.TextTarget printed onto a raster at a fixed point
type rasterLabel struct {
	raster *surface.Raster
	x, y   float64
	text   string
}

func (l *rasterLabel) SetText(s string) {
	l.text = s
	l.raster.DrawLabel(s, l.x, l.y)
}

func newSnapshotCmd() *cobra.Command {
	var (
		size string
		out  string
		at   string
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render one still of the test card to a PNG file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, h, err := parseSize(size)
			if err != nil {
				return err
			}

			now := time.Now()
			if at != "" {
				now, err = time.Parse(time.RFC3339Nano, at)
				if err != nil {
					return errors.Wrap(err, "--at")
				}
			}

			ras := surface.NewRaster(w, h)
			r := testcard.New(ras)

			cx, cy := float64(r.Width())/2, float64(r.Height())/2
			date := &rasterLabel{raster: ras, x: cx, y: cy - 12}
			tm := &rasterLabel{raster: ras, x: cx, y: cy + 12}
			clock.New(date, tm).Refresh(now)

			f, err := os.Create(out)
			if err != nil {
				return errors.Wrap(err, "create snapshot")
			}
			if err := ras.EncodePNG(f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return errors.Wrap(err, "close snapshot")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %dx%d %s %s\n", out, r.Width(), r.Height(), date.text, tm.text)
			return nil
		},
	}

	cmd.Flags().StringVar(&size, "size", "1920x1080", "rendered size as WIDTHxHEIGHT")
	cmd.Flags().StringVarP(&out, "out", "o", "testcard.png", "output PNG file")
	cmd.Flags().StringVar(&at, "at", "", "instant shown by the clock, RFC 3339 (default now)")
	return cmd
}
