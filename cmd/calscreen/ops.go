package main

import (
	"github.com/denschub/calscreen/surface"
	"github.com/denschub/calscreen/testcard"
	"github.com/spf13/cobra"
)

func newOpsCmd() *cobra.Command {
	var size string

	cmd := &cobra.Command{
		Use:   "ops",
		Short: "Print the drawing operations of one refresh as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, h, err := parseSize(size)
			if err != nil {
				return err
			}

			rec := surface.NewRecorder(w, h)
			testcard.New(rec)

			out, err := rec.DumpYAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVar(&size, "size", "1920x1080", "rendered size as WIDTHxHEIGHT")
	return cmd
}
