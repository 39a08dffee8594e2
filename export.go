package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fret-focus/export"
)

func newExportCmd(f *flags) *cobra.Command {
	var rounds int
	var out string
	var bpm float64

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a practice sheet of rounds as a standard MIDI file",
		Long: `Generates rounds with the current settings and writes each one as a
whole-note chord, so they can be opened in notation software or a DAW.
Use --seed to get the same sheet twice.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if bpm <= 0 {
				return fmt.Errorf("--bpm must be positive, got %v", bpm)
			}
			_, _, settings, err := load(cmd, f)
			if err != nil {
				return err
			}

			rs, err := export.Rounds(newGenerator(f.seed), settings.Options(), rounds)
			if err != nil {
				return err
			}
			if err := export.WriteFile(out, rs, bpm); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rounds to %s\n", len(rs), out)
			return nil
		},
	}

	cmd.Flags().IntVar(&rounds, "rounds", 16, "number of rounds")
	cmd.Flags().StringVarP(&out, "out", "o", "practice.mid", "output file")
	cmd.Flags().Float64Var(&bpm, "bpm", 60, "tempo of the sheet")
	return cmd
}
