package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"fret-focus/config"
	"fret-focus/midi"
)

func newPortsCmd(f *flags) *cobra.Command {
	var addGuitar string
	var channel int

	cmd := &cobra.Command{
		Use:   "ports",
		Short: "List MIDI ports and register a MIDI guitar",
		Long: `Lists MIDI ports, marking the ones the config already knows.

With --add-guitar, saves an input port as a mono-mode MIDI guitar whose high E
string sends on --channel (0-15, the others follow in order).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := f.configPath
			if path == "" {
				p, err := config.ConfigPath()
				if err != nil {
					return err
				}
				path = p
			}
			cfg, err := config.LoadFrom(path)
			if err != nil {
				return err
			}

			if addGuitar != "" {
				if err := addGuitarPort(cfg, addGuitar, channel); err != nil {
					return err
				}
				if err := cfg.SaveTo(path); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved guitar %q (channels %d-%d) to %s\n", addGuitar, channel, channel+5, path)
				return nil
			}

			ins, outs, ok := midi.ListPorts(3 * time.Second)
			if !ok {
				return errors.New("MIDI port scan timed out")
			}
			printPorts(cmd.OutOrStdout(), cfg, ins, outs)
			return nil
		},
	}

	cmd.Flags().StringVar(&addGuitar, "add-guitar", "", "input port name to save as a MIDI guitar")
	cmd.Flags().IntVar(&channel, "channel", 0, "0-based MIDI channel of the high E string")
	return cmd
}

// addGuitarPort records (or replaces) a guitar entry for port
func addGuitarPort(cfg *config.Config, port string, channel int) error {
	if channel < 0 || channel > 10 {
		return fmt.Errorf("channel %d: six strings need channels %d..%d within 0-15", channel, channel, channel+5)
	}
	cfg.AddController(config.ControllerConfig{
		PortName:     port,
		Type:         config.ControllerGuitar,
		AutoConnect:  true,
		FirstChannel: channel,
	})
	return nil
}

func printPorts(w io.Writer, cfg *config.Config, ins, outs []string) {
	mark := func(name string) string {
		if c := cfg.FindController(name); c != nil {
			if !c.AutoConnect {
				return fmt.Sprintf("  [%s, off]", c.Type)
			}
			return fmt.Sprintf("  [%s]", c.Type)
		}
		return ""
	}

	fmt.Fprintln(w, "inputs:")
	for i, p := range ins {
		fmt.Fprintf(w, "  %d: %s%s\n", i, p, mark(p))
	}
	fmt.Fprintln(w, "outputs:")
	for i, p := range outs {
		fmt.Fprintf(w, "  %d: %s\n", i, p)
	}
}
