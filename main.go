package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"fret-focus/config"
	"fret-focus/debug"
	"fret-focus/game"
	"fret-focus/midi"
	"fret-focus/theme"
	"fret-focus/tui"
)

// flags shared by every command; zero values mean "use the config file"
type flags struct {
	configPath  string
	count       int
	mode        string
	accidentals string
	staff       bool
	hidden      bool
	seed        int64
	palette     string
	debug       bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:   "fret-focus",
		Short: "Fretboard note-identification trainer",
		Long: `Find every position of the target notes on the guitar neck.

Runs in the terminal by default. A Novation Launchpad or a mono-mode MIDI
guitar can be used to mark positions.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, f)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "config file (default ~/.config/fret-focus/config.json)")
	pf.IntVarP(&f.count, "count", "n", 0, "number of target notes (1-7)")
	pf.StringVar(&f.mode, "mode", "", "position (pitch classes, 7-fret window) or octave (absolute pitches)")
	pf.StringVar(&f.accidentals, "accidentals", "", "sharps, flats or random")
	pf.BoolVar(&f.staff, "staff", false, "show targets on a staff instead of letter names")
	pf.BoolVar(&f.hidden, "hidden", false, "hide marked positions until the answer is checked")
	pf.Int64Var(&f.seed, "seed", 0, "random seed (0 = time based)")
	pf.StringVar(&f.palette, "palette", "", "GIMP .gpl palette for the board colours")
	pf.BoolVar(&f.debug, "debug", false, "write a debug log to ~/.config/fret-focus/debug.log")

	root.AddCommand(newServeCmd(f), newExportCmd(f), newPortsCmd(f))
	return root
}

// load reads the config file and applies any flags the user set
func load(cmd *cobra.Command, f *flags) (*config.Config, string, game.Settings, error) {
	path := f.configPath
	if path == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return nil, "", game.Settings{}, err
		}
		path = p
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, "", game.Settings{}, err
	}

	s := cfg.Settings()
	changed := cmd.Flags().Changed
	if changed("count") {
		s.Count = f.count
	}
	if changed("mode") {
		if s.Mode, err = game.ParseMode(f.mode); err != nil {
			return nil, "", s, err
		}
	}
	if changed("accidentals") {
		if s.Accidentals, err = game.ParseAccidentals(f.accidentals); err != nil {
			return nil, "", s, err
		}
	}
	if changed("staff") {
		s.Staff = f.staff
	}
	if changed("hidden") {
		s.Hidden = f.hidden
	}
	if changed("palette") {
		cfg.Palette = f.palette
	}
	return cfg, path, s, nil
}

func newGenerator(seed int64) *game.Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return game.NewGenerator(rand.New(rand.NewSource(seed)))
}

func loadTheme(cfg *config.Config) (*theme.Theme, error) {
	if cfg.Palette == "" {
		return theme.New(nil), nil
	}
	p, err := theme.LoadGPL(cfg.Palette)
	if err != nil {
		return nil, err
	}
	return theme.New(p), nil
}

func runTUI(cmd *cobra.Command, f *flags) error {
	if f.debug {
		if err := debug.Enable(); err != nil {
			return fmt.Errorf("enable debug log: %w", err)
		}
		defer debug.Disable()
	}

	cfg, path, settings, err := load(cmd, f)
	if err != nil {
		return err
	}
	th, err := loadTheme(cfg)
	if err != nil {
		return err
	}

	engine := game.NewEngine(newGenerator(f.seed))
	state, err := engine.Start(settings)
	if err != nil {
		return err
	}

	saver := config.NewAutosaver(cfg, path, 500*time.Millisecond)
	defer func() {
		if err := saver.Flush(); err != nil {
			debug.Error("config", err, "final save failed")
		}
	}()

	// Hardware: Launchpads are found by name, guitars by the configured ports
	var guitars []midi.GuitarPort
	for _, c := range cfg.AutoConnectControllers() {
		if c.Type == config.ControllerGuitar {
			guitars = append(guitars, midi.GuitarPort{Match: c.PortName, FirstChannel: c.FirstChannel})
		}
	}
	deviceMgr := midi.NewDeviceManager(guitars...)
	mirror := midi.NewMirror()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go deviceMgr.Run(ctx)
	go mirror.Run(ctx)

	m := tui.NewModel(engine, state, th, tui.Options{
		DeviceMgr:  deviceMgr,
		Mirror:     mirror,
		OnSettings: saver.Update,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
