package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"fret-focus/game"
	"fret-focus/midi"
	"fret-focus/theme"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "board":
		showBoard()
	case "guitar":
		if len(os.Args) < 3 {
			usage()
			return
		}
		first := 0
		if len(os.Args) > 3 {
			first, _ = strconv.Atoi(os.Args[3])
		}
		echoGuitar(os.Args[2], first)
	default:
		usage()
	}
}

func usage() {
	fmt.Println("Controller Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list                    - List all MIDI ports")
	fmt.Println("  board                   - Light a sample round on a Launchpad and echo pad presses")
	fmt.Println("  guitar <port> [channel] - Echo fretboard positions from a mono-mode MIDI guitar")
}

func listPorts() {
	fmt.Println("(waiting up to 3 seconds...)")
	ins, outs, ok := midi.ListPorts(3 * time.Second)
	if !ok {
		fmt.Println("\nTIMEOUT! CoreMIDI is hung.")
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return
	}
	fmt.Println("=== MIDI Input Ports ===")
	for i, p := range ins {
		fmt.Printf("  %d: %s\n", i, p)
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, p := range outs {
		fmt.Printf("  %d: %s\n", i, p)
	}
}

// waitFor runs a device manager until the first controller of the wanted type connects
func waitFor(ctx context.Context, dm *midi.DeviceManager, want midi.ControllerType) midi.Controller {
	go dm.Run(ctx)
	fmt.Println("Waiting for controller... Ctrl+C to exit.")
	for ev := range dm.Events() {
		if ev.Type == midi.DeviceConnected && ev.Controller.Type() == want {
			fmt.Printf("Connected: %s\n", ev.ID)
			return ev.Controller
		}
	}
	return nil
}

func showBoard() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	lp := waitFor(ctx, midi.NewDeviceManager(), midi.ControllerLaunchpad)
	if lp == nil {
		return
	}

	engine := game.NewEngine(game.NewSeededGenerator(time.Now().UnixNano()))
	state, err := engine.Start(game.DefaultSettings())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	view := midi.ViewFor(state, 0)

	mirror := midi.NewMirror()
	mirror.SetController(lp)
	mirror.Show(midi.Frame(state, view, theme.New(nil)))
	mirror.Flush()

	fmt.Printf("Targets %v, window %d-%d. Press pads...\n", state.Round.Targets, state.Window().Start, state.Window().End)
	for {
		select {
		case <-ctx.Done():
			return
		case pad, ok := <-lp.(midi.PadSource).PadEvents():
			if !ok {
				return
			}
			if p, ok := view.Position(pad.Row, pad.Col); ok {
				fmt.Printf("  pad %d,%d -> string %d fret %d (%s)\n", pad.Row, pad.Col, p.String, p.Fret,
					game.NoteName(state.Settings.Tuning.Pitch(p), false))
			} else {
				fmt.Printf("  pad %d,%d (control)\n", pad.Row, pad.Col)
			}
		}
	}
}

func echoGuitar(port string, first int) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	gtr := waitFor(ctx, midi.NewDeviceManager(midi.GuitarPort{Match: port, FirstChannel: first}), midi.ControllerGuitar)
	if gtr == nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-gtr.(midi.NoteSource).NoteEvents():
			if !ok {
				return
			}
			if p, ok := midi.GuitarPosition(ev, first, game.StandardTuning); ok {
				fmt.Printf("  ch %d note %d -> string %d fret %d\n", ev.Channel, ev.Note, p.String, p.Fret)
			} else {
				fmt.Printf("  ch %d note %d -> off the board\n", ev.Channel, ev.Note)
			}
		}
	}
}
