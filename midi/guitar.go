package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"fret-focus/game"
)

// GuitarController handles a guitar-to-MIDI converter in mono mode, where
// every string transmits on its own channel
type GuitarController struct {
	id       string
	inPort   drivers.In
	stopFunc func()

	noteChan chan NoteEvent
}

// NewGuitarController creates a guitar controller (input only)
func NewGuitarController(id string, inPort drivers.In) (*GuitarController, error) {
	g := &GuitarController{
		id:       id,
		inPort:   inPort,
		noteChan: make(chan NoteEvent, 32),
	}

	// Open input
	if inPort != nil {
		stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
			var channel, note, velocity uint8
			if msg.GetNoteOn(&channel, &note, &velocity) && velocity > 0 {
				select {
				case g.noteChan <- NoteEvent{Note: note, Velocity: velocity, Channel: channel}:
				default:
				}
			}
		})
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		g.stopFunc = stop
	}

	return g, nil
}

func (g *GuitarController) ID() string {
	return g.id
}

func (g *GuitarController) Type() ControllerType {
	return ControllerGuitar
}

func (g *GuitarController) NoteEvents() <-chan NoteEvent {
	return g.noteChan
}

// SetLEDBatch is a no-op for guitars
func (g *GuitarController) SetLEDBatch(updates []LEDUpdate) error {
	return nil
}

func (g *GuitarController) Close() error {
	if g.stopFunc != nil {
		g.stopFunc()
	}
	close(g.noteChan)
	return nil
}

// GuitarPosition maps a mono-mode note to the fretboard cell that played it.
// firstChannel is the channel of string 0 (high E).
func GuitarPosition(ev NoteEvent, firstChannel int, tuning game.Tuning) (game.Position, bool) {
	s := int(ev.Channel) - firstChannel
	if s < 0 || s >= game.NumStrings {
		return game.Position{}, false
	}
	p := game.Position{String: s, Fret: int(ev.Note) - tuning[s]}
	return p, p.Valid()
}
