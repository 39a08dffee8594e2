package midi

import (
	"fmt"
	"sync/atomic"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"fret-focus/debug"
)

var ledSendCount uint64

// Launchpad X SysEx bodies (without F0/F7)
var (
	sysexProgrammerMode = []byte{0x00, 0x20, 0x29, 0x02, 0x0C, 0x00, 0x7F}
	sysexFullBrightness = []byte{0x00, 0x20, 0x29, 0x02, 0x0C, 0x08, 0x7F}
	sysexLEDFeedback    = []byte{0x00, 0x20, 0x29, 0x02, 0x0C, 0x0A, 0x01, 0x01}
)

// LaunchpadController drives a Novation Launchpad X in programmer mode. The
// 8x8 grid is a window onto the fretboard; see PadView.
type LaunchpadController struct {
	id   string
	send func(msg gomidi.Message) error
	stop func()
	pads chan PadEvent
}

// NewLaunchpadController opens the ports and switches the device to programmer mode
func NewLaunchpadController(id string, inPort drivers.In, outPort drivers.Out) (*LaunchpadController, error) {
	lp := &LaunchpadController{
		id:   id,
		pads: make(chan PadEvent, 32),
	}

	if outPort != nil {
		send, err := gomidi.SendTo(outPort)
		if err != nil {
			return nil, fmt.Errorf("open output: %w", err)
		}
		lp.send = send
		for _, body := range [][]byte{sysexProgrammerMode, sysexFullBrightness, sysexLEDFeedback} {
			if err := send(gomidi.SysEx(body)); err != nil {
				debug.Log("midi", "%s setup sysex: %v", id, err)
			}
		}
	}

	if inPort != nil {
		stop, err := gomidi.ListenTo(inPort, lp.receive)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		lp.stop = stop
	}

	return lp, nil
}

// receive turns grid notes and top-row CCs into pad presses; releases are dropped
func (lp *LaunchpadController) receive(msg gomidi.Message, _ int32) {
	var channel, key, value uint8
	row, col := -1, -1

	switch {
	case msg.GetNoteOn(&channel, &key, &value) && value > 0:
		row, col = noteToRowCol(key)
	case msg.GetControlChange(&channel, &key, &value) && value > 0:
		row, col = ccToRowCol(key)
	}
	if row < 0 {
		return
	}

	select {
	case lp.pads <- PadEvent{Row: row, Col: col, Velocity: value}:
	default:
	}
}

func (lp *LaunchpadController) ID() string {
	return lp.id
}

func (lp *LaunchpadController) Type() ControllerType {
	return ControllerLaunchpad
}

func (lp *LaunchpadController) PadEvents() <-chan PadEvent {
	return lp.pads
}

// SetLEDBatch sends one message per pad: CC for the top row, NoteOn elsewhere.
// The channel selects static, flashing or pulsing.
func (lp *LaunchpadController) SetLEDBatch(updates []LEDUpdate) error {
	if lp.send == nil || len(updates) == 0 {
		return nil
	}

	var firstErr error
	for _, u := range updates {
		color := nearestPaletteColor(u.Color)
		msg := gomidi.NoteOn(u.Channel, rowColToNote(u.Row, u.Col), color)
		if u.Row == TopRow {
			msg = gomidi.ControlChange(u.Channel, rowColToNote(u.Row, u.Col), color)
		}
		if err := lp.send(msg); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	count := atomic.AddUint64(&ledSendCount, uint64(len(updates)))
	if count%100 < uint64(len(updates)) {
		debug.Log("lp-send", "sent=%d batch=%d", count, len(updates))
	}
	return firstErr
}

type paletteEntry struct {
	velocity uint8
	rgb      [3]uint8
}

// Approximate RGB of the Launchpad X velocities the board uses
var launchpadPalette = []paletteEntry{
	{0, [3]uint8{0, 0, 0}},
	{1, [3]uint8{30, 40, 60}},
	{2, [3]uint8{70, 85, 105}},
	{5, [3]uint8{255, 0, 0}},
	{6, [3]uint8{255, 80, 80}},
	{7, [3]uint8{180, 60, 60}},
	{9, [3]uint8{255, 100, 0}},
	{11, [3]uint8{180, 80, 40}},
	{13, [3]uint8{255, 200, 0}},
	{17, [3]uint8{0, 180, 0}},
	{19, [3]uint8{0, 100, 0}},
	{21, [3]uint8{0, 255, 0}},
	{37, [3]uint8{0, 200, 200}},
	{43, [3]uint8{40, 60, 120}},
	{45, [3]uint8{0, 100, 255}},
	{47, [3]uint8{80, 150, 255}},
	{49, [3]uint8{150, 0, 200}},
	{50, [3]uint8{120, 60, 230}},
	{53, [3]uint8{255, 80, 180}},
	{57, [3]uint8{220, 40, 120}},
	{78, [3]uint8{100, 100, 255}},
	{84, [3]uint8{255, 150, 50}},
	{87, [3]uint8{150, 255, 100}},
	{96, [3]uint8{250, 190, 40}},
	{97, [3]uint8{180, 180, 60}},
	{119, [3]uint8{255, 255, 255}},
}

// nearestPaletteColor picks the velocity closest to rgb (squared RGB distance)
func nearestPaletteColor(rgb [3]uint8) uint8 {
	best, bestDist := uint8(0), -1
	for _, e := range launchpadPalette {
		dist := 0
		for i := range rgb {
			d := int(rgb[i]) - int(e.rgb[i])
			dist += d * d
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = e.velocity, dist
		}
	}
	return best
}

// Close darkens every pad and stops listening
func (lp *LaunchpadController) Close() error {
	if lp.send != nil {
		var off []LEDUpdate
		for row := 0; row <= TopRow; row++ {
			for col := 0; col <= SceneCol; col++ {
				if row == TopRow && col == SceneCol {
					continue // logo, not a button
				}
				off = append(off, LEDUpdate{Row: row, Col: col})
			}
		}
		lp.SetLEDBatch(off)
	}
	if lp.stop != nil {
		lp.stop()
	}
	close(lp.pads)
	return nil
}

// Programmer-mode layout: grid row r, col c is note (r+1)*10 + c+1, so row 0 is
// notes 11-18 and the scene column is 19..89. The top row is CC 91-98.

func rowColToNote(row, col int) uint8 {
	if row == TopRow {
		return uint8(91 + col)
	}
	return uint8((row+1)*10 + col + 1)
}

func noteToRowCol(note uint8) (row, col int) {
	if note >= 91 && note <= 98 {
		return TopRow, int(note - 91)
	}
	row = int(note/10) - 1
	col = int(note%10) - 1
	if row < 0 || row >= GridSize || col < 0 || col > SceneCol {
		return -1, -1
	}
	return row, col
}

func ccToRowCol(cc uint8) (row, col int) {
	if cc >= 91 && cc <= 98 {
		return TopRow, int(cc - 91)
	}
	return -1, -1
}
