package midi

import (
	"fret-focus/game"
	"fret-focus/theme"
)

// Launchpad grid geometry
const (
	GridSize = 8
	TopRow   = 8 // CC 91-98
	SceneCol = 8 // right-hand scene buttons

	// Scene button that submits, or starts the next round once revealed
	ActionRow = 0

	// Top-row arrow buttons page the octave-mode board
	PageLeftCol  = 2
	PageRightCol = 3

	// Octave mode shows frets 0-7 or 7-14
	PageStride = game.NumFrets / 2
)

// PadView maps the 8x8 grid onto a slice of the fretboard. String 0 (high E)
// is on row 7 so the grid reads like a tab staff.
type PadView struct {
	Start int // fret on column 0
}

// ViewFor returns the grid view for a state. Position mode follows the
// window; octave mode shows page 0 or 1.
func ViewFor(s game.State, page int) PadView {
	if s.Round.Mode == game.ModePosition {
		return PadView{Start: s.Window().Start}
	}
	if page > 0 {
		return PadView{Start: PageStride}
	}
	return PadView{Start: 0}
}

// Position returns the fretboard cell under a grid pad
func (v PadView) Position(row, col int) (game.Position, bool) {
	if row < 0 || row >= GridSize || col < 0 || col >= GridSize {
		return game.Position{}, false
	}
	p := game.Position{String: GridSize - 1 - row, Fret: v.Start + col}
	return p, p.Valid()
}

// Pad returns the grid pad showing a fretboard cell
func (v PadView) Pad(p game.Position) (row, col int, ok bool) {
	row, col = GridSize-1-p.String, p.Fret-v.Start
	if !p.Valid() || col < 0 || col >= GridSize {
		return 0, 0, false
	}
	return row, col, true
}

// Frame renders the state as LED updates. Pads that should be dark are left
// out; the Mirror turns off anything missing from the frame.
func Frame(s game.State, v PadView, th *theme.Theme) []LEDUpdate {
	var leds []LEDUpdate
	add := func(row, col int, c theme.RGB, ch uint8) {
		leds = append(leds, LEDUpdate{Row: row, Col: col, Color: c, Channel: ch})
	}

	for str := 0; str < game.NumStrings; str++ {
		for c := 0; c < GridSize; c++ {
			p := game.Position{String: str, Fret: v.Start + c}
			if !p.Valid() {
				continue
			}
			row, col, _ := v.Pad(p)

			status, target := s.Cell(p)
			switch status {
			case game.CellIdle:
				if s.Round.Mode == game.ModePosition && str == 0 && p.Fret == s.Round.Anchor {
					add(row, col, th.AnchorRGB(), ChannelStatic)
				} else {
					add(row, col, th.WindowRGB(), ChannelStatic)
				}
			case game.CellSelected:
				add(row, col, th.SelectedRGB(), ChannelStatic)
			case game.CellHit:
				add(row, col, th.TargetRGB(s.Round.ColorIndex(target)), ChannelStatic)
			case game.CellMissed:
				add(row, col, th.TargetRGB(s.Round.ColorIndex(target)), ChannelPulse)
			case game.CellWrong:
				add(row, col, th.WrongRGB(), ChannelFlash)
			}
		}
	}

	// Action button: green to submit, white for next round
	if s.Phase == game.Guessing {
		add(ActionRow, SceneCol, theme.RGB{0, 255, 0}, ChannelStatic)
	} else {
		add(ActionRow, SceneCol, theme.RGB{255, 255, 255}, ChannelStatic)
	}

	if s.Round.Mode == game.ModeOctave {
		dim, lit := th.WindowRGB(), th.SelectedRGB()
		left, right := lit, dim
		if v.Start == 0 {
			left, right = dim, lit
		}
		add(TopRow, PageLeftCol, left, ChannelStatic)
		add(TopRow, PageRightCol, right, ChannelStatic)
	}

	return leds
}
