package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fret-focus/game"
	"fret-focus/theme"
)

// C in position mode, anchor 7 -> frets 4-10
func cState() game.State {
	return game.State{
		Settings: game.DefaultSettings(),
		Round:    game.Round{Mode: game.ModePosition, Targets: []int{0}, Anchor: 7, Colors: [6]int{2, 0, 1, 3, 4, 5}},
		Clicked:  game.PositionSet{},
	}
}

func TestViewFor(t *testing.T) {
	s := cState()
	assert.Equal(t, PadView{Start: 4}, ViewFor(s, 1))

	s.Round.Mode = game.ModeOctave
	assert.Equal(t, PadView{Start: 0}, ViewFor(s, 0))
	assert.Equal(t, PadView{Start: 7}, ViewFor(s, 1))
}

func TestPadViewMapping(t *testing.T) {
	v := PadView{Start: 4}

	p, ok := v.Position(7, 0)
	require.True(t, ok)
	assert.Equal(t, game.Position{String: 0, Fret: 4}, p)

	p, ok = v.Position(2, 6)
	require.True(t, ok)
	assert.Equal(t, game.Position{String: 5, Fret: 10}, p)

	// rows 0-1 are below the low E string
	_, ok = v.Position(1, 0)
	assert.False(t, ok)
	_, ok = v.Position(3, SceneCol)
	assert.False(t, ok)

	row, col, ok := v.Pad(game.Position{String: 5, Fret: 10})
	require.True(t, ok)
	assert.Equal(t, [2]int{2, 6}, [2]int{row, col})

	_, _, ok = v.Pad(game.Position{String: 0, Fret: 12})
	assert.False(t, ok)

	// the second octave page stops at the last fret
	_, ok = PadView{Start: 7}.Position(7, 7)
	assert.True(t, ok)
	_, ok = PadView{Start: 8}.Position(7, 7)
	assert.False(t, ok)
}

func ledAt(leds []LEDUpdate, row, col int) (LEDUpdate, bool) {
	for _, l := range leds {
		if l.Row == row && l.Col == col {
			return l, true
		}
	}
	return LEDUpdate{}, false
}

func TestFrameGuessing(t *testing.T) {
	th := theme.New(nil)
	s := cState()
	v := ViewFor(s, 0)
	s.Clicked = s.Clicked.With(game.Position{String: 2, Fret: 5})

	leds := Frame(s, v, th)

	sel, ok := ledAt(leds, 5, 1)
	require.True(t, ok)
	assert.Equal(t, [3]uint8(th.SelectedRGB()), sel.Color)

	anchor, ok := ledAt(leds, 7, 3)
	require.True(t, ok)
	assert.Equal(t, [3]uint8(th.AnchorRGB()), anchor.Color)

	// column 7 is fret 11, outside the window
	_, ok = ledAt(leds, 7, 7)
	assert.False(t, ok)

	action, ok := ledAt(leds, ActionRow, SceneCol)
	require.True(t, ok)
	assert.Equal(t, [3]uint8{0, 255, 0}, action.Color)

	_, ok = ledAt(leds, TopRow, PageLeftCol)
	assert.False(t, ok, "no paging in position mode")
}

func TestFrameRevealed(t *testing.T) {
	th := theme.New(nil)
	s := cState()
	v := ViewFor(s, 0)
	s.Clicked = game.NewPositionSet(game.Position{String: 2, Fret: 5}, game.Position{String: 1, Fret: 5})
	s.Phase = game.Revealed

	leds := Frame(s, v, th)

	hit, _ := ledAt(leds, 5, 1)
	assert.Equal(t, [3]uint8(th.TargetRGB(2)), hit.Color)
	assert.Equal(t, ChannelStatic, hit.Channel)

	missed, _ := ledAt(leds, 7, 4) // string 0 fret 8
	assert.Equal(t, ChannelPulse, missed.Channel)

	wrong, _ := ledAt(leds, 6, 1)
	assert.Equal(t, ChannelFlash, wrong.Channel)

	action, _ := ledAt(leds, ActionRow, SceneCol)
	assert.Equal(t, [3]uint8{255, 255, 255}, action.Color)
}

func TestFrameOctavePaging(t *testing.T) {
	th := theme.New(nil)
	s := cState()
	s.Round.Mode = game.ModeOctave

	left, ok := ledAt(Frame(s, ViewFor(s, 1), th), TopRow, PageLeftCol)
	require.True(t, ok)
	assert.Equal(t, [3]uint8(th.SelectedRGB()), left.Color)

	right, ok := ledAt(Frame(s, ViewFor(s, 0), th), TopRow, PageRightCol)
	require.True(t, ok)
	assert.Equal(t, [3]uint8(th.SelectedRGB()), right.Color)
}

func TestGuitarPosition(t *testing.T) {
	tests := []struct {
		name  string
		ev    NoteEvent
		first int
		want  game.Position
		ok    bool
	}{
		{"open high E", NoteEvent{Note: 64, Channel: 0}, 0, game.Position{String: 0, Fret: 0}, true},
		{"fifth fret A string", NoteEvent{Note: 50, Channel: 5}, 1, game.Position{String: 4, Fret: 5}, true},
		{"channel below the strings", NoteEvent{Note: 64, Channel: 0}, 1, game.Position{}, false},
		{"seventh channel", NoteEvent{Note: 64, Channel: 6}, 0, game.Position{}, false},
		{"below the open string", NoteEvent{Note: 39, Channel: 5}, 0, game.Position{String: 5, Fret: -1}, false},
		{"past the last fret", NoteEvent{Note: 79, Channel: 0}, 0, game.Position{String: 0, Fret: 15}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := GuitarPosition(tc.ev, tc.first, game.StandardTuning)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, p)
			}
		})
	}
}
