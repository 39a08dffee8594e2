package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
)

func TestLaunchpadNoteMapping(t *testing.T) {
	assert.Equal(t, uint8(11), rowColToNote(0, 0))
	assert.Equal(t, uint8(88), rowColToNote(7, 7))
	assert.Equal(t, uint8(19), rowColToNote(ActionRow, SceneCol))
	assert.Equal(t, uint8(94), rowColToNote(TopRow, PageRightCol))

	for row := 0; row < GridSize; row++ {
		for col := 0; col <= SceneCol; col++ {
			r, c := noteToRowCol(rowColToNote(row, col))
			assert.Equal(t, [2]int{row, col}, [2]int{r, c})
		}
	}

	r, _ := noteToRowCol(10)
	assert.Equal(t, -1, r)

	r, c := ccToRowCol(93)
	assert.Equal(t, [2]int{TopRow, PageLeftCol}, [2]int{r, c})
	r, _ = ccToRowCol(64)
	assert.Equal(t, -1, r)
}

func TestMapRGBToLaunchpad(t *testing.T) {
	assert.Equal(t, uint8(0), nearestPaletteColor([3]uint8{0, 0, 0}))
	assert.Equal(t, uint8(119), nearestPaletteColor([3]uint8{255, 255, 255}))
	assert.Equal(t, uint8(21), nearestPaletteColor([3]uint8{0, 255, 0}))
}

func TestPortMatching(t *testing.T) {
	assert.True(t, isLaunchpad("Launchpad X LPX MIDI"))
	assert.False(t, isLaunchpad("Launchpad X LPX DAW"))

	dm := NewDeviceManager(GuitarPort{Match: "TriplePlay", FirstChannel: 1}, GuitarPort{})
	g, ok := dm.matchGuitar("fishman tripleplay connect")
	assert.True(t, ok)
	assert.Equal(t, 1, g.FirstChannel)

	_, ok = dm.matchGuitar("some keyboard")
	assert.False(t, ok, "an empty match string never matches")
}

func TestInputSources(t *testing.T) {
	lp, err := NewLaunchpadController("lp", nil, nil)
	require.NoError(t, err)
	gtr, err := NewGuitarController("gtr", nil)
	require.NoError(t, err)

	var c Controller = lp
	_, ok := c.(PadSource)
	assert.True(t, ok)
	_, ok = c.(NoteSource)
	assert.False(t, ok)

	c = gtr
	_, ok = c.(NoteSource)
	assert.True(t, ok)
	_, ok = c.(PadSource)
	assert.False(t, ok)
}

func TestLaunchpadReceive(t *testing.T) {
	lp, err := NewLaunchpadController("lp", nil, nil)
	require.NoError(t, err)

	lp.receive(gomidi.NoteOn(0, 11, 100), 0)
	lp.receive(gomidi.NoteOff(0, 11), 0)
	lp.receive(gomidi.NoteOn(0, 11, 0), 0)
	lp.receive(gomidi.ControlChange(0, 91, 127), 0)
	lp.receive(gomidi.ControlChange(0, 91, 0), 0)

	require.Len(t, lp.pads, 2)
	assert.Equal(t, PadEvent{Row: 0, Col: 0, Velocity: 100}, <-lp.PadEvents())
	assert.Equal(t, PadEvent{Row: TopRow, Col: 0, Velocity: 127}, <-lp.PadEvents())
}
