package notation

import (
	"strconv"

	"fret-focus/game"
)

// Name is the display label of a target: "F#" in position mode, "F#3" in octave mode
func Name(p int, mode game.Mode, useFlats bool) string {
	name := game.NoteName(p, useFlats)
	if mode == game.ModeOctave {
		name += strconv.Itoa(game.Octave(p))
	}
	return name
}
