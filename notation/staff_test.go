package notation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fret-focus/game"
)

func TestWrittenPitch(t *testing.T) {
	assert.Equal(t, 69, WrittenPitch(9, game.ModePosition))
	assert.Equal(t, 69, WrittenPitch(21, game.ModePosition))
	assert.Equal(t, 52, WrittenPitch(40, game.ModeOctave))
}

func TestTextStaffOnStaff(t *testing.T) {
	// A4 sits in the second space; no ledger lines needed
	out := TextStaff{}.Render([]int{9}, nil, game.ModePosition, false)
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 10, "nine staff rows plus the 8vb marker")
	assert.Equal(t, "  8vb", lines[len(lines)-1])
	assert.Equal(t, 1, strings.Count(out, "●"))
	assert.Contains(t, lines[5], "●")
	assert.True(t, strings.HasPrefix(lines[6], "│G"), "G clef mark on the second line")
}

func TestTextStaffLedgerLines(t *testing.T) {
	// written C4 needs one ledger line below the staff
	out := TextStaff{}.Render([]int{0}, nil, game.ModePosition, false)
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 12)
	ledger := lines[len(lines)-2]
	assert.Contains(t, ledger, "●")
	assert.Contains(t, ledger, "─")
	assert.False(t, strings.HasPrefix(ledger, "│"))
}

func TestTextStaffAccidentals(t *testing.T) {
	sharp := TextStaff{}.Render([]int{1}, nil, game.ModePosition, false)
	assert.Contains(t, sharp, "♯")
	assert.NotContains(t, sharp, "♭")

	flat := TextStaff{}.Render([]int{1}, nil, game.ModePosition, true)
	assert.Contains(t, flat, "♭")
}

func TestTextStaffSharedStep(t *testing.T) {
	// C and C# share a line, so they sit side by side
	out := TextStaff{}.Render([]int{0, 1}, nil, game.ModePosition, false)
	assert.Equal(t, 2, strings.Count(out, "●"))

	var row string
	for _, l := range strings.Split(out, "\n") {
		if strings.Contains(l, "●") {
			row = l
		}
	}
	assert.Equal(t, 2, strings.Count(row, "●"))
}

func TestLetters(t *testing.T) {
	out := Letters{}.Render([]int{1, 4}, nil, game.ModePosition, true)
	assert.Contains(t, out, "Db")
	assert.Contains(t, out, "E")

	out = Letters{Gap: 1}.Render([]int{40, 64}, nil, game.ModeOctave, false)
	assert.Contains(t, out, "E2")
	assert.Contains(t, out, "E4")
}

func TestName(t *testing.T) {
	assert.Equal(t, "F#", Name(6, game.ModePosition, false))
	assert.Equal(t, "Gb3", Name(54, game.ModeOctave, true))
}
