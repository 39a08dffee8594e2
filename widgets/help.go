package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderSwatch renders a single coloured marker
func RenderSwatch(color lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(color).Render("●")
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}

// TrainerKeys is the key help shown under the fretboard
var TrainerKeys = []KeySection{
	{Title: "Board", Keys: []KeyBinding{
		{Key: "hjkl/arrows", Desc: "move cursor"},
		{Key: "space", Desc: "mark / unmark"},
		{Key: "enter", Desc: "check answer / next round"},
	}},
	{Title: "Round", Keys: []KeyBinding{
		{Key: "m", Desc: "switch position / octave mode"},
		{Key: "+ / -", Desc: "more / fewer targets"},
		{Key: "s", Desc: "staff notation"},
		{Key: "x", Desc: "hide guesses"},
		{Key: "a", Desc: "sharps / flats / random"},
		{Key: "q", Desc: "quit"},
	}},
}
