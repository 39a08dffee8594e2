package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fret-focus/game"
	"fret-focus/theme"
)

// Fretboard geometry in terminal cells. Row 0 holds the fret numbers, rows
// 1-6 the strings (high E first) and row 7 the inlays.
const (
	LabelWidth = 3
	CellWidth  = 4
	HeaderRows = 1
	BoardRows  = HeaderRows + game.NumStrings + 1
)

var inlays = map[int]int{3: 1, 5: 1, 7: 1, 9: 1, 12: 2}

// FretboardHit maps a point relative to the fretboard's top-left corner to a cell
func FretboardHit(x, y int) (game.Position, bool) {
	s := y - HeaderRows
	if s < 0 || s >= game.NumStrings || x < LabelWidth {
		return game.Position{}, false
	}
	p := game.Position{String: s, Fret: (x - LabelWidth) / CellWidth}
	return p, p.Valid()
}

// Cursor marks the keyboard-selected cell; Show=false hides it
type Cursor struct {
	Pos  game.Position
	Show bool
}

// RenderFretboard draws the board with markers for the current phase
func RenderFretboard(s game.State, cur Cursor, th *theme.Theme) string {
	window := s.Window()
	dim := lipgloss.NewStyle().Foreground(th.Muted())
	wire := lipgloss.NewStyle().Foreground(th.StringLine())
	anchor := lipgloss.NewStyle().Foreground(th.Anchor()).Bold(true)

	var out strings.Builder

	// Fret numbers
	out.WriteString(strings.Repeat(" ", LabelWidth))
	for f := 0; f < game.NumFrets; f++ {
		label := fmt.Sprintf("%-*d", CellWidth, f)
		switch {
		case s.Round.Mode == game.ModePosition && f == s.Round.Anchor:
			out.WriteString(anchor.Render(label))
		case window.Contains(f):
			out.WriteString(label)
		default:
			out.WriteString(dim.Render(label))
		}
	}
	out.WriteString("\n")

	for str := 0; str < game.NumStrings; str++ {
		out.WriteString(dim.Render(fmt.Sprintf("%-*s", LabelWidth, game.NoteName(s.Settings.Tuning[str], false))))
		for f := 0; f < game.NumFrets; f++ {
			p := game.Position{String: str, Fret: f}
			marker := renderCell(s, p, cur, th)

			line := wire
			if !window.Contains(f) {
				line = dim
			}
			sep := "─"
			if f == 0 {
				sep = "║"
			}
			out.WriteString(marker)
			out.WriteString(line.Render("──" + sep))
		}
		out.WriteString("\n")
	}

	out.WriteString(strings.Repeat(" ", LabelWidth))
	for f := 0; f < game.NumFrets; f++ {
		mark := " "
		switch inlays[f] {
		case 1:
			mark = string(th.Symbols.Inlay)
		case 2:
			mark = ":"
		}
		out.WriteString(dim.Render(fmt.Sprintf("%-*s", CellWidth, mark)))
	}

	return out.String()
}

func renderCell(s game.State, p game.Position, cur Cursor, th *theme.Theme) string {
	r, style := cellLook(s, p, cur, th)
	return style.Render(string(r))
}

// cellLook picks the marker and style of one cell
func cellLook(s game.State, p game.Position, cur Cursor, th *theme.Theme) (rune, lipgloss.Style) {
	sym := th.Symbols
	status, target := s.Cell(p)

	var r rune
	style := lipgloss.NewStyle()
	switch status {
	case game.CellInactive:
		r = sym.Inactive
		style = style.Foreground(th.Surface())
	case game.CellSelected:
		r = sym.Selected
		style = style.Foreground(th.Selected())
	case game.CellHit:
		r = sym.Hit
		style = style.Foreground(th.Target(s.Round.ColorIndex(target))).Bold(true)
	case game.CellMissed:
		r = sym.Missed
		style = style.Foreground(th.Missed(s.Round.ColorIndex(target)))
	case game.CellWrong:
		r = sym.Wrong
		style = style.Foreground(th.FG())
	default:
		r = sym.Open
		style = style.Foreground(th.Muted())
		if s.Round.Mode == game.ModePosition && p.String == 0 && p.Fret == s.Round.Anchor {
			r = sym.Anchor
			style = style.Foreground(th.Anchor())
		}
	}

	if cur.Show && cur.Pos == p {
		if r == sym.Open || r == sym.Inactive {
			r = sym.Cursor
		}
		style = style.Reverse(true)
	}
	return r, style
}

// RenderLegend explains the revealed markers
func RenderLegend(th *theme.Theme) string {
	return strings.Join([]string{
		RenderSwatch(th.Target(0)) + " found",
		lipgloss.NewStyle().Foreground(th.Missed(0)).Render(string(th.Symbols.Missed)) + " missed",
		lipgloss.NewStyle().Foreground(th.FG()).Render(string(th.Symbols.Wrong)) + " wrong",
	}, "   ")
}
