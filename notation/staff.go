package notation

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fret-focus/game"
)

// Renderer draws a set of target pitches. Colors is parallel to pitches.
type Renderer interface {
	Render(pitches []int, colors []lipgloss.Color, mode game.Mode, useFlats bool) string
}

// Diatonic steps of the outer treble staff lines (E4 and F5)
const (
	bottomLine = 37
	topLine    = 45
	gLine      = 39
)

const (
	marginWidth = 3
	cellWidth   = 3 // accidental, head, gap
)

// WrittenPitch maps a target onto the 8vb treble staff. Pitch classes are
// written in the octave above middle C; absolute pitches sound an octave below
// where they are written.
func WrittenPitch(p int, mode game.Mode) int {
	if mode == game.ModePosition {
		return 60 + game.PitchClass(p)
	}
	return p + 12
}

// TextStaff renders targets as a single chord on a text treble staff
type TextStaff struct {
	LineColor lipgloss.Color
}

type head struct {
	written int
	step    int
	acc     rune
	color   lipgloss.Color
	slot    int
}

func (ts TextStaff) Render(pitches []int, colors []lipgloss.Color, mode game.Mode, useFlats bool) string {
	heads := make([]head, len(pitches))
	for i, p := range pitches {
		w := WrittenPitch(p, mode)
		h := head{written: w, step: game.DiatonicStep(w, useFlats)}
		if game.IsAccidental(w) {
			h.acc = '♯'
			if useFlats {
				h.acc = '♭'
			}
		}
		if len(colors) > 0 {
			h.color = colors[i%len(colors)]
		}
		heads[i] = h
	}
	sort.SliceStable(heads, func(i, j int) bool { return heads[i].written < heads[j].written })

	lo, hi := bottomLine, topLine
	taken := make(map[int]int)
	slots := 1
	for i := range heads {
		h := &heads[i]
		lo = min(lo, h.step)
		hi = max(hi, h.step)
		// Same line or space: shift sideways so both heads stay visible
		h.slot = taken[h.step]
		taken[h.step]++
		slots = max(slots, taken[h.step])
	}

	lineStyle := lipgloss.NewStyle()
	if ts.LineColor != "" {
		lineStyle = lineStyle.Foreground(ts.LineColor)
	}

	width := marginWidth + slots*cellWidth + 1
	var out strings.Builder
	for step := hi; step >= lo; step-- {
		onStaff := step >= bottomLine && step <= topLine
		isLine := (step-bottomLine)%2 == 0
		ledger := isLine && !onStaff

		cells := make([]string, width)
		for x := range cells {
			switch {
			case onStaff && isLine:
				cells[x] = lineStyle.Render("─")
			case ledger && x >= marginWidth-1:
				cells[x] = lineStyle.Render("─")
			default:
				cells[x] = " "
			}
		}
		if onStaff {
			cells[0] = lineStyle.Render("│")
		}
		if step == gLine {
			cells[1] = lineStyle.Render("G")
		}

		for _, h := range heads {
			if h.step != step {
				continue
			}
			x := marginWidth + h.slot*cellWidth
			style := lipgloss.NewStyle()
			if h.color != "" {
				style = style.Foreground(h.color)
			}
			if h.acc != 0 {
				cells[x] = style.Render(string(h.acc))
			}
			cells[x+1] = style.Render("●")
		}

		out.WriteString(strings.Join(cells, ""))
		out.WriteString("\n")
	}
	out.WriteString(strings.Repeat(" ", marginWidth-1))
	out.WriteString("8vb")
	return out.String()
}

// Letters renders targets as note names, with octaves in octave mode
type Letters struct {
	Gap int
}

func (l Letters) Render(pitches []int, colors []lipgloss.Color, mode game.Mode, useFlats bool) string {
	gap := l.Gap
	if gap <= 0 {
		gap = 3
	}
	parts := make([]string, len(pitches))
	for i, p := range pitches {
		name := Name(p, mode, useFlats)
		style := lipgloss.NewStyle().Bold(true)
		if len(colors) > 0 {
			style = style.Foreground(colors[i%len(colors)])
		}
		parts[i] = style.Render(name)
	}
	return strings.Join(parts, strings.Repeat(" ", gap))
}
