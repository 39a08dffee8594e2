package theme

import (
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Targets [6]RGB
	Symbols Symbols
}

type Symbols struct {
	Open     rune // ○ idle cell
	Inactive rune // · outside the window
	Selected rune // ● clicked while guessing
	Hit      rune // ● revealed, found
	Missed   rune // ◌ revealed, not found
	Wrong    rune // ✕ revealed, false positive
	Cursor   rune // ◉ keyboard cursor
	Anchor   rune // ▲ position-mode anchor
	Inlay    rune // • inlay under the fret numbers
}

// SafePalette is the target colour set: blue, orange, purple, emerald, cyan, pink.
// The hues stay distinguishable for the common colour-vision deficiencies.
var SafePalette = [6]RGB{
	{37, 99, 235},  // blue-600
	{249, 115, 22}, // orange-500
	{124, 58, 237}, // violet-600
	{5, 150, 105},  // emerald-600
	{8, 145, 178},  // cyan-600
	{219, 39, 119}, // pink-600
}

var (
	amber = RGB{251, 191, 36}
	red   = RGB{220, 38, 38}
)

func New(palette *Palette) *Theme {
	if palette == nil || len(palette.Colors) == 0 {
		palette = DefaultPalette()
	}
	return &Theme{
		Palette: palette,
		Targets: SafePalette,
		Symbols: Symbols{
			Open:     '○',
			Inactive: '·',
			Selected: '●',
			Hit:      '●',
			Missed:   '◌',
			Wrong:    '✕',
			Cursor:   '◉',
			Anchor:   '▲',
			Inlay:    '•',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0
	RoleSurface = 0.2
	RoleMuted   = 0.4
	RoleString  = 0.6
	RoleFG      = 1.0
)

// Style helpers

func (t *Theme) BG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleBG))
}

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Surface() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleSurface))
}

func (t *Theme) StringLine() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleString))
}

func (t *Theme) Selected() lipgloss.Color {
	return rgbToLipgloss(amber)
}

func (t *Theme) Anchor() lipgloss.Color {
	return rgbToLipgloss(red)
}

func (t *Theme) Success() lipgloss.Color {
	return rgbToLipgloss(t.Targets[3])
}

// Target returns the lipgloss colour of palette slot i
func (t *Theme) Target(i int) lipgloss.Color {
	return rgbToLipgloss(t.TargetRGB(i))
}

// TargetRGB returns raw RGB of palette slot i (for Launchpad)
func (t *Theme) TargetRGB(i int) RGB {
	return t.Targets[((i%len(t.Targets))+len(t.Targets))%len(t.Targets)]
}

// Faded blends a colour halfway toward the background, for unfound targets
func (t *Theme) Faded(c RGB) RGB {
	return Blend(c, t.Palette.Lookup(RoleBG), 0.5)
}

// Missed is the colour of a target position the player did not find
func (t *Theme) Missed(i int) lipgloss.Color {
	return rgbToLipgloss(t.Faded(t.TargetRGB(i)))
}

// SelectedRGB is the marker colour of clicked cells
func (t *Theme) SelectedRGB() RGB {
	return amber
}

// WrongRGB is the marker colour of false positives
func (t *Theme) WrongRGB() RGB {
	return t.Palette.Lookup(RoleMuted)
}

// WindowRGB is the dim backlight of playable cells
func (t *Theme) WindowRGB() RGB {
	return t.Palette.Lookup(RoleSurface)
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(c.Hex())
}

// AnchorRGB marks the anchor fret in position mode
func (t *Theme) AnchorRGB() RGB {
	return red
}
