package game

import (
	"fmt"
	"sort"

	"golang.org/x/exp/constraints"
)

const (
	NumStrings = 6
	NumFrets   = 15 // frets 0 (open) through 14
	MaxFret    = NumFrets - 1

	// Position mode shows a 7-fret band around the anchor
	WindowReach = 3
	AnchorMin   = 3
	AnchorMax   = 11
)

// Tuning holds the open-string pitch of each string, high string first
type Tuning [NumStrings]int

// StandardTuning is E4 B3 G3 D3 A2 E2
var StandardTuning = Tuning{64, 59, 55, 50, 45, 40}

// Pitch returns the sounding MIDI pitch at a string/fret
func (t Tuning) Pitch(p Position) int {
	return t[p.String] + p.Fret
}

// Position is a single cell on the fretboard
type Position struct {
	String int `json:"string"`
	Fret   int `json:"fret"`
}

// Label formats the position for logs
func (p Position) Label() string {
	return fmt.Sprintf("s%d/f%d", p.String, p.Fret)
}

// Valid reports whether the position lies on the board
func (p Position) Valid() bool {
	return p.String >= 0 && p.String < NumStrings && p.Fret >= 0 && p.Fret < NumFrets
}

// Window is an inclusive fret range
type Window struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// FullBoard covers every fret
var FullBoard = Window{Start: 0, End: MaxFret}

// WindowAround returns the band anchor-3 .. anchor+3 clamped to the board
func WindowAround(anchor int) Window {
	return Window{
		Start: clamp(anchor-WindowReach, 0, MaxFret),
		End:   clamp(anchor+WindowReach, 0, MaxFret),
	}
}

// Contains reports whether fret lies inside the window
func (w Window) Contains(fret int) bool {
	return fret >= w.Start && fret <= w.End
}

// Width is the number of frets in the window
func (w Window) Width() int {
	return w.End - w.Start + 1
}

// PositionSet is an unordered set of fretboard cells.
// The helpers never mutate the receiver; state updates swap whole values.
type PositionSet map[Position]struct{}

// NewPositionSet builds a set from a list of positions
func NewPositionSet(ps ...Position) PositionSet {
	s := make(PositionSet, len(ps))
	for _, p := range ps {
		s[p] = struct{}{}
	}
	return s
}

func (s PositionSet) Has(p Position) bool {
	_, ok := s[p]
	return ok
}

func (s PositionSet) clone() PositionSet {
	out := make(PositionSet, len(s)+1)
	for p := range s {
		out[p] = struct{}{}
	}
	return out
}

// With returns a copy of s that includes p
func (s PositionSet) With(p Position) PositionSet {
	out := s.clone()
	out[p] = struct{}{}
	return out
}

// Without returns a copy of s that excludes p
func (s PositionSet) Without(p Position) PositionSet {
	out := s.clone()
	delete(out, p)
	return out
}

// Toggle returns a copy of s with p's membership flipped
func (s PositionSet) Toggle(p Position) PositionSet {
	if s.Has(p) {
		return s.Without(p)
	}
	return s.With(p)
}

// Equal reports set equality
func (s PositionSet) Equal(o PositionSet) bool {
	if len(s) != len(o) {
		return false
	}
	for p := range s {
		if !o.Has(p) {
			return false
		}
	}
	return true
}

// Sorted returns the members ordered by string, then fret
func (s PositionSet) Sorted() []Position {
	out := make([]Position, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sortPositions(out)
	return out
}

func sortPositions(ps []Position) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].String != ps[j].String {
			return ps[i].String < ps[j].String
		}
		return ps[i].Fret < ps[j].Fret
	})
}

func clamp[T constraints.Integer](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
