package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Mode selects how targets are drawn and matched
type Mode int

const (
	// ModePosition draws pitch classes and limits play to a 7-fret window
	ModePosition Mode = iota
	// ModeOctave draws absolute pitches and plays over the whole board
	ModeOctave
)

func (m Mode) String() string {
	switch m {
	case ModePosition:
		return "position"
	case ModeOctave:
		return "octave"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode accepts "position"/"window" and "octave"/"absolute"
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "position", "window", "pitch-class":
		return ModePosition, nil
	case "octave", "absolute":
		return ModeOctave, nil
	}
	return ModePosition, fmt.Errorf("unknown mode %q", s)
}

// Accidentals selects how black keys are spelled
type Accidentals int

const (
	Sharps Accidentals = iota
	Flats
	RandomAccidentals // coin flip per round
)

func (a Accidentals) String() string {
	switch a {
	case Sharps:
		return "sharps"
	case Flats:
		return "flats"
	case RandomAccidentals:
		return "random"
	}
	return fmt.Sprintf("accidentals(%d)", int(a))
}

// Next cycles sharps -> flats -> random
func (a Accidentals) Next() Accidentals {
	return (a + 1) % 3
}

// ParseAccidentals accepts "sharps", "flats" and "random"
func ParseAccidentals(s string) (Accidentals, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sharps", "sharp", "#":
		return Sharps, nil
	case "flats", "flat", "b":
		return Flats, nil
	case "random", "mixed":
		return RandomAccidentals, nil
	}
	return Sharps, fmt.Errorf("unknown accidental spelling %q", s)
}

const (
	MinTargets = 1
	MaxTargets = 7

	// PaletteSize is the number of target colours a round shuffles
	PaletteSize = 6

	// Rejection sampling gives up after this many draws and falls back to
	// picking from the remaining valid candidates
	maxAttempts = 1000
)

// ErrTargetsExhausted means no candidate can satisfy the uniqueness constraints
var ErrTargetsExhausted = errors.New("no candidate targets left")

// Round is the immutable data for one question
type Round struct {
	ID       string
	Mode     Mode
	Targets  []int // sorted ascending, unique
	Anchor   int
	Colors   [PaletteSize]int
	UseFlats bool
}

// Window returns the interactive fret band for this round
func (r Round) Window() Window {
	if r.Mode == ModeOctave {
		return FullBoard
	}
	return WindowAround(r.Anchor)
}

// ColorIndex returns the palette slot of the i-th target
func (r Round) ColorIndex(i int) int {
	return r.Colors[i%PaletteSize]
}

// TargetIndex returns the target matched by a sounding pitch, or -1
func (r Round) TargetIndex(pitch int) int {
	if r.Mode == ModePosition {
		pitch = PitchClass(pitch)
	}
	for i, t := range r.Targets {
		if t == pitch {
			return i
		}
	}
	return -1
}

// LettersRepeat reports whether two targets sit on the same staff letter
func (r Round) LettersRepeat() bool {
	seen := make(map[byte]bool, len(r.Targets))
	for _, p := range r.Targets {
		l := StaffLetter(p, r.UseFlats)
		if seen[l] {
			return true
		}
		seen[l] = true
	}
	return false
}

// Options controls round generation
type Options struct {
	Count           int
	Mode            Mode
	Accidentals     Accidentals
	DistinctLetters bool // no two targets on the same staff letter
	Tuning          Tuning
}

// ClampCount applies the count limits for the given options
func ClampCount(n int, mode Mode, distinctLetters bool) int {
	n = clamp(n, MinTargets, MaxTargets)
	if mode == ModePosition {
		n = clamp(n, MinTargets, 12)
	}
	if distinctLetters {
		n = clamp(n, MinTargets, 7)
	}
	return n
}

// Generator draws rounds from an injected random source
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator; a nil source is seeded from seed 1
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Generator{rng: rng}
}

// NewSeededGenerator is shorthand for a generator over rand.NewSource(seed)
func NewSeededGenerator(seed int64) *Generator {
	return NewGenerator(rand.New(rand.NewSource(seed)))
}

// Generate draws a fresh round
func (g *Generator) Generate(opts Options) (Round, error) {
	if opts.Tuning == (Tuning{}) {
		opts.Tuning = StandardTuning
	}
	count := ClampCount(opts.Count, opts.Mode, opts.DistinctLetters)

	useFlats := opts.Accidentals == Flats
	if opts.Accidentals == RandomAccidentals {
		useFlats = g.rng.Intn(2) == 1
	}

	pick := newPicker(useFlats, opts.DistinctLetters)
	for attempt := 0; len(pick.chosen) < count && attempt < maxAttempts; attempt++ {
		if p := g.draw(opts.Mode, opts.Tuning); pick.accept(p) {
			pick.take(p)
		}
	}
	if err := g.fill(pick, count, opts.Mode, opts.Tuning); err != nil {
		return Round{}, err
	}
	targets := pick.targets()

	r := Round{
		Mode:     opts.Mode,
		Targets:  targets,
		Anchor:   AnchorMin + g.rng.Intn(AnchorMax-AnchorMin+1),
		UseFlats: useFlats,
	}
	for i, c := range g.rng.Perm(PaletteSize) {
		r.Colors[i] = c
	}

	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		return Round{}, fmt.Errorf("round id: %w", err)
	}
	r.ID = id.String()

	return r, nil
}

// picker tracks the targets chosen so far and the letters they occupy
type picker struct {
	useFlats bool
	distinct bool
	chosen   map[int]bool
	letters  map[byte]bool
}

func newPicker(useFlats, distinctLetters bool) *picker {
	return &picker{
		useFlats: useFlats,
		distinct: distinctLetters,
		chosen:   make(map[int]bool),
		letters:  make(map[byte]bool),
	}
}

func (pk *picker) accept(p int) bool {
	if pk.chosen[p] {
		return false
	}
	return !pk.distinct || !pk.letters[StaffLetter(p, pk.useFlats)]
}

func (pk *picker) take(p int) {
	pk.chosen[p] = true
	pk.letters[StaffLetter(p, pk.useFlats)] = true
}

func (pk *picker) targets() []int {
	out := make([]int, 0, len(pk.chosen))
	for p := range pk.chosen {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// fill tops the picker up to count from the candidates still allowed. It runs
// after rejection sampling gives up.
func (g *Generator) fill(pk *picker, count int, mode Mode, tuning Tuning) error {
	for len(pk.chosen) < count {
		pool := g.candidates(mode, tuning, pk.accept)
		if len(pool) == 0 {
			return fmt.Errorf("generate %d %s targets (have %d): %w",
				count, mode, len(pk.chosen), ErrTargetsExhausted)
		}
		pk.take(pool[g.rng.Intn(len(pool))])
	}
	return nil
}

func (g *Generator) draw(mode Mode, tuning Tuning) int {
	if mode == ModePosition {
		return g.rng.Intn(12)
	}
	cell := Position{String: g.rng.Intn(NumStrings), Fret: g.rng.Intn(NumFrets)}
	return tuning.Pitch(cell)
}

// candidates lists every allowed pitch, one entry per cell in octave mode so the
// fallback keeps the same weighting as the rejection sampler
func (g *Generator) candidates(mode Mode, tuning Tuning, accept func(int) bool) []int {
	var out []int
	if mode == ModePosition {
		for pc := 0; pc < 12; pc++ {
			if accept(pc) {
				out = append(out, pc)
			}
		}
		return out
	}
	for s := 0; s < NumStrings; s++ {
		for f := 0; f < NumFrets; f++ {
			if p := tuning.Pitch(Position{String: s, Fret: f}); accept(p) {
				out = append(out, p)
			}
		}
	}
	return out
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (a Accidentals) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Accidentals) UnmarshalText(b []byte) error {
	v, err := ParseAccidentals(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
