package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

// C in position mode, anchor 7 -> frets 4-10
var cRound = Round{Mode: ModePosition, Targets: []int{0}, Anchor: 7}

var cAnswer = []Position{
	{String: 0, Fret: 8},
	{String: 2, Fret: 5},
	{String: 3, Fret: 10},
	{String: 5, Fret: 8},
}

func TestCorrectPositions(t *testing.T) {
	got := CorrectPositions(cRound, StandardTuning).Sorted()
	if diff := cmp.Diff(cAnswer, got); diff != "" {
		t.Errorf("correct positions mismatch (-want +got):\n%s", diff)
	}
}

func TestCorrectPositionsOctave(t *testing.T) {
	// E4 sounds on every string but the low E within 15 frets
	r := Round{Mode: ModeOctave, Targets: []int{64}, Anchor: 3}
	want := []Position{
		{String: 0, Fret: 0},
		{String: 1, Fret: 5},
		{String: 2, Fret: 9},
		{String: 3, Fret: 14},
	}
	if diff := cmp.Diff(want, CorrectPositions(r, StandardTuning).Sorted()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		clicked PositionSet
		correct bool
		missed  int
		extra   int
	}{
		{"exact", NewPositionSet(cAnswer...), true, 0, 0},
		{"nothing clicked", NewPositionSet(), false, 4, 0},
		{"one missing", NewPositionSet(cAnswer[:3]...), false, 1, 0},
		{"one extra", NewPositionSet(cAnswer...).With(Position{String: 1, Fret: 5}), false, 0, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := Evaluate(tc.clicked, cRound, StandardTuning)
			assert.Equal(t, tc.correct, res.Correct)
			assert.Len(t, res.Missed, tc.missed)
			assert.Len(t, res.Extra, tc.extra)
			assert.Len(t, res.Hits, len(tc.clicked)-tc.extra)
		})
	}
}

func TestEvaluateEmptyAnswerNeverWins(t *testing.T) {
	// nothing on a standard-tuned board sounds pitch 20
	r := Round{Mode: ModeOctave, Targets: []int{20}}
	res := Evaluate(NewPositionSet(), r, StandardTuning)
	assert.False(t, res.Correct)
}

func TestPositionSetToggle(t *testing.T) {
	p := Position{String: 2, Fret: 5}
	s := NewPositionSet()

	once := s.Toggle(p)
	assert.True(t, once.Has(p))
	assert.False(t, s.Has(p), "toggle must not mutate the receiver")
	assert.True(t, once.Toggle(p).Equal(s))
}
