package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"fret-focus/game"
	"fret-focus/notation"
)

const (
	ticksPerQuarter = 960
	beatsPerRound   = 4
	velocity        = 100
)

// ErrInvalidTempo is returned for a tempo of zero or less
var ErrInvalidTempo = errors.New("tempo must be positive")

// Rounds draws n rounds for a practice sheet
func Rounds(gen *game.Generator, opts game.Options, n int) ([]game.Round, error) {
	rounds := make([]game.Round, 0, n)
	for i := 0; i < n; i++ {
		r, err := gen.Generate(opts)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", i+1, err)
		}
		rounds = append(rounds, r)
	}
	return rounds, nil
}

// SoundingPitch is the MIDI key a target is written out as. Pitch classes sit
// in the octave above middle C; absolute targets keep their pitch.
func SoundingPitch(p int, mode game.Mode) uint8 {
	if mode == game.ModePosition {
		return uint8(60 + game.PitchClass(p))
	}
	return uint8(p)
}

// Sheet builds a single-track SMF with one whole-note chord per round
func Sheet(rounds []game.Round, bpm float64) *smf.SMF {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName("fret-focus practice"))
	tr.Add(0, smf.MetaMeter(4, 4))
	tr.Add(0, smf.MetaTempo(bpm))

	length := uint32(ticksPerQuarter * beatsPerRound)
	for i, r := range rounds {
		names := make([]string, len(r.Targets))
		for j, p := range r.Targets {
			names[j] = notation.Name(p, r.Mode, r.UseFlats)
		}
		tr.Add(0, smf.MetaMarker(fmt.Sprintf("round %d: %v", i+1, names)))

		for _, p := range r.Targets {
			tr.Add(0, gomidi.NoteOn(0, SoundingPitch(p, r.Mode), velocity))
		}
		for j, p := range r.Targets {
			delta := uint32(0)
			if j == 0 {
				delta = length
			}
			tr.Add(delta, gomidi.NoteOff(0, SoundingPitch(p, r.Mode)))
		}
	}
	tr.Close(0)
	s.Add(tr)
	return s
}

// Write encodes the sheet to w
func Write(w io.Writer, rounds []game.Round, bpm float64) error {
	if bpm <= 0 {
		return fmt.Errorf("%v bpm: %w", bpm, ErrInvalidTempo)
	}
	_, err := Sheet(rounds, bpm).WriteTo(w)
	return err
}

// WriteFile writes the sheet to path
func WriteFile(path string, rounds []game.Round, bpm float64) error {
	var buf bytes.Buffer
	if err := Write(&buf, rounds, bpm); err != nil {
		return fmt.Errorf("encode sheet: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// ReadChords reads a sheet back as the list of keys sounding in each chord
func ReadChords(r io.Reader) (chords [][]uint8, e error) {
	// smf can panic on malformed input
	defer func() {
		if rec := recover(); rec != nil {
			e = fmt.Errorf("parse midi: %v", rec)
		}
	}()

	s, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("parse midi: %w", err)
	}
	if len(s.Tracks) == 0 {
		return nil, errors.New("parse midi: no tracks")
	}

	var current []uint8
	var holding int
	for _, ev := range s.Tracks[0] {
		var ch, key, vel uint8
		msg := gomidi.Message(ev.Message)
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			current = append(current, key)
			holding++
		case msg.GetNoteEnd(&ch, &key):
			holding--
			if holding == 0 && len(current) > 0 {
				chords = append(chords, current)
				current = nil
			}
		}
	}
	return chords, nil
}
