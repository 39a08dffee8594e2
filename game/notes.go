package game

var (
	sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	flatNames  = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

	// Staff letters ignore the accidental: C# sits on the C line, Db on the D line
	sharpLetters = [12]byte{'C', 'C', 'D', 'D', 'E', 'F', 'F', 'G', 'G', 'A', 'A', 'B'}
	flatLetters  = [12]byte{'C', 'D', 'D', 'E', 'E', 'F', 'G', 'G', 'A', 'A', 'B', 'B'}
)

// PitchClass reduces any pitch to 0-11
func PitchClass(p int) int {
	pc := p % 12
	if pc < 0 {
		pc += 12
	}
	return pc
}

// Octave returns the scientific octave number (MIDI 60 = C4)
func Octave(p int) int {
	if p < 0 {
		return (p+1)/12 - 2
	}
	return p/12 - 1
}

// NoteName spells a pitch using sharps or flats
func NoteName(p int, flats bool) string {
	if flats {
		return flatNames[PitchClass(p)]
	}
	return sharpNames[PitchClass(p)]
}

// StaffLetter returns the natural letter a pitch is written on
func StaffLetter(p int, flats bool) byte {
	if flats {
		return flatLetters[PitchClass(p)]
	}
	return sharpLetters[PitchClass(p)]
}

// IsAccidental reports whether the pitch class is a black key
func IsAccidental(p int) bool {
	switch PitchClass(p) {
	case 1, 3, 6, 8, 10:
		return true
	}
	return false
}

// letterIndex maps C..B onto 0..6 for diatonic arithmetic
func letterIndex(l byte) int {
	switch l {
	case 'C':
		return 0
	case 'D':
		return 1
	case 'E':
		return 2
	case 'F':
		return 3
	case 'G':
		return 4
	case 'A':
		return 5
	case 'B':
		return 6
	}
	return -1
}

// DiatonicStep counts natural-letter steps from C-1, so each staff line or space
// has its own value. Pitches that share a step collide on the staff.
func DiatonicStep(p int, flats bool) int {
	octave := Octave(p)
	return (octave+1)*7 + letterIndex(StaffLetter(p, flats))
}
