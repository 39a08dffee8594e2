package game

// Phase of the current round
type Phase int

const (
	Guessing Phase = iota
	Revealed
)

func (p Phase) String() string {
	if p == Revealed {
		return "revealed"
	}
	return "guessing"
}

// Settings are the player-facing parameters
type Settings struct {
	Count       int         `json:"count"`
	Mode        Mode        `json:"mode"`
	Accidentals Accidentals `json:"accidentals"`
	Staff       bool        `json:"staff"`  // render targets on a staff
	Hidden      bool        `json:"hidden"` // hide markers while guessing
	Tuning      Tuning      `json:"tuning"`
}

// DefaultSettings mirrors the trainer's opening screen
func DefaultSettings() Settings {
	return Settings{
		Count:       2,
		Mode:        ModePosition,
		Accidentals: Sharps,
		Tuning:      StandardTuning,
	}
}

// Options returns the generator options implied by the settings
func (s Settings) Options() Options {
	return Options{
		Count:           s.Count,
		Mode:            s.Mode,
		Accidentals:     s.Accidentals,
		DistinctLetters: s.Staff,
		Tuning:          s.Tuning,
	}
}

// State is the whole session. Reducers return a new value instead of
// mutating in place, so a reader never sees a half-applied update.
type State struct {
	Settings Settings
	Round    Round
	Clicked  PositionSet
	Phase    Phase
	Streak   int
	Result   *Result // set once the round is revealed
}

// Window returns the interactive fret band
func (s State) Window() Window {
	return s.Round.Window()
}

// Correct returns the canonical answer for the current round
func (s State) Correct() PositionSet {
	return CorrectPositions(s.Round, s.Settings.Tuning)
}

// CellStatus describes how a cell should be drawn
type CellStatus int

const (
	CellIdle     CellStatus = iota
	CellInactive            // outside the window
	CellSelected            // clicked while guessing
	CellHit                 // revealed: target and clicked
	CellMissed              // revealed: target not clicked
	CellWrong               // revealed: clicked but not a target
)

// Cell reports the display status of a position and, for targets, the index of
// the target it sounds (-1 otherwise)
func (s State) Cell(p Position) (CellStatus, int) {
	inWindow := s.Window().Contains(p.Fret)
	clicked := s.Clicked.Has(p)
	target := s.Round.TargetIndex(s.Settings.Tuning.Pitch(p))

	if s.Phase == Guessing {
		switch {
		case !inWindow:
			return CellInactive, -1
		case clicked && !s.Settings.Hidden:
			return CellSelected, -1
		}
		return CellIdle, -1
	}

	switch {
	case target >= 0 && clicked:
		return CellHit, target
	case target >= 0 && inWindow:
		return CellMissed, target
	case clicked:
		return CellWrong, -1
	case !inWindow:
		return CellInactive, -1
	}
	return CellIdle, -1
}
