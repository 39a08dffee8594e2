package game

import (
	"fret-focus/debug"
)

// Action is a message the reducer understands
type Action interface {
	isAction()
}

type (
	// Toggle flips a fretboard cell
	Toggle struct{ Pos Position }
	// Submit scores the clicked cells and reveals the answer
	Submit struct{}
	// NextRound starts a fresh round after a reveal
	NextRound struct{}
	// ToggleMode flips between position and octave mode
	ToggleMode struct{}
	// SetMode switches to a specific mode
	SetMode struct{ Mode Mode }
	// AdjustCount nudges the number of targets
	AdjustCount struct{ Delta int }
	// SetCount sets the number of targets
	SetCount struct{ Count int }
	// ToggleStaff switches between letter names and staff notation
	ToggleStaff struct{}
	// ToggleHidden hides or shows markers while guessing
	ToggleHidden struct{}
	// CycleAccidentals steps sharps -> flats -> random
	CycleAccidentals struct{}
)

func (Toggle) isAction()           {}
func (Submit) isAction()           {}
func (NextRound) isAction()        {}
func (ToggleMode) isAction()       {}
func (SetMode) isAction()          {}
func (AdjustCount) isAction()      {}
func (SetCount) isAction()         {}
func (ToggleStaff) isAction()      {}
func (ToggleHidden) isAction()     {}
func (CycleAccidentals) isAction() {}

// Engine owns the random source and applies actions to states
type Engine struct {
	gen *Generator
}

// NewEngine creates an engine drawing rounds from gen
func NewEngine(gen *Generator) *Engine {
	if gen == nil {
		gen = NewGenerator(nil)
	}
	return &Engine{gen: gen}
}

// Start builds the opening state for the given settings
func (e *Engine) Start(settings Settings) (State, error) {
	if settings.Tuning == (Tuning{}) {
		settings.Tuning = StandardTuning
	}
	settings.Count = ClampCount(settings.Count, settings.Mode, false)

	r, err := e.gen.Generate(settings.Options())
	if err != nil {
		return State{}, err
	}
	return State{
		Settings: settings,
		Round:    r,
		Clicked:  PositionSet{},
		Phase:    Guessing,
	}, nil
}

// Reduce applies an action and returns the resulting state. Actions that do not
// apply (clicks after a reveal, clicks outside the window) return s unchanged.
func (e *Engine) Reduce(s State, a Action) State {
	switch a := a.(type) {
	case Toggle:
		if s.Phase == Revealed || !a.Pos.Valid() || !s.Window().Contains(a.Pos.Fret) {
			return s
		}
		s.Clicked = s.Clicked.Toggle(a.Pos)
		return s

	case Submit:
		if s.Phase == Revealed {
			return s
		}
		res := Evaluate(s.Clicked, s.Round, s.Settings.Tuning)
		if res.Correct {
			s.Streak++
		} else {
			s.Streak = 0
		}
		debug.Log("round", "submit id=%s correct=%v missed=%d extra=%d streak=%d",
			s.Round.ID, res.Correct, len(res.Missed), len(res.Extra), s.Streak)
		s.Result = &res
		s.Phase = Revealed
		return s

	case NextRound:
		if s.Phase != Revealed {
			return s
		}
		return e.restart(s, s.Settings, false)

	case ToggleMode:
		next := s.Settings
		if next.Mode == ModePosition {
			next.Mode = ModeOctave
		} else {
			next.Mode = ModePosition
		}
		return e.restart(s, next, true)

	case SetMode:
		if a.Mode == s.Settings.Mode {
			return s
		}
		next := s.Settings
		next.Mode = a.Mode
		return e.restart(s, next, true)

	case AdjustCount:
		return e.Reduce(s, SetCount{Count: s.Settings.Count + a.Delta})

	case SetCount:
		n := ClampCount(a.Count, s.Settings.Mode, false)
		if n == s.Settings.Count {
			return s
		}
		next := s.Settings
		next.Count = n
		return e.restart(s, next, true)

	case ToggleStaff:
		next := s.Settings
		next.Staff = !next.Staff
		if next.Staff && s.Phase == Guessing && s.Round.LettersRepeat() {
			// two heads would share a staff line; redraw under the letter rule
			return e.restart(s, next, false)
		}
		s.Settings = next
		return s

	case ToggleHidden:
		s.Settings.Hidden = !s.Settings.Hidden
		return s

	case CycleAccidentals:
		s.Settings.Accidentals = s.Settings.Accidentals.Next()
		return s
	}
	return s
}

// restart draws a new round under settings; on failure the old state stands
func (e *Engine) restart(s State, settings Settings, resetStreak bool) State {
	r, err := e.gen.Generate(settings.Options())
	if err != nil {
		debug.Log("round", "generate failed: %v", err)
		return s
	}
	debug.Log("round", "new id=%s mode=%s targets=%v anchor=%d", r.ID, r.Mode, r.Targets, r.Anchor)

	s.Settings = settings
	s.Round = r
	s.Clicked = PositionSet{}
	s.Phase = Guessing
	s.Result = nil
	if resetStreak {
		s.Streak = 0
	}
	return s
}
