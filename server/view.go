package server

import (
	"fret-focus/game"
)

// TargetView is one target as a front-end draws it
type TargetView struct {
	Pitch  int    `json:"pitch"`
	Name   string `json:"name"`
	Octave int    `json:"octave,omitempty"`
	Color  string `json:"color"` // #rrggbb
	Slot   int    `json:"slot"`  // palette index
}

// StateView is the JSON shape of a session
type StateView struct {
	Round    string          `json:"round"`
	Mode     game.Mode       `json:"mode"`
	Phase    string          `json:"phase"`
	Streak   int             `json:"streak"`
	Settings game.Settings   `json:"settings"`
	Targets  []TargetView    `json:"targets"`
	UseFlats bool            `json:"useFlats"`
	Anchor   int             `json:"anchor"`
	Window   game.Window     `json:"window"`
	Clicked  []game.Position `json:"clicked"`
	Correct  []game.Position `json:"correct,omitempty"` // only once revealed
	Result   *game.Result    `json:"result,omitempty"`
	Staff    string          `json:"staff,omitempty"` // text staff when staff display is on
}

// view must be called with mu held
func (s *Server) view() StateView {
	st := s.state
	r := st.Round

	v := StateView{
		Round:    r.ID,
		Mode:     r.Mode,
		Phase:    st.Phase.String(),
		Streak:   st.Streak,
		Settings: st.Settings,
		UseFlats: r.UseFlats,
		Anchor:   r.Anchor,
		Window:   r.Window(),
		Clicked:  st.Clicked.Sorted(),
		Result:   st.Result,
	}

	for i, p := range r.Targets {
		slot := r.ColorIndex(i)
		v.Targets = append(v.Targets, TargetView{
			Pitch:  p,
			Name:   game.NoteName(p, r.UseFlats),
			Octave: game.Octave(p),
			Color:  s.theme.TargetRGB(slot).Hex(),
			Slot:   slot,
		})
	}
	if r.Mode == game.ModePosition {
		// Pitch classes have no octave of their own
		for i := range v.Targets {
			v.Targets[i].Octave = 0
		}
	}

	if st.Phase == game.Revealed {
		v.Correct = st.Correct().Sorted()
	}
	if st.Settings.Staff {
		v.Staff = s.staff.Render(r.Targets, nil, r.Mode, r.UseFlats)
	}
	return v
}
