package game

// Result is the outcome of a submitted guess
type Result struct {
	Correct bool       `json:"correct"`
	Hits    []Position `json:"hits"`
	Missed  []Position `json:"missed"`
	Extra   []Position `json:"extra"`
}

// CorrectPositions lists every cell inside the round's window that sounds a target
func CorrectPositions(r Round, tuning Tuning) PositionSet {
	w := r.Window()
	out := make(PositionSet)
	for s := 0; s < NumStrings; s++ {
		for f := w.Start; f <= w.End; f++ {
			p := Position{String: s, Fret: f}
			if r.TargetIndex(tuning.Pitch(p)) >= 0 {
				out[p] = struct{}{}
			}
		}
	}
	return out
}

// Evaluate compares the clicked cells against the round's correct set.
// A guess wins only on an exact match; an empty correct set never wins.
func Evaluate(clicked PositionSet, r Round, tuning Tuning) Result {
	correct := CorrectPositions(r, tuning)

	var res Result
	for p := range correct {
		if clicked.Has(p) {
			res.Hits = append(res.Hits, p)
		} else {
			res.Missed = append(res.Missed, p)
		}
	}
	for p := range clicked {
		if !correct.Has(p) {
			res.Extra = append(res.Extra, p)
		}
	}
	sortPositions(res.Hits)
	sortPositions(res.Missed)
	sortPositions(res.Extra)

	res.Correct = len(correct) > 0 && len(res.Missed) == 0 && len(res.Extra) == 0
	return res
}
