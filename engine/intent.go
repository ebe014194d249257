package engine

// Intent is a requested change to the fold stores. Reactors return intents
// and the engine applies them; nothing else writes to the stores.
type Intent interface {
	isIntent()
}

// Fold collapses [From, To). While the selection is inside the range the fold
// starts out temporarily shown.
type Fold struct {
	From, To int
	Language string
}

// Unfold permanently removes folds overlapping [From, To), shown or not.
type Unfold struct {
	From, To int
}

// HideFold temporarily shows the fold [From, To).
type HideFold struct {
	From, To int
}

// UnhideFold collapses the temporarily shown fold [From, To) again.
type UnhideFold struct {
	From, To int
}

// RemoveFoldForLanguages drops every fold whose language is listed.
type RemoveFoldForLanguages struct {
	Languages []string
}

// FoldAll folds (Target true) or unfolds (Target false) every visible region.
// A nil Target resets each region to its own fold parameter.
type FoldAll struct {
	Target *bool
}

func (Fold) isIntent()                   {}
func (Unfold) isIntent()                 {}
func (HideFold) isIntent()               {}
func (UnhideFold) isIntent()             {}
func (RemoveFoldForLanguages) isIntent() {}
func (FoldAll) isIntent()                {}

// apply returns s with one intent applied.
func apply(s State, in Intent) State {
	switch in := in.(type) {
	case Fold:
		if in.To <= in.From || overlaps(s.Folds, in.From, in.To) || overlaps(s.Hidden, in.From, in.To) {
			return s
		}
		r := foldRange(in.From, in.To, in.Language)
		if s.selectionTouches(in.From, in.To) {
			s.Hidden = s.Hidden.Add(r)
		} else {
			s.Folds = s.Folds.Add(r)
		}
	case Unfold:
		s.Folds = removeOverlapping(s.Folds, in.From, in.To)
		s.Hidden = removeOverlapping(s.Hidden, in.From, in.To)
	case HideFold:
		if r, ok := s.Folds.Find(in.From, in.To); ok {
			s.Folds = s.Folds.Remove(in.From, in.To)
			s.Hidden = s.Hidden.Add(r)
		}
	case UnhideFold:
		if r, ok := s.Hidden.Find(in.From, in.To); ok {
			s.Hidden = s.Hidden.Remove(in.From, in.To)
			s.Folds = s.Folds.Add(r)
		}
	case RemoveFoldForLanguages:
		drop := make(map[string]bool, len(in.Languages))
		for _, l := range in.Languages {
			drop[l] = true
		}
		keep := func(r rangeRecord) bool { return !drop[r.Value.Language] }
		s.Folds = s.Folds.Filter(keep)
		s.Hidden = s.Hidden.Filter(keep)
	case FoldAll:
		// Expanded into Fold and Unfold by the bulk fold reactor.
	}
	return s
}
