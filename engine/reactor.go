package engine

import "sort"

// Reactor turns a transaction into intents. prior is the state before the
// transaction; next has the transaction's document, selection, settings and
// viewport, with the fold stores already mapped through its changes, but none
// of the transaction's intents applied.
type Reactor func(prior, next State, tr Transaction) []Intent

// SettingsReactor folds and unfolds regions whose languages entered or left
// the excluded set.
func SettingsReactor(prior, next State, tr Transaction) []Intent {
	if tr.Settings == nil {
		return nil
	}
	if prior.Settings.ExcludedLanguages == next.Settings.ExcludedLanguages &&
		prior.Settings.ProcessedCodeblocksWhitelist == next.Settings.ProcessedCodeblocksWhitelist {
		return nil
	}

	languages := make(map[string]bool)
	for _, store := range []rangeRecordSet{next.Folds, next.Hidden} {
		for _, r := range store.Ranges() {
			languages[r.Value.Language] = true
		}
	}
	for _, r := range next.Regions {
		languages[r.Parameters.Language] = true
	}

	var excluded []string
	included := make(map[string]bool)
	for lang := range languages {
		was, is := prior.Excluded(lang), next.Excluded(lang)
		switch {
		case is && !was:
			excluded = append(excluded, lang)
		case was && !is:
			included[lang] = true
		}
	}

	var out []Intent
	if len(excluded) > 0 {
		sort.Strings(excluded)
		out = append(out, RemoveFoldForLanguages{Languages: excluded})
	}
	for _, r := range next.Regions {
		p := r.Parameters
		if !included[p.Language] || !p.Fold.Enabled || !next.foldable(r) {
			continue
		}
		from, to := next.FoldRange(r)
		out = append(out, Fold{From: from, To: to, Language: p.Language})
	}
	return out
}

// CursorReactor shows folds the selection entered and collapses shown folds
// the selection left.
func CursorReactor(prior, next State, tr Transaction) []Intent {
	var out []Intent
	for _, r := range next.Folds.Ranges() {
		if next.selectionTouches(r.From, r.To) {
			out = append(out, HideFold{From: r.From, To: r.To})
		}
	}
	for _, r := range next.Hidden.Ranges() {
		if !next.selectionTouches(r.From, r.To) {
			out = append(out, UnhideFold{From: r.From, To: r.To})
		}
	}
	return out
}

// BulkFoldReactor expands FoldAll intents into per-region Fold and Unfold
// intents for the visible regions.
func BulkFoldReactor(prior, next State, tr Transaction) []Intent {
	var out []Intent
	for _, in := range tr.Intents {
		all, ok := in.(FoldAll)
		if !ok {
			continue
		}
		for _, r := range next.Regions {
			if !next.Viewport.showsRegion(r) || !next.foldable(r) {
				continue
			}
			target := r.Parameters.Fold.Enabled
			if all.Target != nil {
				target = *all.Target
			}
			if target == next.IsFolded(r) {
				continue
			}
			from, to := next.FoldRange(r)
			if target {
				out = append(out, Fold{From: from, To: to, Language: r.Parameters.Language})
			} else {
				out = append(out, Unfold{From: from, To: to})
			}
		}
	}
	return out
}
