// Package engine keeps fold state and decorations of fenced code regions in
// step with a live-edited document.
//
// The host describes every user action as a Transaction. Apply maps the fold
// stores through the transaction's changes, collects intents from the
// reactors, applies them, and rebuilds the line decorations when the
// document, the viewport or rendering settings changed.
//
// An Engine is not safe for concurrent use; the host serializes transactions.
package engine

import (
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/iw2rmb/codefence/fence"
	"github.com/iw2rmb/codefence/rangeset"
	"github.com/iw2rmb/codefence/scan"
)

// Scanner finds the fence regions of a document.
type Scanner func(doc scan.Document, parse scan.ParseFunc) []scan.Region

// Config fixes the parts of an engine that do not change after New.
type Config struct {
	// Processors are languages rendered by a codeblock processor of the
	// host. Unless whitelisted they get no folds or decorations.
	Processors []string
	// Adjusters post-process parsed parameters in order.
	Adjusters []fence.Adjuster
	// Scanner defaults to scan.Lines.
	Scanner Scanner
	// Logger defaults to a disabled logger.
	Logger *zerolog.Logger
}

// Transaction describes one user action. Nil fields are unchanged.
type Transaction struct {
	// Doc is the document after the action.
	Doc scan.Document
	// Changes maps offsets of the previous document into Doc.
	Changes   rangeset.Mapper
	Selection []Selection
	Settings  *Settings
	Viewport  *Viewport
	// Intents are explicit host commands.
	Intents []Intent
}

func (tr Transaction) docChanged() bool {
	return tr.Doc != nil || tr.Changes != nil
}

// Engine owns the fold stores and line decorations of one document view.
type Engine struct {
	cfg   Config
	id    string
	log   zerolog.Logger
	state State
	lines lineStore
}

// New creates an engine for doc. Regions whose parameters ask for it start
// folded.
func New(doc scan.Document, settings Settings, cfg Config) *Engine {
	if cfg.Scanner == nil {
		cfg.Scanner = scan.Lines
	}
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	id := uuid.NewString()

	e := &Engine{
		cfg: cfg,
		id:  id,
		log: log.With().Str("view", id).Logger(),
	}
	s := State{
		Doc:        doc,
		Settings:   settings,
		processors: slices.Clone(cfg.Processors),
	}
	s = e.rescan(s)
	for _, r := range s.Regions {
		if r.Parameters.Fold.Enabled && s.foldable(r) {
			from, to := s.FoldRange(r)
			s = apply(s, Fold{From: from, To: to, Language: r.Parameters.Language})
		}
	}
	e.state = s
	e.lines = rebuild(s)
	e.log.Debug().Int("regions", len(s.Regions)).Int("folds", s.Folds.Len()).Msg("engine created")
	return e
}

// ID identifies the engine in log output.
func (e *Engine) ID() string { return e.id }

// State returns the current snapshot.
func (e *Engine) State() State { return e.state }

// Regions returns the regions of the latest scan.
func (e *Engine) Regions() []scan.Region { return e.state.Regions }

// LineDecorations returns the line decoration store.
func (e *Engine) LineDecorations() rangeset.Set[LineDecoration] { return e.lines }

// Decorations returns every decoration ordered by offset, then kind.
func (e *Engine) Decorations() []Decoration { return flatten(e.state, e.lines) }

// Apply runs one transaction and returns the new state.
func (e *Engine) Apply(tr Transaction) State {
	prior := e.state
	next := prior

	if tr.Doc != nil {
		next.Doc = tr.Doc
	}
	if tr.Changes != nil {
		next.Folds = next.Folds.Map(tr.Changes)
		next.Hidden = next.Hidden.Map(tr.Changes)
		if tr.Selection == nil {
			next.Selection = mapSelection(prior.Selection, tr.Changes)
		}
	}
	if tr.Selection != nil {
		next.Selection = slices.Clone(tr.Selection)
	}
	settingsChanged := false
	if tr.Settings != nil {
		next.Settings = *tr.Settings
		settingsChanged = renderingChanged(prior.Settings, next.Settings)
	}
	viewportChanged := false
	if tr.Viewport != nil {
		next.Viewport = *tr.Viewport
		viewportChanged = next.Viewport != prior.Viewport
	}
	if tr.docChanged() || settingsChanged {
		next = e.rescan(next)
	}

	var intents []Intent
	intents = append(intents, SettingsReactor(prior, next, tr)...)
	intents = append(intents, BulkFoldReactor(prior, next, tr)...)
	intents = append(intents, tr.Intents...)
	intents = append(intents, CursorReactor(prior, next, tr)...)
	for _, in := range intents {
		next = apply(next, in)
	}
	if len(intents) > 0 {
		e.log.Debug().Int("intents", len(intents)).Int("folds", next.Folds.Len()).Int("hidden", next.Hidden.Len()).Msg("applied intents")
	}

	e.state = next
	if tr.docChanged() || viewportChanged || settingsChanged {
		e.lines = rebuild(next)
		e.log.Debug().Int("regions", len(next.Regions)).Int("lines", e.lines.Len()).Msg("rebuilt decorations")
	}
	return next
}

// ToggleFold flips the fold of the region at offset pos: a folded region is
// unfolded, a temporarily shown one is unfolded for good, and an unfolded
// one is folded. It reports whether there was a region to toggle.
func (e *Engine) ToggleFold(pos int) bool {
	s := e.state
	r, ok := s.RegionAt(pos)
	if !ok || !s.foldable(r) {
		return false
	}
	from, to := s.FoldRange(r)
	var in Intent = Fold{From: from, To: to, Language: r.Parameters.Language}
	if s.IsFolded(r) {
		in = Unfold{From: from, To: to}
	}
	e.Apply(Transaction{Intents: []Intent{in}})
	return true
}

// FoldAll folds every visible region.
func (e *Engine) FoldAll() { e.foldAll(ptr(true)) }

// UnfoldAll unfolds every visible region.
func (e *Engine) UnfoldAll() { e.foldAll(ptr(false)) }

// ResetFolds returns every visible region to its fold parameter.
func (e *Engine) ResetFolds() { e.foldAll(nil) }

func (e *Engine) foldAll(target *bool) {
	e.Apply(Transaction{Intents: []Intent{FoldAll{Target: target}}})
}

func (e *Engine) rescan(s State) State {
	s.lineStarts = lineStarts(s.Doc)
	if s.Doc == nil {
		s.Regions = nil
		return s
	}
	theme := s.Settings.Theme
	adjusters := e.cfg.Adjusters
	s.Regions = e.cfg.Scanner(s.Doc, func(opening string) fence.Parameters {
		return fence.ParseAdjusted(opening, theme, adjusters...)
	})
	return s
}

func mapSelection(sel []Selection, m rangeset.Mapper) []Selection {
	out := make([]Selection, len(sel))
	for i, s := range sel {
		out[i] = Selection{
			Anchor: m.MapPos(s.Anchor, rangeset.AssocAfter),
			Head:   m.MapPos(s.Head, rangeset.AssocAfter),
		}
	}
	return out
}

// renderingChanged reports whether decorations must be rebuilt for b.
func renderingChanged(a, b Settings) bool {
	return a.ExcludedLanguages != b.ExcludedLanguages ||
		a.ProcessedCodeblocksWhitelist != b.ProcessedCodeblocksWhitelist ||
		a.Theme.FoldPlaceholder != b.Theme.FoldPlaceholder ||
		a.Theme.LineNumbers != b.Theme.LineNumbers ||
		a.Theme.UnwrapLines != b.Theme.UnwrapLines ||
		a.Theme.WrapActive != b.Theme.WrapActive ||
		!slices.Equal(a.Theme.AlternativeHighlights, b.Theme.AlternativeHighlights)
}

func ptr[T any](v T) *T { return &v }
