// Package codefence decorates fenced code regions of a live-edited plain-text
// document: headers, highlighted lines, line numbers and folded bodies.
//
// The work is split across packages:
//   - fence parses fence opening lines into Parameters;
//   - scan finds fence regions in a document;
//   - rangeset is the position-keyed store folds and decorations live in;
//   - engine reacts to editor transactions and owns the fold state machine;
//   - buffer and editor are a Bubble Tea host that drives the engine.
package codefence

import (
	_ "embed"
	"regexp"
	"strings"
)

var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?$`)

//go:embed VERSION
var embeddedVersion string

// Version returns the module version (SemVer, no leading `v`).
func Version() string {
	return strings.TrimSpace(embeddedVersion)
}

// VersionTag returns Version with the leading `v` used for git tags.
func VersionTag() string {
	return "v" + Version()
}

// IsSemver reports whether v is a SemVer 2.0.0 string.
func IsSemver(v string) bool {
	return semverRE.MatchString(strings.TrimSpace(v))
}
