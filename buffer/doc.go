// Package buffer implements the pure, rune-accurate document model the
// editor host mutates.
//
// Coordinates are 0-based (Row, Col) in runes. Ranges are half-open
// selections in document coordinates: [Start, End). Offsets count runes from
// the start of the document, with each line break counting as one rune.
//
// Every effective mutation is recorded as a Change whose Map re-projects
// offsets of the previous document into the current one.
package buffer
