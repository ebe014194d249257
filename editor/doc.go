// Package editor provides a Bubble Tea text editor component that renders
// the fenced code regions of its document through an engine.Engine.
//
// Every key press, mouse click, scroll and settings update becomes one engine
// transaction. The editor draws the engine's decorations: a header row above
// each fence, a line-number gutter, highlighted line classes and a
// placeholder in place of folded bodies. Code content is tokenized by a
// pluggable Highlighter.
package editor
