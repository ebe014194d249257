package editor

import "github.com/iw2rmb/codefence/engine"

// Config configures the editor Model.
type Config struct {
	// Initial text for the internal buffer.
	Text string

	// Settings are the initial engine settings.
	Settings engine.Settings
	// Engine configures processors, adjusters, scanner and logger.
	Engine engine.Config

	KeyMap KeyMap
	Style  Style

	// Highlighter tokenizes code region bodies. Nil renders plain text.
	Highlighter Highlighter
	Clipboard   Clipboard

	ReadOnly     bool
	ScrollPolicy ScrollPolicy
	WrapMode     WrapMode
	// TabWidth defaults to 4.
	TabWidth int

	// OnChange is called after every update that changed the document or
	// the fold state.
	OnChange func(ChangeEvent)

	// Forwarded to buffer.Options.
	HistoryLimit int
}

// Clipboard backs the copy, cut and paste keys. Errors are dropped.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

// ScrollPolicy decides whether the mouse wheel may scroll away from the
// cursor.
type ScrollPolicy int

const (
	// ScrollAllowManual lets the wheel scroll freely.
	ScrollAllowManual ScrollPolicy = iota
	// ScrollFollowCursorOnly ignores the wheel; only cursor moves scroll.
	ScrollFollowCursorOnly
)

func (c Config) withDefaults() Config {
	if c.TabWidth <= 0 {
		c.TabWidth = 4
	}
	if c.KeyMap.isZero() {
		c.KeyMap = DefaultKeyMap()
	}
	if c.Style.isZero() {
		c.Style = DefaultStyle()
	}
	return c
}
