package editor

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestStyleFromColors(t *testing.T) {
	st := StyleFromColors(map[string]string{
		"header":            "#7aa2f7",
		"highlighted":       "#2d3f5f",
		"highlighted-warn":  "#4d3b1f",
		"placeholder":       "",
		"something-unknown": "#ffffff",
	})

	if got := st.Header.GetForeground(); got != lipgloss.Color("#7aa2f7") {
		t.Fatalf("header foreground=%v", got)
	}
	if got := st.Classes["highlighted-warn"].GetBackground(); got != lipgloss.Color("#4d3b1f") {
		t.Fatalf("warn background=%v", got)
	}
	if got := st.Classes["highlighted"].GetBackground(); got != lipgloss.Color("#2d3f5f") {
		t.Fatalf("highlighted background=%v", got)
	}
	if _, ok := st.Classes["something-unknown"]; ok {
		t.Fatalf("unknown key became a class")
	}
	if got := st.Placeholder.GetForeground(); got != DefaultStyle().Placeholder.GetForeground() {
		t.Fatalf("empty color replaced the default: %v", got)
	}
}

func TestConfig_ZeroStyleAndKeyMapUseDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	if cfg.Style.isZero() || cfg.KeyMap.isZero() {
		t.Fatalf("defaults not applied")
	}
	if cfg.TabWidth != 4 {
		t.Fatalf("tab width=%d, want 4", cfg.TabWidth)
	}
}
