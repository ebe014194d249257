package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/codefence/fence"
	"github.com/iw2rmb/codefence/scan"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "lines", cfg.Scanner)
	assert.Equal(t, "Folded Code", cfg.Theme.FoldPlaceholder)
	assert.Equal(t, []string{"info", "warn", "error"}, cfg.Theme.AlternativeHighlights)
	assert.True(t, cfg.Theme.LineNumbers)
	assert.NotEmpty(t, cfg.Theme.Colors["highlighted"])
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codefence.yaml")
	writeFile(t, path, `
excluded_languages: "python, js*"
processors: [dataview, mermaid]
scanner: markdown
theme:
  fold_placeholder: "..."
  alternative_highlights: [note]
  line_numbers: false
  colors:
    header: "#ffffff"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "python, js*", cfg.ExcludedLanguages)
	assert.Equal(t, []string{"dataview", "mermaid"}, cfg.Processors)
	assert.Equal(t, "markdown", cfg.Scanner)
	assert.Equal(t, "...", cfg.Theme.FoldPlaceholder)
	assert.False(t, cfg.Theme.LineNumbers)
	assert.Equal(t, "#ffffff", cfg.Theme.Colors["header"])
	assert.NotEmpty(t, cfg.Theme.Colors["gutter"], "default colors are kept")

	s := cfg.Settings()
	assert.Equal(t, "python, js*", s.ExcludedLanguages)
	assert.Equal(t, []string{"note"}, s.Theme.AlternativeHighlights)
	assert.Equal(t, "...", s.Theme.FoldPlaceholder)
}

func TestLoad_TOMLAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codefence.toml")
	writeFile(t, path, "processed_codeblocks_whitelist = \"dataview\"\n")
	t.Setenv("CODEFENCE_THEME_UNWRAP_LINES", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dataview", cfg.ProcessedCodeblocksWhitelist)
	assert.True(t, cfg.Theme.UnwrapLines)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, "scanner: regex\n")
	_, err = Load(path)
	assert.ErrorIs(t, err, errUnknownScanner)

	writeFile(t, path, "theme:\n  syntax: no-such-style\n")
	_, err = Load(path)
	assert.ErrorIs(t, err, errUnknownSyntax)
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codefence.yaml")
	writeFile(t, path, "excluded_languages: go\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	updates, err := Watch(ctx, path)
	require.NoError(t, err)

	writeFile(t, path, "excluded_languages: rust\n")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case u := <-updates:
			if u.Err != nil || u.Config.ExcludedLanguages != "rust" {
				continue
			}
			cancel()
			for range updates {
			}
			return
		case <-deadline:
			t.Fatal("no reload within 5s")
		}
	}
}

func TestWatch_DebouncesBursts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codefence.yaml")
	writeFile(t, path, "excluded_languages: go\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	const quiet = 300 * time.Millisecond
	updates, err := Watch(ctx, path, WithDebounce(quiet))
	require.NoError(t, err)

	for _, lang := range []string{"rust", "c", "python"} {
		writeFile(t, path, "excluded_languages: "+lang+"\n")
	}

	select {
	case u := <-updates:
		require.NoError(t, u.Err)
		assert.Equal(t, "python", u.Config.ExcludedLanguages)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s")
	}
	select {
	case u := <-updates:
		t.Fatalf("second reload for one burst: %+v", u)
	case <-time.After(2 * quiet):
	}
}

func TestConfig_ScanFunc(t *testing.T) {
	doc := scan.NewTextDocument("text\n```go fold\nx\n```")
	parse := func(opening string) fence.Parameters { return fence.Parse(opening, fence.Theme{}) }

	for _, name := range []string{"lines", "markdown", ""} {
		cfg := Default()
		cfg.Scanner = name
		regions := cfg.ScanFunc()(doc, parse)
		require.Len(t, regions, 1, name)
		assert.Equal(t, 1, regions[0].StartLine, name)
		assert.True(t, regions[0].Parameters.Fold.Enabled, name)
	}
}
