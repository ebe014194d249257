// Package config loads codefence settings with viper and watches the file
// for changes.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/spf13/viper"

	"github.com/iw2rmb/codefence/engine"
	"github.com/iw2rmb/codefence/fence"
	"github.com/iw2rmb/codefence/scan"
)

// EnvPrefix prefixes environment overrides, e.g. CODEFENCE_THEME_LINE_NUMBERS.
const EnvPrefix = "CODEFENCE"

// Config is the decoded settings file.
type Config struct {
	ExcludedLanguages            string   `mapstructure:"excluded_languages"`
	ProcessedCodeblocksWhitelist string   `mapstructure:"processed_codeblocks_whitelist"`
	Processors                   []string `mapstructure:"processors"`
	// Scanner is "lines" or "markdown".
	Scanner string `mapstructure:"scanner"`
	// Scripts are Lua files that adjust parsed parameters.
	Scripts []string `mapstructure:"scripts"`
	Theme   Theme    `mapstructure:"theme"`
}

// Theme holds rendering defaults and colors.
type Theme struct {
	FoldPlaceholder       string   `mapstructure:"fold_placeholder"`
	AlternativeHighlights []string `mapstructure:"alternative_highlights"`
	LineNumbers           bool     `mapstructure:"line_numbers"`
	UnwrapLines           bool     `mapstructure:"unwrap_lines"`
	WrapActive            bool     `mapstructure:"wrap_active"`
	// Colors maps highlight classes ("highlighted", "highlighted-<name>")
	// and "header", "gutter" to colors.
	Colors map[string]string `mapstructure:"colors"`
	// Syntax is a chroma style name.
	Syntax string `mapstructure:"syntax"`
}

var defaults = map[string]any{
	"excluded_languages":             "",
	"processed_codeblocks_whitelist": "",
	"processors":                     []string{},
	"scanner":                        "lines",
	"scripts":                        []string{},
	"theme.fold_placeholder":         "Folded Code",
	"theme.alternative_highlights":   []string{"info", "warn", "error"},
	"theme.line_numbers":             true,
	"theme.unwrap_lines":             false,
	"theme.wrap_active":              false,
	"theme.colors": map[string]string{
		"header":                 "#7aa2f7",
		"gutter":                 "#565f89",
		fence.ClassHighlighted:   "#2d3f5f",
		"highlighted-info":       "#1f3b4d",
		"highlighted-warn":       "#4d3b1f",
		"highlighted-error":      "#4d1f24",
		"placeholder":            "#9aa5ce",
		"placeholder-background": "",
	},
	"theme.syntax": "monokai",
}

// Default returns the built-in configuration.
func Default() Config {
	cfg, _ := decode(newViper(false))
	return cfg
}

// Load reads path over the defaults. An empty path loads defaults and
// environment overrides only.
func Load(path string) (Config, error) {
	v := newViper(true)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	cfg, err := decode(v)
	if err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

func newViper(env bool) *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	if !env {
		return v
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var (
	errUnknownScanner = errors.New("unknown scanner")
	errUnknownSyntax  = errors.New("unknown syntax style")
)

func (c Config) validate() error {
	switch c.Scanner {
	case "", "lines", "markdown":
	default:
		return fmt.Errorf("%w %q", errUnknownScanner, c.Scanner)
	}
	if c.Theme.Syntax != "" {
		if _, ok := styles.Registry[strings.ToLower(c.Theme.Syntax)]; !ok {
			return fmt.Errorf("%w %q", errUnknownSyntax, c.Theme.Syntax)
		}
	}
	return nil
}

// Settings returns the part of the configuration the engine reacts to.
func (c Config) Settings() engine.Settings {
	return engine.Settings{
		ExcludedLanguages:            c.ExcludedLanguages,
		ProcessedCodeblocksWhitelist: c.ProcessedCodeblocksWhitelist,
		Theme: fence.Theme{
			FoldPlaceholder:       c.Theme.FoldPlaceholder,
			AlternativeHighlights: append([]string(nil), c.Theme.AlternativeHighlights...),
			LineNumbers:           c.Theme.LineNumbers,
			UnwrapLines:           c.Theme.UnwrapLines,
			WrapActive:            c.Theme.WrapActive,
		},
	}
}

// ScanFunc returns the region scanner named by Scanner.
func (c Config) ScanFunc() engine.Scanner {
	if c.Scanner == "markdown" {
		return scan.Markdown
	}
	return scan.Lines
}
