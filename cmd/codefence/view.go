package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/codefence/editor"
	"github.com/iw2rmb/codefence/internal/config"
)

func newViewCmd(a *app) *cobra.Command {
	var (
		readOnly bool
		wrap     string
	)
	cmd := &cobra.Command{
		Use:   "view FILE",
		Short: "Open a document in the terminal editor",
		Long: `Open a document in the terminal editor.

Keys: alt+f toggles the fold under the cursor, alt+[ folds and alt+] unfolds
every visible block, alt+r resets folds. Click a block header to toggle it.
ctrl+s saves, ctrl+q quits. The settings file is reloaded when it changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := parseWrapMode(wrap)
			if err != nil {
				return err
			}
			text, err := readDocument(args[0])
			if err != nil {
				return err
			}
			adjusters, closeAll, err := a.adjusters()
			if err != nil {
				return err
			}
			defer closeAll()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			var updates <-chan config.Update
			if a.configPath != "" {
				if updates, err = config.Watch(ctx, a.configPath); err != nil {
					return err
				}
			}

			style := editor.StyleFromColors(a.cfg.Theme.Colors)
			ed := editor.New(editor.Config{
				Text:        text,
				Settings:    a.cfg.Settings(),
				Engine:      a.engineConfig(adjusters),
				Style:       style,
				Highlighter: editor.NewChromaHighlighter(a.cfg.Theme.Syntax),
				ReadOnly:    readOnly,
				WrapMode:    mode,
			})
			m := viewModel{path: args[0], editor: ed, updates: updates, log: a.log}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx)).Run()
			return err
		},
	}
	cmd.Flags().BoolVar(&readOnly, "read-only", false, "Disable editing")
	cmd.Flags().StringVar(&wrap, "wrap", "none", "Wrap prose lines: none, word or grapheme")
	return cmd
}

func parseWrapMode(s string) (editor.WrapMode, error) {
	switch s {
	case "", "none":
		return editor.WrapNone, nil
	case "word":
		return editor.WrapWord, nil
	case "grapheme":
		return editor.WrapGrapheme, nil
	default:
		return 0, fmt.Errorf("unknown wrap mode %q", s)
	}
}

type viewModel struct {
	path    string
	editor  editor.Model
	updates <-chan config.Update
	log     zerolog.Logger
}

type savedMsg struct{ err error }

func (m viewModel) Init() tea.Cmd { return waitForUpdate(m.updates) }

// waitForUpdate turns the next settings reload into a message.
func waitForUpdate(updates <-chan config.Update) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return nil
		}
		return u
	}
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+q":
			return m, tea.Quit
		case "ctrl+s":
			return m, m.save()
		}
	case config.Update:
		if msg.Err != nil {
			m.log.Warn().Err(msg.Err).Str("path", m.path).Msg("settings reload failed")
			return m, waitForUpdate(m.updates)
		}
		style := editor.StyleFromColors(msg.Config.Theme.Colors)
		m.editor, _ = m.editor.Update(editor.SettingsMsg{
			Settings:    msg.Config.Settings(),
			Style:       &style,
			Highlighter: editor.NewChromaHighlighter(msg.Config.Theme.Syntax),
		})
		m.log.Debug().Msg("settings reloaded")
		return m, waitForUpdate(m.updates)
	case savedMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("save failed")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m viewModel) View() string { return m.editor.View() }

func (m viewModel) save() tea.Cmd {
	path, text := m.path, m.editor.Buffer().Text()
	return func() tea.Msg {
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return savedMsg{err: fmt.Errorf("write %s: %w", path, err)}
		}
		return savedMsg{}
	}
}
