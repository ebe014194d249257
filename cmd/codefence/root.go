package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/codefence"
	"github.com/iw2rmb/codefence/engine"
	"github.com/iw2rmb/codefence/fence"
	"github.com/iw2rmb/codefence/internal/config"
	"github.com/iw2rmb/codefence/internal/luahook"
)

// app is the state shared by the subcommands.
type app struct {
	configPath string
	verbose    bool

	cfg config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}
	root := &cobra.Command{
		Use:   "codefence",
		Short: "Decorate and fold fenced code blocks",
		Long: `codefence reads fence parameters such as title, fold, ln and hl from the
opening line of fenced code blocks and renders the document with headers,
line numbers, highlighted lines and collapsible bodies.

Examples:
  codefence view notes.md
  codefence scan --decorations notes.md
  codefence parse '` + "```" + `go title:"main.go" fold hl:2-4'`,
		Version:           codefence.Version(),
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.log = newLogger(cmd, a.verbose)
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Settings file (YAML, TOML or JSON)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log engine activity to stderr")

	root.AddCommand(newViewCmd(a), newScanCmd(a), newParseCmd(a))
	return root
}

func newLogger(cmd *cobra.Command, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).Level(level).With().Timestamp().Logger()
}

// adjusters loads the configured Lua scripts. The returned function closes
// them.
func (a *app) adjusters() ([]fence.Adjuster, func(), error) {
	var (
		out    []fence.Adjuster
		loaded []*luahook.Adjuster
	)
	closeAll := func() {
		for _, l := range loaded {
			l.Close()
		}
	}
	for _, path := range a.cfg.Scripts {
		l, err := luahook.Load(path, a.log)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		loaded = append(loaded, l)
		out = append(out, l)
	}
	return out, closeAll, nil
}

func (a *app) engineConfig(adjusters []fence.Adjuster) engine.Config {
	log := a.log
	return engine.Config{
		Processors: a.cfg.Processors,
		Adjusters:  adjusters,
		Scanner:    a.cfg.ScanFunc(),
		Logger:     &log,
	}
}

func readDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
