package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	thinglog "github.com/msto63/thing/foundation/core/log"
	"github.com/msto63/thing/internal/tui/explorer"
	"github.com/msto63/thing/internal/watch"
	"github.com/msto63/thing/pkg/core/logging"
	"github.com/spf13/cobra"
)

var (
	exploreMode  string
	exploreWatch bool
)

var exploreCmd = &cobra.Command{
	Use:   "explore [file]",
	Short: "Browse the parse tree in the terminal",
	Long: `Opens an interactive view of the parse tree with error nodes
highlighted and a diagnostics panel.

Navigation:
  Up/Down, PgUp/PgDn - Scroll
  g / G              - Top / bottom
  d                  - Toggle diagnostics
  r                  - Reload the file
  q, Ctrl+C          - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExplore,
}

func init() {
	rootCmd.AddCommand(exploreCmd)
	addInputFlags(exploreCmd)
	exploreCmd.Flags().StringVarP(&exploreMode, "mode", "m", "", "grammar entry point: expression, statement or program")
	exploreCmd.Flags().BoolVarP(&exploreWatch, "watch", "W", false, "reload whenever the file changes")
}

func runExplore(cmd *cobra.Command, args []string) error {
	name, source, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	mode, err := resolveMode(cmd, exploreMode, false, false, false)
	if err != nil {
		return err
	}

	cfg := explorer.Config{
		Title:  name,
		Source: source,
		Mode:   mode,
		// the alternate screen owns the terminal, so engine logs are dropped
		Engine: newEngineWithLogger(thinglog.Discard()),
	}
	fromFile := len(args) > 0 && args[0] != "-" && !cmd.Flags().Changed("eval")
	if fromFile {
		path := args[0]
		cfg.Load = func() (string, error) {
			_, text, err := readFile(path)
			return text, err
		}
	}

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if name == "<stdin>" {
		// stdin held the source, read keys from the terminal instead
		opts = append(opts, tea.WithInputTTY())
	}
	p := tea.NewProgram(explorer.New(cfg), opts...)

	if exploreWatch && fromFile {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		w := watch.New(args[0], appConfig.Watch.Debounce.Duration, func(string) {
			p.Send(explorer.SourceChangedMsg{})
		}, logging.Wrap(thinglog.Discard(), "watch"))
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()
	}

	_, err = p.Run()
	return err
}
