package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	thingerror "github.com/msto63/thing/foundation/core/error"
	"github.com/msto63/thing/foundation/thing/diag"
	"github.com/msto63/thing/internal/watch"
	"github.com/msto63/thing/pkg/core/logging"
	"github.com/spf13/cobra"
)

var checkWatch bool

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Report diagnostics",
	Long: `Parses the input as a program and reports every grammar error with the
source line and a caret under the column. Exits with status 1 when errors
were found.

With --watch the file is checked again every time it is saved, until
interrupted.

Examples:
  thing check main.thing
  thing check -e "if (x) { y }"
  thing check --watch main.thing`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	addInputFlags(checkCmd)
	checkCmd.Flags().BoolVarP(&checkWatch, "watch", "W", false, "check again whenever the file changes")
}

func runCheck(cmd *cobra.Command, args []string) error {
	if checkWatch {
		if len(args) == 0 || args[0] == "-" || cmd.Flags().Changed("eval") {
			return thingerror.New("--watch requires a file argument").
				WithCode(thingerror.CodeInvalidInput).
				WithOperation("cmd.check")
		}
		return watchCheck(cmd, args[0])
	}

	name, source, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	return checkSource(cmd, name, source)
}

// checkSource checks one source and prints the outcome
func checkSource(cmd *cobra.Command, name, source string) error {
	result, err := newEngine().Check(cmd.Context(), source)
	if result == nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !result.HasErrors() {
		fmt.Fprintf(out, "%s: %s\n", name, diag.Summary(nil))
		return nil
	}

	if rerr := renderDiagnostics(out, result.Diagnostics); rerr != nil {
		return rerr
	}
	fmt.Fprintf(out, "%s: %s\n", name, diag.Summary(result.Diagnostics))
	return err
}

// watchCheck checks path once and again after every change until SIGINT
func watchCheck(cmd *cobra.Command, path string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := func(string) {
		name, source, err := readFile(path)
		if err != nil {
			printError(err)
			return
		}
		// syntax errors are already on screen
		if err := checkSource(cmd, name, source); err != nil && !thingerror.HasCode(err, thingerror.CodeSyntax) {
			printError(err)
		}
	}

	run(path)
	w := watch.New(path, appConfig.Watch.Debounce.Duration, func(p string) {
		fmt.Fprintln(cmd.OutOrStdout(), "---")
		run(p)
	}, logging.Wrap(appLogger, "watch"))

	return w.Run(ctx)
}
