package cmd

import (
	"io"
	"os"

	thingerror "github.com/msto63/thing/foundation/core/error"
	"github.com/msto63/thing/foundation/thing"
	"github.com/msto63/thing/foundation/thing/diag"
	"github.com/spf13/cobra"
)

// evalSource is the -e/--eval text shared by the input reading commands
var evalSource string

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&evalSource, "eval", "e", "", "source text to use instead of a file or stdin")
}

// readInput returns a display name and the source text: the --eval
// string, the file named by the first argument, or stdin for "-" or no
// argument
func readInput(cmd *cobra.Command, args []string) (string, string, error) {
	if cmd.Flags().Changed("eval") {
		return "<eval>", evalSource, nil
	}

	if len(args) > 0 && args[0] != "-" {
		return readFile(args[0])
	}

	// one byte over the limit lets the engine report the size
	limit := int64(appConfig.Parser.MaxInputLength) + 1
	data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), limit))
	if err != nil {
		return "", "", thingerror.Wrap(err, "failed to read stdin").
			WithCode(thingerror.CodeIOError).
			WithOperation("cmd.readInput")
	}
	return "<stdin>", string(data), nil
}

func readFile(path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := thingerror.CodeIOError
		if os.IsNotExist(err) {
			code = thingerror.CodeNotFound
		}
		return "", "", thingerror.Wrap(err, "failed to read source").
			WithCode(code).
			WithOperation("cmd.readInput").
			WithDetail("path", path)
	}
	return path, string(data), nil
}

// resolveMode picks the grammar entry point from the shortcut flags, the
// --mode flag or the configuration, in that order
func resolveMode(cmd *cobra.Command, mode string, expr, stmt, program bool) (thing.Mode, error) {
	switch {
	case expr:
		return thing.ModeExpression, nil
	case stmt:
		return thing.ModeStatement, nil
	case program:
		return thing.ModeProgram, nil
	case cmd.Flags().Changed("mode"):
		return thing.ParseMode(mode)
	default:
		return thing.ParseMode(appConfig.Parser.Mode)
	}
}

// renderDiagnostics writes at most diagnostics.max_errors diagnostics and
// a note about the rest
func renderDiagnostics(w io.Writer, diags []diag.Diagnostic) error {
	shown := diags
	if limit := appConfig.Diagnostics.MaxErrors; limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	if err := diag.Render(w, shown, diag.Options{Color: useColor()}); err != nil {
		return err
	}
	if rest := len(diags) - len(shown); rest > 0 {
		_, err := io.WriteString(w, "... "+diag.Summary(diags[len(shown):])+" not shown\n")
		return err
	}
	return nil
}

// syntaxError reports grammar errors of a parsed source
func syntaxError(name string, result *thing.Result) error {
	first := result.Diagnostics[0]
	return thingerror.Newf("%s: %s", name, diag.Summary(result.Diagnostics)).
		WithCode(thingerror.CodeSyntax).
		WithDetail("first", first.String())
}
