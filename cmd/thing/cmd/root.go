package cmd

import (
	"errors"
	"fmt"
	"os"

	thingerror "github.com/msto63/thing/foundation/core/error"
	thinglog "github.com/msto63/thing/foundation/core/log"
	"github.com/msto63/thing/foundation/thing"
	"github.com/msto63/thing/pkg/core/config"
	"github.com/msto63/thing/pkg/core/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	noColor bool

	appConfig *config.Config
	appLogger *thinglog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "thing",
	Short: "thing - lexer, Pratt parser and diagnostics",
	Long: `thing parses a small C-like expression and statement language.
Grammar errors are kept in the parse tree and reported with the offending
line and a caret under the column.

Commands:
  tokenize - Show the token stream
  parse    - Show the parse tree
  check    - Report diagnostics
  serve    - Start the workbench HTTP/WebSocket service
  explore  - Browse the parse tree in the terminal`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command. Syntax errors have already been rendered
// as diagnostics and are not printed again.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !thingerror.HasCode(err, thingerror.CodeSyntax) {
		printError(err)
	}
	return err
}

// ExitCode maps an error to the process exit status
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var coded *thingerror.Error
	if !errors.As(err, &coded) {
		// flag and argument errors from cobra
		return 2
	}
	return coded.Code().ExitCode()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $THING_CONFIG or ./configs/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored diagnostics")
}

// setup loads the configuration and creates the logger
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		appConfig, err = config.Load(cfgFile)
	} else {
		appConfig, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	level := appConfig.General.LogLevel
	if verbose {
		level = "debug"
	}
	appLogger = logging.NewLogger(logging.LoggerConfig{
		ServiceName: appConfig.General.Name,
		Level:       level,
		Format:      appConfig.General.LogFormat,
		Output:      cmd.ErrOrStderr(),
	})
	thinglog.SetDefault(appLogger)

	appLogger.Debug("Configuration loaded", thinglog.Fields{
		"path":    appConfig.Path,
		"command": cmd.Name(),
	})
	return nil
}

// newEngine creates an engine honouring the parser limits of the config
func newEngine() *thing.Engine {
	return newEngineWithLogger(appLogger)
}

func newEngineWithLogger(logger *thinglog.Logger) *thing.Engine {
	return thing.NewEngine(thing.Options{
		Logger:         logger,
		MaxInputLength: appConfig.Parser.MaxInputLength,
		MaxDepth:       appConfig.Parser.MaxDepth,
	})
}

// useColor reports whether diagnostics are styled; lipgloss drops the
// styling itself when the output is not a terminal
func useColor() bool {
	return !noColor && !appConfig.Diagnostics.NoColor
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
