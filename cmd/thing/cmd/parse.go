package cmd

import (
	"encoding/json"

	"github.com/msto63/thing/foundation/thing/parser"
	"github.com/msto63/thing/internal/workbench/service"
	"github.com/spf13/cobra"
)

var (
	parseMode    string
	parseExpr    bool
	parseStmt    bool
	parseProgram bool
	parseJSON    bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Show the parse tree",
	Long: `Parses the input and prints the tree, one node per line, indented by
depth. Error nodes are marked with their kind; diagnostics for them are
written to stderr and the exit status is 1.

Modes:
  expression - a single expression (--expr)
  statement  - a single statement (--stmt)
  program    - statements until end of input (--program, default)

Examples:
  thing parse -e "5 * 2 + 4 / 3" --expr
  thing parse main.thing --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	addInputFlags(parseCmd)
	parseCmd.Flags().StringVarP(&parseMode, "mode", "m", "", "grammar entry point: expression, statement or program")
	parseCmd.Flags().BoolVar(&parseExpr, "expr", false, "parse a single expression")
	parseCmd.Flags().BoolVar(&parseStmt, "stmt", false, "parse a single statement")
	parseCmd.Flags().BoolVar(&parseProgram, "program", false, "parse a statement sequence")
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "print JSON")
	parseCmd.MarkFlagsMutuallyExclusive("expr", "stmt", "program", "mode")
}

// parseOutput is the JSON form of the parse command
type parseOutput struct {
	Mode        string                  `json:"mode"`
	Tree        *service.TreeNode       `json:"tree"`
	Diagnostics []service.DiagnosticDTO `json:"diagnostics"`
}

func runParse(cmd *cobra.Command, args []string) error {
	name, source, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	mode, err := resolveMode(cmd, parseMode, parseExpr, parseStmt, parseProgram)
	if err != nil {
		return err
	}

	result, err := newEngine().Parse(cmd.Context(), source, mode)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if parseJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(parseOutput{
			Mode:        string(result.Mode),
			Tree:        service.NewTreeNode(source, result.Root),
			Diagnostics: service.NewDiagnosticDTOs(result.Diagnostics),
		}); err != nil {
			return err
		}
	} else if err := parser.Dump(out, result.Root); err != nil {
		return err
	}

	if !result.HasErrors() {
		return nil
	}
	if !parseJSON {
		if err := renderDiagnostics(cmd.ErrOrStderr(), result.Diagnostics); err != nil {
			return err
		}
	}
	return syntaxError(name, result)
}
