package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/msto63/thing/foundation/thing/lexer"
	"github.com/msto63/thing/internal/workbench/service"
	"github.com/spf13/cobra"
)

var (
	tokenizeWhitespace bool
	tokenizeJSON       bool
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [file]",
	Short: "Show the token stream",
	Long: `Prints one token per line with its byte offset, category and text.
The stream ends with the end-of-file token, or with an unknown token that
swallows the rest of the input.

Examples:
  thing tokenize main.thing
  thing tokenize -e "a + 0x1F"
  echo "f(x);" | thing tokenize --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokenize,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
	addInputFlags(tokenizeCmd)
	tokenizeCmd.Flags().BoolVarP(&tokenizeWhitespace, "whitespace", "w", false, "include whitespace tokens")
	tokenizeCmd.Flags().BoolVar(&tokenizeJSON, "json", false, "print JSON")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	_, source, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	tokens, err := newEngine().Tokenize(cmd.Context(), source)
	if err != nil {
		return err
	}

	if !tokenizeWhitespace {
		kept := tokens[:0]
		for _, tok := range tokens {
			if tok.Category != lexer.Whitespace {
				kept = append(kept, tok)
			}
		}
		tokens = kept
	}

	out := cmd.OutOrStdout()
	if tokenizeJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(service.NewTokenDTOs(source, tokens))
	}

	for _, dto := range service.NewTokenDTOs(source, tokens) {
		fmt.Fprintf(out, "%5d  %-22s %q\n", dto.Offset, dto.Category, dto.Text)
	}
	return nil
}
