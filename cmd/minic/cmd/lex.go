package cmd

import (
	"fmt"
	"os"

	"github.com/minic-lang/minic/internal/lexer"
	"github.com/minic-lang/minic/internal/token"
	"github.com/spf13/cobra"
)

var (
	lexEval       string
	lexOnlyErrors bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a source file and print the resulting tokens",
	Long: `lex tokenizes a program and prints every token (or, with
--only-errors, just the illegal ones) to stdout. Useful for debugging
the lexer in isolation from the rest of the pipeline.

Examples:
  minic lex prog.mc
  minic lex -e "x = 1 + 2;"
  minic lex --only-errors prog.mc`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline source instead of reading a file")
	lexCmd.Flags().BoolVar(&lexOnlyErrors, "only-errors", false, "print only ILLEGAL tokens")
}

func runLex(cmd *cobra.Command, args []string) error {
	var src string
	switch {
	case lexEval != "":
		src = lexEval
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		src = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e for inline source")
	}

	errCount := 0
	for _, tok := range lexer.TokenizeAll(src) {
		if lexOnlyErrors && tok.Kind != token.ILLEGAL {
			continue
		}
		if tok.Kind == token.ILLEGAL {
			errCount++
		}
		fmt.Println(tok.String())
	}
	if lexOnlyErrors && errCount > 0 {
		return fmt.Errorf("found %d illegal token(s)", errCount)
	}
	return nil
}
