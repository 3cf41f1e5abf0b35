package cmd

import (
	"fmt"
	"os"

	"github.com/minic-lang/minic/internal/ast"
	"github.com/minic-lang/minic/internal/parser"
	"github.com/spf13/cobra"
)

var parseShowDerivation bool

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a source file and print its AST (and, optionally, the derivation trace)",
	Long: `parse runs the lexer and the LL(1) parser over a file and prints
the resulting AST as an indented tree. Parser diagnostics, if any, are
printed to stderr; the command still prints the best-effort tree
produced by panic-mode recovery.

Examples:
  minic parse prog.mc
  minic parse --show-derivation prog.mc`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseShowDerivation, "show-derivation", false, "also print the left-derivation trace")
}

func runParse(cmd *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	result := parser.Parse(string(content), filename)
	for _, d := range result.Diagnostics {
		fmt.Fprintln(os.Stderr, d.Format(false))
	}
	if result.Root != nil {
		fmt.Print(ast.Dump(result.Root))
	}
	if parseShowDerivation {
		fmt.Println("--- derivation ---")
		fmt.Println(parser.Trace(result.Derivation))
	}
	if len(result.Diagnostics) > 0 {
		return fmt.Errorf("parsing reported %d diagnostic(s)", len(result.Diagnostics))
	}
	return nil
}
