package cmd

import (
	"fmt"
	"os"

	"github.com/minic-lang/minic/internal/diag"
	"github.com/minic-lang/minic/internal/parser"
	"github.com/minic-lang/minic/internal/semantic"
	"github.com/minic-lang/minic/internal/symbols"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Run the symbol table builder and semantic validator, printing diagnostics",
	Long: `check runs the pipeline through C7: parsing, symbol table
construction, and semantic validation, printing every diagnostic to
stderr. It exits nonzero if any diagnostic of severity error was
produced — the same success criterion "minic build" uses, without
writing any files.

Examples:
  minic check prog.mc`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	result := parser.Parse(string(content), filename)
	var diags []*diag.Diagnostic
	diags = append(diags, result.Diagnostics...)

	if result.Root != nil {
		table, buildDiags, defOrder := symbols.Build(result.Root)
		diags = append(diags, buildDiags...)
		diags = append(diags, semantic.Check(table, defOrder)...)
	}

	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.Format(false))
	}
	if diag.CountErrors(diags) > 0 {
		os.Exit(1)
	}
	return nil
}
