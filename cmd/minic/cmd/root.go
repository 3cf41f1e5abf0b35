// Package cmd implements the minic CLI: a single-flag driver as the
// root command's default behavior, plus debug subcommands (lex, parse,
// check) for interactive pipeline inspection.
package cmd

import (
	"fmt"
	"os"

	"github.com/minic-lang/minic/internal/driver"
	"github.com/spf13/cobra"
)

var (
	Version = "0.1.0-dev"
)

var rootFile string

var rootCmd = &cobra.Command{
	Use:     "minic",
	Short:   "minic compiler front end",
	Version: Version,
	Long: `minic is a table-driven LL(1) front end for a small statically-typed,
class-based imperative language: lexer, parser, symbol table builder,
semantic validator, and a codegen instruction model / allocator pair.

Run with --file to compile a source file end to end: minic writes the
token log, lexical error log, derivation trace, AST graph, and (when
semantic analysis is clean) the generated assembly alongside the input,
and exits nonzero if any diagnostic of severity error was produced.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if rootFile == "" {
			return cmd.Help()
		}
		return runBuild(rootFile)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFile, "file", "", "source file to compile")
}

func runBuild(file string) error {
	rep, err := driver.Run(file)
	if err != nil {
		return err
	}
	for _, d := range rep.Diagnostics {
		fmt.Fprintln(os.Stderr, d.Format(false))
	}
	if rep.AsmSkipped {
		fmt.Fprintln(os.Stderr, "note: .asm not written (a prior stage reported an error)")
	}
	if code := rep.ExitCode(); code != 0 {
		os.Exit(code)
	}
	return nil
}
