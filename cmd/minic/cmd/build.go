package cmd

import (
	"github.com/spf13/cobra"
)

var buildFile string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile a source file and write the five output artifacts",
	Long: `build runs the full pipeline over --file and writes
<name>.outlextokens, <name>.outlexerrors, <name>.derivation.md,
<name>.ast.gv, and (when semantic analysis is clean) <name>.asm
alongside the input. This is the same behavior the bare "minic --file"
invocation aliases.

Examples:
  minic build --file prog.mc`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if buildFile == "" {
			return cmd.Help()
		}
		return runBuild(buildFile)
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVar(&buildFile, "file", "", "source file to compile")
}
