// Command minic is the compiler front end's CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/minic-lang/minic/cmd/minic/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
