// Package driver wires the pipeline stages (C2 lexer through C8
// codegen) into a single-flag CLI contract: read one source file, run
// every stage over it, and write the five output artifacts alongside
// the input.
package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/minic-lang/minic/internal/codegen"
	"github.com/minic-lang/minic/internal/diag"
	"github.com/minic-lang/minic/internal/lexer"
	"github.com/minic-lang/minic/internal/parser"
	"github.com/minic-lang/minic/internal/semantic"
	"github.com/minic-lang/minic/internal/symbols"
)

// Report summarizes one run of the pipeline: every diagnostic raised
// (across lexing is folded into the token stream, not reported here;
// parsing, symbol-table construction, and semantic validation), and
// which output files were actually written.
type Report struct {
	Diagnostics []*diag.Diagnostic
	Written     []string
	AsmSkipped  bool // true when .asm was not written: no AST, or an error-severity diagnostic from any stage
}

// ExitCode is 0 when Diagnostics contains no error-severity entry, 1
// otherwise.
func (r Report) ExitCode() int {
	if diag.CountErrors(r.Diagnostics) > 0 {
		return 1
	}
	return 0
}

// Run reads path, runs the full pipeline, and writes five output
// files alongside it: <name>.outlextokens,
// <name>.outlexerrors, <name>.derivation.md, <name>.ast.gv, and —
// only when every stage produced zero error-severity diagnostics —
// <name>.asm.
func Run(path string) (Report, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	src := string(content)
	base := strings.TrimSuffix(path, filepath.Ext(path))

	var rep Report

	toks := lexer.TokenizeAll(src)
	if err := writeTokens(base+".outlextokens", src, toks); err != nil {
		return rep, err
	}
	rep.Written = append(rep.Written, base+".outlextokens")
	if err := writeLexErrors(base+".outlexerrors", toks); err != nil {
		return rep, err
	}
	rep.Written = append(rep.Written, base+".outlexerrors")

	result := parser.Parse(src, path)
	if err := writeDerivation(base+".derivation.md", result.Derivation); err != nil {
		return rep, err
	}
	rep.Written = append(rep.Written, base+".derivation.md")
	if err := writeGraphviz(base+".ast.gv", result.Root); err != nil {
		return rep, err
	}
	rep.Written = append(rep.Written, base+".ast.gv")
	rep.Diagnostics = append(rep.Diagnostics, result.Diagnostics...)

	if result.Root == nil {
		rep.AsmSkipped = true
		return rep, nil
	}

	table, buildDiags, defOrder := symbols.Build(result.Root)
	rep.Diagnostics = append(rep.Diagnostics, buildDiags...)

	semDiags := semantic.Check(table, defOrder)
	rep.Diagnostics = append(rep.Diagnostics, semDiags...)

	if diag.CountErrors(rep.Diagnostics) > 0 {
		rep.AsmSkipped = true
		return rep, nil
	}

	instrs := codegen.Emit(defOrder)
	if err := writeAsm(base+".asm", instrs); err != nil {
		return rep, err
	}
	rep.Written = append(rep.Written, base+".asm")

	return rep, nil
}
