package driver

import (
	"fmt"
	"os"
	"strings"

	"github.com/minic-lang/minic/internal/ast"
	"github.com/minic-lang/minic/internal/codegen"
	"github.com/minic-lang/minic/internal/parser"
	"github.com/minic-lang/minic/internal/token"
)

// writeTokens renders <name>.outlextokens: one output line per source
// line, each holding every token starting on that line as "[kind,
// lexeme, line]".
func writeTokens(path, src string, toks []token.Token) error {
	lines := strings.Split(src, "\n")
	byLine := make([][]string, len(lines)+1) // 1-based; index 0 unused

	for _, tok := range toks {
		if tok.Kind == token.EOF {
			continue
		}
		entry := fmt.Sprintf("[%s, %s, %d]", tok.Kind, tok.Lexeme, tok.Pos.Line)
		if tok.Pos.Line >= 1 && tok.Pos.Line < len(byLine) {
			byLine[tok.Pos.Line] = append(byLine[tok.Pos.Line], entry)
		}
	}

	var sb strings.Builder
	for i := 1; i < len(byLine); i++ {
		sb.WriteString(strings.Join(byLine[i], " "))
		sb.WriteString("\n")
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}

// writeLexErrors renders <name>.outlexerrors: one "Lexical error:
// <reason>: <lexeme>: line <n>." per ILLEGAL token.
func writeLexErrors(path string, toks []token.Token) error {
	var sb strings.Builder
	for _, tok := range toks {
		if tok.Kind != token.ILLEGAL {
			continue
		}
		fmt.Fprintf(&sb, "Lexical error: %s: %s: line %d.\n", tok.ErrorKind, tok.Lexeme, tok.Pos.Line)
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}

// writeDerivation renders <name>.derivation.md: a Markdown table with
// columns Stack | Lookahead | Rule, one row per derivation record.
func writeDerivation(path string, records []parser.DerivationRecord) error {
	var sb strings.Builder
	sb.WriteString("| Stack | Lookahead | Rule |\n")
	sb.WriteString("|---|---|---|\n")
	for _, r := range records {
		stack := strings.Join(r.Stack, " ")
		lookahead := r.Lookahead.Kind.String()
		if r.Lookahead.Lexeme != "" {
			lookahead += fmt.Sprintf("(%s)", r.Lookahead.Lexeme)
		}
		rule := "-"
		if r.Production != nil {
			parts := make([]string, 0, len(r.Production.RHS))
			for _, s := range r.Production.RHS {
				if s.IsAction() {
					continue
				}
				parts = append(parts, s.String())
			}
			if len(parts) == 0 {
				rule = fmt.Sprintf("%s -> ε", r.Production.LHS)
			} else {
				rule = fmt.Sprintf("%s -> %s", r.Production.LHS, strings.Join(parts, " "))
			}
		}
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", escapeCell(stack), escapeCell(lookahead), escapeCell(rule))
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

// writeGraphviz renders <name>.ast.gv: a Graphviz digraph, one node per
// AST node labeled by Node.Label, edges parent->child in declaration
// order.
func writeGraphviz(path string, root ast.Node) error {
	var sb strings.Builder
	sb.WriteString("digraph AST {\n")
	if root != nil {
		next := 0
		var walk func(n ast.Node) int
		walk = func(n ast.Node) int {
			id := next
			next++
			fmt.Fprintf(&sb, "  n%d [label=%q];\n", id, n.Label())
			for _, c := range n.Children() {
				cid := walk(c)
				fmt.Fprintf(&sb, "  n%d -> n%d;\n", id, cid)
			}
			return id
		}
		walk(root)
	}
	sb.WriteString("}\n")
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}

// writeAsm renders <name>.asm: the C8 Emit pass's instructions, one per
// line, via Instruction.String.
func writeAsm(path string, instrs []codegen.Instruction) error {
	var sb strings.Builder
	for _, in := range instrs {
		sb.WriteString(in.String())
		sb.WriteString("\n")
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}
