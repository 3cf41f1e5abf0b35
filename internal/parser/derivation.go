package parser

import (
	"strings"

	"github.com/minic-lang/minic/internal/grammar"
	"github.com/minic-lang/minic/internal/token"
)

// DerivationRecord is one step of the left-derivation trace: a snapshot
// of the parsing stack (top-most symbol first), the lookahead token at
// that point, and the production applied (nil for a terminal match or an
// epsilon pop).
type DerivationRecord struct {
	Stack      []string
	Lookahead  token.Token
	Production *grammar.Production
}

// snapshotStack renders the current symbol stack top-first, skipping
// semantic-action markers — they're not part of the grammar's derivation,
// only its bookkeeping.
func snapshotStack(stack []grammar.Sym) []string {
	out := make([]string, 0, len(stack))
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].IsAction() {
			continue
		}
		out = append(out, stack[i].String())
	}
	return out
}

// String renders a record as "<stack> | lookahead=<tok> | <production>",
// the format the derivation-trace writer emits one line per record.
func (r DerivationRecord) String() string {
	var sb strings.Builder
	sb.WriteString(strings.Join(r.Stack, " "))
	sb.WriteString(" | lookahead=")
	sb.WriteString(r.Lookahead.Kind.String())
	if r.Lookahead.Lexeme != "" {
		sb.WriteString("(")
		sb.WriteString(r.Lookahead.Lexeme)
		sb.WriteString(")")
	}
	sb.WriteString(" | ")
	if r.Production == nil {
		sb.WriteString("-")
	} else {
		sb.WriteString(r.Production.LHS.String())
		sb.WriteString(" -> ")
		parts := make([]string, 0, len(r.Production.RHS))
		for _, s := range r.Production.RHS {
			if s.IsAction() {
				continue
			}
			parts = append(parts, s.String())
		}
		if len(parts) == 0 {
			sb.WriteString("ε")
		} else {
			sb.WriteString(strings.Join(parts, " "))
		}
	}
	return sb.String()
}

// Trace renders a full derivation trace, one record per line.
func Trace(records []DerivationRecord) string {
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n")
}
