// Package parser implements the table-driven LL(1) parser (C5): a main
// loop over a parsing stack seeded from the grammar package's
// once-computed table, interleaved with the semantic-action stack that
// builds the AST as a byproduct of the derivation rather than in a
// separate tree-transform pass.
package parser

import (
	"fmt"

	"github.com/minic-lang/minic/internal/ast"
	"github.com/minic-lang/minic/internal/diag"
	"github.com/minic-lang/minic/internal/grammar"
	"github.com/minic-lang/minic/internal/lexer"
	"github.com/minic-lang/minic/internal/token"
)

// Result bundles everything a parse produces: the AST root (best-effort
// even on failure), the derivation trace, and any diagnostics raised
// during error recovery.
type Result struct {
	Root        ast.Node
	Derivation  []DerivationRecord
	Diagnostics []*diag.Diagnostic
	Ok          bool
}

// Parser drives the grammar's parsing table over a token stream.
type Parser struct {
	lex       *lexer.Lexer
	lookahead token.Token
	stack     []grammar.Sym
	actions   *ast.Stack
	trace     []DerivationRecord
	diags     []*diag.Diagnostic
	errored   bool
	source    string
	file      string
}

// New builds a Parser over src. file names the source for diagnostics
// (empty when the source has no backing file, e.g. in tests).
func New(src, file string) *Parser {
	return &Parser{
		lex:     lexer.New(src),
		actions: ast.NewStack(),
		source:  src,
		file:    file,
	}
}

func (p *Parser) addDiag(pos token.Position, category, message string) {
	p.errored = true
	p.diags = append(p.diags, diag.New(pos, category, message).WithSource(p.source, p.file))
}

// advance pulls the next non-comment token from the lexer into lookahead.
func (p *Parser) advance() {
	for {
		p.lookahead = p.lex.NextToken()
		if p.lookahead.Kind != token.LINECOMMENT && p.lookahead.Kind != token.BLOCKCOMMENT {
			return
		}
	}
}

func (p *Parser) push(s grammar.Sym) { p.stack = append(p.stack, s) }

func (p *Parser) pop() grammar.Sym {
	n := len(p.stack)
	top := p.stack[n-1]
	p.stack = p.stack[:n-1]
	return top
}

func (p *Parser) top() grammar.Sym { return p.stack[len(p.stack)-1] }

// Parse runs the table-driven main loop: push stop then the start
// symbol, prime the lookahead, and step until only stop remains.
func Parse(src, file string) Result {
	p := New(src, file)
	return p.Parse()
}

// Parse runs the parser to completion over the source it was built with.
func (p *Parser) Parse() Result {
	p.push(grammar.Stop)
	p.push(grammar.StartSym)
	p.advance()
	p.record(nil)

	for !p.top().IsStop() {
		top := p.top()

		switch {
		case top.IsTerminal():
			p.stepTerminal(top)
		case top.IsNonTerminal():
			p.stepNonTerminal(top)
		case top.IsEpsilon():
			p.pop()
			p.record(nil)
		case top.IsAction():
			p.pop()
			p.dispatch(top)
		default:
			// Unreachable: every Sym is one of the above kinds.
			p.pop()
		}
	}

	ok := !p.errored && p.lookahead.Kind == token.EOF
	if p.lookahead.Kind != token.EOF {
		p.addDiag(p.lookahead.Pos, "unexpected trailing input",
			fmt.Sprintf("leftover token %s after the program was otherwise complete", p.lookahead.Kind))
	}

	return Result{
		Root:        p.actions.Root(),
		Derivation:  p.trace,
		Diagnostics: p.diags,
		Ok:          ok,
	}
}

func (p *Parser) record(prod *grammar.Production) {
	p.trace = append(p.trace, DerivationRecord{
		Stack:      snapshotStack(p.stack),
		Lookahead:  p.lookahead,
		Production: prod,
	})
}

// stepTerminal matches a terminal stack symbol against the lookahead, or
// enters terminal-mismatch recovery.
func (p *Parser) stepTerminal(top grammar.Sym) {
	if p.lookahead.Kind == top.Terminal() {
		p.pop()
		p.advance()
		p.record(nil)
		return
	}
	p.recoverTerminalMismatch(top)
}

// recoverTerminalMismatch sets the error flag and advances lookahead
// until it matches the expected terminal or input exhausts, then
// consumes it normally — the classic panic-mode "pop" recovery applied
// at the terminal level.
func (p *Parser) recoverTerminalMismatch(expected grammar.Sym) {
	p.addDiag(p.lookahead.Pos, "syntax error",
		fmt.Sprintf("expected %s, found %s %q", expected.Terminal(), p.lookahead.Kind, p.lookahead.Lexeme))

	for p.lookahead.Kind != expected.Terminal() && p.lookahead.Kind != token.EOF {
		p.advance()
	}
	p.pop()
	if p.lookahead.Kind == expected.Terminal() {
		p.advance()
	}
	p.record(nil)
}

// stepNonTerminal consults the parsing table and either expands the
// production or enters non-terminal recovery.
func (p *Parser) stepNonTerminal(top grammar.Sym) {
	nt := top.NonTerminal()
	prod := grammar.Lookup(nt, p.lookahead.Kind)
	if prod == nil {
		p.recoverNonTerminal(nt)
		return
	}
	p.pop()
	for i := len(prod.RHS) - 1; i >= 0; i-- {
		p.push(prod.RHS[i])
	}
	p.record(prod)
}

// recoverNonTerminal implements a FIRST/FOLLOW panic-mode choice:
// pop the non-terminal outright if the lookahead is in its FOLLOW set
// (or input is exhausted); otherwise scan forward until the lookahead
// lands in FIRST (or, if the non-terminal is nullable, in FOLLOW).
func (p *Parser) recoverNonTerminal(nt grammar.NonTerminal) {
	p.addDiag(p.lookahead.Pos, "syntax error",
		fmt.Sprintf("unexpected %s %q while parsing %s", p.lookahead.Kind, p.lookahead.Lexeme, nt))

	follow := grammar.Follow(nt)
	if follow[p.lookahead.Kind] || p.lookahead.Kind == token.EOF {
		p.pop()
		p.record(nil)
		return
	}

	first := grammar.First(nt)
	nullable := grammar.Nullable(nt)
	for {
		if first[p.lookahead.Kind] {
			break
		}
		if nullable && follow[p.lookahead.Kind] {
			break
		}
		if p.lookahead.Kind == token.EOF {
			break
		}
		p.advance()
	}
	p.record(nil)
}

// dispatch fires the semantic action an action marker names.
func (p *Parser) dispatch(action grammar.Sym) {
	switch action.Action() {
	case ast.MakeTerminalNode:
		p.actions.MakeTerminal(p.lookahead)
	case ast.MakeFamilyRootNode:
		p.actions.MakeFamilyRoot(action.NodeKind())
	case ast.AddChild:
		p.actions.Add()
	case ast.MakeRelativeOperation:
		p.actions.MakeRelative()
	case ast.MakeEmptyNode:
		p.actions.MakeEmpty()
	}
}
