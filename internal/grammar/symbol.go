// Package grammar defines the production set, FIRST/FOLLOW sets, and the
// parsing table the table-driven parser (C5) drives (C3). The table is
// built once, at package init, from the production list below — never
// hand-transcribed — via the standard fixed-point algorithm.
package grammar

import (
	"fmt"

	"github.com/minic-lang/minic/internal/ast"
	"github.com/minic-lang/minic/internal/token"
)

// NonTerminal names one of the grammar's left-hand-side symbols.
type NonTerminal int

const (
	Prog NonTerminal = iota
	ReptProg0
	ReptProg1

	ClassDecl
	OptClassDecl
	ReptOptClassDecl
	ReptClassBody
	MemberDecl
	Visibility

	FuncDecl
	FuncDef
	FuncHead
	FuncHeadAmb1

	FuncParams
	ReptFuncParamsTail

	ArraySize
	ReptArraySize

	Type
	ReturnType

	VarDecl

	FuncBody
	OptVarBlock
	ReptVarDeclInBlock
	ReptStatement

	Statement
	StatBlock

	IfStmt
	WhileStmt
	ReadStmt
	WriteStmt
	ReturnStmt
	BreakStmt
	ContinueStmt

	AssignOrCallStmt
	AssignOrCallTail

	Expr
	ExprTail

	ArithExpr
	ArithTail

	Term
	TermTail

	Factor
	FactorTail

	Params
	ParamsBody
	ReptParams

	numNonTerminals
)

var nonTerminalNames = [...]string{
	Prog: "Prog", ReptProg0: "ReptProg0", ReptProg1: "ReptProg1",
	ClassDecl: "ClassDecl", OptClassDecl: "OptClassDecl",
	ReptOptClassDecl: "ReptOptClassDecl", ReptClassBody: "ReptClassBody",
	MemberDecl: "MemberDecl", Visibility: "Visibility",
	FuncDecl: "FuncDecl", FuncDef: "FuncDef", FuncHead: "FuncHead",
	FuncHeadAmb1: "FuncHeadAmb1",
	FuncParams:   "FuncParams",
	ReptFuncParamsTail: "ReptFuncParamsTail",
	ArraySize:          "ArraySize", ReptArraySize: "ReptArraySize",
	Type: "Type", ReturnType: "ReturnType",
	VarDecl: "VarDecl",
	FuncBody:  "FuncBody", OptVarBlock: "OptVarBlock",
	ReptVarDeclInBlock: "ReptVarDeclInBlock", ReptStatement: "ReptStatement",
	Statement: "Statement", StatBlock: "StatBlock",
	IfStmt: "IfStmt", WhileStmt: "WhileStmt", ReadStmt: "ReadStmt",
	WriteStmt: "WriteStmt", ReturnStmt: "ReturnStmt", BreakStmt: "BreakStmt",
	ContinueStmt: "ContinueStmt",
	AssignOrCallStmt: "AssignOrCallStmt", AssignOrCallTail: "AssignOrCallTail",
	Expr: "Expr", ExprTail: "ExprTail",
	ArithExpr: "ArithExpr", ArithTail: "ArithTail",
	Term: "Term", TermTail: "TermTail",
	Factor: "Factor", FactorTail: "FactorTail",
	Params: "Params", ParamsBody: "ParamsBody", ReptParams: "ReptParams",
}

func (nt NonTerminal) String() string {
	if int(nt) >= 0 && int(nt) < len(nonTerminalNames) && nonTerminalNames[nt] != "" {
		return nonTerminalNames[nt]
	}
	return "?"
}

// symType discriminates a Sym's payload.
type symType int

const (
	symTerminal symType = iota
	symNonTerminal
	symEpsilon
	symAction
	symStop
)

// Sym is one element of a production's right-hand side: a terminal
// (matched against the lookahead), a non-terminal (expanded via the
// table), the epsilon placeholder, or an interleaved semantic-action
// marker (see ast.ActionKind).
type Sym struct {
	typ    symType
	term   token.Kind
	nt     NonTerminal
	action ast.ActionKind
	kind   ast.Kind // payload for MakeFamilyRootNode markers
}

func (s Sym) IsTerminal() bool    { return s.typ == symTerminal }
func (s Sym) IsNonTerminal() bool { return s.typ == symNonTerminal }
func (s Sym) IsEpsilon() bool     { return s.typ == symEpsilon }
func (s Sym) IsAction() bool      { return s.typ == symAction }
func (s Sym) IsStop() bool        { return s.typ == symStop }

// Stop is the bottom-of-stack sentinel: the parser's main loop runs
// until this is the only symbol left on the stack.
var Stop = Sym{typ: symStop}

// StartSym wraps the grammar's start non-terminal as a stack symbol.
var StartSym = Sym{typ: symNonTerminal, nt: Start}

func (s Sym) Terminal() token.Kind       { return s.term }
func (s Sym) NonTerminal() NonTerminal   { return s.nt }
func (s Sym) Action() ast.ActionKind     { return s.action }
func (s Sym) NodeKind() ast.Kind         { return s.kind }

func (s Sym) String() string {
	switch s.typ {
	case symTerminal:
		return s.term.String()
	case symNonTerminal:
		return s.nt.String()
	case symEpsilon:
		return "ε"
	case symStop:
		return "$"
	case symAction:
		if s.action == ast.MakeFamilyRootNode {
			return fmt.Sprintf("@%s(%s)", s.action, s.kind)
		}
		return "@" + s.action.String()
	default:
		return "?"
	}
}

// Production is one left-hand non-terminal and its ordered right-hand
// side (terminals, non-terminals, and interleaved action markers).
type Production struct {
	LHS NonTerminal
	RHS []Sym
}

// b is a small fluent builder for production right-hand sides; see the
// production table in productions.go for its use.
type b struct{ rhs []Sym }

func seq() *b { return &b{} }

func (x *b) T(k token.Kind) *b {
	x.rhs = append(x.rhs, Sym{typ: symTerminal, term: k})
	return x
}

func (x *b) N(nt NonTerminal) *b {
	x.rhs = append(x.rhs, Sym{typ: symNonTerminal, nt: nt})
	return x
}

// Leaf pushes the current lookahead as a terminal node (ast.MakeTerminalNode)
// and then matches it — "consume this token, remembering it as a leaf".
func (x *b) Leaf(k token.Kind) *b {
	x.rhs = append(x.rhs,
		Sym{typ: symAction, action: ast.MakeTerminalNode},
		Sym{typ: symTerminal, term: k},
	)
	return x
}

func (x *b) Root(kind ast.Kind) *b {
	x.rhs = append(x.rhs, Sym{typ: symAction, action: ast.MakeFamilyRootNode, kind: kind})
	return x
}

func (x *b) Add() *b {
	x.rhs = append(x.rhs, Sym{typ: symAction, action: ast.AddChild})
	return x
}

func (x *b) Rel() *b {
	x.rhs = append(x.rhs, Sym{typ: symAction, action: ast.MakeRelativeOperation})
	return x
}

func (x *b) Empty() *b {
	x.rhs = append(x.rhs, Sym{typ: symAction, action: ast.MakeEmptyNode})
	return x
}

func (x *b) Eps() *b {
	x.rhs = append(x.rhs, Sym{typ: symEpsilon})
	return x
}

func (x *b) RHS() []Sym { return x.rhs }

// stripActions returns rhs with every action marker removed — the view
// FIRST/FOLLOW and table construction operate over, since actions don't
// consume or predict input.
func stripActions(rhs []Sym) []Sym {
	out := make([]Sym, 0, len(rhs))
	for _, s := range rhs {
		if s.typ != symAction {
			out = append(out, s)
		}
	}
	return out
}
