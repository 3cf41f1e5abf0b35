// Package ast implements the AST node model and the semantic-action
// stack (C4) that the parser drives while it derives the input: a node
// is either a Leaf wrapping a Token or an Internal node carrying a Kind
// and an ordered list of children. There is no separate tree-transform
// pass — AddChild/MakeRelativeOperation/etc. build the final tree
// directly as the parser consumes productions.
package ast

import (
	"fmt"
	"strings"

	"github.com/minic-lang/minic/internal/token"
)

// Kind discriminates the AST's internal-node shapes.
type Kind int

const (
	Program Kind = iota
	ClassDecl
	FuncDef
	FuncHead
	FuncBody
	VarDecl

	// Statement categories
	GenericStmt
	IfStmt
	WhileStmt
	ReadStmt
	WriteStmt
	ReturnStmt
	BreakStmt
	ContinueStmt

	// Expression categories
	Expr
	ArithExpr
	Term
	Factor
	SignedFactor
	Negation
	TernaryOp

	// Operator categories
	Add
	Sub
	Or
	Mult
	Div
	And
	Equal
	NotEqual
	LessThan
	GreaterThan
	LessEqualThan
	GreaterEqualThan

	// Structural
	DotOp
	Indice
	FuncCallParams
	Assignment
	InheritList
	MemberList

	// Sentinel for "absent" (empty parameter lists, missing else, etc.)
	Empty
)

var kindNames = [...]string{
	Program: "Program", ClassDecl: "ClassDecl", FuncDef: "FuncDef",
	FuncHead: "FuncHead", FuncBody: "FuncBody", VarDecl: "VarDecl",
	GenericStmt: "Statement", IfStmt: "If", WhileStmt: "While",
	ReadStmt: "Read", WriteStmt: "Write", ReturnStmt: "Return",
	BreakStmt: "Break", ContinueStmt: "Continue",
	Expr: "Expr", ArithExpr: "ArithExpr", Term: "Term", Factor: "Factor",
	SignedFactor: "SignedFactor", Negation: "Negation", TernaryOp: "Ternary",
	Add: "Add", Sub: "Sub", Or: "Or", Mult: "Mult", Div: "Div", And: "And",
	Equal: "Equal", NotEqual: "NotEqual", LessThan: "LessThan",
	GreaterThan: "GreaterThan", LessEqualThan: "LessEqualThan",
	GreaterEqualThan: "GreaterEqualThan",
	DotOp:            "DotOp", Indice: "Indice", FuncCallParams: "FuncCallParams",
	Assignment: "Assignment", InheritList: "InheritList", MemberList: "MemberList",
	Empty: "Empty",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}

// Node is the common interface over Leaf and Internal nodes.
type Node interface {
	// Label renders a short human label used by the Graphviz writer and
	// the derivation/tree inspection tools.
	Label() string
	// Children returns the ordered child list, empty for a Leaf.
	Children() []Node
	// IsLeaf reports whether this node wraps a Token.
	IsLeaf() bool
}

// Leaf wraps a single Token — an identifier, literal, or the "Empty"
// sentinel some productions need (empty parameter lists, missing else
// branches).
type Leaf struct {
	Tok   token.Token
	Empty bool // true for MakeEmptyNode's sentinel
}

func (l *Leaf) Label() string {
	if l.Empty {
		return "ε"
	}
	return l.Tok.Lexeme
}
func (l *Leaf) Children() []Node { return nil }
func (l *Leaf) IsLeaf() bool     { return true }

// Internal is a node with a Kind and an ordered, owned child list.
type Internal struct {
	Kind Kind
	Kids []Node
	// Op, when Kind is one of the operator categories, carries the
	// operator's source token for diagnostics (e.g. "line 12: ==").
	Op token.Token
}

func (n *Internal) Label() string {
	if n.Kind >= Add && n.Kind <= GreaterEqualThan && n.Op.Lexeme != "" {
		return fmt.Sprintf("%s(%s)", n.Kind, n.Op.Lexeme)
	}
	return n.Kind.String()
}
func (n *Internal) Children() []Node { return n.Kids }
func (n *Internal) IsLeaf() bool     { return false }

// AddChild appends a child to an Internal node's owned list.
func (n *Internal) AddChild(c Node) { n.Kids = append(n.Kids, c) }

// Dump renders the tree as indented text, for debugging and tests.
func Dump(n Node) string {
	var sb strings.Builder
	dump(&sb, n, 0)
	return sb.String()
}

func dump(sb *strings.Builder, n Node, depth int) {
	if n == nil {
		return
	}
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.Label())
	sb.WriteString("\n")
	for _, c := range n.Children() {
		dump(sb, c, depth+1)
	}
}
