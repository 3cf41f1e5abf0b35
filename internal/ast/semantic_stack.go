package ast

import "github.com/minic-lang/minic/internal/token"

// ActionKind names a semantic-action marker embedded in a production's
// right-hand side. The parser pops these markers off its parsing stack
// like any other symbol and dispatches to the matching Stack method
// without consuming lookahead.
type ActionKind int

const (
	MakeTerminalNode ActionKind = iota
	MakeFamilyRootNode
	AddChild
	MakeRelativeOperation
	MakeEmptyNode
)

func (a ActionKind) String() string {
	switch a {
	case MakeTerminalNode:
		return "MakeTerminalNode"
	case MakeFamilyRootNode:
		return "MakeFamilyRootNode"
	case AddChild:
		return "AddChild"
	case MakeRelativeOperation:
		return "MakeRelativeOperation"
	case MakeEmptyNode:
		return "MakeEmptyNode"
	default:
		return "?"
	}
}

// Stack is the semantic-action stack: a sequence of partially-built
// subtrees. Productions interleave action markers with grammar symbols;
// the parser drives Stack's methods in lockstep with its own derivation
// so the AST materializes without a second tree-transform pass.
type Stack struct {
	items []Node
}

// NewStack returns an empty semantic-action stack.
func NewStack() *Stack { return &Stack{} }

func (s *Stack) push(n Node) { s.items = append(s.items, n) }

func (s *Stack) pop() Node {
	n := len(s.items)
	if n == 0 {
		return nil
	}
	top := s.items[n-1]
	s.items = s.items[:n-1]
	return top
}

func (s *Stack) top() Node {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[len(s.items)-1]
}

// Len reports how many subtrees currently sit on the stack. On a
// successful parse this is 1: the program root.
func (s *Stack) Len() int { return len(s.items) }

// Root returns the sole remaining item, or nil if the stack doesn't hold
// exactly one subtree.
func (s *Stack) Root() Node {
	if len(s.items) != 1 {
		return nil
	}
	return s.items[0]
}

// MakeTerminal pushes a leaf wrapping tok — "the just-seen terminal",
// i.e. the token that is about to be matched by the parser.
func (s *Stack) MakeTerminal(tok token.Token) {
	s.push(&Leaf{Tok: tok})
}

// MakeFamilyRoot pushes a new, empty Internal node of the given kind.
// Subsequent AddChild calls attach to it until it is itself consumed by
// a later AddChild (from the production that introduced this family) or
// becomes the final root.
func (s *Stack) MakeFamilyRoot(kind Kind) {
	s.push(&Internal{Kind: kind})
}

// Add pops the top node and appends it as the last child of the node now
// on top of the stack.
func (s *Stack) Add() {
	child := s.pop()
	parent, ok := s.top().(*Internal)
	if !ok || child == nil {
		return
	}
	parent.AddChild(child)
}

// relOpKind maps the token kind of a just-consumed binary or postfix
// operator to the Kind of the node MakeRelative builds for it. A grammar
// production pushes the operator's token as a plain leaf (MakeTerminal)
// right after consuming it — before parsing the right operand — so by the
// time MakeRelative fires the stack reads, top to bottom: right operand,
// operator leaf, left operand. This one table drives every binary and
// postfix combinator: arithmetic/relational operators, array indexing
// ('[' stands in for Indice), member access ('.' for DotOp), and call
// application ('(' for FuncCallParams).
var relOpKind = map[token.Kind]Kind{
	token.PLUS:   Add,
	token.MINUS:  Sub,
	token.PIPE:   Or,
	token.STAR:   Mult,
	token.SLASH:  Div,
	token.AMP:    And,
	token.EQ:     Equal,
	token.NOTEQ:  NotEqual,
	token.LT:     LessThan,
	token.GT:     GreaterThan,
	token.LTEQ:   LessEqualThan,
	token.GTEQ:   GreaterEqualThan,
	token.DOT:    DotOp,
	token.LBRACK: Indice,
	token.LPAREN: FuncCallParams,
	token.ASSIGN: Assignment,
}

// MakeRelative reassociates a left-recursion-eliminated tail production
// back into a left-associated binary tree: it pops the right operand, the
// operator leaf, and the left operand (in that order — see relOpKind) and
// pushes a new Internal node of the operator's Kind with [left, right] as
// children, carrying the operator token in Op for diagnostics.
func (s *Stack) MakeRelative() {
	right := s.pop()
	opLeaf := s.pop()
	left := s.pop()
	lf, ok := opLeaf.(*Leaf)
	if !ok {
		return
	}
	kind, ok := relOpKind[lf.Tok.Kind]
	if !ok {
		return
	}
	node := &Internal{Kind: kind, Op: lf.Tok}
	node.AddChild(left)
	node.AddChild(right)
	s.push(node)
}

// MakeEmpty pushes the "absent" sentinel leaf (empty parameter lists,
// missing else branches, bodies with no locals, etc.).
func (s *Stack) MakeEmpty() {
	s.push(&Leaf{Empty: true})
}

// IsEmpty reports whether n is the MakeEmpty sentinel.
func IsEmpty(n Node) bool {
	l, ok := n.(*Leaf)
	return ok && l.Empty
}
