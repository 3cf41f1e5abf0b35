package ast

import (
	"strings"
	"testing"

	"github.com/minic-lang/minic/internal/token"
)

func TestLeaf_LabelRendersLexemeOrEmptySentinel(t *testing.T) {
	l := &Leaf{Tok: token.Token{Kind: token.IDENT, Lexeme: "x"}}
	if l.Label() != "x" {
		t.Errorf("Label() = %q, want %q", l.Label(), "x")
	}
	if !l.IsLeaf() || l.Children() != nil {
		t.Errorf("Leaf should report IsLeaf and have no children")
	}

	empty := &Leaf{Empty: true}
	if empty.Label() != "ε" {
		t.Errorf("empty Label() = %q, want ε", empty.Label())
	}
}

func TestInternal_LabelIncludesOperatorLexeme(t *testing.T) {
	n := &Internal{Kind: Add, Op: token.Token{Kind: token.PLUS, Lexeme: "+"}}
	if n.Label() != "Add(+)" {
		t.Errorf("Label() = %q, want %q", n.Label(), "Add(+)")
	}

	plain := &Internal{Kind: Program}
	if plain.Label() != "Program" {
		t.Errorf("Label() = %q, want %q", plain.Label(), "Program")
	}
}

func TestInternal_AddChildAppendsInOrder(t *testing.T) {
	n := &Internal{Kind: MemberList}
	a := &Leaf{Tok: token.Token{Lexeme: "a"}}
	b := &Leaf{Tok: token.Token{Lexeme: "b"}}
	n.AddChild(a)
	n.AddChild(b)
	if len(n.Children()) != 2 || n.Children()[0] != a || n.Children()[1] != b {
		t.Fatalf("children not appended in order: %v", n.Children())
	}
}

func TestDump_IndentsByDepth(t *testing.T) {
	root := &Internal{Kind: Program}
	root.AddChild(&Leaf{Tok: token.Token{Lexeme: "x"}})
	out := Dump(root)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 || lines[0] != "Program" || lines[1] != "  x" {
		t.Fatalf("unexpected Dump output: %q", out)
	}
}

func TestStack_MakeFamilyRootAddChildAndRoot(t *testing.T) {
	s := NewStack()
	s.MakeFamilyRoot(VarDecl)
	s.MakeTerminal(token.Token{Kind: token.IDENT, Lexeme: "x"})
	s.Add()
	if s.Len() != 1 {
		t.Fatalf("expected a single subtree on the stack, got %d", s.Len())
	}
	root := s.Root()
	in, ok := root.(*Internal)
	if !ok || in.Kind != VarDecl || len(in.Kids) != 1 {
		t.Fatalf("expected VarDecl with one child, got %v", root)
	}
}

func TestStack_MakeRelativeBuildsLeftAssociatedBinaryNode(t *testing.T) {
	s := NewStack()
	s.MakeTerminal(token.Token{Kind: token.IDENT, Lexeme: "a"})
	s.MakeTerminal(token.Token{Kind: token.PLUS, Lexeme: "+"})
	s.MakeTerminal(token.Token{Kind: token.IDENT, Lexeme: "b"})
	s.MakeRelative()

	root := s.Root()
	in, ok := root.(*Internal)
	if !ok || in.Kind != Add {
		t.Fatalf("expected an Add node, got %v", root)
	}
	if len(in.Kids) != 2 || in.Kids[0].Label() != "a" || in.Kids[1].Label() != "b" {
		t.Fatalf("expected [a, b] children, got %v", in.Kids)
	}
}

func TestStack_MakeEmptyAndIsEmpty(t *testing.T) {
	s := NewStack()
	s.MakeEmpty()
	root := s.Root()
	if !IsEmpty(root) {
		t.Fatalf("expected the sentinel leaf to report IsEmpty")
	}
	if IsEmpty(&Leaf{Tok: token.Token{Lexeme: "x"}}) {
		t.Fatalf("a normal leaf should not report IsEmpty")
	}
}

func TestStack_RootIsNilUnlessExactlyOneItem(t *testing.T) {
	s := NewStack()
	if s.Root() != nil {
		t.Fatalf("expected nil Root on an empty stack")
	}
	s.MakeTerminal(token.Token{Lexeme: "a"})
	s.MakeTerminal(token.Token{Lexeme: "b"})
	if s.Root() != nil {
		t.Fatalf("expected nil Root with two items still on the stack")
	}
}

func TestActionKind_String(t *testing.T) {
	if MakeRelativeOperation.String() != "MakeRelativeOperation" {
		t.Errorf("unexpected ActionKind.String(): %q", MakeRelativeOperation.String())
	}
}
