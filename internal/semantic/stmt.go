package semantic

import (
	"fmt"

	"github.com/minic-lang/minic/internal/ast"
	"github.com/minic-lang/minic/internal/types"
)

// checkStmt dispatches on a statement node's concrete shape. Every
// branch is independent: an error in one statement is recorded and
// checking continues with the next, never aborting the enclosing
// function body.
func (a *Analyzer) checkStmt(n ast.Node) {
	node, ok := n.(*ast.Internal)
	if !ok {
		// A bare identifier written as a statement — has no effect, but
		// still worth resolving so an undeclared name is still flagged.
		a.checkExpr(n)
		return
	}
	switch node.Kind {
	case ast.IfStmt:
		a.checkIf(node)
	case ast.WhileStmt:
		a.checkWhile(node)
	case ast.ReadStmt:
		a.checkExpr(node.Kids[0])
	case ast.WriteStmt:
		a.checkExpr(node.Kids[0])
	case ast.ReturnStmt:
		a.checkReturn(node)
	case ast.BreakStmt:
		a.checkLoopExit(node, "break")
	case ast.ContinueStmt:
		a.checkLoopExit(node, "continue")
	case ast.Assignment:
		a.checkAssignment(node)
	default:
		// A call or other bare expression used for its side effect.
		a.checkExpr(node)
	}
}

func (a *Analyzer) checkCondition(cond ast.Node, what string) {
	t, ok := a.checkExpr(cond)
	if !ok {
		return
	}
	if !t.Equal(types.Int()) {
		a.errorAt(pos(cond), "type mismatch", fmt.Sprintf("%s condition must be integer, got %s", what, t))
	}
}

// checkStatBlock walks a GenericStmt wrapper's statement list — the
// uniform shape StatBlock produces whether the source wrote braces or a
// single bare statement.
func (a *Analyzer) checkStatBlock(n ast.Node) {
	gen, ok := n.(*ast.Internal)
	if !ok {
		return
	}
	for _, s := range gen.Kids {
		a.checkStmt(s)
	}
}

func (a *Analyzer) checkIf(node *ast.Internal) {
	a.checkCondition(node.Kids[0], "if")
	a.checkStatBlock(node.Kids[1])
	a.checkStatBlock(node.Kids[2])
}

func (a *Analyzer) checkWhile(node *ast.Internal) {
	a.checkCondition(node.Kids[0], "while")
	a.loopDepth++
	a.checkStatBlock(node.Kids[1])
	a.loopDepth--
}

func (a *Analyzer) checkReturn(node *ast.Internal) {
	t, ok := a.checkExpr(node.Kids[0])
	if !ok {
		return
	}
	if !t.Equal(a.fn.Sig.Return) {
		a.errorAt(pos(node.Kids[0]), "type mismatch",
			fmt.Sprintf("function %q expects return type %s, got %s", a.fn.Name, a.fn.Sig.Return, t))
	}
}

// checkLoopExit reports break/continue appearing outside every
// enclosing loop — an improvement over leaving the check unimplemented,
// tracked purely via loopDepth rather than any AST annotation.
func (a *Analyzer) checkLoopExit(node *ast.Internal, what string) {
	if a.loopDepth == 0 {
		a.errorAt(pos(node), what+" outside loop", fmt.Sprintf("%s outside loop", what))
	}
}

func (a *Analyzer) checkAssignment(node *ast.Internal) {
	lt, lok := a.checkExpr(node.Kids[0])
	rt, rok := a.checkExpr(node.Kids[1])
	if !lok || !rok {
		return
	}
	if !lt.Equal(rt) {
		a.errorAt(pos(node.Kids[0]), "type mismatch", fmt.Sprintf("cannot assign %s to %s", rt, lt))
	}
}
