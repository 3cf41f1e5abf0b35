package semantic

import (
	"fmt"

	"github.com/minic-lang/minic/internal/ast"
	"github.com/minic-lang/minic/internal/symbols"
	"github.com/minic-lang/minic/internal/token"
	"github.com/minic-lang/minic/internal/types"
)

// checkExpr type-checks any expression node and returns its type along
// with whether it resolved cleanly. On failure a diagnostic has already
// been recorded; callers propagate the false rather than layering a
// second error over an already-broken subexpression.
func (a *Analyzer) checkExpr(n ast.Node) (types.Type, bool) {
	switch node := n.(type) {
	case *ast.Leaf:
		return a.checkLeaf(node)
	case *ast.Internal:
		switch node.Kind {
		case ast.Add, ast.Sub, ast.Or, ast.Mult, ast.Div, ast.And:
			return a.checkArith(node)
		case ast.Equal, ast.NotEqual, ast.LessThan, ast.GreaterThan, ast.LessEqualThan, ast.GreaterEqualThan:
			return a.checkRelational(node)
		case ast.SignedFactor:
			return a.checkExpr(node.Kids[1])
		case ast.Negation:
			return a.checkExpr(node.Kids[0])
		case ast.TernaryOp:
			return a.checkTernary(node)
		case ast.DotOp:
			return a.checkDotOp(node)
		case ast.Indice:
			return a.checkIndice(node)
		case ast.FuncCallParams:
			return a.checkCallChain(node)
		}
	}
	return types.Type{}, false
}

func (a *Analyzer) checkLeaf(l *ast.Leaf) (types.Type, bool) {
	switch l.Tok.Kind {
	case token.INTLIT:
		return types.Int(), true
	case token.FLOATLIT:
		return types.Flt(), true
	case token.STRINGLIT:
		return types.Str(), true
	case token.IDENT:
		if e, ok := a.resolveVariable(l.Tok.Lexeme); ok {
			return entryType(e), true
		}
		a.errorAt(l.Tok.Pos, "undeclared variable", fmt.Sprintf("undeclared variable %q", l.Tok.Lexeme))
		return types.Type{}, false
	default:
		return types.Type{}, false
	}
}

// checkArith covers +, -, | and *, /, & alike: both operands must share
// exactly the same type, which is then the result type.
func (a *Analyzer) checkArith(node *ast.Internal) (types.Type, bool) {
	lt, lok := a.checkExpr(node.Kids[0])
	rt, rok := a.checkExpr(node.Kids[1])
	if !lok || !rok {
		return types.Type{}, false
	}
	if !lt.Equal(rt) {
		a.errorAt(node.Op.Pos, "type mismatch",
			fmt.Sprintf("%s requires matching operand types, got %s and %s", node.Op.Lexeme, lt, rt))
		return types.Type{}, false
	}
	return lt, true
}

// checkRelational covers ==, <>, <, >, <=, >=: both operands must share
// exactly the same type; the result is always Integer (this language's
// boolean).
func (a *Analyzer) checkRelational(node *ast.Internal) (types.Type, bool) {
	lt, lok := a.checkExpr(node.Kids[0])
	rt, rok := a.checkExpr(node.Kids[1])
	if !lok || !rok {
		return types.Type{}, false
	}
	if !lt.Equal(rt) {
		a.errorAt(node.Op.Pos, "type mismatch",
			fmt.Sprintf("%s requires matching operand types, got %s and %s", node.Op.Lexeme, lt, rt))
		return types.Type{}, false
	}
	return types.Int(), true
}

func (a *Analyzer) checkTernary(node *ast.Internal) (types.Type, bool) {
	ct, cok := a.checkExpr(node.Kids[0])
	tt, tok := a.checkExpr(node.Kids[1])
	et, eok := a.checkExpr(node.Kids[2])
	if !cok || !tok || !eok {
		return types.Type{}, false
	}
	if !ct.Equal(types.Int()) {
		a.errorAt(pos(node.Kids[0]), "type mismatch",
			fmt.Sprintf("ternary condition must be integer, got %s", ct))
		return types.Type{}, false
	}
	if !tt.Equal(et) {
		a.errorAt(pos(node.Kids[1]), "type mismatch",
			fmt.Sprintf("ternary branches disagree: %s vs %s", tt, et))
		return types.Type{}, false
	}
	return tt, true
}

// checkDotOp handles a.b used as a value: a bare member access, never
// itself the target of a call (that shape is a FuncCallParams wrapping
// this DotOp — see checkMemberCall). The member identifier always comes
// from Kids[1], the right child the grammar actually builds it from.
func (a *Analyzer) checkDotOp(node *ast.Internal) (types.Type, bool) {
	lt, lok := a.checkExpr(node.Kids[0])
	memberLeaf := node.Kids[1].(*ast.Leaf)
	if !lok {
		return types.Type{}, false
	}
	ce, ok := a.classOf(lt, memberLeaf.Tok.Pos)
	if !ok {
		return types.Type{}, false
	}
	memberName := memberLeaf.Tok.Lexeme
	if e, ok := a.resolveClassVar(ce, memberName); ok {
		return entryType(e), true
	}
	if cands := a.classMethodCandidates(ce, memberName); len(cands) > 0 {
		a.errorAt(memberLeaf.Tok.Pos, "not callable",
			fmt.Sprintf("%s.%s is a member function; call it with arguments", ce.Name, memberName))
		return types.Type{}, false
	}
	a.errorAt(memberLeaf.Tok.Pos, "undeclared variable",
		fmt.Sprintf("%s has no member %q", ce.Name, memberName))
	return types.Type{}, false
}

// classOf resolves a value type to its ClassEntry, reporting "not a
// class type"/"undeclared class" as appropriate.
func (a *Analyzer) classOf(t types.Type, at token.Position) (*symbols.ClassEntry, bool) {
	if t.Base != types.Custom {
		a.errorAt(at, "not a class type", fmt.Sprintf("%s is not a class type", t))
		return nil, false
	}
	ce, ok := a.classes[t.Class]
	if !ok {
		a.errorAt(at, "undeclared class", fmt.Sprintf("undeclared class %q", t.Class))
		return nil, false
	}
	return ce, true
}

// checkIndice handles one level of array indexing; chained indexing
// (a[1][2]) is modeled as nested Indice nodes, so each call here
// consumes exactly one dimension off whatever type its left child
// resolved to.
func (a *Analyzer) checkIndice(node *ast.Internal) (types.Type, bool) {
	bt, bok := a.checkExpr(node.Kids[0])
	it, iok := a.checkExpr(node.Kids[1])
	if !iok {
		return types.Type{}, false
	}
	if !it.Equal(types.Int()) {
		a.errorAt(pos(node.Kids[1]), "type mismatch", fmt.Sprintf("array index must be integer, got %s", it))
		return types.Type{}, false
	}
	if !bok {
		return types.Type{}, false
	}
	if !bt.IsArray() {
		if inner, ok := node.Kids[0].(*ast.Internal); ok && inner.Kind == ast.Indice {
			a.errorAt(pos(node.Kids[0]), "too many indices", fmt.Sprintf("too many indices for %s", bt))
		} else {
			a.errorAt(pos(node.Kids[0]), "not indexable", fmt.Sprintf("%s is not indexable", bt))
		}
		return types.Type{}, false
	}
	if len(bt.Dims) == 1 {
		return types.ToSimpleType(bt), true
	}
	return types.Type{Base: bt.Base, Class: bt.Class, Dims: bt.Dims[1:]}, true
}

// checkArgs type-checks a call's argument list (the MemberList a
// FuncCallParams' right child points at), continuing past a failed
// argument so every other argument still gets checked.
func (a *Analyzer) checkArgs(list *ast.Internal) ([]types.Type, bool) {
	ok := true
	var out []types.Type
	for _, k := range list.Kids {
		t, kok := a.checkExpr(k)
		if !kok {
			ok = false
			continue
		}
		out = append(out, t)
	}
	return out, ok
}

// checkCallChain handles name(args) and a.b(args): the FuncCallParams
// node's left child is either a bare identifier (free or implicit-self
// member call) or a DotOp (explicit member call on some object).
func (a *Analyzer) checkCallChain(node *ast.Internal) (types.Type, bool) {
	argTypes, argsOK := a.checkArgs(node.Kids[1].(*ast.Internal))

	switch target := node.Kids[0].(type) {
	case *ast.Leaf:
		name := target.Tok.Lexeme
		return a.resolveCall(target.Tok.Pos, name, a.callCandidates(name), argTypes, argsOK)
	case *ast.Internal:
		if target.Kind == ast.DotOp {
			return a.checkMemberCall(target, argTypes, argsOK)
		}
	}
	a.errorAt(pos(node.Kids[0]), "not callable", "expression is not callable")
	return types.Type{}, false
}

func (a *Analyzer) checkMemberCall(dotOp *ast.Internal, argTypes []types.Type, argsOK bool) (types.Type, bool) {
	lt, lok := a.checkExpr(dotOp.Kids[0])
	memberLeaf := dotOp.Kids[1].(*ast.Leaf)
	if !lok {
		return types.Type{}, false
	}
	ce, ok := a.classOf(lt, memberLeaf.Tok.Pos)
	if !ok {
		return types.Type{}, false
	}
	name := memberLeaf.Tok.Lexeme
	return a.resolveCall(memberLeaf.Tok.Pos, name, a.classMethodCandidates(ce, name), argTypes, argsOK)
}
