// Package semantic implements the type and scope validator (C7): a walk
// over every function body the symbol table (C6) collected, checking
// identifier resolution, call resolution, array indexing, assignment,
// control flow, return types, and the dot/ternary/arithmetic/relational
// operator rules. Diagnostics accumulate across every statement in every
// function — a failure in one statement never stops the walk.
package semantic

import (
	"fmt"

	"github.com/minic-lang/minic/internal/ast"
	"github.com/minic-lang/minic/internal/diag"
	"github.com/minic-lang/minic/internal/symbols"
	"github.com/minic-lang/minic/internal/token"
	"github.com/minic-lang/minic/internal/types"
)

// Analyzer carries the state needed to check one function body at a
// time: which function and (if any) enclosing class it belongs to, and
// how many enclosing loops surround the statement currently being
// checked (break/continue outside of any of them is an error).
type Analyzer struct {
	global    *symbols.Table
	classes   map[string]*symbols.ClassEntry
	fn        *symbols.FunctionEntry
	class     *symbols.ClassEntry
	loopDepth int
	diags     []*diag.Diagnostic
}

// Check runs the validator over every function body defOrder names, in
// that order, and returns every diagnostic collected. global is the
// table symbols.Build produced alongside defOrder.
func Check(global *symbols.Table, defOrder []*symbols.FunctionEntry) []*diag.Diagnostic {
	a := &Analyzer{global: global, classes: make(map[string]*symbols.ClassEntry)}
	for _, e := range global.Entries() {
		if ce, ok := e.(*symbols.ClassEntry); ok {
			a.classes[ce.Name] = ce
		}
	}

	for _, fe := range defOrder {
		a.fn = fe
		a.class = nil
		if fe.MemberOf != "" {
			a.class = a.classes[fe.MemberOf]
		}
		a.loopDepth = 0
		a.checkBody(fe.Def)
	}
	return a.diags
}

func (a *Analyzer) errorAt(pos token.Position, category, message string) {
	a.diags = append(a.diags, diag.New(pos, category, message))
}

// checkBody walks a FuncBody's statements; Kids[0] is the locals
// MemberList (or the Empty sentinel for a body with no var block) and
// was already consumed building the function's own Table in C6, so C7
// only needs the statements that follow it.
func (a *Analyzer) checkBody(body *ast.Internal) {
	for _, stmt := range body.Kids[1:] {
		a.checkStmt(stmt)
	}
}

// entryType extracts the value type a scope entry carries; ClassEntry
// and a FunctionEntry reached through this path (rather than through
// call resolution) have no single value type and return the zero Type,
// which the caller's Equal check will simply never match.
func entryType(e symbols.Entry) types.Type {
	switch v := e.(type) {
	case *symbols.VariableEntry:
		return v.Type
	case *symbols.FunctionParameterEntry:
		return v.Type
	default:
		return types.Type{}
	}
}

// pos recovers a diagnostic anchor for a node with no Op token of its
// own (TernaryOp, SignedFactor, Negation, and the bodyless statement
// kinds) by descending to its leftmost child.
func pos(n ast.Node) token.Position {
	for {
		switch v := n.(type) {
		case *ast.Leaf:
			return v.Tok.Pos
		case *ast.Internal:
			if len(v.Kids) == 0 {
				return v.Op.Pos
			}
			n = v.Kids[0]
		default:
			return token.Position{}
		}
	}
}

// resolveVariable resolves a bare identifier used as a value: the
// current function's own parameters/locals first, then — inside a
// member function — the enclosing class's own data members, then its
// transitive inherited members. Matching function entries are skipped:
// a function reached this way (not as a call target) is not a value.
func (a *Analyzer) resolveVariable(name string) (symbols.Entry, bool) {
	if a.fn != nil {
		for _, e := range a.fn.Table.Lookup(name) {
			if _, isFn := e.(*symbols.FunctionEntry); !isFn {
				return e, true
			}
		}
	}
	if a.class != nil {
		if e, ok := a.resolveClassVar(a.class, name); ok {
			return e, true
		}
	}
	return nil, false
}

// resolveClassVar searches ce's own table, then its transitive inherit
// list breadth-first (first class level with any match wins), for a
// non-function entry named name.
func (a *Analyzer) resolveClassVar(ce *symbols.ClassEntry, name string) (symbols.Entry, bool) {
	visited := map[string]bool{}
	queue := []*symbols.ClassEntry{ce}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur.Name] {
			continue
		}
		visited[cur.Name] = true

		for _, e := range cur.Table.Entries() {
			if e.Ident() != name {
				continue
			}
			if _, isFn := e.(*symbols.FunctionEntry); isFn {
				continue
			}
			return e, true
		}
		for _, p := range cur.Inherits {
			if pe, ok := a.classes[p.Class]; ok {
				queue = append(queue, pe)
			}
		}
	}
	return nil, false
}

// callCandidates collects the overload set for a bare call name(...):
// the enclosing class's (and its ancestors') member functions named
// name when the call appears inside a member function, free functions
// named name otherwise.
func (a *Analyzer) callCandidates(name string) []*symbols.FunctionEntry {
	if a.class != nil {
		return a.classMethodCandidates(a.class, name)
	}
	var out []*symbols.FunctionEntry
	for _, e := range a.global.Lookup(name) {
		if fe, ok := e.(*symbols.FunctionEntry); ok {
			out = append(out, fe)
		}
	}
	return out
}

// classMethodCandidates searches ce then its transitive inherit list
// breadth-first for the first class level declaring any function named
// name, returning every overload at that level — own-class functions
// shadow an ancestor's entirely rather than joining its overload set.
func (a *Analyzer) classMethodCandidates(ce *symbols.ClassEntry, name string) []*symbols.FunctionEntry {
	visited := map[string]bool{}
	queue := []*symbols.ClassEntry{ce}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur.Name] {
			continue
		}
		visited[cur.Name] = true

		var found []*symbols.FunctionEntry
		for _, e := range cur.Table.Lookup(name) {
			if fe, ok := e.(*symbols.FunctionEntry); ok {
				found = append(found, fe)
			}
		}
		if len(found) > 0 {
			return found
		}
		for _, p := range cur.Inherits {
			if pe, ok := a.classes[p.Class]; ok {
				queue = append(queue, pe)
			}
		}
	}
	return nil
}

func paramsMatch(params, args []types.Type) bool {
	if len(params) != len(args) {
		return false
	}
	for i := range params {
		if !params[i].Equal(args[i]) {
			return false
		}
	}
	return true
}

// resolveCall applies exact-match overload resolution in candidate
// order: a call that would target the analyzer's own function is
// rejected as unsupported recursion the moment that candidate is
// reached, even if a different overload later in the set would have
// matched: self-recursion is rejected outright, not merely
// de-prioritized.
func (a *Analyzer) resolveCall(at token.Position, name string, candidates []*symbols.FunctionEntry, argTypes []types.Type, argsOK bool) (types.Type, bool) {
	if len(candidates) == 0 {
		a.errorAt(at, "invalid parameters", fmt.Sprintf("no function named %q found", name))
		return types.Type{}, false
	}
	if !argsOK {
		return types.Type{}, false
	}
	for _, c := range candidates {
		if c == a.fn {
			a.errorAt(at, "recursion not supported", fmt.Sprintf("recursive call to %q is not supported", name))
			return types.Type{}, false
		}
		if paramsMatch(c.Sig.Params, argTypes) {
			return c.Sig.Return, true
		}
	}
	a.errorAt(at, "invalid parameters", fmt.Sprintf("no overload of %q matches the given arguments", name))
	return types.Type{}, false
}
