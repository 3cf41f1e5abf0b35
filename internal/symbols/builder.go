package symbols

import (
	"fmt"
	"strconv"

	"github.com/minic-lang/minic/internal/ast"
	"github.com/minic-lang/minic/internal/diag"
	"github.com/minic-lang/minic/internal/token"
	"github.com/minic-lang/minic/internal/types"
)

// Builder walks a parsed Program node and accumulates the global table
// plus the declaration-time diagnostics (redeclaration, overloads,
// missing member-function declarations/definitions, circular inheritance,
// shadowed members). A base class that is never declared is skipped
// without a diagnostic. Use Build rather than
// constructing one directly.
type Builder struct {
	global     *Table
	classes    map[string]*ClassEntry
	classOrder []string
	defOrder   []*FunctionEntry
	diags      []*diag.Diagnostic
}

// Build materializes the symbol table for a parsed program. root must be
// the *ast.Internal Program node the parser produced; any other shape
// (e.g. a best-effort partial tree from a failed parse) yields an empty
// table and no diagnostics — C7 is not expected to run over a tree that
// didn't parse.
//
// The third return value lists every function entry that gained a body
// (free functions, main, and matched `Class::name` definitions) in the
// exact order their defining FuncDef appeared in the source — the order
// C7 must check them in to honor a left-to-right ordering guarantee on
// diagnostics.
func Build(root ast.Node) (*Table, []*diag.Diagnostic, []*FunctionEntry) {
	b := &Builder{global: NewTable(), classes: make(map[string]*ClassEntry)}

	prog, ok := root.(*ast.Internal)
	if !ok || prog.Kind != ast.Program {
		return b.global, b.diags, b.defOrder
	}

	b.collectClasses(prog)
	b.collectFunctions(prog)
	b.checkMissingDefinitions()
	b.checkCircularInheritance()
	b.checkShadowedMembers()

	return b.global, b.diags, b.defOrder
}

// define inserts e into t, honoring invariants (i)/(ii): a duplicate
// identifier is rejected only when it can't be explained as a function
// overload (distinct signature, every existing same-named entry also a
// function). The entry is always added to t for best-effort downstream
// use; only the diagnostic differs.
func (b *Builder) define(t *Table, e Entry) {
	existing := t.Lookup(e.Ident())
	if len(existing) == 0 {
		t.Add(e)
		return
	}

	newFn, isFn := e.(*FunctionEntry)
	if isFn {
		overload := true
		for _, ex := range existing {
			exFn, ok := ex.(*FunctionEntry)
			if !ok || exFn.Sig.Equal(newFn.Sig) {
				overload = false
				break
			}
		}
		if overload {
			t.Add(e)
			b.diags = append(b.diags, diag.NewWarning(e.Pos(), "overload",
				fmt.Sprintf("%q is overloaded", e.Ident())))
			return
		}
	}

	t.Add(e)
	b.diags = append(b.diags, diag.New(e.Pos(), "multiply declared identifier",
		fmt.Sprintf("%q is already declared in this scope", e.Ident())))
}

// collectClasses registers a ClassEntry (with its member table already
// populated) for every ClassDecl child of prog, in source order.
func (b *Builder) collectClasses(prog *ast.Internal) {
	for _, child := range prog.Kids {
		decl, ok := child.(*ast.Internal)
		if !ok || decl.Kind != ast.ClassDecl {
			continue
		}
		ce := b.buildClassEntry(decl)

		if _, exists := b.classes[ce.Name]; exists {
			b.diags = append(b.diags, diag.New(ce.At, "multiply declared class",
				fmt.Sprintf("class %q is already declared", ce.Name)))
			continue
		}
		b.classes[ce.Name] = ce
		b.classOrder = append(b.classOrder, ce.Name)
		b.global.Add(ce)
	}
}

func (b *Builder) buildClassEntry(decl *ast.Internal) *ClassEntry {
	nameLeaf := decl.Kids[0].(*ast.Leaf)
	inheritList := decl.Kids[1].(*ast.Internal)
	memberList := decl.Kids[2].(*ast.Internal)

	var inherits []types.Type
	for _, k := range inheritList.Kids {
		leaf := k.(*ast.Leaf)
		inherits = append(inherits, types.ClassType(leaf.Tok.Lexeme))
	}

	ce := &ClassEntry{
		Name:     nameLeaf.Tok.Lexeme,
		Inherits: inherits,
		Table:    NewTable(),
		At:       nameLeaf.Tok.Pos,
	}

	for _, m := range memberList.Kids {
		mi, ok := m.(*ast.Internal)
		if !ok {
			continue
		}
		switch mi.Kind {
		case ast.VarDecl:
			b.define(ce.Table, buildVariableEntry(mi))
		case ast.FuncHead:
			b.define(ce.Table, buildDeclaredFunctionEntry(mi, ce.Name))
		}
	}
	return ce
}

// collectFunctions processes every FuncDef child of prog: a plain
// 3-child FuncHead (free function or main) goes straight into the
// global table; a 4-child `Class::name` FuncHead replaces the matching
// declaration's Table in its class entry.
func (b *Builder) collectFunctions(prog *ast.Internal) {
	for _, child := range prog.Kids {
		fd, ok := child.(*ast.Internal)
		if !ok || fd.Kind != ast.FuncDef {
			continue
		}
		head := fd.Kids[0].(*ast.Internal)
		body := fd.Kids[1].(*ast.Internal)

		if len(head.Kids) == 4 {
			b.defineScopedFunction(head, body)
			continue
		}
		b.defineFreeFunction(head, body)
	}
}

func (b *Builder) defineFreeFunction(head, body *ast.Internal) {
	nameLeaf := head.Kids[0].(*ast.Leaf)
	paramsList := head.Kids[1].(*ast.Internal)
	retLeaf := head.Kids[2].(*ast.Leaf)

	paramTypes, paramEntries := buildParamList(paramsList)
	fe := &FunctionEntry{
		Name: nameLeaf.Tok.Lexeme,
		Sig:  types.Signature{Params: paramTypes, Return: returnTypeOf(retLeaf)},
		At:   nameLeaf.Tok.Pos,
	}
	fe.Table = b.buildBodyTable(body, paramEntries)
	fe.Def = body
	b.define(b.global, fe)
	b.defOrder = append(b.defOrder, fe)
}

func (b *Builder) defineScopedFunction(head, body *ast.Internal) {
	qualifier := head.Kids[0].(*ast.Leaf)
	nameLeaf := head.Kids[1].(*ast.Leaf)
	paramsList := head.Kids[2].(*ast.Internal)
	retLeaf := head.Kids[3].(*ast.Leaf)

	paramTypes, paramEntries := buildParamList(paramsList)
	sig := types.Signature{Params: paramTypes, Return: returnTypeOf(retLeaf)}

	ce, ok := b.classes[qualifier.Tok.Lexeme]
	if !ok {
		b.diags = append(b.diags, diag.New(qualifier.Tok.Pos, "no member-function declaration",
			fmt.Sprintf("class %q has no declaration matching %s::%s",
				qualifier.Tok.Lexeme, qualifier.Tok.Lexeme, nameLeaf.Tok.Lexeme)))
		return
	}

	var decl *FunctionEntry
	for _, e := range ce.Table.Lookup(nameLeaf.Tok.Lexeme) {
		if fe, isFn := e.(*FunctionEntry); isFn && fe.Sig.Equal(sig) {
			decl = fe
			break
		}
	}
	if decl == nil {
		b.diags = append(b.diags, diag.New(nameLeaf.Tok.Pos, "no member-function declaration",
			fmt.Sprintf("%s::%s has no matching declaration", qualifier.Tok.Lexeme, nameLeaf.Tok.Lexeme)))
		return
	}
	decl.Table = b.buildBodyTable(body, paramEntries)
	decl.Def = body
	b.defOrder = append(b.defOrder, decl)
}

// checkMissingDefinitions reports every class member-function entry that
// collectFunctions never matched to a `Class::name` definition.
func (b *Builder) checkMissingDefinitions() {
	for _, name := range b.classOrder {
		ce := b.classes[name]
		for _, e := range ce.Table.Entries() {
			fe, ok := e.(*FunctionEntry)
			if !ok || fe.Table != nil {
				continue
			}
			b.diags = append(b.diags, diag.New(fe.At, "no member-function definition",
				fmt.Sprintf("%s::%s has no definition", name, fe.Name)))
		}
	}
}

func (b *Builder) buildBodyTable(body *ast.Internal, params []*FunctionParameterEntry) *Table {
	t := NewTable()
	for _, p := range params {
		b.define(t, p)
	}
	if ml, ok := body.Kids[0].(*ast.Internal); ok {
		for _, k := range ml.Kids {
			if vd, ok := k.(*ast.Internal); ok {
				b.define(t, buildVariableEntry(vd))
			}
		}
	}
	return t
}

func buildVariableEntry(vd *ast.Internal) *VariableEntry {
	typeLeaf := vd.Kids[0].(*ast.Leaf)
	nameLeaf := vd.Kids[1].(*ast.Leaf)
	return &VariableEntry{
		Name: nameLeaf.Tok.Lexeme,
		Type: declaredType(typeLeaf, vd.Kids[2:]),
		At:   nameLeaf.Tok.Pos,
	}
}

// buildDeclaredFunctionEntry builds a FunctionEntry for a member-function
// declaration (always the plain 3-child FuncHead shape — `Class::name`
// scoping only appears on out-of-class definitions). Its Table stays nil
// until collectFunctions finds the matching definition.
func buildDeclaredFunctionEntry(fh *ast.Internal, memberOf string) *FunctionEntry {
	nameLeaf := fh.Kids[0].(*ast.Leaf)
	paramsList := fh.Kids[1].(*ast.Internal)
	retLeaf := fh.Kids[2].(*ast.Leaf)
	paramTypes, _ := buildParamList(paramsList)
	return &FunctionEntry{
		Name:     nameLeaf.Tok.Lexeme,
		Sig:      types.Signature{Params: paramTypes, Return: returnTypeOf(retLeaf)},
		MemberOf: memberOf,
		At:       nameLeaf.Tok.Pos,
	}
}

func buildParamList(params *ast.Internal) ([]types.Type, []*FunctionParameterEntry) {
	var sig []types.Type
	var entries []*FunctionParameterEntry
	for i, k := range params.Kids {
		vd := k.(*ast.Internal)
		typeLeaf := vd.Kids[0].(*ast.Leaf)
		nameLeaf := vd.Kids[1].(*ast.Leaf)
		t := declaredType(typeLeaf, vd.Kids[2:])
		sig = append(sig, t)
		entries = append(entries, &FunctionParameterEntry{
			Name: nameLeaf.Tok.Lexeme, Type: t, Ordinal: i, At: nameLeaf.Tok.Pos,
		})
	}
	return sig, entries
}

// declaredType resolves a VarDecl's base type leaf plus its ArraySize
// dimension leaves into a types.Type.
func declaredType(typeLeaf *ast.Leaf, dimKids []ast.Node) types.Type {
	base := leafType(typeLeaf)
	dims := arrayDims(dimKids)
	if len(dims) == 0 {
		return base
	}
	arr, err := types.ToArrayType(base, dims)
	if err != nil {
		return base
	}
	return arr
}

func leafType(l *ast.Leaf) types.Type {
	switch l.Tok.Kind {
	case token.INTEGER:
		return types.Int()
	case token.FLOAT:
		return types.Flt()
	case token.STRINGKW:
		return types.Str()
	default:
		return types.ClassType(l.Tok.Lexeme)
	}
}

// returnTypeOf resolves a FuncHead's return-type leaf. main's synthetic
// FuncHead (built directly in Prog's production, not via the ReturnType
// non-terminal) carries the MakeEmptyNode sentinel here rather than an
// actual `void` token, so that case is checked first.
func returnTypeOf(l *ast.Leaf) types.Type {
	if l.Empty || l.Tok.Kind == token.VOID {
		return types.Vd()
	}
	return leafType(l)
}

func arrayDims(kids []ast.Node) []int {
	var dims []int
	for _, k := range kids {
		leaf, ok := k.(*ast.Leaf)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(leaf.Tok.Lexeme)
		if err != nil {
			continue
		}
		dims = append(dims, n)
	}
	return dims
}
