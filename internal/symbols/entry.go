// Package symbols implements the symbol-table builder (C6): an AST walk
// that materializes a nested scope model — a global table holding one
// class entry per class declaration and one function entry per free
// function and main, with each member-function definition attached to
// its declaration's entry inside the class table — and reports the
// structural diagnostics that fall out of it (multiply-declared
// identifiers, overloads, shadowed members, missing
// declarations/definitions, and circular inheritance).
package symbols

import (
	"github.com/minic-lang/minic/internal/ast"
	"github.com/minic-lang/minic/internal/token"
	"github.com/minic-lang/minic/internal/types"
)

// Kind discriminates the four scope-entry variants.
type Kind int

const (
	ClassEntryKind Kind = iota
	FunctionEntryKind
	VariableEntryKind
	FunctionParameterEntryKind
)

func (k Kind) String() string {
	switch k {
	case ClassEntryKind:
		return "class"
	case FunctionEntryKind:
		return "function"
	case VariableEntryKind:
		return "variable"
	case FunctionParameterEntryKind:
		return "parameter"
	default:
		return "?"
	}
}

// Entry is the common view over the four scope-entry variants: every one
// carries an identifier and a source position, which is all the table
// and its consistency checks need to know about an entry in general.
type Entry interface {
	Kind() Kind
	Ident() string
	Pos() token.Position
}

// ClassEntry is a class declaration: its ordered (possibly multiple)
// inheritance list and its own table of data members and member-function
// declarations.
type ClassEntry struct {
	Name     string
	Inherits []types.Type
	Table    *Table
	At       token.Position
}

func (e *ClassEntry) Kind() Kind          { return ClassEntryKind }
func (e *ClassEntry) Ident() string       { return e.Name }
func (e *ClassEntry) Pos() token.Position { return e.At }

// FunctionEntry is a free function, main, or class member function. Table
// holds its parameters and locals; it is nil for a member-function
// declaration that has not yet been matched to a `Class::name` definition.
// Def is the FuncBody node to type-check (C7); nil for the same unmatched
// declaration case.
type FunctionEntry struct {
	Name     string
	Sig      types.Signature
	MemberOf string // "" for free functions and main
	Table    *Table
	Def      *ast.Internal
	At       token.Position
}

func (e *FunctionEntry) Kind() Kind          { return FunctionEntryKind }
func (e *FunctionEntry) Ident() string       { return e.Name }
func (e *FunctionEntry) Pos() token.Position { return e.At }

// VariableEntry is a local variable or a class data member.
type VariableEntry struct {
	Name string
	Type types.Type
	At   token.Position
}

func (e *VariableEntry) Kind() Kind          { return VariableEntryKind }
func (e *VariableEntry) Ident() string       { return e.Name }
func (e *VariableEntry) Pos() token.Position { return e.At }

// FunctionParameterEntry is one formal parameter; Ordinal is its
// zero-based position in the declaration (C7 matches arguments against
// the FunctionEntry's Sig.Params instead).
type FunctionParameterEntry struct {
	Name    string
	Type    types.Type
	Ordinal int
	At      token.Position
}

func (e *FunctionParameterEntry) Kind() Kind          { return FunctionParameterEntryKind }
func (e *FunctionParameterEntry) Ident() string       { return e.Name }
func (e *FunctionParameterEntry) Pos() token.Position { return e.At }

// Table is an ordered sequence of scope entries, indexed by identifier
// for overload/duplicate lookups. Insertion order is preserved in
// Entries for deterministic diagnostics and codegen.
type Table struct {
	entries []Entry
	byName  map[string][]Entry
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{byName: make(map[string][]Entry)}
}

// Entries returns every entry in declaration order.
func (t *Table) Entries() []Entry { return t.entries }

// Lookup returns every entry sharing name — more than one only for an
// overload set.
func (t *Table) Lookup(name string) []Entry { return t.byName[name] }

// Add appends e unconditionally. Callers that must honor the "no two
// non-function entries share an identifier" invariant (i) use Builder's
// define, which consults Lookup first and reports a diagnostic instead
// of silently rejecting the entry.
func (t *Table) Add(e Entry) {
	t.entries = append(t.entries, e)
	t.byName[e.Ident()] = append(t.byName[e.Ident()], e)
}
