// Package types implements the minic type system: Integer, Float,
// String, Void, Custom(class) and Array(base, dims) over the four
// preceding non-void bases.
package types

import (
	"fmt"
	"strings"
)

// Basic identifies one of the non-array type variants.
type Basic int

const (
	Integer Basic = iota
	Float
	String
	Void
	Custom // payload carried in Type.Class
)

func (b Basic) String() string {
	switch b {
	case Integer:
		return "integer"
	case Float:
		return "float"
	case String:
		return "string"
	case Void:
		return "void"
	case Custom:
		return "custom"
	default:
		return "?"
	}
}

// Type is a simple base, optionally a class name when Base is Custom,
// and optionally one or more array dimensions. Two Types are Equal iff
// every field matches.
type Type struct {
	Base  Basic
	Class string // populated when Base == Custom
	Dims  []int  // non-empty => this is an array type
}

// Simple constructors for the non-array bases.
func Int() Type           { return Type{Base: Integer} }
func Flt() Type           { return Type{Base: Float} }
func Str() Type           { return Type{Base: String} }
func Vd() Type            { return Type{Base: Void} }
func ClassType(n string) Type { return Type{Base: Custom, Class: n} }

// IsArray reports whether t carries array dimensions.
func (t Type) IsArray() bool { return len(t.Dims) > 0 }

// ToSimpleType strips array dimensions, returning the element base type.
func ToSimpleType(t Type) Type {
	return Type{Base: t.Base, Class: t.Class}
}

// ToArrayType attaches dims to a non-void base type. dims must be
// non-empty; an empty dims list is a programming error in the caller
// (the grammar makes an ArraySize with zero dimensions unreachable — see
// DESIGN.md) and is rejected rather than silently producing a bogus
// array-of-nothing type.
func ToArrayType(base Type, dims []int) (Type, error) {
	if len(dims) == 0 {
		return Type{}, fmt.Errorf("ToArrayType: empty dimension list for base %s", base)
	}
	if base.Base == Void {
		return Type{}, fmt.Errorf("ToArrayType: void has no array form")
	}
	return Type{Base: base.Base, Class: base.Class, Dims: append([]int(nil), dims...)}, nil
}

// Equal reports structural equality of two types.
func (t Type) Equal(o Type) bool {
	if t.Base != o.Base || t.Class != o.Class {
		return false
	}
	if len(t.Dims) != len(o.Dims) {
		return false
	}
	for i := range t.Dims {
		if t.Dims[i] != o.Dims[i] {
			return false
		}
	}
	return true
}

func (t Type) String() string {
	var base string
	if t.Base == Custom {
		base = t.Class
	} else {
		base = t.Base.String()
	}
	if !t.IsArray() {
		return base
	}
	var sb strings.Builder
	sb.WriteString(base)
	for _, d := range t.Dims {
		fmt.Fprintf(&sb, "[%d]", d)
	}
	return sb.String()
}

// Key canonicalizes a type for use as a map/overload-table lookup key.
func (t Type) Key() string { return t.String() }

// Signature is a function's type: its ordered parameter types and an
// optional (possibly Void) return type.
type Signature struct {
	Params []Type
	Return Type
}

// Equal reports whether two signatures have identical parameter type
// sequences and return types — the test used to distinguish overloads
// from exact duplicates.
func (s Signature) Equal(o Signature) bool {
	if len(s.Params) != len(o.Params) {
		return false
	}
	for i := range s.Params {
		if !s.Params[i].Equal(o.Params[i]) {
			return false
		}
	}
	return s.Return.Equal(o.Return)
}

func (s Signature) String() string {
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), s.Return)
}

// Key canonicalizes a signature for overload-set lookup.
func (s Signature) Key() string { return s.String() }
