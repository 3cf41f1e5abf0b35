package symbols

import (
	"strings"
	"testing"

	"github.com/minic-lang/minic/internal/parser"
)

func buildFrom(t *testing.T, src string) (*Table, []string) {
	t.Helper()
	res := parser.Parse(src, "")
	if res.Root == nil {
		t.Fatalf("parse produced no root; diagnostics: %v", res.Diagnostics)
	}
	table, diags, _ := Build(res.Root)
	msgs := make([]string, len(diags))
	for i, d := range diags {
		msgs[i] = d.Category + ": " + d.Message
	}
	return table, msgs
}

func hasDiag(msgs []string, substr string) bool {
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

// TestBuild_EmptyMain covers the minimal program: one function entry
// `main`, empty body, zero diagnostics.
func TestBuild_EmptyMain(t *testing.T) {
	table, diags := buildFrom(t, "main { }")
	if len(diags) != 0 {
		t.Fatalf("expected zero diagnostics, got %v", diags)
	}
	entries := table.Lookup("main")
	if len(entries) != 1 {
		t.Fatalf("expected exactly one main entry, got %d", len(entries))
	}
	fe, ok := entries[0].(*FunctionEntry)
	if !ok {
		t.Fatalf("main entry is %T, want *FunctionEntry", entries[0])
	}
	if fe.Sig.Return.String() != "void" || len(fe.Sig.Params) != 0 {
		t.Fatalf("main signature = %s, want () -> void", fe.Sig)
	}
	if fe.Table == nil || len(fe.Table.Entries()) != 0 {
		t.Fatalf("main body table should be empty")
	}
}

// TestBuild_LocalVariable covers a local `x: Integer` landing in main's
// own table.
func TestBuild_LocalVariable(t *testing.T) {
	table, diags := buildFrom(t, "main { var { integer x; } x = 1 + 2; }")
	if len(diags) != 0 {
		t.Fatalf("expected zero diagnostics, got %v", diags)
	}
	mainEntries := table.Lookup("main")
	fe := mainEntries[0].(*FunctionEntry)
	xs := fe.Table.Lookup("x")
	if len(xs) != 1 {
		t.Fatalf("expected one local x, got %d", len(xs))
	}
	v, ok := xs[0].(*VariableEntry)
	if !ok || v.Type.String() != "integer" {
		t.Fatalf("x = %#v, want Integer VariableEntry", xs[0])
	}
}

// TestBuild_ShadowedMember covers a subclass redeclaring a base-class
// member field under the same name.
func TestBuild_ShadowedMember(t *testing.T) {
	src := `class A { public: integer x; };
	class B inherits A { public: integer x; };
	main { }`
	_, diags := buildFrom(t, src)
	if !hasDiag(diags, "shadowed member") {
		t.Fatalf("expected a shadowed member diagnostic, got %v", diags)
	}
}

// TestBuild_CircularInheritance covers two classes each inheriting from
// the other.
func TestBuild_CircularInheritance(t *testing.T) {
	src := `class A inherits B { public: integer x; };
	class B inherits A { public: integer y; };
	main { }`
	_, diags := buildFrom(t, src)
	if !hasDiag(diags, "circular inheritance") {
		t.Fatalf("expected a circular inheritance diagnostic, got %v", diags)
	}
}

// TestBuild_OverloadWarning covers two `g` entries with distinct
// signatures, flagged as an overload (warning, not an error).
func TestBuild_OverloadWarning(t *testing.T) {
	src := `func g(integer x): integer { return (x); }
	func g(float x): float { return (x); }
	main { }`
	table, diags := buildFrom(t, src)
	if !hasDiag(diags, "overload") {
		t.Fatalf("expected an overload diagnostic, got %v", diags)
	}
	if hasDiag(diags, "multiply declared") {
		t.Fatalf("overloads must not also be reported as multiply declared: %v", diags)
	}
	gs := table.Lookup("g")
	if len(gs) != 2 {
		t.Fatalf("expected both g overloads present, got %d", len(gs))
	}
}

// TestBuild_MultiplyDeclaredIdentifier: same identifier, same signature,
// twice — not an overload, a genuine duplicate.
func TestBuild_MultiplyDeclaredIdentifier(t *testing.T) {
	src := `func g(integer x): integer { return (x); }
	func g(integer y): integer { return (y); }
	main { }`
	_, diags := buildFrom(t, src)
	if !hasDiag(diags, "multiply declared identifier") {
		t.Fatalf("expected a multiply declared identifier diagnostic, got %v", diags)
	}
}

// TestBuild_MultiplyDeclaredClass.
func TestBuild_MultiplyDeclaredClass(t *testing.T) {
	src := `class A { public: integer x; };
	class A { public: integer y; };
	main { }`
	_, diags := buildFrom(t, src)
	if !hasDiag(diags, "multiply declared class") {
		t.Fatalf("expected a multiply declared class diagnostic, got %v", diags)
	}
}

// TestBuild_MemberFunctionDefinitionMatching covers the declaration <->
// `Class::name` definition pairing, both the success path and its two
// failure modes.
func TestBuild_MemberFunctionDefinitionMatching(t *testing.T) {
	t.Run("matched", func(t *testing.T) {
		src := `class A { public: func area(): integer; };
		func A::area(): integer { return (0); }
		main { }`
		table, diags := buildFrom(t, src)
		if len(diags) != 0 {
			t.Fatalf("expected zero diagnostics, got %v", diags)
		}
		ce := table.Lookup("A")[0].(*ClassEntry)
		fe := ce.Table.Lookup("area")[0].(*FunctionEntry)
		if fe.Table == nil {
			t.Fatalf("expected area's declaration to gain a body table")
		}
	})

	t.Run("missing definition", func(t *testing.T) {
		src := `class A { public: func area(): integer; };
		main { }`
		_, diags := buildFrom(t, src)
		if !hasDiag(diags, "no member-function definition") {
			t.Fatalf("expected a no member-function definition diagnostic, got %v", diags)
		}
	})

	t.Run("missing declaration", func(t *testing.T) {
		src := `class A { public: integer x; };
		func A::area(): integer { return (0); }
		main { }`
		_, diags := buildFrom(t, src)
		if !hasDiag(diags, "no member-function declaration") {
			t.Fatalf("expected a no member-function declaration diagnostic, got %v", diags)
		}
	})
}

// TestBuild_ArrayMember regresses the ReptArraySize double-consumption
// fix: a multi-dimension array field must survive as the second-or-later
// member of a class, with its full dimension list intact.
func TestBuild_ArrayMember(t *testing.T) {
	src := `class A {
		public:
		integer x;
		integer grid[3][4];
	};
	main { }`
	table, diags := buildFrom(t, src)
	if len(diags) != 0 {
		t.Fatalf("expected zero diagnostics, got %v", diags)
	}
	ce := table.Lookup("A")[0].(*ClassEntry)
	grid := ce.Table.Lookup("grid")[0].(*VariableEntry)
	if grid.Type.String() != "integer[3][4]" {
		t.Fatalf("grid type = %s, want integer[3][4]", grid.Type)
	}
	x := ce.Table.Lookup("x")[0].(*VariableEntry)
	if x.Type.String() != "integer" {
		t.Fatalf("x type = %s, want integer (should survive alongside grid)", x.Type)
	}
}

// TestBuild_FunctionParameters checks FunctionParameterEntry ordinals.
func TestBuild_FunctionParameters(t *testing.T) {
	table, diags := buildFrom(t, `func f(integer a, float b): void { }
	main { }`)
	if len(diags) != 0 {
		t.Fatalf("expected zero diagnostics, got %v", diags)
	}
	fe := table.Lookup("f")[0].(*FunctionEntry)
	a := fe.Table.Lookup("a")[0].(*FunctionParameterEntry)
	b := fe.Table.Lookup("b")[0].(*FunctionParameterEntry)
	if a.Ordinal != 0 || b.Ordinal != 1 {
		t.Fatalf("a.Ordinal=%d b.Ordinal=%d, want 0, 1", a.Ordinal, b.Ordinal)
	}
}
