package semantic

import (
	"strings"
	"testing"

	"github.com/minic-lang/minic/internal/parser"
	"github.com/minic-lang/minic/internal/symbols"
)

func checkFrom(t *testing.T, src string) []string {
	t.Helper()
	res := parser.Parse(src, "")
	if res.Root == nil {
		t.Fatalf("parse produced no root; diagnostics: %v", res.Diagnostics)
	}
	table, _, defOrder := symbols.Build(res.Root)
	diags := Check(table, defOrder)
	msgs := make([]string, len(diags))
	for i, d := range diags {
		msgs[i] = d.Category + ": " + d.Message
	}
	return msgs
}

func hasDiag(msgs []string, substr string) bool {
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

// TestCheck_CleanProgram covers sound arithmetic over a local
// producing zero diagnostics.
func TestCheck_CleanProgram(t *testing.T) {
	msgs := checkFrom(t, "main { var { integer x; } x = 1 + 2; }")
	if len(msgs) != 0 {
		t.Fatalf("expected zero diagnostics, got %v", msgs)
	}
}

// TestCheck_TypeMismatch covers assigning a String to an Integer
// local.
func TestCheck_TypeMismatch(t *testing.T) {
	msgs := checkFrom(t, `main { var { integer x; } x = "hi"; }`)
	if !hasDiag(msgs, "type mismatch") {
		t.Fatalf("expected a type mismatch diagnostic, got %v", msgs)
	}
}

// TestCheck_UndeclaredVariable.
func TestCheck_UndeclaredVariable(t *testing.T) {
	msgs := checkFrom(t, "main { x = 1; }")
	if !hasDiag(msgs, "undeclared variable") {
		t.Fatalf("expected an undeclared variable diagnostic, got %v", msgs)
	}
}

// TestCheck_SelfRecursionRejected covers a function calling itself
// being rejected, not merely warned about.
func TestCheck_SelfRecursionRejected(t *testing.T) {
	msgs := checkFrom(t, `func f(integer x): integer { return (f(x)); }
	main { }`)
	if !hasDiag(msgs, "recursion not supported") {
		t.Fatalf("expected a recursion not supported diagnostic, got %v", msgs)
	}
}

// TestCheck_CallWrongArgCount.
func TestCheck_CallWrongArgCount(t *testing.T) {
	msgs := checkFrom(t, `func f(integer x): integer { return (x); }
	main { var { integer y; } y = f(1, 2); }`)
	if !hasDiag(msgs, "invalid parameters") {
		t.Fatalf("expected an invalid parameters diagnostic, got %v", msgs)
	}
}

// TestCheck_OverloadResolution: two overloads of g, each call picked by
// exact argument type match, zero diagnostics.
func TestCheck_OverloadResolution(t *testing.T) {
	msgs := checkFrom(t, `func g(integer x): integer { return (x); }
	func g(float x): float { return (x); }
	main { var { integer a; float b; } a = g(1); b = g(1.5); }`)
	if len(msgs) != 0 {
		t.Fatalf("expected zero diagnostics, got %v", msgs)
	}
}

// TestCheck_BreakOutsideLoop and TestCheck_ContinueOutsideLoop cover
// REDESIGN #3: break/continue tracked via loop depth.
func TestCheck_BreakOutsideLoop(t *testing.T) {
	msgs := checkFrom(t, "main { break; }")
	if !hasDiag(msgs, "break outside loop") {
		t.Fatalf("expected a break outside loop diagnostic, got %v", msgs)
	}
}

func TestCheck_ContinueOutsideLoop(t *testing.T) {
	msgs := checkFrom(t, "main { continue; }")
	if !hasDiag(msgs, "continue outside loop") {
		t.Fatalf("expected a continue outside loop diagnostic, got %v", msgs)
	}
}

// TestCheck_BreakInsideWhile: the ordinary case produces no diagnostic.
func TestCheck_BreakInsideWhile(t *testing.T) {
	msgs := checkFrom(t, "main { while (1) { break; }; }")
	if len(msgs) != 0 {
		t.Fatalf("expected zero diagnostics, got %v", msgs)
	}
}

// TestCheck_IfConditionNotInteger.
func TestCheck_IfConditionNotInteger(t *testing.T) {
	msgs := checkFrom(t, `main { var { float f; } if (f) then { } else { }; }`)
	if !hasDiag(msgs, "type mismatch") {
		t.Fatalf("expected a type mismatch diagnostic, got %v", msgs)
	}
}

// TestCheck_ReturnTypeMismatch.
func TestCheck_ReturnTypeMismatch(t *testing.T) {
	msgs := checkFrom(t, `func f(): integer { return ("oops"); }
	main { }`)
	if !hasDiag(msgs, "type mismatch") {
		t.Fatalf("expected a type mismatch diagnostic, got %v", msgs)
	}
}

// TestCheck_DotOperatorMember exercises member resolution including
// inherited members, and the fix to always read the right-hand
// identifier off the DotOp's second child.
func TestCheck_DotOperatorMember(t *testing.T) {
	src := `class A { public: integer x; };
	class B inherits A { public: integer y; };
	main { var { B b; integer z; } z = b.x; }`
	msgs := checkFrom(t, src)
	if len(msgs) != 0 {
		t.Fatalf("expected zero diagnostics, got %v", msgs)
	}
}

// TestCheck_DotOperatorUndeclaredMember.
func TestCheck_DotOperatorUndeclaredMember(t *testing.T) {
	src := `class A { public: integer x; };
	main { var { A a; integer z; } z = a.nope; }`
	msgs := checkFrom(t, src)
	if !hasDiag(msgs, "undeclared variable") {
		t.Fatalf("expected an undeclared variable diagnostic, got %v", msgs)
	}
}

// TestCheck_MemberFunctionCall: an implicit-self call inside a member
// function resolves through the class's own method table.
func TestCheck_MemberFunctionCall(t *testing.T) {
	src := `class A {
		public:
		integer x;
		func getX(): integer;
		func helper(): integer;
	};
	func A::getX(): integer { return (x); }
	func A::helper(): integer { return (getX()); }
	main { }`
	msgs := checkFrom(t, src)
	if len(msgs) != 0 {
		t.Fatalf("expected zero diagnostics, got %v", msgs)
	}
}

// TestCheck_TooManyIndices covers array-indexing past the declared
// dimension count.
func TestCheck_TooManyIndices(t *testing.T) {
	msgs := checkFrom(t, `main { var { integer grid[3][4]; integer z; } z = grid[1][2][3]; }`)
	if !hasDiag(msgs, "too many indices") {
		t.Fatalf("expected a too many indices diagnostic, got %v", msgs)
	}
}

// TestCheck_NotIndexable: indexing a scalar.
func TestCheck_NotIndexable(t *testing.T) {
	msgs := checkFrom(t, `main { var { integer x; integer z; } z = x[0]; }`)
	if !hasDiag(msgs, "not indexable") {
		t.Fatalf("expected a not indexable diagnostic, got %v", msgs)
	}
}

// TestCheck_ArrayIndexChain: indexing within bounds across both
// dimensions is sound.
func TestCheck_ArrayIndexChain(t *testing.T) {
	msgs := checkFrom(t, `main { var { integer grid[3][4]; integer z; } z = grid[1][2]; }`)
	if len(msgs) != 0 {
		t.Fatalf("expected zero diagnostics, got %v", msgs)
	}
}

// TestCheck_TernarySound and TestCheck_TernaryBranchMismatch.
func TestCheck_TernarySound(t *testing.T) {
	msgs := checkFrom(t, `main { var { integer z; } z = ?[1:2:3]; }`)
	if len(msgs) != 0 {
		t.Fatalf("expected zero diagnostics, got %v", msgs)
	}
}

func TestCheck_TernaryBranchMismatch(t *testing.T) {
	msgs := checkFrom(t, `main { var { integer z; } z = ?[1:2:"x"]; }`)
	if !hasDiag(msgs, "type mismatch") {
		t.Fatalf("expected a type mismatch diagnostic, got %v", msgs)
	}
}

// TestCheck_NonShortCircuitingAcrossStatements: an error in one
// statement must not suppress diagnostics in the next.
func TestCheck_NonShortCircuitingAcrossStatements(t *testing.T) {
	msgs := checkFrom(t, `main { var { integer x; } x = "a"; x = "b"; }`)
	count := 0
	for _, m := range msgs {
		if strings.Contains(m, "type mismatch") {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expected two independent type mismatch diagnostics, got %v", msgs)
	}
}
