package codegen

import (
	"testing"

	"github.com/minic-lang/minic/internal/parser"
	"github.com/minic-lang/minic/internal/symbols"
)

func TestRegisterAllocator_DeterministicOrder(t *testing.T) {
	ra := NewRegisterAllocator()
	r1, ok := ra.Next()
	if !ok || r1 != R1 {
		t.Fatalf("expected R1 first, got %s ok=%v", r1, ok)
	}
	r2, ok := ra.Next()
	if !ok || r2 != R2 {
		t.Fatalf("expected R2 second, got %s ok=%v", r2, ok)
	}
	ra.Release(r1)
	r3, ok := ra.Next()
	if !ok || r3 != R1 {
		t.Fatalf("expected R1 to be reused after release, got %s", r3)
	}
}

func TestRegisterAllocator_Exhaustion(t *testing.T) {
	ra := NewRegisterAllocator()
	for i := 0; i < 13; i++ {
		if _, ok := ra.Next(); !ok {
			t.Fatalf("pool exhausted early at %d", i)
		}
	}
	if _, ok := ra.Next(); ok {
		t.Fatalf("expected pool exhaustion after 13 allocations")
	}
}

func TestRegisterAllocator_ReleaseR0IsNoop(t *testing.T) {
	ra := NewRegisterAllocator()
	ra.Release(R0) // must not panic
}

func TestLabelAllocator_SequentialFromZero(t *testing.T) {
	la := NewLabelAllocator()
	top0, end0 := la.WhileLabels()
	if top0 != "while_0" || end0 != "endwhile_0" {
		t.Fatalf("expected while_0/endwhile_0, got %s/%s", top0, end0)
	}
	top1, end1 := la.WhileLabels()
	if top1 != "while_1" || end1 != "endwhile_1" {
		t.Fatalf("expected while_1/endwhile_1, got %s/%s", top1, end1)
	}
	elseL, endL := la.IfLabels()
	if elseL != "else_0" || endL != "endif_0" {
		t.Fatalf("expected else_0/endif_0, got %s/%s", elseL, endL)
	}
}

func TestInstruction_StringRendering(t *testing.T) {
	cases := []struct {
		in   Instruction
		want string
	}{
		{Instruction{Op: Add, Rd: R1, Rs: R2, Rt: R3}, "add R1,R2,R3"},
		{Instruction{Op: DivI, Rd: R1, Rs: R2, Imm: 4}, "divi R1,R2,4"},
		{Instruction{Op: Not, Rd: R1, Rs: R2}, "not R1,R2"},
		{Instruction{Op: Lw, Rd: R1, Rs: R2, Imm: 8}, "lw R1,8(R2)"},
		{Instruction{Op: SwLabel, Rd: R1, Rs: R0, Addr: "x"}, "sw R1,x(R0)"},
		{Instruction{Op: BzLabel, Rs: R1, Addr: "endif_0"}, "bz R1,endif_0"},
		{Instruction{Op: Jr, Rs: R15}, "jr R15"},
		{Instruction{Op: Org, Imm: 16}, "org 16"},
		{Instruction{Op: Hlt}, "hlt"},
		{Instruction{Op: Nop, Label: "loop"}, "loop: nop"},
	}
	for _, c := range cases {
		if got := c.in.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func emitFrom(t *testing.T, src string) []Instruction {
	t.Helper()
	res := parser.Parse(src, "")
	if res.Root == nil {
		t.Fatalf("parse produced no root; diagnostics: %v", res.Diagnostics)
	}
	_, _, defOrder := symbols.Build(res.Root)
	return Emit(defOrder)
}

func TestEmit_SimpleAssignmentAndArithmetic(t *testing.T) {
	instrs := emitFrom(t, "main { var { integer x; } x = 1 + 2; }")
	if len(instrs) == 0 {
		t.Fatalf("expected at least one instruction")
	}
	if instrs[0].Op != Entry {
		t.Fatalf("expected first instruction to be the entry directive, got %v", instrs[0])
	}
	foundAdd, foundStore := false, false
	for _, in := range instrs {
		if in.Op == Add {
			foundAdd = true
		}
		if in.Op == SwLabel && in.Addr == "main.x" {
			foundStore = true
		}
	}
	if !foundAdd || !foundStore {
		t.Fatalf("expected an add and a store to main.x, got %v", instrs)
	}
}

func TestEmit_WhileLoopBranchesToEndLabel(t *testing.T) {
	instrs := emitFrom(t, "main { var { integer x; } while (x) { x = x - 1; }; }")
	sawBz, sawJBack := false, false
	for _, in := range instrs {
		if in.Op == BzLabel && in.Addr == "endwhile_0" {
			sawBz = true
		}
		if in.Op == JLabel && in.Addr == "while_0" {
			sawJBack = true
		}
	}
	if !sawBz || !sawJBack {
		t.Fatalf("expected a bz to endwhile_0 and a jump back to while_0, got %v", instrs)
	}
}

func TestEmit_BreakTargetsLoopEnd(t *testing.T) {
	instrs := emitFrom(t, "main { while (1) { break; }; }")
	for _, in := range instrs {
		if in.Op == JLabel && in.Addr == "endwhile_0" {
			return
		}
	}
	t.Fatalf("expected break to jump to endwhile_0, got %v", instrs)
}

func TestEmit_ProgramEndsWithHalt(t *testing.T) {
	instrs := emitFrom(t, "main { }")
	if instrs[len(instrs)-1].Op != Hlt {
		t.Fatalf("expected program to end with hlt, got %v", instrs[len(instrs)-1])
	}
}
