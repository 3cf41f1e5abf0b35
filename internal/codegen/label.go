package codegen

import "fmt"

// LabelAllocator hands out unique, sequential labels for while loops,
// if/else (both of which Emit branches around), and temporaries (Temp,
// which Emit does not call). Each counter starts at 0 and is incremented on
// every call, so the first while loop in a program is "while_0" /
// "endwhile_0", the second is "while_1" / "endwhile_1", and so on.
type LabelAllocator struct {
	whileN int
	ifN    int
	tempN  int
}

// NewLabelAllocator returns an allocator with every counter at zero.
func NewLabelAllocator() *LabelAllocator {
	return &LabelAllocator{}
}

// WhileLabels returns the (top, end) label pair for the next while
// loop and advances the while counter.
func (la *LabelAllocator) WhileLabels() (top, end string) {
	n := la.whileN
	la.whileN++
	return fmt.Sprintf("while_%d", n), fmt.Sprintf("endwhile_%d", n)
}

// IfLabels returns the (else, end) label pair for the next if
// statement and advances the if counter. The "then" branch needs no
// label of its own: it falls through directly from the condition
// check.
func (la *LabelAllocator) IfLabels() (elseLabel, end string) {
	n := la.ifN
	la.ifN++
	return fmt.Sprintf("else_%d", n), fmt.Sprintf("endif_%d", n)
}

// Temp returns the next scratch value label (e.g. for spilling a
// register-starved subexpression to memory) and advances the
// temporary counter.
func (la *LabelAllocator) Temp() string {
	n := la.tempN
	la.tempN++
	return fmt.Sprintf("t%d", n)
}
