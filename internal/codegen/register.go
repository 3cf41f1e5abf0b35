// Package codegen implements the label/register allocators, the
// three-address instruction model, and the Emit pass (C8) that walks a
// semantically validated AST and produces assembly text.
package codegen

import "fmt"

// Register names one of the target's 16 general-purpose registers.
// R0 is hard-wired to zero; R14 and R15 carry fixed architectural
// roles (the called object's address on a member-function call, and
// the return address, respectively) rather than being available for
// general allocation.
type Register int

const (
	R0 Register = iota // always reads as zero
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	R8
	R9
	R10
	R11
	R12
	R13
	R14 // member-function call: address of the receiving object
	R15 // call/return linkage: return address
)

func (r Register) String() string {
	if r < R0 || r > R15 {
		return fmt.Sprintf("R?%d", int(r))
	}
	return fmt.Sprintf("R%d", int(r))
}

// RegisterAllocator hands out registers from the R1..R13 pool. Unlike a
// map-backed pool, allocation always scans from R1 so that which
// register comes back for a given call sequence is deterministic —
// needed for the assembly output to be byte-reproducible across runs.
type RegisterAllocator struct {
	free [13]bool // index i holds R(i+1)'s availability
}

// NewRegisterAllocator returns an allocator with every general-purpose
// register (R1..R13) free.
func NewRegisterAllocator() *RegisterAllocator {
	ra := &RegisterAllocator{}
	for i := range ra.free {
		ra.free[i] = true
	}
	return ra
}

// Next returns the lowest-numbered free register and marks it in use.
// It returns false if the pool is exhausted — the naive, unoptimized
// Emit pass keeps expression depth low enough in practice that this
// should not occur for hand-written source, but callers must still
// check it rather than silently clobbering R0/R14/R15.
func (ra *RegisterAllocator) Next() (Register, bool) {
	for i, avail := range ra.free {
		if avail {
			ra.free[i] = false
			return Register(i + 1), true
		}
	}
	return R0, false
}

// Release returns reg to the pool. Releasing R0 is a no-op (it was
// never allocated); releasing R14 or R15 is a programming error, since
// neither is ever handed out by Next.
func (ra *RegisterAllocator) Release(reg Register) {
	switch {
	case reg == R0:
		return
	case reg >= R1 && reg <= R13:
		ra.free[reg-R1] = true
	default:
		panic(fmt.Sprintf("codegen: tried to release %s", reg))
	}
}
