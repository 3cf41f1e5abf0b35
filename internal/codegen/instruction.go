package codegen

import "fmt"

// Op names one assembly mnemonic. Every variant below corresponds to
// a named mnemonic in the target instruction set; Instruction.String
// is the single place that knows how to render each one back to text.
type Op int

const (
	// Three-address integer arithmetic: ri = rj <op> rk.
	Add Op = iota
	Sub
	Mul
	Div
	Mod // defined for instruction-set completeness; the surface language has no '%' operator to emit it
	And
	Or

	// Three-address relational ops: ri = (rj <op> rk) ? 1 : 0.
	Ceq
	Cne
	Clt
	Cle
	Cgt
	Cge

	// Immediate-operand siblings of the above: ri = rj <op> imm.
	AddI
	SubI
	MulI
	DivI
	ModI
	AndI
	OrI
	CeqI
	CneI
	CltI
	CleI
	CgtI
	CgeI

	Not // ri = !rj (zero/nonzero flip)

	// Memory access, register-offset form: ri, k(rj).
	Lw
	Lb
	Sw
	Sb

	// Memory access, label-offset form: ri, label(rj).
	LwLabel
	LbLabel
	SwLabel
	SbLabel

	Sl // ri = rj << k
	Sr // ri = rj >> k

	Getc // ri = next input byte
	Putc // emit rj as a byte

	// Control flow, register-target form.
	Bz  // branch to rj if ri == 0
	Bnz // branch to rj if ri != 0
	J   // unconditional jump to rj
	Jr  // jump to rj, saving the return address in R15
	Jl  // jump to rj, saving the link in ri
	Jlr // jump to rj, saving the link in ri and the return address in R15

	// Control flow, label-target form — same semantics, symbolic target.
	BzLabel
	BnzLabel
	JLabel
	JrLabel
	JlLabel
	JlrLabel

	Entry // entry point directive
	Align // alignment directive
	Org   // org k: set the location counter
	Res   // res k: reserve k words

	Nop
	Hlt
)

// Instruction is one line of emitted assembly: an opcode plus whichever
// of its operand fields are meaningful for that opcode, and an
// optional label tag for this line itself (the target of some other
// instruction's branch or jump).
type Instruction struct {
	Label string // this instruction's own line label, empty if untagged
	Op    Op
	Rd    Register // destination register, when the opcode writes one
	Rs    Register // first source / base register
	Rt    Register // second source register (three-address / register-target forms)
	Imm   int       // immediate operand (*I ops, sl/sr, memory k-offset, org/res)
	Addr  string    // symbolic label operand (label-offset memory, label-target control flow)
}

// String renders an instruction to its canonical textual form,
// prefixed with "label: " when Label is set.
func (in Instruction) String() string {
	body := in.render()
	if in.Label == "" {
		return body
	}
	return fmt.Sprintf("%s: %s", in.Label, body)
}

func (in Instruction) render() string {
	switch in.Op {
	case Add:
		return in.threeAddr("add")
	case Sub:
		return in.threeAddr("sub")
	case Mul:
		return in.threeAddr("mul")
	case Div:
		return in.threeAddr("div")
	case Mod:
		return in.threeAddr("mod")
	case And:
		return in.threeAddr("and")
	case Or:
		return in.threeAddr("or")
	case Ceq:
		return in.threeAddr("ceq")
	case Cne:
		return in.threeAddr("cne")
	case Clt:
		return in.threeAddr("clt")
	case Cle:
		return in.threeAddr("cle")
	case Cgt:
		return in.threeAddr("cgt")
	case Cge:
		return in.threeAddr("cge")
	case AddI:
		return in.immediate("addi")
	case SubI:
		return in.immediate("subi")
	case MulI:
		return in.immediate("muli")
	case DivI:
		return in.immediate("divi")
	case ModI:
		return in.immediate("modi")
	case AndI:
		return in.immediate("andi")
	case OrI:
		return in.immediate("ori")
	case CeqI:
		return in.immediate("ceqi")
	case CneI:
		return in.immediate("cnei")
	case CltI:
		return in.immediate("clti")
	case CleI:
		return in.immediate("clei")
	case CgtI:
		return in.immediate("cgti")
	case CgeI:
		return in.immediate("cgei")
	case Not:
		return fmt.Sprintf("not %s,%s", in.Rd, in.Rs)
	case Lw:
		return in.memOffset("lw")
	case Lb:
		return in.memOffset("lb")
	case Sw:
		return in.memOffset("sw")
	case Sb:
		return in.memOffset("sb")
	case LwLabel:
		return in.memLabel("lw")
	case LbLabel:
		return in.memLabel("lb")
	case SwLabel:
		return in.memLabel("sw")
	case SbLabel:
		return in.memLabel("sb")
	case Sl:
		return fmt.Sprintf("sl %s,%d", in.Rd, in.Imm)
	case Sr:
		return fmt.Sprintf("sr %s,%d", in.Rd, in.Imm)
	case Getc:
		return fmt.Sprintf("getc %s", in.Rd)
	case Putc:
		return fmt.Sprintf("putc %s", in.Rs)
	case Bz:
		return fmt.Sprintf("bz %s,%s", in.Rs, in.Rt)
	case Bnz:
		return fmt.Sprintf("bnz %s,%s", in.Rs, in.Rt)
	case J:
		return fmt.Sprintf("j %s", in.Rs)
	case Jr:
		return fmt.Sprintf("jr %s", in.Rs)
	case Jl:
		return fmt.Sprintf("jl %s,%s", in.Rd, in.Rs)
	case Jlr:
		return fmt.Sprintf("jlr %s,%s", in.Rd, in.Rs)
	case BzLabel:
		return fmt.Sprintf("bz %s,%s", in.Rs, in.Addr)
	case BnzLabel:
		return fmt.Sprintf("bnz %s,%s", in.Rs, in.Addr)
	case JLabel:
		return fmt.Sprintf("j %s", in.Addr)
	case JrLabel:
		return fmt.Sprintf("jr %s", in.Addr)
	case JlLabel:
		return fmt.Sprintf("jl %s,%s", in.Rd, in.Addr)
	case JlrLabel:
		return fmt.Sprintf("jlr %s,%s", in.Rd, in.Addr)
	case Entry:
		return "entry"
	case Align:
		return "align"
	case Org:
		return fmt.Sprintf("org %d", in.Imm)
	case Res:
		return fmt.Sprintf("res %d", in.Imm)
	case Nop:
		return "nop"
	case Hlt:
		return "hlt"
	default:
		return fmt.Sprintf("<invalid op %d>", int(in.Op))
	}
}

func (in Instruction) threeAddr(mnemonic string) string {
	return fmt.Sprintf("%s %s,%s,%s", mnemonic, in.Rd, in.Rs, in.Rt)
}

func (in Instruction) immediate(mnemonic string) string {
	return fmt.Sprintf("%s %s,%s,%d", mnemonic, in.Rd, in.Rs, in.Imm)
}

func (in Instruction) memOffset(mnemonic string) string {
	return fmt.Sprintf("%s %s,%d(%s)", mnemonic, in.Rd, in.Imm, in.Rs)
}

func (in Instruction) memLabel(mnemonic string) string {
	return fmt.Sprintf("%s %s,%s(%s)", mnemonic, in.Rd, in.Addr, in.Rs)
}
