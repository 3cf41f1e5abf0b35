package codegen

import (
	"fmt"
	"strconv"

	"github.com/minic-lang/minic/internal/ast"
	"github.com/minic-lang/minic/internal/symbols"
	"github.com/minic-lang/minic/internal/token"
)

// Emitter walks a semantically validated function body and lowers it to
// a flat instruction sequence. It assumes its input has already passed
// the validator (C7): it makes no attempt to re-diagnose malformed
// input, and panics if handed a construct it does not recognize.
//
// Scope: Emit covers scalar (Integer/Float, which the target has no
// separate opcodes for) expressions over variables and integer literals
// (float and string literals are not lowered and panic), assignment, control flow
// (if/while/break/continue), return, read/write, and free-function
// calls. Class member access, array indexing, and member-function
// calls need an object/addressing model the target instruction set
// doesn't specify, so Emit does not attempt to lower them; doing so is
// left as a follow-on once that model is chosen.
type Emitter struct {
	labels *LabelAllocator
	regs   *RegisterAllocator
	fn     *symbols.FunctionEntry
	breakL []string
	contL  []string
	out    []Instruction
}

// Emit lowers every function body in defOrder, in that order, to a
// single flat instruction sequence terminated by hlt.
func Emit(defOrder []*symbols.FunctionEntry) []Instruction {
	e := &Emitter{labels: NewLabelAllocator()}
	for _, fn := range defOrder {
		e.regs = NewRegisterAllocator()
		e.fn = fn
		e.emitFunction(fn)
	}
	e.emit(Instruction{Op: Hlt})
	return e.out
}

func (e *Emitter) emit(in Instruction) {
	e.out = append(e.out, in)
}

// qualifiedName gives each function a collision-free label: member
// functions are tagged with their owning class so Class::name and an
// unrelated free function named name never share a label.
func qualifiedName(fn *symbols.FunctionEntry) string {
	if fn.MemberOf != "" {
		return fn.MemberOf + "::" + fn.Name
	}
	return fn.Name
}

// varLabel gives a local or parameter a symbolic memory address,
// qualified by its owning function so that two functions' locals of
// the same name never collide. There is no stack-frame model here —
// each local simply owns a fixed memory cell for the lifetime of the
// program, which is sound because this language has no recursion
// (self-recursion is rejected by the validator) and calls are not
// re-entrant.
func (e *Emitter) varLabel(name string) string {
	return qualifiedName(e.fn) + "." + name
}

func (e *Emitter) emitFunction(fn *symbols.FunctionEntry) {
	if fn.Name == "main" && fn.MemberOf == "" {
		e.emit(Instruction{Op: Entry})
	}
	before := len(e.out)
	// Copy each argument from the cell a caller stored it in (see
	// emitCall) into the parameter's own cell.
	for _, entry := range fn.Table.Entries() {
		if p, ok := entry.(*symbols.FunctionParameterEntry); ok {
			r, _ := e.regs.Next()
			e.emit(Instruction{Op: LwLabel, Rd: r, Rs: R0, Addr: fmt.Sprintf("%s.param%d", qualifiedName(fn), p.Ordinal)})
			e.emit(Instruction{Op: SwLabel, Rd: r, Rs: R0, Addr: e.varLabel(p.Name)})
			e.regs.Release(r)
		}
	}
	e.emitBody(fn.Def)
	label := qualifiedName(fn)
	if len(e.out) > before && e.out[before].Label == "" {
		e.out[before].Label = label
	} else {
		e.out = append(e.out[:before], append([]Instruction{{Op: Nop, Label: label}}, e.out[before:]...)...)
	}
}

func (e *Emitter) emitBody(body *ast.Internal) {
	for _, stmt := range body.Kids[1:] {
		e.emitStmt(stmt)
	}
}

func (e *Emitter) emitStmt(n ast.Node) {
	node, ok := n.(*ast.Internal)
	if !ok {
		r := e.emitExpr(n)
		e.regs.Release(r)
		return
	}
	switch node.Kind {
	case ast.IfStmt:
		e.emitIf(node)
	case ast.WhileStmt:
		e.emitWhile(node)
	case ast.ReadStmt:
		e.emitRead(node.Kids[0])
	case ast.WriteStmt:
		r := e.emitExpr(node.Kids[0])
		e.emit(Instruction{Op: Putc, Rs: r})
		e.regs.Release(r)
	case ast.ReturnStmt:
		r := e.emitExpr(node.Kids[0])
		e.emit(Instruction{Op: SwLabel, Rd: r, Rs: R0, Addr: qualifiedName(e.fn) + ".result"})
		e.regs.Release(r)
		e.emit(Instruction{Op: Jr, Rs: R15})
	case ast.BreakStmt:
		e.emit(Instruction{Op: JLabel, Addr: e.breakL[len(e.breakL)-1]})
	case ast.ContinueStmt:
		e.emit(Instruction{Op: JLabel, Addr: e.contL[len(e.contL)-1]})
	case ast.Assignment:
		e.emitAssignment(node)
	default:
		r := e.emitExpr(node)
		e.regs.Release(r)
	}
}

func (e *Emitter) emitStatBlock(n ast.Node) {
	gen, ok := n.(*ast.Internal)
	if !ok {
		return
	}
	for _, s := range gen.Kids {
		e.emitStmt(s)
	}
}

func (e *Emitter) emitIf(node *ast.Internal) {
	cond := e.emitExpr(node.Kids[0])
	elseLabel, endLabel := e.labels.IfLabels()
	e.emit(Instruction{Op: BzLabel, Rs: cond, Addr: elseLabel})
	e.regs.Release(cond)
	e.emitStatBlock(node.Kids[1])
	e.emit(Instruction{Op: JLabel, Addr: endLabel})
	e.tagNext(elseLabel)
	e.emitStatBlock(node.Kids[2])
	e.tagNext(endLabel)
}

func (e *Emitter) emitWhile(node *ast.Internal) {
	top, end := e.labels.WhileLabels()
	e.tagNext(top)
	cond := e.emitExpr(node.Kids[0])
	e.emit(Instruction{Op: BzLabel, Rs: cond, Addr: end})
	e.regs.Release(cond)

	e.breakL = append(e.breakL, end)
	e.contL = append(e.contL, top)
	e.emitStatBlock(node.Kids[1])
	e.breakL = e.breakL[:len(e.breakL)-1]
	e.contL = e.contL[:len(e.contL)-1]

	e.emit(Instruction{Op: JLabel, Addr: top})
	e.tagNext(end)
}

// tagNext emits a standalone nop carrying label, so a branch target
// always lands on an instruction even when nothing follows it.
func (e *Emitter) tagNext(label string) {
	e.emit(Instruction{Op: Nop, Label: label})
}

func (e *Emitter) emitRead(target ast.Node) {
	r, ok := e.regs.Next()
	if !ok {
		panic("codegen: register pool exhausted")
	}
	e.emit(Instruction{Op: Getc, Rd: r})
	e.store(target, r)
	e.regs.Release(r)
}

func (e *Emitter) emitAssignment(node *ast.Internal) {
	r := e.emitExpr(node.Kids[1])
	e.store(node.Kids[0], r)
	e.regs.Release(r)
}

// store writes r to the memory cell a simple (non-member, non-indexed)
// assignment target names.
func (e *Emitter) store(target ast.Node, r Register) {
	leaf, ok := target.(*ast.Leaf)
	if !ok {
		panic("codegen: assignment target requires an addressing model Emit does not implement")
	}
	e.emit(Instruction{Op: SwLabel, Rd: r, Rs: R0, Addr: e.varLabel(leaf.Tok.Lexeme)})
}

var arithOp = map[ast.Kind]Op{
	ast.Add: Add, ast.Sub: Sub, ast.Mult: Mul, ast.Div: Div, ast.And: And, ast.Or: Or,
}

var relOp = map[ast.Kind]Op{
	ast.Equal: Ceq, ast.NotEqual: Cne, ast.LessThan: Clt,
	ast.GreaterThan: Cgt, ast.LessEqualThan: Cle, ast.GreaterEqualThan: Cge,
}

func (e *Emitter) emitExpr(n ast.Node) Register {
	switch node := n.(type) {
	case *ast.Leaf:
		return e.emitLeaf(node)
	case *ast.Internal:
		if op, ok := arithOp[node.Kind]; ok {
			return e.emitBinary(node, op)
		}
		if op, ok := relOp[node.Kind]; ok {
			return e.emitBinary(node, op)
		}
		switch node.Kind {
		case ast.Negation:
			r := e.emitExpr(node.Kids[0])
			e.emit(Instruction{Op: Not, Rd: r, Rs: r})
			return r
		case ast.SignedFactor:
			r := e.emitExpr(node.Kids[1])
			signLeaf := node.Kids[0].(*ast.Leaf)
			if signLeaf.Tok.Lexeme == "-" {
				neg, ok := e.regs.Next()
				if !ok {
					panic("codegen: register pool exhausted")
				}
				e.emit(Instruction{Op: Sub, Rd: neg, Rs: R0, Rt: r})
				e.regs.Release(r)
				return neg
			}
			return r
		case ast.TernaryOp:
			return e.emitTernary(node)
		case ast.FuncCallParams:
			return e.emitCall(node)
		}
	}
	panic(fmt.Sprintf("codegen: unsupported expression node %v", n))
}

func (e *Emitter) emitLeaf(l *ast.Leaf) Register {
	r, ok := e.regs.Next()
	if !ok {
		panic("codegen: register pool exhausted")
	}
	switch l.Tok.Kind {
	case token.INTLIT:
		n, _ := strconv.Atoi(l.Tok.Lexeme)
		e.emit(Instruction{Op: AddI, Rd: r, Rs: R0, Imm: n})
	case token.IDENT:
		e.emit(Instruction{Op: LwLabel, Rd: r, Rs: R0, Addr: e.varLabel(l.Tok.Lexeme)})
	default:
		panic(fmt.Sprintf("codegen: unsupported literal kind %v", l.Tok.Kind))
	}
	return r
}

func (e *Emitter) emitBinary(node *ast.Internal, op Op) Register {
	lr := e.emitExpr(node.Kids[0])
	rr := e.emitExpr(node.Kids[1])
	rd, ok := e.regs.Next()
	if !ok {
		panic("codegen: register pool exhausted")
	}
	e.emit(Instruction{Op: op, Rd: rd, Rs: lr, Rt: rr})
	e.regs.Release(lr)
	e.regs.Release(rr)
	return rd
}

func (e *Emitter) emitTernary(node *ast.Internal) Register {
	cond := e.emitExpr(node.Kids[0])
	elseLabel, endLabel := e.labels.IfLabels()
	rd, ok := e.regs.Next()
	if !ok {
		panic("codegen: register pool exhausted")
	}
	e.emit(Instruction{Op: BzLabel, Rs: cond, Addr: elseLabel})
	e.regs.Release(cond)

	thenR := e.emitExpr(node.Kids[1])
	e.emit(Instruction{Op: AddI, Rd: rd, Rs: thenR, Imm: 0})
	e.regs.Release(thenR)
	e.emit(Instruction{Op: JLabel, Addr: endLabel})

	e.tagNext(elseLabel)
	elseR := e.emitExpr(node.Kids[2])
	e.emit(Instruction{Op: AddI, Rd: rd, Rs: elseR, Imm: 0})
	e.regs.Release(elseR)

	e.tagNext(endLabel)
	return rd
}

// emitCall lowers a free-function call: name(args). Member calls (an
// explicit or implicit receiver) are out of Emit's scope — see the
// Emitter doc comment.
func (e *Emitter) emitCall(node *ast.Internal) Register {
	target, ok := node.Kids[0].(*ast.Leaf)
	if !ok {
		panic("codegen: member-function calls require an addressing model Emit does not implement")
	}
	args := node.Kids[1].(*ast.Internal)
	for i, arg := range args.Kids {
		r := e.emitExpr(arg)
		e.emit(Instruction{Op: SwLabel, Rd: r, Rs: R0, Addr: fmt.Sprintf("%s.param%d", target.Tok.Lexeme, i)})
		e.regs.Release(r)
	}
	link, ok := e.regs.Next()
	if !ok {
		panic("codegen: register pool exhausted")
	}
	e.emit(Instruction{Op: JlrLabel, Rd: link, Addr: target.Tok.Lexeme})
	e.regs.Release(link)

	result, ok := e.regs.Next()
	if !ok {
		panic("codegen: register pool exhausted")
	}
	e.emit(Instruction{Op: LwLabel, Rd: result, Rs: R0, Addr: target.Tok.Lexeme + ".result"})
	return result
}
