package cpu

import (
	"fmt"
)

// CodeClass is the functional unit an opcode is routed to.
type CodeClass int

//go:generate go tool stringer -linecomment -type=CodeClass
const (
	CLASS_INVALID  = CodeClass(0) // invalid
	CLASS_IO       = CodeClass(1) // io
	CLASS_ARITH    = CodeClass(2) // alu
	CLASS_CONTROL  = CodeClass(3) // cu
	CLASS_EXTENDED = CodeClass(4) // ealu
)

// CodeOp is a decoded operation. Valid operations have the value of their opcode.
type CodeOp int

//go:generate go tool stringer -linecomment -type=CodeOp
const (
	OP_INVALID = CodeOp(-1) // invalid
	OP_NOP     = CodeOp(0)  // nop
	OP_INPUT   = CodeOp(10) // in
	OP_OUTPUT  = CodeOp(12) // out
	OP_LOAD    = CodeOp(20) // load
	OP_STORE   = CodeOp(22) // store
	OP_ADD     = CodeOp(30) // add
	OP_SUB     = CodeOp(32) // sub
	OP_MUL     = CodeOp(34) // mul
	OP_DIV     = CodeOp(36) // div
	OP_MOD     = CodeOp(38) // mod
	OP_JMP     = CodeOp(40) // jmp
	OP_JZ      = CodeOp(42) // jz
	OP_HALT    = CodeOp(44) // halt
	OP_SET_EAX = CodeOp(50) // seta
	OP_SET_EBX = CodeOp(52) // setb
	OP_FLAT    = CodeOp(54) // flat
	OP_AND     = CodeOp(60) // and
	OP_OR      = CodeOp(62) // or
	OP_XOR     = CodeOp(64) // xor
	OP_NOT     = CodeOp(66) // not
)

// Ops lists every valid operation.
var Ops = []CodeOp{
	OP_NOP, OP_INPUT, OP_OUTPUT,
	OP_LOAD, OP_STORE, OP_ADD, OP_SUB, OP_MUL, OP_DIV, OP_MOD,
	OP_JMP, OP_JZ, OP_HALT,
	OP_SET_EAX, OP_SET_EBX, OP_FLAT, OP_AND, OP_OR, OP_XOR, OP_NOT,
}

// Operands returns true if the operation uses its operand.
func (op CodeOp) Operands() bool {
	switch op {
	case OP_NOP, OP_FLAT, OP_INVALID:
		return false
	}
	return true
}

// Instruction is a decoded opcode and operand pair.
type Instruction struct {
	Opcode  int
	Operand int
}

// Decode splits the low four decimal digits of a word into an instruction.
// Digits of a negative word are negative, so words below -99 decode to a
// negative opcode, which is never valid.
func Decode(word Word) (inst Instruction) {
	inst.Opcode = int(word/1000%10*10 + word/100%10)
	inst.Operand = int(word/10%10*10 + word%10)
	return
}

// Encode builds the instruction word for an operation and operand.
func Encode(op CodeOp, operand int) Word {
	return Word(int(op)*100 + operand)
}

// Word returns the instruction word.
func (inst Instruction) Word() Word {
	return Word(inst.Opcode*100 + inst.Operand)
}

// Class returns the functional unit the opcode is routed to.
func (inst Instruction) Class() CodeClass {
	opcode := inst.Opcode
	switch {
	case opcode >= 0 && opcode < 20:
		return CLASS_IO
	case opcode >= 20 && opcode < 40:
		return CLASS_ARITH
	case opcode >= 40 && opcode < 50:
		return CLASS_CONTROL
	case opcode >= 50 && opcode < 70:
		return CLASS_EXTENDED
	}
	return CLASS_INVALID
}

// Op returns the operation, or OP_INVALID.
func (inst Instruction) Op() CodeOp {
	op := CodeOp(inst.Opcode)
	switch op {
	case OP_NOP, OP_INPUT, OP_OUTPUT,
		OP_LOAD, OP_STORE, OP_ADD, OP_SUB, OP_MUL, OP_DIV, OP_MOD,
		OP_JMP, OP_JZ, OP_HALT,
		OP_SET_EAX, OP_SET_EBX, OP_FLAT, OP_AND, OP_OR, OP_XOR, OP_NOT:
		return op
	}
	return OP_INVALID
}

// String returns the assembly language representation of this instruction.
func (inst Instruction) String() string {
	op := inst.Op()
	switch {
	case op == OP_INVALID:
		return fmt.Sprintf("invalid %02d.%02d", inst.Opcode, inst.Operand)
	case !op.Operands() && inst.Operand == 0:
		return op.String()
	}
	return fmt.Sprintf("%v %d", op.String(), inst.Operand)
}
