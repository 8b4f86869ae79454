package cpu

import (
	"errors"
	"fmt"
	"log"
)

// Evaluator is a functional unit that executes operations against memory.
type Evaluator interface {
	Eval(op CodeOp, target int) error
}

// ControlUnit fetches, decodes, and dispatches instructions, and decides
// when the machine halts.
type ControlUnit struct {
	Verbose bool // Set to enable verbose logging.

	Alu  Evaluator   // Arithmetic unit.
	Acc  Accumulator // Accumulator tested by jz.
	Ealu Evaluator   // Extended unit.
	Io   Evaluator   // I/O unit.

	pc     int  // Program counter.
	ir     Word // Instruction register.
	memory *Memory

	stopped bool
	term    Termination
	fault   error
}

// NewControlUnit creates a control unit attached to memory and the other units.
func NewControlUnit(memory *Memory, alu *ArithmeticUnit, ealu *ExtendedUnit, iou *IoUnit) (cu *ControlUnit) {
	cu = &ControlUnit{
		Alu:    alu,
		Acc:    alu,
		Ealu:   ealu,
		Io:     iou,
		memory: memory,
	}

	return
}

// Pc returns the program counter.
func (cu *ControlUnit) Pc() int {
	return cu.pc
}

// Ir returns the last fetched instruction word.
func (cu *ControlUnit) Ir() Word {
	return cu.ir
}

// SetPc sets the program counter to a valid address, or to MEMORY_SIZE
// when the program has no text.
func (cu *ControlUnit) SetPc(addr int) (err error) {
	if !CheckBound(addr) && addr != MEMORY_SIZE {
		err = ErrOutOfBounds
		return
	}

	cu.pc = addr
	if cu.Verbose {
		log.Printf("cu: pc=%d", addr)
	}
	return
}

// Reset returns the control unit to the running state at address 0.
func (cu *ControlUnit) Reset() {
	cu.pc = 0
	cu.ir = 0
	cu.stopped = false
	cu.term = Termination{}
	cu.fault = nil
}

// Stopped returns true once the machine has halted.
func (cu *ControlUnit) Stopped() bool {
	return cu.stopped
}

// Termination returns the exit code and signal, once stopped.
func (cu *ControlUnit) Termination() (term Termination, ok bool) {
	return cu.term, cu.stopped
}

// Fault returns the outcome that halted the machine.
func (cu *ControlUnit) Fault() error {
	return cu.fault
}

// String returns the control unit registers as a string.
func (cu *ControlUnit) String() string {
	state := "running"
	if cu.stopped {
		state = cu.term.String()
	}
	return fmt.Sprintf("pc: %03d ir: %04d (%v) %v", cu.pc, int64(cu.ir), Decode(cu.ir), state)
}

// Step executes a single instruction cycle.
//
// Returns nil while the machine keeps running, the outcome that halted the
// machine on the halting step, and ErrStopped on every step afterwards.
func (cu *ControlUnit) Step() (err error) {
	if cu.stopped {
		return ErrStopped
	}

	if !CheckBound(cu.pc) {
		cu.halt(ErrEndOfProgram)
		return ErrEndOfProgram
	}

	word, err := cu.memory.Read(cu.pc)
	if err != nil {
		cu.halt(err)
		return
	}
	cu.ir = word

	inst := Decode(word)
	if cu.Verbose {
		log.Printf("%03d: %04d %v", cu.pc, int64(word), inst)
	}

	next_pc, err := cu.execute(inst)
	if err != nil {
		err = &ErrInstruction{Pc: cu.pc, Word: word, Err: err}
		cu.halt(err)
		return
	}

	cu.pc = next_pc

	return
}

// execute dispatches a decoded instruction to its functional unit,
// returning the address of the next instruction.
func (cu *ControlUnit) execute(inst Instruction) (next_pc int, err error) {
	next_pc = cu.pc + 1

	op := inst.Op()

	switch inst.Class() {
	case CLASS_IO:
		if op == OP_NOP {
			break
		}
		err = cu.eval(cu.Io, op, inst.Operand)
	case CLASS_ARITH:
		err = cu.eval(cu.Alu, op, inst.Operand)
	case CLASS_CONTROL:
		switch op {
		case OP_JMP:
			next_pc, err = cu.jump(inst.Operand, next_pc, true)
		case OP_JZ:
			next_pc, err = cu.jump(inst.Operand, next_pc, cu.Acc != nil && cu.Acc.Accumulator() == 0)
		case OP_HALT:
			err = ErrHalt(inst.Operand)
		default:
			err = ErrInvalidOpcode
		}
	case CLASS_EXTENDED:
		err = cu.eval(cu.Ealu, op, inst.Operand)
	case CLASS_INVALID:
		err = ErrInvalidOpcode
	}

	return
}

// eval forwards an operation to a functional unit.
func (cu *ControlUnit) eval(unit Evaluator, op CodeOp, target int) (err error) {
	if unit == nil || op == OP_INVALID {
		err = ErrInvalidOpcode
		return
	}

	return unit.Eval(op, target)
}

// jump validates the target, and returns it if taken, otherwise fall_through.
func (cu *ControlUnit) jump(target int, fall_through int, taken bool) (next_pc int, err error) {
	next_pc = fall_through

	if !CheckBound(target) {
		err = ErrOutOfBounds
		return
	}

	if taken {
		next_pc = target
		if cu.Verbose {
			log.Printf("cu: jump to %d", target)
		}
	}

	return
}

// halt stops the machine, recording the termination for the outcome.
func (cu *ControlUnit) halt(outcome error) {
	var halt ErrHalt
	var term Termination

	switch {
	case errors.As(outcome, &halt):
		term = Termination{ExitCode: int16(halt), Signal: SIGNAL_EXPLICIT_HALT}
	case errors.Is(outcome, ErrEndOfProgram):
		term = Termination{ExitCode: int16(SIGNAL_END_OF_PROGRAM), Signal: SIGNAL_END_OF_PROGRAM}
	case errors.Is(outcome, ErrInvalidOpcode):
		term = Termination{ExitCode: int16(SIGNAL_INVALID_OPCODE), Signal: SIGNAL_INVALID_OPCODE}
	case errors.Is(outcome, ErrOutOfBounds):
		term = Termination{ExitCode: int16(SIGNAL_OUT_OF_MEMORY), Signal: SIGNAL_OUT_OF_MEMORY}
	default:
		term = Termination{ExitCode: int16(SIGNAL_OTHER), Signal: SIGNAL_OTHER}
	}

	cu.stopped = true
	cu.term = term
	cu.fault = outcome

	if cu.Verbose {
		log.Printf("cu: %v (%v)", term, outcome)
	}
}
