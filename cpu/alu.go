package cpu

import (
	"log"
)

// Accumulator gives read-only access to the arithmetic unit's accumulator.
type Accumulator interface {
	Accumulator() Word
}

// ArithmeticUnit operates on the accumulator (AX) and memory.
type ArithmeticUnit struct {
	Verbose bool // Set to enable verbose logging.

	ax     Word
	memory *Memory
}

var _ Accumulator = (*ArithmeticUnit)(nil)

// NewArithmeticUnit creates an arithmetic unit attached to memory.
func NewArithmeticUnit(memory *Memory) (alu *ArithmeticUnit) {
	alu = &ArithmeticUnit{
		memory: memory,
	}

	return
}

// Accumulator returns the value of AX.
func (alu *ArithmeticUnit) Accumulator() Word {
	return alu.ax
}

// Reset clears AX.
func (alu *ArithmeticUnit) Reset() {
	alu.ax = 0
}

// setAx updates the accumulator.
func (alu *ArithmeticUnit) setAx(value Word) {
	alu.ax = value
	if alu.Verbose {
		log.Printf("alu: ax=%v", int64(value))
	}
}

// Load sets AX from memory.
func (alu *ArithmeticUnit) Load(target int) (err error) {
	value, err := alu.memory.Read(target)
	if err != nil {
		return
	}

	alu.setAx(value)
	return
}

// Store writes AX to memory.
func (alu *ArithmeticUnit) Store(target int) (err error) {
	err = alu.memory.Write(target, alu.ax)
	if err != nil {
		return
	}

	if alu.Verbose {
		log.Printf("alu: memory[%d]=%v", target, int64(alu.ax))
	}
	return
}

// Add adds memory to AX.
func (alu *ArithmeticUnit) Add(target int) (err error) {
	return alu.apply(target, func(ax, value Word) (Word, error) { return ax + value, nil })
}

// Sub subtracts memory from AX.
func (alu *ArithmeticUnit) Sub(target int) (err error) {
	return alu.apply(target, func(ax, value Word) (Word, error) { return ax - value, nil })
}

// Mul multiplies AX by memory.
func (alu *ArithmeticUnit) Mul(target int) (err error) {
	return alu.apply(target, func(ax, value Word) (Word, error) { return ax * value, nil })
}

// Div divides AX by memory, truncating toward zero.
func (alu *ArithmeticUnit) Div(target int) (err error) {
	return alu.apply(target, func(ax, value Word) (Word, error) {
		if value == 0 {
			return ax, ErrDivideByZero
		}
		return ax / value, nil
	})
}

// Mod sets AX to the remainder of AX divided by memory.
// The result has the sign of AX.
func (alu *ArithmeticUnit) Mod(target int) (err error) {
	return alu.apply(target, func(ax, value Word) (Word, error) {
		if value == 0 {
			return ax, ErrDivideByZero
		}
		return ax % value, nil
	})
}

// apply reads the memory operand and updates AX. AX is unchanged on error.
func (alu *ArithmeticUnit) apply(target int, op func(ax, value Word) (Word, error)) (err error) {
	value, err := alu.memory.Read(target)
	if err != nil {
		return
	}

	result, err := op(alu.ax, value)
	if err != nil {
		return
	}

	alu.setAx(result)
	return
}

// Eval performs an arithmetic operation.
func (alu *ArithmeticUnit) Eval(op CodeOp, target int) (err error) {
	switch op {
	case OP_LOAD:
		err = alu.Load(target)
	case OP_STORE:
		err = alu.Store(target)
	case OP_ADD:
		err = alu.Add(target)
	case OP_SUB:
		err = alu.Sub(target)
	case OP_MUL:
		err = alu.Mul(target)
	case OP_DIV:
		err = alu.Div(target)
	case OP_MOD:
		err = alu.Mod(target)
	default:
		err = ErrInvalidOpcode
	}

	return
}
