package cpu

import (
	"log"
)

// ExtendedUnit performs bitwise operations using the EAX and EBX registers.
type ExtendedUnit struct {
	Verbose bool // Set to enable verbose logging.

	eax    Word
	ebx    Word
	memory *Memory
}

// NewExtendedUnit creates an extended unit attached to memory.
func NewExtendedUnit(memory *Memory) (ealu *ExtendedUnit) {
	ealu = &ExtendedUnit{
		memory: memory,
	}

	return
}

// Eax returns the value of EAX.
func (ealu *ExtendedUnit) Eax() Word {
	return ealu.eax
}

// Ebx returns the value of EBX.
func (ealu *ExtendedUnit) Ebx() Word {
	return ealu.ebx
}

// Reset clears EAX and EBX.
func (ealu *ExtendedUnit) Reset() {
	ealu.eax = 0
	ealu.ebx = 0
}

// SetEax loads EAX from memory.
func (ealu *ExtendedUnit) SetEax(target int) (err error) {
	value, err := ealu.memory.Read(target)
	if err != nil {
		return
	}

	ealu.eax = value
	if ealu.Verbose {
		log.Printf("ealu: eax=%v", int64(value))
	}
	return
}

// SetEbx loads EBX from memory.
func (ealu *ExtendedUnit) SetEbx(target int) (err error) {
	value, err := ealu.memory.Read(target)
	if err != nil {
		return
	}

	ealu.ebx = value
	if ealu.Verbose {
		log.Printf("ealu: ebx=%v", int64(value))
	}
	return
}

// Flatten reduces EAX and EBX to their lowest bit.
func (ealu *ExtendedUnit) Flatten() {
	ealu.eax &= 1
	ealu.ebx &= 1
	if ealu.Verbose {
		log.Printf("ealu: flat eax=%v ebx=%v", int64(ealu.eax), int64(ealu.ebx))
	}
}

// And writes EAX & EBX to memory.
func (ealu *ExtendedUnit) And(target int) (err error) {
	return ealu.write(target, ealu.eax&ealu.ebx)
}

// Or writes EAX | EBX to memory.
func (ealu *ExtendedUnit) Or(target int) (err error) {
	return ealu.write(target, ealu.eax|ealu.ebx)
}

// Xor writes EAX ^ EBX to memory.
func (ealu *ExtendedUnit) Xor(target int) (err error) {
	return ealu.write(target, ealu.eax^ealu.ebx)
}

// Not writes ^EAX to memory.
func (ealu *ExtendedUnit) Not(target int) (err error) {
	return ealu.write(target, ^ealu.eax)
}

func (ealu *ExtendedUnit) write(target int, value Word) (err error) {
	err = ealu.memory.Write(target, value)
	if err != nil {
		return
	}

	if ealu.Verbose {
		log.Printf("ealu: memory[%d]=%v", target, int64(value))
	}
	return
}

// Eval performs an extended operation.
func (ealu *ExtendedUnit) Eval(op CodeOp, target int) (err error) {
	switch op {
	case OP_SET_EAX:
		err = ealu.SetEax(target)
	case OP_SET_EBX:
		err = ealu.SetEbx(target)
	case OP_FLAT:
		ealu.Flatten()
	case OP_AND:
		err = ealu.And(target)
	case OP_OR:
		err = ealu.Or(target)
	case OP_XOR:
		err = ealu.Xor(target)
	case OP_NOT:
		err = ealu.Not(target)
	default:
		err = ErrInvalidOpcode
	}

	return
}
