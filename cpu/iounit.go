package cpu

import (
	"errors"
	"log"

	"github.com/ezrec/ucomp/io"
)

// Console is the device attached to the I/O unit.
type Console io.Console

// IoUnit moves single words between memory and the console.
type IoUnit struct {
	Verbose bool    // Set to enable verbose logging.
	Console Console // Attached console.

	memory *Memory
}

// NewIoUnit creates an I/O unit attached to memory.
func NewIoUnit(memory *Memory) (iou *IoUnit) {
	iou = &IoUnit{
		memory: memory,
	}

	return
}

// Input reads one integer from the console into memory.
// Memory is unchanged if the console read fails.
func (iou *IoUnit) Input(target int) (err error) {
	if !CheckBound(target) {
		err = ErrOutOfBounds
		return
	}

	if iou.Console == nil {
		err = errors.Join(ErrInput, io.ErrNoInput)
		return
	}

	value, err := iou.Console.Receive()
	if err != nil {
		err = errors.Join(ErrInput, err)
		return
	}

	err = iou.memory.Write(target, Word(value))
	if err != nil {
		return
	}

	if iou.Verbose {
		log.Printf("io: input memory[%d]=%v", target, value)
	}
	return
}

// Output writes one word of memory to the console.
func (iou *IoUnit) Output(target int) (err error) {
	value, err := iou.memory.Read(target)
	if err != nil {
		return
	}

	if iou.Console == nil {
		err = errors.Join(ErrOutput, io.ErrNoOutput)
		return
	}

	err = iou.Console.Send(int64(value))
	if err != nil {
		err = errors.Join(ErrOutput, err)
		return
	}

	if iou.Verbose {
		log.Printf("io: output memory[%d]=%v", target, int64(value))
	}
	return
}

// Eval performs an I/O operation.
func (iou *IoUnit) Eval(op CodeOp, target int) (err error) {
	switch op {
	case OP_INPUT:
		err = iou.Input(target)
	case OP_OUTPUT:
		err = iou.Output(target)
	default:
		err = ErrInvalidOpcode
	}

	return
}
