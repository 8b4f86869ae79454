package emulator

import (
	"github.com/ezrec/ucomp/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime fault.
type ErrRuntime struct {
	LineNo int // Source line, or 0 if unknown.
	Pc     int // Address of the faulting instruction.
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("pc %03d: %v", err.Pc, err.Err)
	}
	return f("line %d (pc %03d): %v", err.LineNo, err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
