package cpu

import (
	"errors"
	"strconv"

	"github.com/ezrec/ucomp/translate"
)

var f = translate.From

var (
	// Execution errors
	ErrOutOfBounds   = errors.New(f("memory out of bounds"))
	ErrInvalidOpcode = errors.New(f("opcode invalid"))
	ErrDivideByZero  = errors.New(f("divide by zero"))
	ErrEndOfProgram  = errors.New(f("end of program"))
	ErrStopped       = errors.New(f("already stopped"))
	ErrInput         = errors.New(f("input"))
	ErrOutput        = errors.New(f("output"))

	// Loader errors
	ErrProgramTooLarge = errors.New(f("program too large for memory"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrSectionUnknown  = errors.New(f("section unknown"))
	ErrSectionOrder    = errors.New(f("section out of order"))
	ErrCodeOutsideText = errors.New(f("instruction outside of .text"))
	ErrOpcodeExtraArgs = errors.New(f("excessive arguments"))
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrOperandRange    = errors.New(f("operand out of range"))
	ErrTargetMissing   = errors.New(f("target missing"))
	ErrSentinelWord    = errors.New(f("word collides with the segment sentinel"))
)

// ErrHalt is the outcome of an explicit halt, carrying the program's exit code.
type ErrHalt int16

func (eh ErrHalt) Error() string {
	return f("halt %d", int16(eh))
}

func (eh ErrHalt) Is(err error) (ok bool) {
	_, ok = err.(ErrHalt)
	return
}

// ErrInstruction locates a failed instruction.
type ErrInstruction struct {
	Pc   int
	Word Word
	Err  error
}

func (err *ErrInstruction) Error() string {
	word := strconv.FormatInt(int64(err.Word), 10)
	return f("pc %d word %s (%v) %v", err.Pc, word, Decode(err.Word), err.Err)
}

func (err *ErrInstruction) Unwrap() error {
	return err.Err
}

// ErrLoadSyntax is a program source token that is not a base-10 integer.
type ErrLoadSyntax struct {
	LineNo int
	Token  string
}

func (err *ErrLoadSyntax) Error() string {
	return f("line %d '%v' is not a number", err.LineNo, err.Token)
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
