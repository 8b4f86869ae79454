package debugger

import (
	"errors"

	"github.com/ezrec/ucomp/translate"
)

var f = translate.From

var (
	ErrAddress      = errors.New(f("address out of range"))
	ErrNoBreakpoint = errors.New(f("no breakpoint at address"))
	ErrCount        = errors.New(f("count must be positive"))
)

// ErrCommand is a debugger command that could not be parsed.
type ErrCommand struct {
	Line string
	Err  error
}

func (err *ErrCommand) Error() string {
	return f("%q: %v", err.Line, err.Err)
}

func (err *ErrCommand) Unwrap() error {
	return err.Err
}
