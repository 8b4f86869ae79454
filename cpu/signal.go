package cpu

// Signal classifies why the machine halted.
type Signal int

//go:generate go tool stringer -linecomment -type=Signal
const (
	SIGNAL_EXPLICIT_HALT  = Signal(0) // EXPLICIT_HALT
	SIGNAL_END_OF_PROGRAM = Signal(1) // END_OF_PROGRAM
	SIGNAL_OUT_OF_MEMORY  = Signal(2) // OUT_OF_MEMORY
	SIGNAL_INVALID_OPCODE = Signal(3) // INVALID_OPCODE
	SIGNAL_OTHER          = Signal(4) // OTHER
)

// Termination is the final exit code and signal of a halted machine.
type Termination struct {
	ExitCode int16
	Signal   Signal
}

// String returns the termination as 'exit N signal S'.
func (term Termination) String() string {
	return f("exit %d signal %v", term.ExitCode, term.Signal.String())
}
