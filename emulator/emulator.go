// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"bytes"
	"errors"
	"fmt"
	goio "io"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/ucomp/cpu"
	"github.com/ezrec/ucomp/internal"
	"github.com/ezrec/ucomp/io"
)

var _emulator_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%v", cpu.MEMORY_SIZE),
	"SENTINEL":    fmt.Sprintf("%v", cpu.SENTINEL),
}

// signalDefines yields the SIGNAL_* values.
func signalDefines() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for sig := cpu.SIGNAL_EXPLICIT_HALT; sig <= cpu.SIGNAL_OTHER; sig++ {
			if !yield("SIGNAL_"+sig.String(), fmt.Sprintf("%d", int(sig))) {
				return
			}
		}
	}
}

// Emulator state. Memory + functional units + console.
type Emulator struct {
	Verbose bool         // If set, enables verbose logging.
	Program *cpu.Program // Listing of the loaded program, if assembled.

	Memory cpu.Memory          // Main memory.
	Alu    *cpu.ArithmeticUnit // Arithmetic unit.
	Ealu   *cpu.ExtendedUnit   // Extended unit.
	Io     *cpu.IoUnit         // I/O unit.
	Cu     *cpu.ControlUnit    // Control unit.
	Loader cpu.Loader          // Program image loader.

	Tape io.Tape // Console tape, attached to the I/O unit by default.

	image cpu.Memory // Memory as loaded, restored on Reset().
	entry int        // Entry point of the loaded image.
}

// NewEmulator creates a new emulator, with all units sharing its memory.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Program: &cpu.Program{},
	}

	emu.Alu = cpu.NewArithmeticUnit(&emu.Memory)
	emu.Ealu = cpu.NewExtendedUnit(&emu.Memory)
	emu.Io = cpu.NewIoUnit(&emu.Memory)
	emu.Cu = cpu.NewControlUnit(&emu.Memory, emu.Alu, emu.Ealu, emu.Io)

	emu.Io.Console = &emu.Tape

	return
}

// Defines returns an iterator over all of the assembler predefines.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		signalDefines(),
	)
}

// setVerbose propagates verbosity to all units.
func (emu *Emulator) setVerbose() {
	emu.Alu.Verbose = emu.Verbose
	emu.Ealu.Verbose = emu.Verbose
	emu.Io.Verbose = emu.Verbose
	emu.Cu.Verbose = emu.Verbose
	emu.Loader.Verbose = emu.Verbose
}

// Load a program image, and prepare to run from its entry point.
//
// Memory and registers are cleared first. On error the machine is left
// with whatever of the image was loaded, and must not be run.
func (emu *Emulator) Load(input goio.Reader) (err error) {
	emu.setVerbose()

	emu.Program = &cpu.Program{}
	emu.Memory.Reset()
	emu.image.Reset()
	emu.entry = 0

	entry, err := emu.Loader.Load(input, &emu.Memory)
	if err != nil {
		return
	}

	emu.image = emu.Memory
	emu.entry = entry

	emu.Reset()

	return
}

// LoadProgram loads an assembled program, keeping its listing for
// line number lookup.
func (emu *Emulator) LoadProgram(prog *cpu.Program) (err error) {
	image := &bytes.Buffer{}
	_, err = prog.WriteTo(image)
	if err != nil {
		return
	}

	err = emu.Load(image)
	if err != nil {
		return
	}

	emu.Program = prog

	return
}

// Reset restores memory to the loaded image, clears the registers, and
// sets the program counter to the entry point.
func (emu *Emulator) Reset() {
	emu.setVerbose()

	emu.Memory = emu.image
	emu.Alu.Reset()
	emu.Ealu.Reset()
	emu.Cu.Reset()
	emu.Tape.Rewind()

	// The entry is at most MEMORY_SIZE, which SetPc accepts.
	_ = emu.Cu.SetPc(emu.entry)
}

// Entry returns the entry point of the loaded image.
func (emu *Emulator) Entry() int {
	return emu.entry
}

// Pc returns the program counter.
func (emu *Emulator) Pc() int {
	return emu.Cu.Pc()
}

// Ax returns the accumulator.
func (emu *Emulator) Ax() cpu.Word {
	return emu.Alu.Accumulator()
}

// Eax returns the first extended register.
func (emu *Emulator) Eax() cpu.Word {
	return emu.Ealu.Eax()
}

// Ebx returns the second extended register.
func (emu *Emulator) Ebx() cpu.Word {
	return emu.Ealu.Ebx()
}

// Read returns the content of a memory cell.
func (emu *Emulator) Read(addr int) (cpu.Word, error) {
	return emu.Memory.Read(addr)
}

// Stopped returns true once the machine has halted.
func (emu *Emulator) Stopped() bool {
	return emu.Cu.Stopped()
}

// Termination returns the exit code and signal, once stopped.
func (emu *Emulator) Termination() (cpu.Termination, bool) {
	return emu.Cu.Termination()
}

// Fault returns the outcome that halted the machine.
func (emu *Emulator) Fault() error {
	return emu.Cu.Fault()
}

// String returns the registers as a string.
func (emu *Emulator) String() string {
	return fmt.Sprintf("ax: %d eax: %d ebx: %d %v", int64(emu.Ax()), int64(emu.Eax()), int64(emu.Ebx()), emu.Cu)
}

// LineNo returns the source line number for the executing instruction,
// or 0 if there is no listing.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	line := emu.Program.Debug(emu.Cu.Pc())
	if line == nil {
		return 0
	}

	return line.LineNo
}

// Tick performs a single instruction cycle of the emulator.
//
// done is set once the machine halts. A halt or end of program is not an
// error; any other fault is returned as an *ErrRuntime. Ticking a halted
// machine returns cpu.ErrStopped.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.setVerbose()

	pc := emu.Cu.Pc()
	lineno := emu.LineNo()

	err = emu.Cu.Step()
	done = emu.Cu.Stopped()

	switch {
	case err == nil:
	case errors.Is(err, cpu.ErrStopped):
	case errors.Is(err, cpu.ErrHalt(0)), errors.Is(err, cpu.ErrEndOfProgram):
		err = nil
	default:
		err = &ErrRuntime{LineNo: lineno, Pc: pc, Err: err}
	}

	return
}

// Run ticks the emulator until it halts, and returns the termination.
func (emu *Emulator) Run() (term cpu.Termination) {
	for {
		done, err := emu.Tick()
		if err != nil && emu.Verbose {
			log.Printf("emulator: %v", err)
		}
		if done {
			break
		}
	}

	term, _ = emu.Termination()

	return
}
