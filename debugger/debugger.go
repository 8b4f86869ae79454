// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package debugger is an interactive monitor for the emulator.
package debugger

import (
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"slices"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/chzyer/readline"

	"github.com/ezrec/ucomp/cpu"
	"github.com/ezrec/ucomp/emulator"
)

// LineReader provides lines of debugger input.
// *readline.Instance satisfies this interface.
type LineReader interface {
	Readline() (string, error)
}

var _ LineReader = (*readline.Instance)(nil)

// Debugger drives an emulator from debugger commands.
type Debugger struct {
	Verbose  bool               // If set, logs every command.
	Emulator *emulator.Emulator // Emulator under debug.
	Output   io.Writer          // Command output.

	breakpoints map[int]bool
}

// Snapshot is the machine state shown by the 'dump' command.
type Snapshot struct {
	Pc          int
	LineNo      int
	Ax          int64
	Eax         int64
	Ebx         int64
	Stopped     bool
	Termination cpu.Termination
	Fault       string
	Breakpoints []int
}

// NewDebugger creates a debugger for an emulator.
func NewDebugger(emu *emulator.Emulator, output io.Writer) (dbg *Debugger) {
	dbg = &Debugger{
		Emulator:    emu,
		Output:      output,
		breakpoints: map[int]bool{},
	}

	return
}

// Completer returns a readline completer for the debugger commands.
func Completer() readline.AutoCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("step"),
		readline.PcItem("continue"),
		readline.PcItem("break"),
		readline.PcItem("delete"),
		readline.PcItem("regs"),
		readline.PcItem("mem"),
		readline.PcItem("dis"),
		readline.PcItem("dump"),
		readline.PcItem("reset"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// Breakpoints returns the sorted breakpoint addresses.
func (dbg *Debugger) Breakpoints() []int {
	return slices.Sorted(maps.Keys(dbg.breakpoints))
}

// Run reads and executes commands until 'quit' or the end of input.
// Command errors are reported to the output and do not stop the debugger.
func (dbg *Debugger) Run(input LineReader) (err error) {
	dbg.where()

	for {
		var line string
		line, err = input.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			err = nil
			return
		}
		if err != nil {
			return
		}

		var quit bool
		quit, err = dbg.Execute(line)
		if err != nil {
			fmt.Fprintf(dbg.Output, "%v\n", err)
			err = nil
		}
		if quit {
			return
		}
	}
}

// Execute parses and runs a single command line.
// Blank lines are ignored.
func (dbg *Debugger) Execute(line string) (quit bool, err error) {
	if len(strings.TrimSpace(line)) == 0 {
		return
	}

	if dbg.Verbose {
		log.Printf("debugger: %v", line)
	}

	cmd, err := ParseCommand(line)
	if err != nil {
		return
	}

	emu := dbg.Emulator

	switch {
	case cmd.Step != nil:
		count := cmd.Step.Count
		if count == 0 {
			count = 1
		}
		err = dbg.step(count)
	case cmd.Continue != nil:
		err = dbg.cont()
	case cmd.Break != nil:
		if !cpu.CheckBound(cmd.Break.Addr) {
			err = ErrAddress
			return
		}
		dbg.breakpoints[cmd.Break.Addr] = true
	case cmd.Delete != nil:
		if !dbg.breakpoints[cmd.Delete.Addr] {
			err = ErrNoBreakpoint
			return
		}
		delete(dbg.breakpoints, cmd.Delete.Addr)
	case cmd.Regs != nil:
		fmt.Fprintf(dbg.Output, "%v\n", emu)
	case cmd.Mem != nil:
		err = dbg.memory(cmd.Mem.Addr, cmd.Mem.Count, false)
	case cmd.Dis != nil:
		err = dbg.memory(cmd.Dis.Addr, cmd.Dis.Count, true)
	case cmd.Dump != nil:
		repr.New(dbg.Output, repr.Indent("  ")).Println(dbg.Snapshot())
	case cmd.Reset != nil:
		emu.Reset()
		dbg.where()
	case cmd.Help != nil:
		io.WriteString(dbg.Output, helpText)
	case cmd.Quit != nil:
		quit = true
	}

	return
}

// Snapshot captures the current machine state.
func (dbg *Debugger) Snapshot() (snap Snapshot) {
	emu := dbg.Emulator

	snap = Snapshot{
		Pc:          emu.Pc(),
		LineNo:      emu.LineNo(),
		Ax:          int64(emu.Ax()),
		Eax:         int64(emu.Eax()),
		Ebx:         int64(emu.Ebx()),
		Breakpoints: dbg.Breakpoints(),
	}

	snap.Termination, snap.Stopped = emu.Termination()
	if fault := emu.Fault(); fault != nil {
		snap.Fault = fault.Error()
	}

	return
}

// tick runs one instruction, reporting faults to the output.
func (dbg *Debugger) tick() (done bool) {
	done, err := dbg.Emulator.Tick()
	if err != nil && !errors.Is(err, cpu.ErrStopped) {
		fmt.Fprintf(dbg.Output, "%v\n", err)
	}

	return
}

func (dbg *Debugger) step(count int) (err error) {
	if count < 0 {
		err = ErrCount
		return
	}

	for range count {
		if dbg.tick() {
			break
		}
	}

	dbg.where()

	return
}

// cont runs until the next breakpoint, or the machine halts.
func (dbg *Debugger) cont() (err error) {
	for !dbg.tick() {
		if dbg.breakpoints[dbg.Emulator.Pc()] {
			fmt.Fprintf(dbg.Output, "break %03d\n", dbg.Emulator.Pc())
			break
		}
	}

	dbg.where()

	return
}

// memory shows count cells from addr, optionally disassembled.
func (dbg *Debugger) memory(addr int, count int, disassemble bool) (err error) {
	if !cpu.CheckBound(addr) {
		err = ErrAddress
		return
	}

	if count == 0 {
		count = 1
	}

	for n := addr; n < addr+count && cpu.CheckBound(n); n++ {
		word, _ := dbg.Emulator.Read(n)
		if disassemble {
			fmt.Fprintf(dbg.Output, "%03d: %04d %v\n", n, int64(word), cpu.Decode(word))
		} else {
			fmt.Fprintf(dbg.Output, "%03d: %04d\n", n, int64(word))
		}
	}

	return
}

// where shows the next instruction, or the termination if halted.
func (dbg *Debugger) where() {
	emu := dbg.Emulator

	term, stopped := emu.Termination()
	if stopped {
		fmt.Fprintf(dbg.Output, "%v\n", term)
		return
	}

	pc := emu.Pc()
	word, err := emu.Read(pc)
	if err != nil {
		fmt.Fprintf(dbg.Output, "%03d: end of memory\n", pc)
		return
	}

	if lineno := emu.LineNo(); lineno != 0 {
		fmt.Fprintf(dbg.Output, "%03d: %04d %v (line %d)\n", pc, int64(word), cpu.Decode(word), lineno)
	} else {
		fmt.Fprintf(dbg.Output, "%03d: %04d %v\n", pc, int64(word), cpu.Decode(word))
	}
}
