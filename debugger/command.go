package debugger

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Command is a single line of debugger input.
type Command struct {
	Pos lexer.Position

	Step     *Step     `  @@`
	Continue *Continue `| @@`
	Break    *Break    `| @@`
	Delete   *Delete   `| @@`
	Regs     *Regs     `| @@`
	Mem      *Mem      `| @@`
	Dis      *Dis      `| @@`
	Dump     *Dump     `| @@`
	Reset    *Reset    `| @@`
	Help     *Help     `| @@`
	Quit     *Quit     `| @@`
}

// Step executes Count instructions, one if not given.
type Step struct {
	Keyword string `@("step" | "s")`
	Count   int    `@Int?`
}

// Continue executes until a breakpoint or the machine halts.
type Continue struct {
	Keyword string `@("continue" | "c")`
}

// Break sets a breakpoint.
type Break struct {
	Keyword string `@("break" | "b")`
	Addr    int    `@Int`
}

// Delete clears a breakpoint.
type Delete struct {
	Keyword string `@("delete" | "d")`
	Addr    int    `@Int`
}

// Regs shows the registers.
type Regs struct {
	Keyword string `@("regs" | "r")`
}

// Mem shows Count memory cells starting at Addr.
type Mem struct {
	Keyword string `@("mem" | "m")`
	Addr    int    `@Int`
	Count   int    `@Int?`
}

// Dis disassembles Count memory cells starting at Addr.
type Dis struct {
	Keyword string `@"dis"`
	Addr    int    `@Int`
	Count   int    `@Int?`
}

// Dump shows the complete machine state.
type Dump struct {
	Keyword string `@"dump"`
}

// Reset restores the loaded program.
type Reset struct {
	Keyword string `@"reset"`
}

// Help lists the commands.
type Help struct {
	Keyword string `@("help" | "h")`
}

// Quit leaves the debugger.
type Quit struct {
	Keyword string `@("quit" | "q")`
}

var commandParser = participle.MustBuild[Command]()

// ParseCommand parses a line of debugger input.
func ParseCommand(line string) (cmd *Command, err error) {
	cmd, err = commandParser.ParseString("", line)
	if err != nil {
		err = &ErrCommand{Line: line, Err: err}
		return
	}

	return
}

const helpText = `Commands:
  step, s [N]        Execute N instructions (default 1)
  continue, c        Execute until a breakpoint or halt
  break, b ADDR      Set a breakpoint at ADDR
  delete, d ADDR     Clear the breakpoint at ADDR
  regs, r            Show the registers
  mem, m ADDR [N]    Show N memory cells from ADDR
  dis ADDR [N]       Disassemble N memory cells from ADDR
  dump               Show the complete machine state
  reset              Restore the loaded program
  help, h            Show this help
  quit, q            Leave the debugger
`
