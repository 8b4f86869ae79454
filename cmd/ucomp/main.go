// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/jessevdk/go-flags"
	"gitlab.com/efronlicht/enve"

	"github.com/ezrec/ucomp/cpu"
	"github.com/ezrec/ucomp/debugger"
	"github.com/ezrec/ucomp/emulator"
)

// Options are the command line options.
type Options struct {
	Compile string `short:"c" long:"compile" description:"Assembly source to compile and run"`
	Program string `short:"p" long:"program" description:"Program image to load and run ('-' for stdin)"`
	Input   string `short:"i" long:"input" default:"-" description:"Console input ('-' for stdin)"`
	Output  string `short:"o" long:"output" default:"-" description:"Console output ('-' for stdout)"`
	Save    string `short:"s" long:"save" description:"Save the compiled program image, do not execute"`
	Debug   bool   `short:"g" long:"debug" description:"Run in the interactive debugger"`
	Verbose bool   `short:"v" long:"verbose" description:"Verbose mode (env UCOMP_VERBOSE)"`
	Prompt  bool   `short:"P" long:"prompt" description:"Prompt before each console read (env UCOMP_PROMPT)"`
}

func main() {
	var opts Options

	parser := flags.NewParser(&opts, flags.Default)
	args, err := parser.Parse()
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if len(args) != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], args)
	}

	code, err := run(&opts)
	if err != nil {
		log.Fatal(err)
	}

	os.Exit(code)
}

// historyFile is the default debugger history file.
func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".ucomp_history")
}

// run executes the options, returning the program's exit code.
func run(opts *Options) (code int, err error) {
	// Environment fallbacks are only interesting when verbose.
	if !opts.Verbose && len(os.Getenv("ENVE_LOGDISABLED")) == 0 {
		os.Setenv("ENVE_LOGDISABLED", "1")
	}

	verbose := opts.Verbose || enve.BoolOr("UCOMP_VERBOSE", false)

	if len(opts.Compile) == 0 && len(opts.Program) == 0 {
		err = errors.New("one of --compile or --program is required")
		return
	}
	if len(opts.Compile) != 0 && len(opts.Program) != 0 {
		err = errors.New("--compile and --program are exclusive")
		return
	}
	if len(opts.Save) != 0 && len(opts.Compile) == 0 {
		err = errors.New("--save requires --compile")
		return
	}
	if opts.Program == "-" && opts.Input == "-" {
		err = errors.New("console input must not be stdin when the program image is")
		return
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	// Compile a new program.
	if len(opts.Compile) != 0 {
		var prog *cpu.Program
		prog, err = compile(opts.Compile, emu, verbose)
		if err != nil {
			return
		}

		if len(opts.Save) != 0 {
			err = save(opts.Save, prog)
			return
		}

		err = emu.LoadProgram(prog)
		if err != nil {
			err = fmt.Errorf("%v: %w", opts.Compile, err)
			return
		}
	}

	// Load a program image.
	if len(opts.Program) != 0 {
		var inf io.Reader = os.Stdin
		if opts.Program != "-" {
			var file *os.File
			file, err = os.Open(opts.Program)
			if err != nil {
				return
			}
			defer file.Close()
			inf = file
		}

		err = emu.Load(inf)
		if err != nil {
			err = fmt.Errorf("%v: %w", opts.Program, err)
			return
		}
	}

	// Attach the console.
	input := os.Stdin
	if opts.Input != "-" {
		input, err = os.Open(opts.Input)
		if err != nil {
			return
		}
		defer input.Close()
	}
	emu.Tape.Input = input

	if opts.Prompt || enve.BoolOr("UCOMP_PROMPT", isTerminal(input)) {
		emu.Tape.Prompt = os.Stderr
	}

	if opts.Output == "-" {
		emu.Tape.Output = os.Stdout
	} else {
		var ouf *os.File
		ouf, err = os.Create(opts.Output)
		if err != nil {
			return
		}
		defer ouf.Close()
		emu.Tape.Output = ouf
	}

	if opts.Debug {
		err = debug(emu, verbose)
		if err != nil {
			return
		}
	} else {
		emu.Run()
	}

	term, stopped := emu.Termination()
	if !stopped {
		// Left the debugger before the program halted.
		return
	}

	fault := emu.Fault()
	if !errors.Is(fault, cpu.ErrHalt(0)) && !errors.Is(fault, cpu.ErrEndOfProgram) {
		log.Printf("%v", fault)
	}
	if verbose {
		log.Printf("%v", term)
	}

	code = int(term.ExitCode)

	return
}

// compile assembles a source file, with the emulator's predefines.
func compile(path string, emu *emulator.Emulator, verbose bool) (prog *cpu.Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err = asm.Parse(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
		return
	}

	return
}

// save writes a program image.
func save(path string, prog *cpu.Program) (err error) {
	ouf, err := os.Create(path)
	if err != nil {
		return
	}

	_, err = prog.WriteTo(ouf)
	if err != nil {
		ouf.Close()
		return
	}

	return ouf.Close()
}

// debug runs the interactive debugger until the user quits.
func debug(emu *emulator.Emulator, verbose bool) (err error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "(ucomp) ",
		HistoryFile:     enve.StringOr("UCOMP_HISTORY", historyFile()),
		AutoComplete:    debugger.Completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return
	}
	defer rl.Close()

	dbg := debugger.NewDebugger(emu, rl.Stdout())
	dbg.Verbose = verbose

	err = dbg.Run(rl)

	return
}
