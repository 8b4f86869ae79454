// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

const (
	OPERAND_LIMIT = 100 // Operands are two decimal digits.
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":      "0",
	"MEMORY_SIZE": fmt.Sprintf("%d", MEMORY_SIZE),
	"SENTINEL":    fmt.Sprintf("%d", SENTINEL),
}

// opMap maps mnemonics to operations.
var opMap = func() map[string]CodeOp {
	ops := make(map[string]CodeOp, len(Ops))
	for _, op := range Ops {
		ops[op.String()] = op
	}
	return ops
}()

// sectionMap maps section directives.
var sectionMap = map[string]Section{
	SECTION_HEADER.String(): SECTION_HEADER,
	SECTION_DATA.String():   SECTION_DATA,
	SECTION_TEXT.String():   SECTION_TEXT,
}

// Assembler is a single pass assembler for the μComp system.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Lines   []Line // List of generated lines.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to addresses.
	Equate    map[string]string // Map of equates.
	section   Section
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	invert := false
	if word[0] == '~' {
		invert = true
		word = word[1:]
	}

	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if invert {
		value = ^value
	}

	return
}

// isLabel returns true if the word could name a label.
func isLabel(word string) bool {
	if len(word) == 0 {
		return false
	}
	for n, c := range word {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case n > 0 && c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value64 int64
		value64, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(value64)
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(addr)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseLine expands a single line into words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	re := regexp.MustCompile(`'\\?[^']'`)
	line = re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "t":
				str = "\t"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%d", str[0])
	})

	// Do $() evaluations
	re = regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.currentAddr()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	return
}

// currentAddr gets the address of the next generated word.
func (asm *Assembler) currentAddr() int {
	if len(asm.Lines) == 0 {
		return 0
	}

	last := asm.Lines[len(asm.Lines)-1]

	return last.Addr + len(last.Codes)
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Lines = asm.Lines[:0]
	asm.section = SECTION_HEADER
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line, _, _ = strings.Cut(text, ";")
		line = strings.TrimSpace(line)

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of labels.
	for n := range asm.Lines {
		op := &asm.Lines[n]

		for _, link := range op.Links {
			line = strings.Join(op.Words, " ")
			lineno = op.LineNo

			addr, ok := asm.Label[link.Label]
			if !ok {
				err = ErrLabelMissing(link.Label)
				return
			}
			code := &op.Codes[link.Index]
			if !link.Operand {
				*code = Word(addr)
				continue
			}
			if addr >= OPERAND_LIMIT {
				err = ErrOperandRange
				return
			}
			*code += Word(addr)
		}
	}

	prog = &Program{
		Lines: slices.Clone(asm.Lines),
	}

	return
}

// parseWords generates the words for a line.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	if len(words) == 0 {
		return
	}

	section, ok := sectionMap[words[0]]
	if ok {
		if len(words) != 1 {
			err = ErrOpcodeExtraArgs
			return
		}
		if section < asm.section {
			err = ErrSectionOrder
			return
		}
		asm.section = section
		return
	}

	if strings.HasPrefix(words[0], ".") && words[0] != ".word" {
		err = ErrSectionUnknown
		return
	}

	op := Line{
		LineNo:  lineno,
		Addr:    asm.currentAddr(),
		Section: asm.section,
		Words:   words,
	}

	if words[0] == ".word" {
		if len(words) == 1 {
			err = ErrTargetMissing
			return
		}
		for _, word := range words[1:] {
			if isLabel(word) {
				op.Links = append(op.Links, Link{Index: len(op.Codes), Label: word})
				op.Codes = append(op.Codes, 0)
				continue
			}
			var value int64
			value, err = asm.valueOf(word)
			if err != nil {
				return
			}
			if value == SENTINEL {
				err = ErrSentinelWord
				return
			}
			op.Codes = append(op.Codes, Word(value))
		}
	} else {
		var code Word
		var link string
		code, link, err = asm.parseInstruction(words)
		if err != nil {
			return
		}
		if len(link) != 0 {
			op.Links = append(op.Links, Link{Index: 0, Label: link, Operand: true})
		}
		op.Codes = append(op.Codes, code)
	}

	if asm.Verbose {
		log.Printf("%03d: %v => %v", op.Addr, words, op.Codes)
	}

	asm.Lines = append(asm.Lines, op)

	return
}

// parseInstruction encodes a mnemonic and its operand.
// If the operand is a label, the code is returned with a zero operand
// and the label to link.
func (asm *Assembler) parseInstruction(words []string) (code Word, link string, err error) {
	op, ok := opMap[words[0]]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	if asm.section != SECTION_TEXT {
		err = ErrCodeOutsideText
		return
	}

	args := words[1:]
	if len(args) > 1 {
		err = ErrOpcodeExtraArgs
		return
	}

	if len(args) == 0 {
		if op.Operands() {
			err = ErrTargetMissing
			return
		}
		code = Encode(op, 0)
		return
	}

	if isLabel(args[0]) {
		code = Encode(op, 0)
		link = args[0]
		return
	}

	operand, err := asm.valueOf(args[0])
	if err != nil {
		return
	}

	if operand < 0 || operand >= OPERAND_LIMIT {
		err = ErrOperandRange
		return
	}

	code = Encode(op, int(operand))
	return
}
