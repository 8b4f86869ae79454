package cpu

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/ucomp/io"
)

var sumProgram = []string{
	"; add two numbers",
	".header",
	"        .word 1",
	".data",
	"a:      .word 5",
	"b:      .word 3",
	"sum:    .word 0",
	".text",
	"start:  load a",
	"        add b",
	"        store sum",
	"        out sum   ; print it",
	"        halt 0",
}

func assemble(t *testing.T, program []string) (prog *Program) {
	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)
	return
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Lines))

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal("128", asm.Equate["MEMORY_SIZE"])
	assert.Equal("-101", asm.Equate["SENTINEL"])
}

func TestAssemblerSum(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, sumProgram)

	expected := []Line{
		{3, 0, SECTION_HEADER, []string{".word", "1"}, []Word{1}, nil},
		{5, 1, SECTION_DATA, []string{".word", "5"}, []Word{5}, nil},
		{6, 2, SECTION_DATA, []string{".word", "3"}, []Word{3}, nil},
		{7, 3, SECTION_DATA, []string{".word", "0"}, []Word{0}, nil},
		{9, 4, SECTION_TEXT, []string{"load", "a"}, []Word{2001}, []Link{{0, "a", true}}},
		{10, 5, SECTION_TEXT, []string{"add", "b"}, []Word{3002}, []Link{{0, "b", true}}},
		{11, 6, SECTION_TEXT, []string{"store", "sum"}, []Word{2203}, []Link{{0, "sum", true}}},
		{12, 7, SECTION_TEXT, []string{"out", "sum"}, []Word{1203}, []Link{{0, "sum", true}}},
		{13, 8, SECTION_TEXT, []string{"halt", "0"}, []Word{4400}, nil},
	}

	assert.Equal(expected, prog.Lines)
	assert.Equal(4, prog.Entry())
	assert.Equal([]Word{1, SENTINEL, 5, 3, 0, SENTINEL, 2001, 3002, 2203, 1203, 4400}, prog.Binary())
}

func TestAssemblerLabels(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	program := []string{
		".data",
		"ptr:  .word end",
		".text",
		"top:  jz end",
		"      jmp top",
		"end:  halt 1",
	}

	_, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)

	assert.Equal(map[string]int{"ptr": 0, "top": 1, "end": 3}, asm.Label)
	assert.Equal(Word(3), asm.Lines[0].Codes[0])
	assert.Equal(Encode(OP_JZ, 3), asm.Lines[1].Codes[0])
	assert.Equal(Encode(OP_JMP, 1), asm.Lines[2].Codes[0])
}

func TestAssemblerExpressions(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("BASE", "40")
	program := []string{
		".equ N 10",
		".data",
		"buf:  .word $(N*3+1) 'A' '\\n' 0x10 ~0",
		".text",
		"      load $(buf+1)",
		"      store $(BASE+LINENO)",
		"      flat",
		"      nop",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)

	assert.Equal([]Word{31, 65, 10, 16, -1}, prog.Segment(SECTION_DATA))
	assert.Equal([]Word{
		Encode(OP_LOAD, 1),
		Encode(OP_STORE, 46),
		Encode(OP_FLAT, 0),
		Encode(OP_NOP, 0),
	}, prog.Segment(SECTION_TEXT))
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	far := ".data\n.word" + strings.Repeat(" 0", OPERAND_LIMIT) + "\nfar: .word 0\n.text\nload far"

	table := [](struct {
		name    string
		program string
		err     error
	}){
		{"opcode", ".text\nfrob 1", ErrOpcodeInvalid},
		{"range", ".text\nload 100", ErrOperandRange},
		{"negative", ".text\nload -1", ErrOperandRange},
		{"missing", ".text\nload", ErrTargetMissing},
		{"extra", ".text\nload 1 2", ErrOpcodeExtraArgs},
		{"outside", "load 1", ErrCodeOutsideText},
		{"order", ".text\n.data", ErrSectionOrder},
		{"section", ".bss", ErrSectionUnknown},
		{"section_args", ".text 1", ErrOpcodeExtraArgs},
		{"label", ".text\njmp nowhere", ErrLabelMissing("nowhere")},
		{"label_dup", "a: .word 1\na: .word 2", ErrLabelDuplicate},
		{"equ_dup", ".equ X 1\n.equ X 2", ErrEquateDuplicate},
		{"equ_syntax", ".equ X", ErrEquateSyntax},
		{"sentinel", ".word -101", ErrSentinelWord},
		{"number", ".word 12x", ErrParseNumber("12x")},
		{"word", ".word", ErrTargetMissing},
		{"far", far, ErrOperandRange},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(entry.program))
		assert.ErrorIs(err, entry.err, entry.name)

		var syntax *ErrSyntax
		assert.True(errors.As(err, &syntax), entry.name)
	}
}

func TestAssemblerErrorLine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader(".text\nnop\n  store 123 ; oops\n"))

	var syntax *ErrSyntax
	assert.True(errors.As(err, &syntax))
	assert.Equal(3, syntax.LineNo)
	assert.Equal("store 123", syntax.Line)
}

func TestAssemblerExpressionError(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader(".word $(1/0)"))
	assert.Error(err)
}

func TestAssemblerRoundTrip(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, sumProgram)

	image := &bytes.Buffer{}
	_, err := prog.WriteTo(image)
	assert.NoError(err)

	mem := &Memory{}
	entry, err := (&Loader{}).Load(image, mem)
	assert.NoError(err)
	assert.Equal(prog.Entry(), entry)

	for addr, code := range prog.Codes(SECTION_TEXT) {
		value, _ := mem.Read(addr)
		assert.Equal(code, value, fmt.Sprintf("%03d", addr))
	}

	output := &bytes.Buffer{}
	alu := NewArithmeticUnit(mem)
	iou := NewIoUnit(mem)
	iou.Console = &io.Tape{Output: output}
	cu := NewControlUnit(mem, alu, NewExtendedUnit(mem), iou)
	assert.NoError(cu.SetPc(entry))

	for !cu.Stopped() {
		cu.Step()
	}

	term, _ := cu.Termination()
	assert.Equal(Termination{0, SIGNAL_EXPLICIT_HALT}, term)
	assert.Equal("8\n", output.String())
}
