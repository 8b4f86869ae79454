package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArithmeticUnit_Eval(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		ax     Word
		value  Word
		op     CodeOp
		result Word
	}){
		{"load", 99, 5, OP_LOAD, 5},
		{"add", 5, 3, OP_ADD, 8},
		{"sub", 5, 8, OP_SUB, -3},
		{"mul", -4, 6, OP_MUL, -24},
		{"div", 17, 5, OP_DIV, 3},
		{"div_neg", -17, 5, OP_DIV, -3},
		{"mod", 17, 5, OP_MOD, 2},
		{"mod_neg", -17, 5, OP_MOD, -2},
	}

	for _, entry := range table {
		mem := &Memory{}
		alu := NewArithmeticUnit(mem)
		alu.ax = entry.ax
		mem.Write(10, entry.value)

		err := alu.Eval(entry.op, 10)
		assert.NoError(err, entry.name)
		assert.Equal(entry.result, alu.Accumulator(), entry.name)
	}
}

func TestArithmeticUnit_Store(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	alu := NewArithmeticUnit(mem)
	alu.ax = 42

	assert.NoError(alu.Eval(OP_STORE, 127))
	value, _ := mem.Read(127)
	assert.Equal(Word(42), value)
}

func TestArithmeticUnit_OutOfBounds(t *testing.T) {
	assert := assert.New(t)

	for _, op := range []CodeOp{OP_LOAD, OP_STORE, OP_ADD, OP_SUB, OP_MUL, OP_DIV, OP_MOD} {
		mem := &Memory{}
		alu := NewArithmeticUnit(mem)
		alu.ax = 7

		assert.Equal(ErrOutOfBounds, alu.Eval(op, MEMORY_SIZE), op.String())
		assert.Equal(ErrOutOfBounds, alu.Eval(op, -1), op.String())
		assert.Equal(Word(7), alu.Accumulator(), op.String())
		for _, value := range mem.Words() {
			assert.Equal(Word(0), value, op.String())
		}
	}
}

func TestArithmeticUnit_DivideByZero(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	alu := NewArithmeticUnit(mem)
	alu.ax = 9

	assert.Equal(ErrDivideByZero, alu.Eval(OP_DIV, 0))
	assert.Equal(ErrDivideByZero, alu.Eval(OP_MOD, 0))
	assert.Equal(Word(9), alu.Accumulator())
}

func TestArithmeticUnit_Invalid(t *testing.T) {
	assert := assert.New(t)

	alu := NewArithmeticUnit(&Memory{})
	for _, op := range []CodeOp{OP_INVALID, OP_NOP, OP_JMP, OP_AND, CodeOp(24)} {
		assert.Equal(ErrInvalidOpcode, alu.Eval(op, 0), op.String())
	}
}

func TestArithmeticUnit_Reset(t *testing.T) {
	assert := assert.New(t)

	alu := NewArithmeticUnit(&Memory{})
	alu.ax = 3
	alu.Reset()
	assert.Equal(Word(0), alu.Accumulator())
}
