package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtendedUnit_Bitwise(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op     CodeOp
		result Word
	}){
		{OP_AND, 2},
		{OP_OR, 7},
		{OP_XOR, 5},
		{OP_NOT, ^Word(6)},
	}

	for _, entry := range table {
		mem := &Memory{}
		mem.Write(0, 6) // 0b110
		mem.Write(1, 3) // 0b011

		ealu := NewExtendedUnit(mem)
		assert.NoError(ealu.Eval(OP_SET_EAX, 0))
		assert.NoError(ealu.Eval(OP_SET_EBX, 1))
		assert.Equal(Word(6), ealu.Eax())
		assert.Equal(Word(3), ealu.Ebx())

		assert.NoError(ealu.Eval(entry.op, 2), entry.op.String())
		value, _ := mem.Read(2)
		assert.Equal(entry.result, value, entry.op.String())
	}
}

func TestExtendedUnit_Flatten(t *testing.T) {
	assert := assert.New(t)

	ealu := NewExtendedUnit(&Memory{})
	ealu.eax = 6
	ealu.ebx = -3

	assert.NoError(ealu.Eval(OP_FLAT, 99))
	assert.Equal(Word(0), ealu.Eax())
	assert.Equal(Word(1), ealu.Ebx())
}

func TestExtendedUnit_OutOfBounds(t *testing.T) {
	assert := assert.New(t)

	for _, op := range []CodeOp{OP_SET_EAX, OP_SET_EBX, OP_AND, OP_OR, OP_XOR, OP_NOT} {
		mem := &Memory{}
		ealu := NewExtendedUnit(mem)
		ealu.eax = 6
		ealu.ebx = 3

		assert.Equal(ErrOutOfBounds, ealu.Eval(op, MEMORY_SIZE), op.String())
		assert.Equal(Word(6), ealu.Eax(), op.String())
		assert.Equal(Word(3), ealu.Ebx(), op.String())
		for _, value := range mem.Words() {
			assert.Equal(Word(0), value, op.String())
		}
	}
}

func TestExtendedUnit_Invalid(t *testing.T) {
	assert := assert.New(t)

	ealu := NewExtendedUnit(&Memory{})
	for _, op := range []CodeOp{OP_INVALID, OP_LOAD, OP_HALT, CodeOp(56)} {
		assert.Equal(ErrInvalidOpcode, ealu.Eval(op, 0), op.String())
	}

	ealu.eax = 1
	ealu.ebx = 1
	ealu.Reset()
	assert.Equal(Word(0), ealu.Eax())
	assert.Equal(Word(0), ealu.Ebx())
}
