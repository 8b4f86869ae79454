package cpu

import (
	"iter"
)

const (
	MEMORY_SIZE = 128  // Number of words of memory.
	SENTINEL    = -101 // Program source segment separator.
)

// Word is the content of a memory cell or a register.
type Word int64

// CheckBound returns true if addr is a valid memory address.
func CheckBound(addr int) bool {
	return addr >= 0 && addr < MEMORY_SIZE
}

// Memory is the fixed size, word addressed store shared by all units.
// All access is through the bound checked Read and Write.
type Memory struct {
	cell [MEMORY_SIZE]Word
}

// Len returns the number of words in memory.
func (mem *Memory) Len() int {
	return len(mem.cell)
}

// Reset zeros all of memory.
func (mem *Memory) Reset() {
	clear(mem.cell[:])
}

// Read returns the word at addr, or ErrOutOfBounds.
func (mem *Memory) Read(addr int) (value Word, err error) {
	if !CheckBound(addr) {
		err = ErrOutOfBounds
		return
	}

	value = mem.cell[addr]
	return
}

// Write sets the word at addr, or returns ErrOutOfBounds leaving memory untouched.
func (mem *Memory) Write(addr int, value Word) (err error) {
	if !CheckBound(addr) {
		err = ErrOutOfBounds
		return
	}

	mem.cell[addr] = value
	return
}

// Words returns an iterator over every address and its content.
func (mem *Memory) Words() iter.Seq2[int, Word] {
	return func(yield func(addr int, value Word) bool) {
		for addr, value := range mem.cell {
			if !yield(addr, value) {
				return
			}
		}
	}
}
