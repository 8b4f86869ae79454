// Package cpu implements the processor and assembler for the μComp system.
//
// The processor consists of a 128 word memory, a control unit holding the
// program counter (PC) and instruction register (IR), an arithmetic unit with
// a single accumulator, an extended unit with two auxiliary registers used
// for bitwise operations, and an I/O unit attached to a console.
//
// Instructions are four decimal digits: the upper two select the opcode and
// the lower two the operand, which is almost always a memory address.
//
// The assembler provides a small assembly language for the μComp instruction
// set, supporting labels, equates, and compile-time expression evaluation.
package cpu
