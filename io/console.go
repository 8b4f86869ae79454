// Package io provides the console devices for the μComp emulator.
// A console moves one integer at a time: Tape reads and writes decimal
// text streams, and Queue is an in-memory FIFO.
package io

// Console defines the interface for all consoles attached to the I/O unit.
type Console interface {
	// Rewind resets the console to its initial state.
	Rewind()
	// Receive reads a single integer from the console.
	Receive() (value int64, err error)
	// Send writes a single integer to the console.
	Send(value int64) error
}
