package io

import (
	"bufio"
	"io"
	"strconv"
)

// Tape provides sequential I/O of decimal integers.
// It reads whitespace separated integers from an io.Reader, and writes
// one integer per line to an io.Writer.
type Tape struct {
	Input  io.Reader
	Output io.Writer
	Prompt io.Writer // If set, receives a "? " prompt before each read.

	scanner *bufio.Scanner
	source  io.Reader
}

var _ Console = (*Tape)(nil)

// Rewind is not possible on a tape. Buffered input is kept; a replaced
// Input is picked up on the next Receive.
func (tc *Tape) Rewind() {
}

// Receive reads the next integer from the input stream.
func (tc *Tape) Receive() (value int64, err error) {
	if tc.Input == nil {
		err = ErrNoInput
		return
	}

	if tc.scanner == nil || tc.source != tc.Input {
		tc.scanner = bufio.NewScanner(tc.Input)
		tc.scanner.Split(bufio.ScanWords)
		tc.source = tc.Input
	}

	if tc.Prompt != nil {
		io.WriteString(tc.Prompt, "? ")
	}

	if !tc.scanner.Scan() {
		err = tc.scanner.Err()
		if err == nil {
			err = io.EOF
		}
		return
	}

	word := tc.scanner.Text()
	value, err = strconv.ParseInt(word, 10, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// Send writes an integer and a newline to the output stream.
func (tc *Tape) Send(value int64) (err error) {
	if tc.Output == nil {
		err = ErrNoOutput
		return
	}

	line := strconv.AppendInt(nil, value, 10)
	line = append(line, '\n')
	_, err = tc.Output.Write(line)

	return
}
