package cpu

import (
	"bufio"
	"io"
	"log"
	"strconv"
	"unicode"
)

// Loader reads a program image into memory.
//
// The image is a stream of whitespace separated base-10 integers, split
// into header, data, and text segments by the SENTINEL value. Every
// other value is stored to consecutive memory cells from address 0; the
// sentinel itself is never stored. Text starting after the second sentinel
// is the program entry point. A third sentinel ends the image.
//
// Anything following a ';' on a line is a comment.
type Loader struct {
	Verbose bool // Set to enable verbose logging.
}

// Load the program image from input into memory, returning the entry point.
//
// Input is read a byte at a time, so lines may be of any length, and
// nothing past the third sentinel is parsed.
func (ld *Loader) Load(input io.Reader, memory *Memory) (entry int, err error) {
	reader := bufio.NewReader(input)

	var segment int
	var cursor int
	lineno := 1

	var token []byte
	comment := false

	// word stores a token, returning done at the end of the image.
	word := func() (done bool, err error) {
		if len(token) == 0 {
			return
		}
		text := string(token)
		token = token[:0]

		value, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			err = &ErrLoadSyntax{LineNo: lineno, Token: text}
			return
		}

		if value == SENTINEL {
			segment++
			switch {
			case segment == 2:
				entry = cursor
				if ld.Verbose {
					log.Printf("loader: entry %d", entry)
				}
			case segment > 2:
				if ld.Verbose {
					log.Printf("loader: end of image at line %d", lineno)
				}
				done = true
			}
			return
		}

		err = memory.Write(cursor, Word(value))
		if err != nil {
			err = ErrProgramTooLarge
			return
		}
		if ld.Verbose {
			log.Printf("loader: memory[%d]=%v", cursor, value)
		}
		cursor++

		return
	}

	for {
		c, rerr := reader.ReadByte()
		if rerr != nil {
			if rerr != io.EOF {
				err = rerr
				return
			}
			_, err = word()
			return
		}

		var done bool
		switch {
		case c == '\n':
			done, err = word()
			lineno++
			comment = false
		case comment:
		case c == ';':
			done, err = word()
			comment = true
		case unicode.IsSpace(rune(c)):
			done, err = word()
		default:
			token = append(token, c)
		}
		if done || err != nil {
			return
		}
	}
}
