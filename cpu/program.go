package cpu

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strings"
)

// Section is a segment of the program image.
type Section int

//go:generate go tool stringer -linecomment -type=Section
const (
	SECTION_HEADER = Section(0) // .header
	SECTION_DATA   = Section(1) // .data
	SECTION_TEXT   = Section(2) // .text
)

// Link is a reference to a label that is resolved after assembly.
type Link struct {
	Index   int    // Index into Codes.
	Label   string // Label to resolve.
	Operand bool   // If set, the label is an instruction operand.
}

// Line is a line of assembled source with its location and generated words.
type Line struct {
	LineNo  int
	Addr    int
	Section Section
	Words   []string
	Codes   []Word
	Links   []Link
}

// Program is an assembled program.
type Program struct {
	Lines []Line
}

// Codes iterates over the address and content of every word in a section.
func (prog *Program) Codes(section Section) iter.Seq2[int, Word] {
	return func(yield func(addr int, code Word) bool) {
		for _, line := range prog.Lines {
			if line.Section != section {
				continue
			}
			for n, code := range line.Codes {
				if !yield(line.Addr+n, code) {
					return
				}
			}
		}
	}
}

// Segment returns the words of a section.
func (prog *Program) Segment(section Section) (words []Word) {
	for _, code := range prog.Codes(section) {
		words = append(words, code)
	}

	return
}

// Entry returns the address of the first word of text.
func (prog *Program) Entry() int {
	return len(prog.Segment(SECTION_HEADER)) + len(prog.Segment(SECTION_DATA))
}

// Binary returns the program image, with sentinels between the segments.
func (prog *Program) Binary() (bins []Word) {
	bins = append(bins, prog.Segment(SECTION_HEADER)...)
	bins = append(bins, SENTINEL)
	bins = append(bins, prog.Segment(SECTION_DATA)...)
	bins = append(bins, SENTINEL)
	bins = append(bins, prog.Segment(SECTION_TEXT)...)

	return
}

// Debug returns the source line that generated the word at addr, or nil.
func (prog *Program) Debug(addr int) *Line {
	for n, line := range prog.Lines {
		if addr >= line.Addr && addr < line.Addr+len(line.Codes) {
			return &prog.Lines[n]
		}
	}

	return nil
}

// WriteTo writes the program image in loader format, one word per line,
// annotated with the address and source of each word.
func (prog *Program) WriteTo(output io.Writer) (n int64, err error) {
	w := bufio.NewWriter(output)

	count := func(c int, err error) error {
		n += int64(c)
		return err
	}

	for _, section := range []Section{SECTION_HEADER, SECTION_DATA, SECTION_TEXT} {
		if section != SECTION_HEADER {
			err = count(fmt.Fprintf(w, "%d ; %v\n", SENTINEL, section))
			if err != nil {
				return
			}
		}
		for _, line := range prog.Lines {
			if line.Section != section {
				continue
			}
			for c, code := range line.Codes {
				comment := strings.Join(line.Words, " ")
				if section == SECTION_TEXT {
					comment = Decode(code).String()
				}
				err = count(fmt.Fprintf(w, "%04d ; %03d: %v\n", int64(code), line.Addr+c, comment))
				if err != nil {
					return
				}
			}
		}
	}

	err = w.Flush()
	return
}
