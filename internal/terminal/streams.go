// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package terminal encapsulates the standard I/O streams of the process so
// that commands and views can ask whether they are writing to a terminal
// and how wide it is.
package terminal

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// defaultColumns is the number of columns we assume when the output is not
// a terminal, or the terminal size cannot be determined.
const defaultColumns = 78

// Streams represents a collection of three streams that each may or may not
// be connected to a terminal.
type Streams struct {
	Stdout *OutputStream
	Stderr *OutputStream
	Stdin  *InputStream
}

// Init tries to initialize a terminal, if driftconfig is running in one, and
// returns an object describing what it was able to set up.
func Init() (*Streams, error) {
	return &Streams{
		Stdout: &OutputStream{
			File:       os.Stdout,
			isTerminal: isTerminal,
			getColumns: getColumns,
		},
		Stderr: &OutputStream{
			File:       os.Stderr,
			isTerminal: isTerminal,
			getColumns: getColumns,
		},
		Stdin: &InputStream{
			File:       os.Stdin,
			isTerminal: isTerminal,
		},
	}, nil
}

// Print is a helper for conveniently calling fmt.Fprint on the Stdout stream.
func (s *Streams) Print(a ...interface{}) (n int, err error) {
	return fmt.Fprint(s.Stdout.File, a...)
}

// Printf is a helper for conveniently calling fmt.Fprintf on the Stdout stream.
func (s *Streams) Printf(format string, a ...interface{}) (n int, err error) {
	return fmt.Fprintf(s.Stdout.File, format, a...)
}

// Println is a helper for conveniently calling fmt.Fprintln on the Stdout stream.
func (s *Streams) Println(a ...interface{}) (n int, err error) {
	return fmt.Fprintln(s.Stdout.File, a...)
}

// Eprint is a helper for conveniently calling fmt.Fprint on the Stderr stream.
func (s *Streams) Eprint(a ...interface{}) (n int, err error) {
	return fmt.Fprint(s.Stderr.File, a...)
}

// Eprintf is a helper for conveniently calling fmt.Fprintf on the Stderr stream.
func (s *Streams) Eprintf(format string, a ...interface{}) (n int, err error) {
	return fmt.Fprintf(s.Stderr.File, format, a...)
}

// Eprintln is a helper for conveniently calling fmt.Fprintln on the Stderr stream.
func (s *Streams) Eprintln(a ...interface{}) (n int, err error) {
	return fmt.Fprintln(s.Stderr.File, a...)
}

// OutputStream represents an output stream that might or might not be
// connected to a terminal.
type OutputStream struct {
	File       *os.File
	isTerminal func(*os.File) bool
	getColumns func(*os.File) int
}

// IsTerminal returns true if we expect that the stream is connected to a
// terminal which supports VT100-style formatting and cursor control sequences.
func (s *OutputStream) IsTerminal() bool {
	if s.isTerminal == nil {
		return false
	}
	return s.isTerminal(s.File)
}

// Columns returns a number of character cell columns that we expect will
// fill the width of the terminal that stdout is connected to, or a reasonable
// placeholder value of 78 if the output doesn't seem to be a terminal.
func (s *OutputStream) Columns() int {
	if s.getColumns == nil {
		return defaultColumns
	}
	return s.getColumns(s.File)
}

// InputStream represents an input stream that might or might not be a terminal.
type InputStream struct {
	File       *os.File
	isTerminal func(*os.File) bool
}

// IsTerminal returns true if we expect that the stream is connected to a
// terminal.
func (s *InputStream) IsTerminal() bool {
	if s.isTerminal == nil {
		return false
	}
	return s.isTerminal(s.File)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func getColumns(f *os.File) int {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultColumns
	}
	return width
}
