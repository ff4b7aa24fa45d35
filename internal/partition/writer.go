// Package partition persists the good and bad partitions of a pass.
//
// Each partition is written through one Writer that is opened on the first
// line and held open until the pass ends, so an empty partition never
// creates a file. Writers never overwrite an existing file unless asked to.
package partition

import (
	"bufio"
	"errors"
	"fmt"
	"os"
)

// Writer appends lines to a single output file, creating it lazily.
// A Writer is not safe for concurrent use.
type Writer struct {
	path   string
	f      *os.File
	buf    *bufio.Writer
	lines  int
	closed bool
}

// NewWriter returns a writer for path. No file is touched until the first
// call to WriteLine.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Path returns the output path.
func (w *Writer) Path() string {
	return w.path
}

// Lines returns the number of lines written so far.
func (w *Writer) Lines() int {
	return w.lines
}

// Created reports whether the output file was created.
func (w *Writer) Created() bool {
	return w.f != nil
}

// WriteLine writes line followed by "\n", creating the file on first use.
// Creation fails with ErrOutputExists if the file is already present.
func (w *Writer) WriteLine(line string) error {
	if w.closed {
		return fmt.Errorf("%s: %w", w.path, ErrClosed)
	}
	if w.f == nil {
		if err := w.create(); err != nil {
			return err
		}
	}
	if _, err := w.buf.WriteString(line); err != nil {
		return fmt.Errorf("failed to write %s: %w", w.path, err)
	}
	if err := w.buf.WriteByte('\n'); err != nil {
		return fmt.Errorf("failed to write %s: %w", w.path, err)
	}
	w.lines++
	return nil
}

// create opens the output with O_EXCL so an existing file is never clobbered.
func (w *Writer) create() error {
	// #nosec G302 G304 -- output path derived from user-specified input file
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s: %w", w.path, ErrOutputExists)
		}
		return fmt.Errorf("cannot create output file: %w", err)
	}
	w.f = f
	w.buf = bufio.NewWriter(f)
	return nil
}

// Close flushes buffered lines and closes the file. Safe to call more than
// once and on a writer that never created its file.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if w.f == nil {
		return nil
	}

	flushErr := w.buf.Flush()
	closeErr := w.f.Close()
	if flushErr != nil {
		return fmt.Errorf("failed to flush %s: %w", w.path, flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close %s: %w", w.path, closeErr)
	}
	return nil
}

// Discard closes the writer and removes the file it created, if any.
func (w *Writer) Discard() error {
	created := w.f != nil
	if w.f != nil && !w.closed {
		_ = w.f.Close()
	}
	w.closed = true
	if !created {
		return nil
	}
	if err := os.Remove(w.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", w.path, err)
	}
	return nil
}
