package partition

import (
	"errors"
	"fmt"
	"os"
)

// Set holds the writers for both partitions of one input file.
type Set struct {
	Good *Writer
	Bad  *Writer
}

// Open prepares writers for the outputs of input.
//
// Without overwrite, Open fails with ErrOutputExists if either output is
// already present. With overwrite, existing outputs are removed up front so
// that a stale file never survives for a partition that ends up empty.
func Open(input string, overwrite bool) (*Set, error) {
	goodPath, badPath := Paths(input)

	for _, p := range []string{goodPath, badPath} {
		_, err := os.Stat(p)
		switch {
		case errors.Is(err, os.ErrNotExist):
			continue
		case err != nil:
			return nil, fmt.Errorf("cannot access output file: %w", err)
		case !overwrite:
			return nil, fmt.Errorf("%s: %w", p, ErrOutputExists)
		}
		if err := os.Remove(p); err != nil {
			return nil, fmt.Errorf("cannot replace output file: %w", err)
		}
	}

	return &Set{
		Good: NewWriter(goodPath),
		Bad:  NewWriter(badPath),
	}, nil
}

// Close closes both writers and joins their errors.
func (s *Set) Close() error {
	return errors.Join(s.Good.Close(), s.Bad.Close())
}

// Discard removes whatever both writers created.
func (s *Set) Discard() error {
	return errors.Join(s.Good.Discard(), s.Bad.Discard())
}

// Created returns the paths of the files that were actually written.
func (s *Set) Created() []string {
	var paths []string
	for _, w := range []*Writer{s.Good, s.Bad} {
		if w.Created() {
			paths = append(paths, w.Path())
		}
	}
	return paths
}
