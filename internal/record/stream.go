package record

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/alnah/go-recsplit/internal/textio"
)

// Sink receives the lines of one partition as they are classified.
type Sink interface {
	WriteLine(line string) error
}

// SliceSink collects lines in memory.
type SliceSink struct {
	Lines []string
}

// WriteLine appends line to the sink.
func (s *SliceSink) WriteLine(line string) error {
	s.Lines = append(s.Lines, line)
	return nil
}

// Compile-time interface verification.
var _ Sink = (*SliceSink)(nil)

// Stats summarizes one pass over the input body.
type Stats struct {
	Lines int // Lines read, blank ones included.
	Blank int
	Good  int
	Bad   int
}

// Stream reads r line by line, classifies each line and writes it to good
// or bad before reading the next one. The header must already have been
// consumed from r.
//
// ctx is checked between lines. When it is canceled, Stream returns the
// Stats of the lines handled so far together with an error wrapping
// ctx.Err(); every line already written to a sink stays valid.
func Stream(ctx context.Context, r io.Reader, mode Mode, fieldCount int, good, bad Sink) (Stats, error) {
	var stats Stats
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	for {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("stopped after %d lines: %w", stats.Lines, err)
		}

		line, err := textio.ReadLine(br)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return stats, nil
			}
			return stats, fmt.Errorf("read line %d: %w", stats.Lines+1, err)
		}
		stats.Lines++

		switch Classify(line, mode, fieldCount) {
		case Blank:
			stats.Blank++
		case Conforming:
			if err := good.WriteLine(line); err != nil {
				return stats, fmt.Errorf("write good line %d: %w", stats.Lines, err)
			}
			stats.Good++
		case NonConforming:
			if err := bad.WriteLine(line); err != nil {
				return stats, fmt.Errorf("write bad line %d: %w", stats.Lines, err)
			}
			stats.Bad++
		}
	}
}
