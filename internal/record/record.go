// Package record splits delimited text lines into fields and partitions
// them by whether the field count matches an expected value.
//
// Lines are never re-joined or modified: a line lands in the good or bad
// partition exactly as it was read. Lines that are blank after trimming
// whitespace are dropped from both partitions.
package record

import (
	"fmt"
	"strings"
)

// Verdict is the outcome of classifying a single line.
type Verdict int

const (
	// Blank lines are empty after trimming and belong to no partition.
	Blank Verdict = iota
	// Conforming lines have exactly the expected number of fields.
	Conforming
	// NonConforming lines have any other number of fields.
	NonConforming
)

// String returns the string representation of the Verdict.
func (v Verdict) String() string {
	switch v {
	case Blank:
		return "Blank"
	case Conforming:
		return "Conforming"
	case NonConforming:
		return "NonConforming"
	default:
		return fmt.Sprintf("Verdict(%d)", int(v))
	}
}

// Partition holds the original lines of one pass, split by verdict.
// Both slices preserve input order.
type Partition struct {
	Good []string
	Bad  []string
}

// Split tokenizes line on the literal delimiter of mode.
// No quoting, escaping or trimming is applied: consecutive delimiters
// yield empty tokens and an empty line yields a single empty token.
func Split(line string, mode Mode) []string {
	return strings.Split(line, mode.Delimiter())
}

// Classify decides which partition line belongs to.
func Classify(line string, mode Mode, fieldCount int) Verdict {
	if strings.TrimSpace(line) == "" {
		return Blank
	}
	// Counting separators avoids allocating the token slice.
	if strings.Count(line, mode.Delimiter())+1 == fieldCount {
		return Conforming
	}
	return NonConforming
}

// Process classifies lines in order and returns the resulting partition.
// The returned slices are never nil.
func Process(lines []string, mode Mode, fieldCount int) Partition {
	p := Partition{
		Good: make([]string, 0, len(lines)),
		Bad:  []string{},
	}
	for _, line := range lines {
		switch Classify(line, mode, fieldCount) {
		case Conforming:
			p.Good = append(p.Good, line)
		case NonConforming:
			p.Bad = append(p.Bad, line)
		}
	}
	return p
}
