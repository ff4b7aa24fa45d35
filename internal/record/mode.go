package record

import (
	"fmt"
	"strings"
)

// Mode selects the character that splits a line into fields.
type Mode int

const (
	// Tab splits on '\t'. It is the zero value and the fallback mode.
	Tab Mode = iota
	// Comma splits on ','.
	Comma
)

// Compile-time interface compliance check.
var _ fmt.Stringer = Tab

// String returns the human name of the mode ("CSV" or "TSV").
func (m Mode) String() string {
	switch m {
	case Comma:
		return "CSV"
	case Tab:
		return "TSV"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Delimiter returns the literal separator for the mode.
func (m Mode) Delimiter() string {
	if m == Comma {
		return ","
	}
	return "\t"
}

// Code returns the single-character selector for the mode ("c" or "t").
// ParseMode(m.Code()) == m for every valid mode.
func (m Mode) Code() string {
	if m == Comma {
		return "c"
	}
	return "t"
}

// ParseMode maps a single-character selector to a Mode.
// "C" and "c" select Comma; every other value, including the empty string,
// selects Tab. Surrounding whitespace is ignored.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), "c") {
		return Comma
	}
	return Tab
}

// strictModes lists the selectors accepted by ParseModeStrict.
var strictModes = map[string]Mode{
	"c":     Comma,
	"csv":   Comma,
	"comma": Comma,
	"t":     Tab,
	"tsv":   Tab,
	"tab":   Tab,
}

// ParseModeStrict is like ParseMode but rejects unrecognized selectors
// with ErrUnknownMode instead of falling back to Tab.
// Matching is case-insensitive.
func ParseModeStrict(s string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return Tab, fmt.Errorf("delimiter mode cannot be empty: %w", ErrUnknownMode)
	}
	m, ok := strictModes[key]
	if !ok {
		return Tab, fmt.Errorf("unknown delimiter mode %q (use 'c' for CSV or 't' for TSV): %w", s, ErrUnknownMode)
	}
	return m, nil
}
