// Package prompt asks the user for the parameters of a split when they
// were not given on the command line.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-recsplit/internal/record"
)

// Questions, worded as users of the interactive tool know them.
const (
	QuestionFile   = "File Location:"
	QuestionFormat = "File format C = CSV (comma-separated values) , T = TSV (tab-separated values):"
	QuestionFields = "How many fields:"
)

// Prompter writes questions to an output and reads one answer line per question.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	// asked tracks whether a question was already printed, to separate
	// consecutive questions with a blank line.
	asked bool
}

// New creates a Prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// ask prints question and returns the answer line without its terminator.
func (p *Prompter) ask(question string) (string, error) {
	if p.asked {
		_, _ = fmt.Fprintln(p.out)
	}
	p.asked = true
	_, _ = fmt.Fprintln(p.out, question)

	line, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%s: %w", question, ErrNoInput)
		}
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// FilePath asks for the input file location.
// Quotes around paths with spaces are removed. The file must exist and
// must not be a directory.
func (p *Prompter) FilePath() (string, error) {
	answer, err := p.ask(QuestionFile)
	if err != nil {
		return "", err
	}
	return CleanPath(answer)
}

// CleanPath strips quotes and validates that path names a regular file.
func CleanPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if strings.HasPrefix(path, `"`) || strings.HasSuffix(path, `"`) {
		path = strings.ReplaceAll(path, `"`, "")
	}
	if path == "" {
		return "", ErrFileNotFound
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	return path, nil
}

// Format asks for the delimiter mode. Only C and T (any case) are accepted.
func (p *Prompter) Format() (record.Mode, error) {
	answer, err := p.ask(QuestionFormat)
	if err != nil {
		return record.Tab, err
	}

	switch strings.TrimSpace(answer) {
	case "C", "c", "T", "t":
		return record.ParseMode(answer), nil
	default:
		return record.Tab, ErrInvalidFormat
	}
}

// FieldCount asks for the expected number of fields per line.
func (p *Prompter) FieldCount() (int, error) {
	answer, err := p.ask(QuestionFields)
	if err != nil {
		return 0, err
	}
	return ParseFieldCount(answer)
}

// ParseFieldCount parses a base-10 field count, allowing surrounding
// whitespace and a leading plus sign. Negative values are rejected.
func ParseFieldCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, ErrInvalidNumber
	}
	return n, nil
}
