// Package textio reads delimited text files line by line.
//
// It normalizes the input that real-world exports produce: a leading UTF-8
// byte order mark is dropped and "\n", "\r\n" or a lone "\r" terminate a line.
// Lines have no maximum length.
package textio

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// utf8BOM is the byte order mark Windows tools prepend to UTF-8 files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// BOMSkippingReader wraps an io.Reader and removes a leading UTF-8 BOM.
type BOMSkippingReader struct {
	reader  io.Reader
	checked bool
	pending []byte
}

// NewBOMSkippingReader creates a reader that drops a leading UTF-8 BOM.
func NewBOMSkippingReader(r io.Reader) *BOMSkippingReader {
	return &BOMSkippingReader{reader: r}
}

// Read implements io.Reader.
func (b *BOMSkippingReader) Read(p []byte) (int, error) {
	if !b.checked {
		b.checked = true

		head := make([]byte, len(utf8BOM))
		n, err := io.ReadFull(b.reader, head)
		head = head[:n]
		if n == len(utf8BOM) && string(head) == string(utf8BOM) {
			head = head[:0]
		}
		b.pending = head

		// Short inputs end here; report EOF only once pending is drained.
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
			return 0, err
		}
	}

	if len(b.pending) > 0 {
		n := copy(p, b.pending)
		b.pending = b.pending[n:]
		return n, nil
	}

	return b.reader.Read(p)
}

// NewLineReader wraps r for line reading, skipping a leading BOM.
func NewLineReader(r io.Reader) *bufio.Reader {
	return bufio.NewReader(NewBOMSkippingReader(r))
}

// ReadLine returns the next line without its terminator.
// "\n", "\r\n" and a lone "\r" all end a line. A final line without a
// terminator is returned with a nil error; the following call returns io.EOF.
func ReadLine(r *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", err
		}

		switch b {
		case '\n':
			return sb.String(), nil
		case '\r':
			if next, err := r.Peek(1); err == nil && next[0] == '\n' {
				_, _ = r.ReadByte()
			}
			return sb.String(), nil
		}
		sb.WriteByte(b)
	}
}

// SkipHeader consumes the first line of r and returns it.
// An empty input has no header: it returns "" and a nil error, and the
// body that follows is empty.
func SkipHeader(r *bufio.Reader) (string, error) {
	header, err := ReadLine(r)
	if errors.Is(err, io.EOF) {
		return "", nil
	}
	return header, err
}
