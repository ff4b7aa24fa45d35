package partition

import "errors"

var (
	// ErrOutputExists indicates an output file is already present and
	// overwriting was not requested.
	ErrOutputExists = errors.New("output file already exists")

	// ErrClosed indicates a write after Close or Discard.
	ErrClosed = errors.New("partition writer closed")
)
