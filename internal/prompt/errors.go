package prompt

import "errors"

// The first three messages are shown to users verbatim, worded as the
// interactive tool has always reported them.
var (
	// ErrFileNotFound indicates the answered path is empty, missing or a directory.
	ErrFileNotFound = errors.New("File not found")

	// ErrInvalidFormat indicates a format answer other than C or T.
	ErrInvalidFormat = errors.New("Incorrect format selected.")

	// ErrInvalidNumber indicates a field count that is not a non-negative integer.
	ErrInvalidNumber = errors.New("Incorrect number.")

	// ErrNoInput indicates the input closed before an answer was given.
	ErrNoInput = errors.New("no input")
)
