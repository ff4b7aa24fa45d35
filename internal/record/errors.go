package record

import "errors"

// ErrUnknownMode indicates a delimiter selector that is not comma or tab.
var ErrUnknownMode = errors.New("unknown delimiter mode")
