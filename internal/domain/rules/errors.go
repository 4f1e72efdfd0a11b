package rules

import "errors"

// ErrUnknownReference reports an identifier that is not present in the
// registry. Goods references in production entries are fatal; resource and
// disaster references are recovered from by skipping the entry.
var ErrUnknownReference = errors.New("unknown reference")
