package stablejson

import "errors"

var ErrNegativeIndent = errors.New("stablejson: indent cannot be negative")
