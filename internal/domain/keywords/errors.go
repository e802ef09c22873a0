package keywords

import "errors"

// Sentinel kinds for dictionary errors.
var (
	ErrBadPattern     = errors.New("bad keyword pattern")
	ErrLoadDictionary = errors.New("load keyword dictionary failed")
	ErrUnknownSet     = errors.New("unknown dictionary set")
)
