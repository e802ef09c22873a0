package scoring

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrBadAnswer reports an answer value outside the question's domain.
	ErrBadAnswer = errors.New("unrecognized answer value")
	// ErrNoCatalog reports a scorer constructed without a role catalog.
	ErrNoCatalog = errors.New("scorer requires a role catalog")
)
