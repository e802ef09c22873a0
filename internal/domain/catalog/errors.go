package catalog

import "errors"

// Sentinel kinds for catalog errors. Format errors are fatal to the whole
// load; data errors skip the offending row and surface as warnings.
var (
	ErrMissingColumn = errors.New("required column missing")
	ErrEmptyCatalog  = errors.New("catalog has no data rows")
	ErrBlankRoleName = errors.New("blank role name")
	ErrDuplicateRole = errors.New("duplicate role name")
	ErrBadAgeToken   = errors.New("unrecognized age token")
)
