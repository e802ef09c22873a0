package questions

import "errors"

// ErrUnknownQuestion reports a question id outside the assessment.
var ErrUnknownQuestion = errors.New("unknown question id")
