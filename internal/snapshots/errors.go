package snapshots

import (
	"errors"
	"fmt"
)

// FormatError reports a malformed export document. Imports that fail with it
// leave the current composition untouched.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid lineup document: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid lineup document: %s", e.Reason)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// AsFormatError unwraps err into a *FormatError if possible.
func AsFormatError(err error) (*FormatError, bool) {
	var fe *FormatError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
