package label

import (
	"errors"
	"fmt"
)

// ErrMalformed is the cause of every ParseError.
var ErrMalformed = errors.New("malformed label")

// ParseError describes a label that could not be parsed.
type ParseError struct {
	Label    string
	Sublabel string
	Reason   string

	// Err is the underlying conversion error, if any.
	Err error
}

func (e *ParseError) Error() string {
	if e.Sublabel != "" {
		return fmt.Sprintf("malformed label %q: sub-label %q: %s", e.Label, e.Sublabel, e.Reason)
	}
	return fmt.Sprintf("malformed label %q: %s", e.Label, e.Reason)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrMalformed
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
