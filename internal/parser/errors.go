package parser

import (
	"errors"
	"fmt"
)

// ErrFraming is matched by every error returned from Grammar.Parse.
var ErrFraming = errors.New("malformed timestamp framing")

// FramingError reports a logical line whose leading timestamp could not be
// parsed. Pos is the byte offset in Line where parsing stopped.
type FramingError struct {
	Line   string
	Pos    int
	Reason string
	Err    error
}

func (e *FramingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("framing error at byte %d: %s: %v", e.Pos, e.Reason, e.Err)
	}
	return fmt.Sprintf("framing error at byte %d: %s", e.Pos, e.Reason)
}

// Is reports ErrFraming as a match.
func (e *FramingError) Is(target error) bool {
	return target == ErrFraming
}

func (e *FramingError) Unwrap() error {
	return e.Err
}
