package aggregate

import (
	"errors"
	"fmt"
)

var (
	// ErrTooFewFields marks a line with fewer than MinFields fields.
	// Such lines are dropped without a diagnostic.
	ErrTooFewFields = errors.New("too few fields")

	// ErrBadNumber marks a line whose tested or positive field is not an integer.
	ErrBadNumber = errors.New("field is not an integer")
)

// ParseError describes one data line that was skipped because a numeric
// field could not be parsed.
type ParseError struct {
	Line  int    // 1-based line number, 0 when parsed outside Aggregate
	Text  string // the raw line
	Field string // "tested" or "positive"
	Err   error  // underlying strconv error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("aggregate: line %d: parse %s in %q: %v", e.Line, e.Field, e.Text, e.Err)
}

// Unwrap exposes both ErrBadNumber and the strconv cause to errors.Is/As.
func (e *ParseError) Unwrap() []error {
	return []error{ErrBadNumber, e.Err}
}
