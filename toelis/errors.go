package toelis

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrCorruptHeader          = errors.New("corrupted toe_lis header")
	ErrInconsistentTrialCount = errors.New("units have different numbers of trials")
	ErrMalformedNumber        = errors.New("malformed number")
	ErrNegativeCount          = errors.New("negative count")
	ErrUnexpectedEOF          = errors.New("unexpected end of toe_lis data")
)

// CorruptionError reports a unit whose declared pointer does not match the
// line the reader actually reached.
type CorruptionError struct {
	Unit     int // index of the unit
	Declared int // pointer stored in the header
	Actual   int // position the reader was at
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("corrupted header: unit %d should start on %d, but data reached %d",
		e.Unit, e.Declared, e.Actual)
}

func (e *CorruptionError) Unwrap() error {
	return ErrCorruptHeader
}

// TrialCountError reports a unit passed to Write whose trial count differs
// from the first unit's.
type TrialCountError struct {
	Unit int // index of the offending unit
	Want int // trial count of unit 0
	Got  int // trial count of the offending unit
}

func (e *TrialCountError) Error() string {
	return fmt.Sprintf("unit %d has %d trials, expected %d: each unit must have the same number of repeats",
		e.Unit, e.Got, e.Want)
}

func (e *TrialCountError) Unwrap() error {
	return ErrInconsistentTrialCount
}

// SyntaxError reports a line that does not hold a usable number.
type SyntaxError struct {
	Line  int    // 1-based line number
	Field string // what the line was expected to hold
	Text  string // raw line contents
	Err   error  // ErrMalformedNumber or ErrNegativeCount, wrapping any cause
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d (%s): %q: %v", e.Line, e.Field, e.Text, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
