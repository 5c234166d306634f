package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrExhaustedSource is returned when the source ends before the header
	// or before the first data line.
	ErrExhaustedSource = errors.New("source exhausted before data")

	// ErrMalformedData matches any *MalformedDataError via errors.Is.
	ErrMalformedData = errors.New("malformed data line")

	// ErrSumOverflow is returned when the running total leaves the int64 range.
	ErrSumOverflow = errors.New("sum overflows int64")
)

// MalformedDataError reports a data line that is not a base-10 integer.
type MalformedDataError struct {
	Num  int
	Text string
	Err  error
}

func (e *MalformedDataError) Error() string {
	return fmt.Sprintf("line %d: %q is not an integer", e.Num, e.Text)
}

// Unwrap returns the underlying strconv error.
func (e *MalformedDataError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrMalformedData.
func (e *MalformedDataError) Is(target error) bool {
	return target == ErrMalformedData
}

// IsDataError reports whether err was caused by the content of the source
// rather than by reading it.
func IsDataError(err error) bool {
	return errors.Is(err, ErrExhaustedSource) ||
		errors.Is(err, ErrMalformedData) ||
		errors.Is(err, ErrSumOverflow)
}
