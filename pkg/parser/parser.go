package parser

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Walk reads src once, front to back, and reports every line to fn.
//
// The first line is the header and is discarded whatever it contains, so a
// '#' first line is a header and not a comment. Lines starting with '#' are
// comments until the first data line; every line after that must be an
// integer. Walk stops at the first error; errors returned by fn are passed
// through unchanged.
func Walk(src LineSource, fn func(Line) error) error {
	num := 0

	// Header
	text, err := src.Next()
	if err != nil {
		return exhausted(err, "reading header")
	}
	num++
	if err := fn(Line{Kind: KindHeader, Num: num, Text: text}); err != nil {
		return err
	}

	// Comment block
	for {
		text, err = src.Next()
		if err != nil {
			return exhausted(err, "looking for first data line")
		}
		num++
		if !isComment(text) {
			break
		}
		if err := fn(Line{Kind: KindComment, Num: num, Text: text}); err != nil {
			return err
		}
	}

	// Data
	for {
		v, err := parseValue(num, text)
		if err != nil {
			return err
		}
		if err := fn(Line{Kind: KindData, Num: num, Text: text, Value: v}); err != nil {
			return err
		}

		text, err = src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading line %d: %w", num+1, err)
		}
		num++
	}
}

// Sum totals the data lines of src. No partial total is returned on error.
func Sum(src LineSource) (*Result, error) {
	res := &Result{}
	err := Walk(src, func(l Line) error {
		switch l.Kind {
		case KindHeader:
			res.Header = l.Text
		case KindComment:
			res.CommentLines++
		case KindData:
			total, ok := add(res.Total, l.Value)
			if !ok {
				return fmt.Errorf("line %d: %w", l.Num, ErrSumOverflow)
			}
			res.Total = total
			res.DataLines++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// SumLines totals an in-memory list of lines.
func SumLines(lines []string) (int64, error) {
	res, err := Sum(NewSliceSource(lines))
	if err != nil {
		return 0, err
	}
	return res.Total, nil
}

func isComment(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), CommentMarker)
}

func parseValue(num int, text string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0, &MalformedDataError{Num: num, Text: text, Err: err}
	}
	return v, nil
}

// add returns a+b and false if the result does not fit in an int64.
func add(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}

// exhausted maps io.EOF to ErrExhaustedSource and wraps read failures.
func exhausted(err error, what string) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%s: %w", what, ErrExhaustedSource)
	}
	return fmt.Errorf("%s: %w", what, err)
}
