package entity

import (
	"errors"
	"fmt"
)

// ErrDivisionUndefined marks a percentage change whose baseline is zero.
var ErrDivisionUndefined = errors.New("percentage change undefined: historical first appointments total is zero")

// ParseError is returned when an upload is not valid delimited text.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse activity data: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("parse activity data: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MissingColumnError names a column an operation needs but the table lacks.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column %q", e.Column)
}

// DateParseError reports a single row whose date cell could not be read.
type DateParseError struct {
	Row   int
	Value string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("row %d: unparsable date %q", e.Row, e.Value)
}
