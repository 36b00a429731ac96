package parser

import (
	"errors"
	"fmt"
)

// Parse failures. Every error returned by Parse wraps exactly one of these,
// so callers can test with errors.Is.
var (
	ErrMalformedInput      = errors.New("malformed input")
	ErrUnrecognizedFormat  = errors.New("unrecognized statement format")
	ErrColumnBoundary      = errors.New("column boundary failure")
	ErrUnparseableField    = errors.New("unparseable field")
	ErrIncompleteStatement = errors.New("incomplete statement")
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrMalformedInput, "malformed_input"},
	{ErrUnrecognizedFormat, "unrecognized_format"},
	{ErrColumnBoundary, "column_boundary_failure"},
	{ErrUnparseableField, "unparseable_field"},
	{ErrIncompleteStatement, "incomplete_statement"},
}

// Kind returns a short machine-readable name for a parse error, or "" if err
// is not one of the parser's failures.
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return ""
}

// lineError prefixes a failure with the 1-based line number it occurred on.
func lineError(lineNum int, err error) error {
	if lineNum <= 0 {
		return err
	}
	return fmt.Errorf("line %d: %w", lineNum, err)
}
