// Package errors defines the error kinds reported by go-mae.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Every conversion failure wraps exactly one of
// these, so callers can classify with errors.Is.
var (
	// ErrUnsupportedPropertyType reports a property name that carries no
	// recognized type prefix, or a record with no content at all.
	ErrUnsupportedPropertyType = errors.New("unsupported property type")

	// ErrTypeMismatch reports a value that cannot be stored under the
	// type its property name prefix demands.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInconsistentColumnLength reports columns of unequal length
	// within one indexed block.
	ErrInconsistentColumnLength = errors.New("inconsistent column length")
)

// ParseError reports a syntax problem in a MAE stream.
// It includes the position of the error.
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("mae: parsing error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// StructureError attaches the index of the failing structure to an
// underlying error, so a caller can tell which record of a multi-structure
// file was at fault.
type StructureError struct {
	Index int
	Err   error
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("mae: structure %d: %v", e.Index, e.Err)
}

func (e *StructureError) Unwrap() error { return e.Err }
