// Package errors defines typed error values for the patseek engine.
package errors

import (
	"errors"
	"fmt"
)

// IndexError represents a failure while building or opening index artifacts.
type IndexError struct {
	Path  string
	Op    string
	Cause error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %s failed for '%s': %v", e.Op, e.Path, e.Cause)
}

func (e *IndexError) Unwrap() error { return e.Cause }

// NewIndexError creates a new index error.
func NewIndexError(op, path string, cause error) *IndexError {
	return &IndexError{
		Op:    op,
		Path:  path,
		Cause: cause,
	}
}

// QueryError represents an invalid query rejected before any search runs.
type QueryError struct {
	Query  string
	Reason string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("invalid query '%s': %s", e.Query, e.Reason)
}

// NewQueryError creates a new query validation error.
func NewQueryError(query, reason string) *QueryError {
	return &QueryError{
		Query:  query,
		Reason: reason,
	}
}

// CorruptIndexError represents a short or impossible read from the postings
// file. Once raised the index is considered corrupted and the query aborts.
type CorruptIndexError struct {
	Offset int64
	Want   int
	Got    int
}

func (e *CorruptIndexError) Error() string {
	return fmt.Sprintf("incomplete postings read at offset %d: want %d bytes, got %d", e.Offset, e.Want, e.Got)
}

// NewCorruptIndexError creates a new corrupt index error.
func NewCorruptIndexError(offset int64, want, got int) *CorruptIndexError {
	return &CorruptIndexError{
		Offset: offset,
		Want:   want,
		Got:    got,
	}
}

// GetUserFriendlyMessage converts internal errors into a single descriptive
// line suitable for terminal output.
func GetUserFriendlyMessage(err error) string {
	var qe *QueryError
	if errors.As(err, &qe) {
		return fmt.Sprintf("잘못된 검색어입니다: %s", qe.Reason)
	}

	var ie *IndexError
	if errors.As(err, &ie) {
		return fmt.Sprintf("인덱스 오류 (%s): %s", ie.Op, ie.Path)
	}

	var ce *CorruptIndexError
	if errors.As(err, &ce) {
		return fmt.Sprintf("인덱스가 손상되었습니다 (offset %d)", ce.Offset)
	}

	return err.Error()
}
