package dataset

import "fmt"

// LoadError reports that the dataset could not be retrieved: an unreachable
// source, a non-success HTTP status, a missing file or object.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load dataset %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ParseError reports that the retrieved body is not a JSON array of records.
type ParseError struct {
	Source string
	// Index is the offending array element, or -1 when the body as a whole is malformed.
	Index int
	Err   error
}

func (e *ParseError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("parse dataset %s: record %d: %v", e.Source, e.Index, e.Err)
	}
	return fmt.Sprintf("parse dataset %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
