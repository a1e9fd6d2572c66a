package errors

import "fmt"

// ParseError wraps a specific error with context about where in the event
// log it occurred.
type ParseError struct {
	Line   int
	Record []string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %v (record: %v)", e.Line, e.Err, e.Record)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Define specific error types for better error handling
var (
	ErrInvalidFieldCount     = fmt.Errorf("invalid field count")
	ErrInvalidStartTime      = fmt.Errorf("invalid start time")
	ErrInvalidCompletionTime = fmt.Errorf("invalid completion time")
	ErrEmptyActivity         = fmt.Errorf("empty activity label")
	ErrEmptyRecord           = fmt.Errorf("empty record")
)
