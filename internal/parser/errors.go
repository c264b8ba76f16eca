package parser

import "fmt"

// ParseError represents a malformed instruction in a DEM file.
//
// Parse errors are hard failures: no transformation runs against a model
// that failed to parse. Every offending line is reported, so a single
// Parse call can surface multiple ParseErrors.
type ParseError struct {
	// Line is the 1-based line number in the input.
	Line int

	// Message describes what was wrong with the instruction.
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

func errorf(line int, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Message: fmt.Sprintf(format, args...)}
}
