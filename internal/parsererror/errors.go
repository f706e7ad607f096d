// Package parsererror defines the typed errors raised while reading
// statements and extraction artifacts.
package parsererror

import (
	"errors"
	"fmt"
)

// ParseError represents an error while parsing a single field.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation failure
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

// InvalidFormatError represents an error where the input file does not conform
// to the expected format.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string
	Msg                  string
}

func (e *InvalidFormatError) Error() string {
	if e.ActualContentSnippet != "" {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s. Content snippet: '%s'",
			e.FilePath, e.Msg, e.ExpectedFormat, e.ActualContentSnippet)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// MissingInputError is raised when an upstream artifact the command depends
// on does not exist. Hint names the step that produces it.
type MissingInputError struct {
	FilePath string
	Hint     string
}

func (e *MissingInputError) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("input file '%s' does not exist", e.FilePath)
	}
	return fmt.Sprintf("input file '%s' does not exist: %s", e.FilePath, e.Hint)
}

// IsMissingInput reports whether err (or anything it wraps) is a MissingInputError.
func IsMissingInput(err error) bool {
	var target *MissingInputError
	return errors.As(err, &target)
}
