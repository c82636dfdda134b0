package errors

import (
	"fmt"
)

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// AssertionError reports a broken usage contract: the wrong kind of node, a
// missing ancestor, a reference that resolved to nothing. Hint names the
// likely cause and how to fix it.
type AssertionError struct {
	Component string
	Message   string
	Hint      string
}

// NewAssertionError constructs an AssertionError for the given component.
func NewAssertionError(component, message, hint string) error {
	return &AssertionError{Component: component, Message: message, Hint: hint}
}

// Assert returns an AssertionError when cond is false and nil otherwise.
func Assert(cond bool, component, message, hint string) error {
	if cond {
		return nil
	}
	return NewAssertionError(component, message, hint)
}

func (e *AssertionError) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("assertion failed [%s]: %s", e.Component, e.Message)
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

// TargetNotFoundError is returned when no portal target with the requested
// name encloses the origin node.
type TargetNotFoundError struct {
	Name string
}

// NewTargetNotFoundError constructs a TargetNotFoundError.
func NewTargetNotFoundError(name string) error {
	return &TargetNotFoundError{Name: name}
}

func (e *TargetNotFoundError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf(
		"portal target %q not found: no ancestor contains [data-portal-name=%q]; render a target with that name above the portal, or check for a typo in the name",
		e.Name, e.Name,
	)
}
