package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested row or cell does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates a collaborator is not configured.
	ErrNotImplemented = errors.New("not implemented")

	// ErrParse indicates a serialized field could not be decoded.
	ErrParse = errors.New("parse error")

	// ErrValidation indicates a document or selection failed validation.
	ErrValidation = errors.New("validation failed")
)

// ParseError reports a serialized field that could not be decoded.
// The session that produced it holds the default grid.
type ParseError struct {
	// Field names what was being parsed ("rubric" or "scores").
	Field string

	// Input is the raw value, truncated for display.
	Input string

	// Err is the underlying decoder error.
	Err error
}

// Error implements error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Field, e.Err)
}

// Unwrap lets errors.Is match both ErrParse and the decoder error.
func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

// Issue is a single human-readable validation problem.
type Issue struct {
	// Row is the 1-based row number, or 0 when the issue is document-wide.
	Row int

	// Cell is the 1-based cell number, or 0 when the issue concerns the row.
	Cell int

	// Message is the explanation shown to the user.
	Message string
}

// String returns the message.
func (i Issue) String() string {
	return i.Message
}

// ValidationError collects every issue found in one validation pass.
type ValidationError struct {
	Issues []Issue
}

// Error implements error.
func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
