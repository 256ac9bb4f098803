// Package tui provides the interactive terminal editor and grader for rubrics.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/rubric-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Rubric writes an edited rubric back to its field.
	Rubric driving.RubricForm

	// Grade writes grading selections back to their field.
	Grade driving.GradeForm
}

// NewPorts creates a new Ports aggregate with the given forms.
func NewPorts(rubric driving.RubricForm, grade driving.GradeForm) *Ports {
	return &Ports{
		Rubric: rubric,
		Grade:  grade,
	}
}

// Validate ensures at least one form is set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Rubric == nil && p.Grade == nil {
		return ErrMissingForm
	}
	return nil
}
