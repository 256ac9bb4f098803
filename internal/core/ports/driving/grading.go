package driving

import (
	"context"

	"github.com/custodia-labs/rubric-cli/internal/core/domain"
)

// GradingSession is a rubric being graded.
type GradingSession interface {
	// ID returns the session identifier.
	ID() string

	// Sheet returns a snapshot of the grade sheet.
	Sheet() domain.GradeSheet

	// Select checks one option in a row, unchecking the others.
	Select(row, option int) error

	// Clear unchecks every option in a row.
	Clear(row int) error

	// ReadSelections returns one score per row, domain.NoSelection when unchecked.
	ReadSelections() []float64

	// Total sums the current selections against the authored row maxima.
	Total() (domain.GradeTotal, error)

	// SelectionField serializes the current selections.
	SelectionField() string

	// Restore checks the options named by a serialized selection field.
	Restore(field string) error
}

// GradeService builds grading sessions and aggregates totals.
type GradeService interface {
	// NewSheet lays a rubric out for grading.
	NewSheet(rubric domain.Rubric) domain.GradeSheet

	// NewSession starts grading a sheet.
	NewSession(sheet domain.GradeSheet) GradingSession

	// ParseSelections decodes a serialized selection field.
	ParseSelections(field string) ([]float64, error)

	// ComputeTotal sums selections; rowMax supplies each row's authored maximum.
	ComputeTotal(selections []float64, rowMax func(row int) (float64, error)) (domain.GradeTotal, error)

	// RowMax returns a lookup of the sheet's authored row maxima for ComputeTotal.
	RowMax(sheet domain.GradeSheet) func(row int) (float64, error)
}

// GradeForm ties a grading session to its serialized selection field.
type GradeForm interface {
	// Open starts a session for the rubric and restores the field's selections.
	Open(ctx context.Context, rubric domain.Rubric) (GradingSession, error)

	// Submit writes the session's selections to the field.
	Submit(ctx context.Context, session GradingSession) error
}
