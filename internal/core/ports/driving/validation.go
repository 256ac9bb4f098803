package driving

import "github.com/custodia-labs/rubric-cli/internal/core/domain"

// ValidationService checks rubrics and selections before they are saved.
type ValidationService interface {
	// ValidateRubric returns every problem with a rubric, ordered by row then cell.
	ValidateRubric(rubric domain.Rubric) []domain.Issue

	// ValidateSelections returns every problem with a selection list for a rubric.
	ValidateSelections(rubric domain.Rubric, selections []float64) []domain.Issue
}
