package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/rubric-cli/internal/core/domain"
	"github.com/custodia-labs/rubric-cli/internal/core/ports/driving"
)

// Ensure Validator implements the interface.
var _ driving.ValidationService = (*Validator)(nil)

// Validator checks rubrics and selections before they are saved.
type Validator struct {
	limits domain.ValidationSettings
}

// NewValidator creates a validator with the given limits.
// A negative score floor is raised to 0.
func NewValidator(limits domain.ValidationSettings) *Validator {
	if limits.MinScore < 0 {
		limits.MinScore = 0
	}
	return &Validator{limits: limits}
}

// ValidateRubric returns every problem with a rubric, ordered by row then cell.
func (v *Validator) ValidateRubric(rubric domain.Rubric) []domain.Issue {
	if len(rubric.Rows) == 0 {
		return []domain.Issue{{Message: "Please provide at least one row"}}
	}

	var issues []domain.Issue
	for i, row := range rubric.Rows {
		n := i + 1
		location := fmt.Sprintf("in row %d", n)

		issues = appendText(issues, n, "name", row.Name, v.limits.NameMaxLength, location)
		issues = appendText(issues, n, "description", row.Description, v.limits.DescriptionMaxLength, location)

		if len(row.Cells) == 0 {
			issues = append(issues, domain.Issue{Row: n, Message: fmt.Sprintf("Row %d must have at least one cell", n)})
			continue
		}

		for j, cell := range row.Cells {
			m := j + 1
			cellLocation := fmt.Sprintf("%s, cell %d", location, m)
			if cell.Score < float64(v.limits.MinScore) || cell.Score > float64(v.limits.MaxScore) {
				issues = append(issues, domain.Issue{
					Row:  n,
					Cell: m,
					Message: fmt.Sprintf("The score must be between %d and %d %s",
						v.limits.MinScore, v.limits.MaxScore, cellLocation),
				})
			}
			switch {
			case strings.TrimSpace(cell.Description) == "":
				issues = append(issues, domain.Issue{Row: n, Cell: m, Message: "Please enter a description " + cellLocation})
			case exceeds(cell.Description, v.limits.DescriptionMaxLength):
				issues = append(issues, domain.Issue{Row: n, Cell: m, Message: "Description is too long " + cellLocation})
			}
		}
	}
	return issues
}

// ValidateSelections returns every problem with a selection list for a rubric.
// The list must have one entry per row and every entry must be a score that
// row offers.
func (v *Validator) ValidateSelections(rubric domain.Rubric, selections []float64) []domain.Issue {
	if len(selections) != len(rubric.Rows) {
		return []domain.Issue{{
			Message: fmt.Sprintf("Expected %d scores, got %d", len(rubric.Rows), len(selections)),
		}}
	}

	var issues []domain.Issue
	for i, score := range selections {
		n := i + 1
		switch {
		case score == domain.NoSelection:
			issues = append(issues, domain.Issue{Row: n, Message: fmt.Sprintf("Please fill out row %d", n)})
		case score < 0 || !rubric.Rows[i].HasScore(score):
			issues = append(issues, domain.Issue{
				Row:     n,
				Message: fmt.Sprintf("Invalid score: %s for row %d", formatScore(score), n),
			})
		}
	}
	return issues
}

// Validate wraps ValidateRubric's issues in a *domain.ValidationError.
func (v *Validator) Validate(rubric domain.Rubric) error {
	if issues := v.ValidateRubric(rubric); len(issues) > 0 {
		return &domain.ValidationError{Issues: issues}
	}
	return nil
}

func appendText(issues []domain.Issue, row int, what, text string, limit int, location string) []domain.Issue {
	switch {
	case strings.TrimSpace(text) == "":
		return append(issues, domain.Issue{Row: row, Message: fmt.Sprintf("Please enter a %s %s", what, location)})
	case exceeds(text, limit):
		return append(issues, domain.Issue{Row: row, Message: fmt.Sprintf("%s is too long %s", what, location)})
	}
	return issues
}

func exceeds(text string, limit int) bool {
	return limit > 0 && utf8.RuneCountInString(text) > limit
}
