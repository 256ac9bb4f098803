package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rubric-cli/internal/core/domain"
)

func newTestValidator() *Validator {
	return NewValidator(domain.DefaultAppSettings().Validation)
}

func messages(issues []domain.Issue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.Message
	}
	return out
}

func TestNewValidator_NegativeFloorIsRaised(t *testing.T) {
	limits := domain.DefaultAppSettings().Validation
	limits.MinScore = -5
	rubric := domain.Rubric{Rows: []domain.Row{{
		Name:        "Clarity",
		Description: "How clear it is",
		Cells:       []domain.Cell{{Score: -1, Description: "Missing"}},
	}}}

	issues := NewValidator(limits).ValidateRubric(rubric)

	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "between 0 and")
}

func TestValidator_ValidateRubric(t *testing.T) {
	tests := []struct {
		name   string
		rubric domain.Rubric
		want   []string
	}{
		{
			name:   "valid",
			rubric: domain.Rubric{Rows: []domain.Row{{Name: "A", Description: "d", Cells: []domain.Cell{{Score: 5, Description: "ok"}}}}},
			want:   []string{},
		},
		{
			name:   "no rows",
			rubric: domain.Rubric{},
			want:   []string{"Please provide at least one row"},
		},
		{
			name:   "blank row",
			rubric: domain.Rubric{Rows: []domain.Row{{Name: " "}}},
			want: []string{
				"Please enter a name in row 1",
				"Please enter a description in row 1",
				"Row 1 must have at least one cell",
			},
		},
		{
			name: "too long",
			rubric: domain.Rubric{Rows: []domain.Row{{
				Name:        strings.Repeat("n", 21),
				Description: strings.Repeat("d", 1001),
				Cells:       []domain.Cell{{Score: 1, Description: strings.Repeat("c", 1001)}},
			}}},
			want: []string{
				"name is too long in row 1",
				"description is too long in row 1",
				"Description is too long in row 1, cell 1",
			},
		},
		{
			name: "cell problems",
			rubric: domain.Rubric{Rows: []domain.Row{
				{Name: "A", Description: "d", Cells: []domain.Cell{{Score: 1, Description: "ok"}}},
				{Name: "B", Description: "d", Cells: []domain.Cell{
					{Score: 150, Description: ""},
					{Score: -1, Description: "neg"},
				}},
			}},
			want: []string{
				"The score must be between 0 and 100 in row 2, cell 1",
				"Please enter a description in row 2, cell 1",
				"The score must be between 0 and 100 in row 2, cell 2",
			},
		},
		{
			name: "name length counts characters",
			rubric: domain.Rubric{Rows: []domain.Row{{
				Name:        strings.Repeat("é", 20),
				Description: "d",
				Cells:       []domain.Cell{{Score: 1, Description: "ok"}},
			}}},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newTestValidator().ValidateRubric(tt.rubric)
			assert.Equal(t, tt.want, messages(got))
		})
	}
}

func TestValidator_IssuesCarryPositions(t *testing.T) {
	rubric := domain.Rubric{Rows: []domain.Row{
		{Name: "A", Description: "d", Cells: []domain.Cell{{Score: 1, Description: "ok"}, {Score: 1}}},
	}}

	issues := newTestValidator().ValidateRubric(rubric)

	require.Len(t, issues, 1)
	assert.Equal(t, 1, issues[0].Row)
	assert.Equal(t, 2, issues[0].Cell)
}

func TestValidator_ValidateSelections(t *testing.T) {
	rubric := gradeRubric()

	tests := []struct {
		name       string
		selections []float64
		want       []string
	}{
		{"valid", []float64{4, 10}, []string{}},
		{"wrong length", []float64{4}, []string{"Expected 2 scores, got 1"}},
		{"unselected row", []float64{4, -1}, []string{"Please fill out row 2"}},
		{"score not offered", []float64{3, 10}, []string{"Invalid score: 3 for row 1"}},
		{"negative score", []float64{-2.5, 3}, []string{"Invalid score: -2.5 for row 1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newTestValidator().ValidateSelections(rubric, tt.selections)
			assert.Equal(t, tt.want, messages(got))
		})
	}
}

func TestValidator_Validate(t *testing.T) {
	err := newTestValidator().Validate(domain.Rubric{})

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Len(t, ve.Issues, 1)

	valid := domain.Rubric{Rows: []domain.Row{{Name: "A", Description: "d", Cells: []domain.Cell{{Score: 1, Description: "ok"}}}}}
	assert.NoError(t, newTestValidator().Validate(valid))
}
