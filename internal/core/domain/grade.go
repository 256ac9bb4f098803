package domain

import "fmt"

// NoSelection marks a row with no checked option in a selection list.
// It shares its value with a score of -1, so cell scores must not be
// negative; the score floor setting cannot go below 0.
const NoSelection float64 = -1

// NoOption is the Checked value of a grade row with nothing selected.
const NoOption = -1

// GradeRow is one rubric row laid out for grading.
type GradeRow struct {
	Name        string
	Description string

	// MaxLabel is the authored maximum shown beside the row.
	// Totals parse it as written; it is never recomputed from Options.
	MaxLabel string

	Options []Cell

	// Checked is the index of the selected option, or NoOption.
	Checked int
}

// Selected returns the checked option's score, or NoSelection.
func (r GradeRow) Selected() float64 {
	if r.Checked < 0 || r.Checked >= len(r.Options) {
		return NoSelection
	}
	return r.Options[r.Checked].Score
}

// GradeSheet is a rubric prepared for grading.
type GradeSheet struct {
	Rows []GradeRow
}

// GradeTotal is the outcome of summing a selection list.
type GradeTotal struct {
	Achieved float64
	Possible float64
}

// String formats the total the way the grading page displays it.
func (t GradeTotal) String() string {
	return fmt.Sprintf("Grade: %.1f/%.1f", t.Achieved, t.Possible)
}

// ScoreMode controls how selected option values are read back.
type ScoreMode string

// Score modes.
const (
	// ScoreModeFloat keeps fractional scores.
	ScoreModeFloat ScoreMode = "float"

	// ScoreModeInteger truncates selected scores toward zero.
	ScoreModeInteger ScoreMode = "integer"
)

// AllScoreModes returns every score mode in display order.
func AllScoreModes() []ScoreMode {
	return []ScoreMode{ScoreModeFloat, ScoreModeInteger}
}

// IsValid returns true if the mode is recognised.
func (m ScoreMode) IsValid() bool {
	return m == ScoreModeFloat || m == ScoreModeInteger
}

// String returns the string representation.
func (m ScoreMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m ScoreMode) Description() string {
	switch m {
	case ScoreModeFloat:
		return "Float (keep fractional scores)"
	case ScoreModeInteger:
		return "Integer (truncate scores toward zero)"
	default:
		return unknownDescription
	}
}
