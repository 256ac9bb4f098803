package domain

const unknownDescription = "Unknown"

// InvalidScorePolicy decides what extract does with non-numeric score text.
type InvalidScorePolicy string

// Available policies.
const (
	// InvalidScoreReject fails extraction with a ValidationError.
	InvalidScoreReject InvalidScorePolicy = "reject"

	// InvalidScoreZero coerces the score to 0.
	InvalidScoreZero InvalidScorePolicy = "zero"
)

// AllInvalidScorePolicies returns every policy in display order.
func AllInvalidScorePolicies() []InvalidScorePolicy {
	return []InvalidScorePolicy{InvalidScoreReject, InvalidScoreZero}
}

// IsValid returns true if the policy is recognised.
func (p InvalidScorePolicy) IsValid() bool {
	return p == InvalidScoreReject || p == InvalidScoreZero
}

// String returns the string representation.
func (p InvalidScorePolicy) String() string {
	return string(p)
}

// Description returns a human-readable description of the policy.
func (p InvalidScorePolicy) Description() string {
	switch p {
	case InvalidScoreReject:
		return "Reject (report the offending cells)"
	case InvalidScoreZero:
		return "Zero (treat as a score of 0)"
	default:
		return unknownDescription
	}
}

// EditorSettings holds rubric editor behaviour.
type EditorSettings struct {
	// InvalidScore is applied to score text that is not a number.
	InvalidScore InvalidScorePolicy

	// HeaderBaseline is the score header span a fresh session starts with.
	HeaderBaseline int
}

// GradingSettings holds grader behaviour.
type GradingSettings struct {
	ScoreMode ScoreMode
}

// ValidationSettings bounds what a saved rubric may contain.
type ValidationSettings struct {
	NameMaxLength        int
	DescriptionMaxLength int
	MinScore             int
	MaxScore             int
}

// AppSettings holds all application settings.
type AppSettings struct {
	Editor     EditorSettings
	Grading    GradingSettings
	Validation ValidationSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Editor: EditorSettings{
			InvalidScore:   InvalidScoreReject,
			HeaderBaseline: 1,
		},
		Grading: GradingSettings{
			ScoreMode: ScoreModeFloat,
		},
		Validation: ValidationSettings{
			NameMaxLength:        20,
			DescriptionMaxLength: 1000,
			MinScore:             0,
			MaxScore:             100,
		},
	}
}
