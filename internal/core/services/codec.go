package services

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/rubric-cli/internal/core/domain"
)

// maxEchoedInput bounds how much of a bad field value a ParseError carries.
const maxEchoedInput = 64

// isEmptyMarker reports whether a serialized field holds no rows.
// Pages have written both "[]" and "{}" for an empty rubric.
func isEmptyMarker(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "[]", "{}", "null":
		return true
	default:
		return false
	}
}

// DecodeRubric parses a serialized rubric field.
// Both the bare-array and the {"rows": [...]} shapes are accepted.
func DecodeRubric(serialized string) (domain.Rubric, error) {
	if isEmptyMarker(serialized) {
		return domain.Rubric{}, nil
	}
	var rubric domain.Rubric
	if err := json.Unmarshal([]byte(serialized), &rubric); err != nil {
		return domain.Rubric{}, &domain.ParseError{
			Field: "rubric",
			Input: truncate(serialized, maxEchoedInput),
			Err:   err,
		}
	}
	return rubric, nil
}

// EncodeRubric serializes a rubric as a bare JSON array of rows.
func EncodeRubric(rubric domain.Rubric) (string, error) {
	data, err := json.Marshal(rubric)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeSelections parses a selection field.
// It accepts a JSON array ("[4,-1]") or a comma-joined list ("4,-1").
func DecodeSelections(field string) ([]float64, error) {
	trimmed := strings.TrimSpace(field)
	if trimmed == "" || trimmed == "[]" {
		return nil, nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var values []float64
		if err := json.Unmarshal([]byte(trimmed), &values); err != nil {
			return nil, &domain.ParseError{Field: "scores", Input: truncate(field, maxEchoedInput), Err: err}
		}
		return values, nil
	}

	parts := strings.Split(trimmed, ",")
	values := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, &domain.ParseError{Field: "scores", Input: truncate(field, maxEchoedInput), Err: err}
		}
		values = append(values, v)
	}
	return values, nil
}

// EncodeSelections serializes selections as a JSON array.
func EncodeSelections(selections []float64) string {
	parts := make([]string, len(selections))
	for i, v := range selections {
		parts[i] = formatScore(v)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// formatScore renders a score with as few digits as round-trip needs.
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
