package cli

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rubric-cli/internal/core/domain"
)

// Test helper functions in settings.go

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{
			name:       "Empty input returns default",
			input:      "",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Valid choice within range",
			input:      "3",
			maxVal:     5,
			defaultVal: 1,
			expected:   3,
		},
		{
			name:       "Choice below minimum returns default",
			input:      "0",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Choice above maximum returns default",
			input:      "6",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Invalid input returns default",
			input:      "abc",
			maxVal:     5,
			defaultVal: 2,
			expected:   2,
		},
		{
			name:       "Negative number returns default",
			input:      "-1",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Whitespace returns default",
			input:      "   ",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Maximum value is valid",
			input:      "5",
			maxVal:     5,
			defaultVal: 1,
			expected:   5,
		},
		{
			name:       "Minimum value is valid",
			input:      "1",
			maxVal:     5,
			defaultVal: 3,
			expected:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseChoice(tt.input, tt.maxVal, tt.defaultVal)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestReadLine(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("  2  \nlast"))

	assert.Equal(t, "2", readLine(reader))
	assert.Equal(t, "last", readLine(reader))
	assert.Equal(t, "", readLine(reader))
}

func TestSettingsShowCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	for _, args := range [][]string{{"settings"}, {"settings", "show"}} {
		out, _, err := executeCommand(t, "", args...)

		require.NoError(t, err)
		assert.Contains(t, out, "Current Settings")
		assert.Contains(t, out, "Reject (report the offending cells)")
		assert.Contains(t, out, "Header baseline: 1")
		assert.Contains(t, out, "Float (keep fractional scores)")
		assert.Contains(t, out, "Score range: 0 to 100")
		assert.Contains(t, out, "editor.invalid_score")
		assert.Contains(t, out, "rubric.max_score")
	}
}

func TestSettingsSetCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, _, err := executeCommand(t, "", "settings", "set", "rubric.max_score", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Set rubric.max_score = 10")

	settings, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, 10, settings.Validation.MaxScore)
}

func TestSettingsSetCmd_Invalid(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown key", key: "editor.colour", value: "red"},
		{name: "bad policy", key: "editor.invalid_score", value: "ignore"},
		{name: "bad integer", key: "rubric.max_score", value: "ten"},
		{name: "baseline below one", key: "editor.header_baseline", value: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(t, "", "settings", "set", tt.key, tt.value)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSettingsWizardCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, _, err := executeCommand(t, "2\n2\n3\n", "settings", "wizard")

	require.NoError(t, err)
	assert.Contains(t, out, "Configuration Complete!")

	settings, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.InvalidScoreZero, settings.Editor.InvalidScore)
	assert.Equal(t, domain.ScoreModeInteger, settings.Grading.ScoreMode)
	assert.Equal(t, 3, settings.Editor.HeaderBaseline)
}

func TestSettingsWizardCmd_Defaults(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, _, err := executeCommand(t, "\n\n\n", "settings", "wizard")

	require.NoError(t, err)
	settings, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsCmd_NotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	settingsService = nil

	for _, args := range [][]string{{"settings", "show"}, {"settings", "set", "a", "b"}, {"settings", "wizard"}} {
		_, _, err := executeCommand(t, "", args...)
		assert.EqualError(t, err, "settings service not configured", args)
	}
}
