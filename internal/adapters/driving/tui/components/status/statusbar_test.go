package status

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rubric-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/rubric-cli/internal/adapters/driving/tui/styles"
)

func TestNewBar_NilDependencies(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, 80, bar.Width())
}

func TestBar_View_States(t *testing.T) {
	tests := []struct {
		name    string
		state   State
		message string
		want    string
	}{
		{"ready", StateReady, "", "Ready"},
		{"ready with message", StateReady, "Grade: 4.0/15.0", "Grade: 4.0/15.0"},
		{"editing", StateEditing, "Name", "Editing Name"},
		{"submitting", StateSubmitting, "", "Saving..."},
		{"saved", StateSaved, "rubric.json", "Saved rubric.json"},
		{"error", StateError, errors.New("disk full").Error(), "Error: disk full"},
		{"bare error", StateError, "", "Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())
			bar.SetWidth(120)
			bar.SetState(tt.state, tt.message)

			assert.Contains(t, bar.View(), tt.want)
		})
	}
}

func TestBar_Bindings(t *testing.T) {
	km := keymap.DefaultKeyMap()
	bar := NewBar(nil, km)
	bar.SetWidth(200)

	assert.Contains(t, bar.View(), "q: quit")

	bar.SetBindings(km.EditorHelp())
	view := bar.View()
	assert.Contains(t, view, "a: add row")
	assert.Contains(t, view, "ctrl+s: save")
}

func TestBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError, "boom")

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
}
