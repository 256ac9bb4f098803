package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	tests := []struct {
		name    string
		binding key.Binding
		key     string
	}{
		{"quit q", km.Quit, "q"},
		{"quit ctrl+c", km.Quit, "ctrl+c"},
		{"help", km.Help, "?"},
		{"back", km.Back, "esc"},
		{"up arrow", km.Up, "up"},
		{"down vim", km.Down, "j"},
		{"left", km.Left, "left"},
		{"right vim", km.Right, "l"},
		{"activate", km.Activate, "enter"},
		{"add row", km.AddRow, "a"},
		{"add cell", km.AddCell, "c"},
		{"delete", km.Delete, "d"},
		{"toggle space", km.Toggle, " "},
		{"clear", km.Clear, "backspace"},
		{"submit", km.Submit, "ctrl+s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, Matches(tt.key, tt.binding))
		})
	}
}

func TestMatches_NoMatch(t *testing.T) {
	km := DefaultKeyMap()

	assert.False(t, Matches("z", km.AddRow))
	assert.False(t, Matches("", km.Quit))
}

func TestKeyMap_HelpSets(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.ShortHelp(), 2)
	assert.Contains(t, km.EditorHelp(), km.AddCell)
	assert.Contains(t, km.GraderHelp(), km.Toggle)
	assert.Len(t, km.EditingHelp(), 2)

	var total int
	for _, group := range km.FullHelp() {
		total += len(group)
	}
	assert.Equal(t, 14, total)
}

func TestKeyMap_HelpText(t *testing.T) {
	km := DefaultKeyMap()

	assert.Equal(t, "ctrl+s", km.Submit.Help().Key)
	assert.Equal(t, "save", km.Submit.Help().Desc)
}
