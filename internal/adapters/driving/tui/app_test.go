package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rubric-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/rubric-cli/internal/core/domain"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(NewPorts(newTestRubricForm(`[{"name":"Clarity","description":"d","cells":[{"score":5,"description":"good"}]}]`), newTestGradeForm("")))
	require.NoError(t, err)
	return app
}

func TestNewApp_Success(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, messages.ViewEditor, app.CurrentView())
	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	assert.ErrorIs(t, err, ErrMissingForm)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app := newTestApp(t)

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")
	result := app.WithContext(ctx)

	assert.Equal(t, app, result)
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_Init(t *testing.T) {
	app := newTestApp(t)

	assert.NotNil(t, app.Init())
}

func TestApp_RunWithoutSession(t *testing.T) {
	app := newTestApp(t)

	assert.ErrorIs(t, app.Run(), ErrNoSession)
}

func TestApp_OpenEditor(t *testing.T) {
	app := newTestApp(t)
	session, err := app.ports.Rubric.Open(context.Background())
	require.NoError(t, err)

	app.OpenEditor(session)
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.True(t, app.Ready())
	assert.Equal(t, messages.ViewEditor, app.CurrentView())
	assert.Contains(t, app.View(), "Rubric Editor")
	assert.Contains(t, app.View(), "Clarity")
}

func TestApp_OpenGrader(t *testing.T) {
	app := newTestApp(t)
	rubric := domain.Rubric{Rows: []domain.Row{{Name: "Depth", Cells: []domain.Cell{{Score: 10}}}}}
	session, err := app.ports.Grade.Open(context.Background(), rubric)
	require.NoError(t, err)

	app.OpenGrader(session)
	app.SetDimensions(80, 24)

	assert.Equal(t, messages.ViewGrader, app.CurrentView())
	assert.Contains(t, app.View(), "Depth (max 10.0)")
	assert.Contains(t, app.View(), "Grade: 0.0/10.0")
}

func TestApp_ForwardsKeysToActiveView(t *testing.T) {
	app := newTestApp(t)
	session, err := app.ports.Rubric.Open(context.Background())
	require.NoError(t, err)
	app.OpenEditor(session)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})

	require.NotNil(t, cmd)
	assert.Len(t, session.Rows(), 2)
}

func TestApp_Help(t *testing.T) {
	app := newTestApp(t)
	session, err := app.ports.Rubric.Open(context.Background())
	require.NoError(t, err)
	app.OpenEditor(session)
	app.SetDimensions(80, 24)

	app.Update(messages.ViewChanged{View: messages.ViewHelp})
	assert.Equal(t, messages.ViewHelp, app.CurrentView())
	assert.Contains(t, app.View(), "add row")

	// Keys other than back are swallowed by help.
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	assert.Len(t, session.Rows(), 1)

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewEditor, app.CurrentView())
}

func TestApp_Quit(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.Msg
	}{
		{name: "ctrl+c", msg: tea.KeyMsg{Type: tea.KeyCtrlC}},
		{name: "quit message", msg: messages.Quit{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)

			_, cmd := app.Update(tt.msg)

			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
		})
	}
}

func TestApp_SubmittedErrorsAreKept(t *testing.T) {
	app := newTestApp(t)
	submitErr := errors.New("write failed")

	app.Update(messages.RubricSubmitted{Err: submitErr})
	assert.ErrorIs(t, app.Err(), submitErr)

	app.Update(messages.GradeSubmitted{Field: "[5]"})
	assert.NoError(t, app.Err())

	app.Update(messages.ErrorOccurred{Err: submitErr})
	assert.ErrorIs(t, app.Err(), submitErr)
}

func TestApp_SubmitWritesField(t *testing.T) {
	app := newTestApp(t)
	session, err := app.ports.Rubric.Open(context.Background())
	require.NoError(t, err)
	app.OpenEditor(session)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)

	require.NoError(t, app.ports.Rubric.Submit(context.Background(), session))
	app.Update(messages.RubricSubmitted{})
	assert.NoError(t, app.Err())
}
