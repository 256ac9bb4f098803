// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/rubric-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewEditor is the rubric grid editor.
	ViewEditor ViewType = iota
	// ViewGrader is the grading sheet.
	ViewGrader
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewEditor:
		return "editor"
	case ViewGrader:
		return "grader"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// GridChanged is sent after a structural edit to the grid.
type GridChanged struct {
	Action domain.Action
	Row    domain.RowID
	Cell   domain.CellID
}

// RubricSubmitted signals the rubric field was written.
type RubricSubmitted struct {
	Err error
}

// SelectionChanged is sent after an option is checked or cleared.
type SelectionChanged struct {
	Row   int
	Total domain.GradeTotal
	Err   error
}

// GradeSubmitted signals the selection field was written.
type GradeSubmitted struct {
	Field string
	Err   error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
