package driving

import (
	"context"

	"github.com/custodia-labs/rubric-cli/internal/core/domain"
)

// EditorSession is a live editable rubric grid.
// A session is owned by one caller and is not safe for concurrent use.
type EditorSession interface {
	// ID returns the session identifier.
	ID() string

	// AddRow appends a row holding one default cell.
	AddRow() domain.RowID

	// AddCell appends a cell to the end of the given row.
	AddCell(row domain.RowID) (domain.CellID, error)

	// DeleteRow removes a row and all of its cells.
	DeleteRow(row domain.RowID) error

	// DeleteCell removes a single cell.
	DeleteCell(cell domain.CellID) error

	// SetRowField replaces the text of a row's name or description.
	SetRowField(row domain.RowID, field domain.FieldKind, value string) error

	// SetCellField replaces the text of a cell's score or description.
	SetCellField(cell domain.CellID, field domain.FieldKind, value string) error

	// Rows returns a snapshot of the grid in display order.
	Rows() []domain.GridRow

	// HeaderSpan returns the shared score header span.
	HeaderSpan() int

	// Document reads the grid into a rubric.
	Document() (domain.Rubric, error)

	// Extract serializes the grid. It has no side effects.
	Extract() (string, error)

	// View builds the structured view of the grid.
	View() domain.ViewNode
}

// EditorService creates editing sessions.
type EditorService interface {
	// New returns a session holding one default row.
	New() EditorSession

	// Load expands a serialized rubric into a new session.
	// On a parse error the returned session still holds the default row.
	Load(serialized string) (EditorSession, error)

	// Parse decodes a serialized rubric without building a session.
	// Unlike Load, an empty field parses to a rubric with no rows.
	Parse(serialized string) (domain.Rubric, error)
}

// RubricForm ties an editing session to its serialized field.
type RubricForm interface {
	// Open reads the field once and loads it.
	Open(ctx context.Context) (EditorSession, error)

	// Submit extracts the session and writes the result to the field.
	Submit(ctx context.Context, session EditorSession) error
}
