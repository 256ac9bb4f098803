package services

import (
	"fmt"

	"github.com/custodia-labs/rubric-cli/internal/core/domain"
)

// View node IDs that do not depend on a row.
const (
	GridNodeID        = "rubric-grid"
	ScoreHeaderNodeID = "score-header"
	AddRowNodeID      = "add-row"
)

// RowNodeID returns the node ID of a row.
func RowNodeID(row domain.RowID) string {
	return fmt.Sprintf("row-%d", row)
}

// CellNodeID returns the node ID of a cell within its row.
func CellNodeID(row domain.RowID, cell domain.CellID) string {
	return fmt.Sprintf("row-%d-cell-%d", row, cell)
}

// BuildGridView builds the whole editable grid: the score header, every row,
// and the add-row button.
func BuildGridView(headerSpan int, rows []domain.GridRow) domain.ViewNode {
	children := make([]domain.ViewNode, 0, len(rows)+2)
	children = append(children, domain.ViewNode{
		Kind:  domain.NodeHeader,
		ID:    ScoreHeaderNodeID,
		Label: "Score",
		Span:  headerSpan,
	})
	for _, row := range rows {
		children = append(children, BuildRowView(row))
	}
	children = append(children, domain.ViewNode{
		Kind:   domain.NodeButton,
		ID:     AddRowNodeID,
		Label:  "Add Row",
		Action: domain.ActionAddRow,
	})

	return domain.ViewNode{
		Kind:     domain.NodeGrid,
		ID:       GridNodeID,
		Children: children,
	}
}

// BuildRowView builds one row: its delete button, name and description
// inputs, its cells, and an add-cell button bound to this row.
func BuildRowView(row domain.GridRow) domain.ViewNode {
	id := RowNodeID(row.ID)
	children := make([]domain.ViewNode, 0, len(row.Cells)+4)
	children = append(children,
		domain.ViewNode{Kind: domain.NodeButton, ID: id + "-delete", Label: "X", Action: domain.ActionDeleteRow, Row: row.ID},
		input(id+"-name", domain.FieldRowName, row.Name, row.ID, 0),
		input(id+"-description", domain.FieldRowDescription, row.Description, row.ID, 0),
	)
	for _, cell := range row.Cells {
		children = append(children, BuildCellView(row.ID, cell))
	}
	children = append(children, domain.ViewNode{
		Kind:   domain.NodeButton,
		ID:     id + "-add-cell",
		Label:  "Add Cell",
		Action: domain.ActionAddCell,
		Row:    row.ID,
	})

	return domain.ViewNode{Kind: domain.NodeRow, ID: id, Label: row.Name, Row: row.ID, Children: children}
}

// BuildCellView builds one cell of the given row.
func BuildCellView(row domain.RowID, cell domain.GridCell) domain.ViewNode {
	id := CellNodeID(row, cell.ID)
	return domain.ViewNode{
		Kind: domain.NodeCell,
		ID:   id,
		Row:  row,
		Cell: cell.ID,
		Children: []domain.ViewNode{
			{Kind: domain.NodeButton, ID: id + "-delete", Label: "X", Action: domain.ActionDeleteCell, Row: row, Cell: cell.ID},
			input(id+"-score", domain.FieldCellScore, cell.Score, row, cell.ID),
			input(id+"-description", domain.FieldCellDescription, cell.Description, row, cell.ID),
		},
	}
}

func input(id string, field domain.FieldKind, value string, row domain.RowID, cell domain.CellID) domain.ViewNode {
	return domain.ViewNode{
		Kind:  domain.NodeInput,
		ID:    id,
		Label: field.Label(),
		Value: value,
		Field: field,
		Row:   row,
		Cell:  cell,
	}
}
