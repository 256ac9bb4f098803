package domain

// RowID identifies a row within one editing session.
// IDs increase monotonically and are never reused, even after deletion.
type RowID int

// CellID identifies a cell within one editing session.
type CellID int

// GridCell is a snapshot of one editable cell.
// Score holds the raw text typed into the score field.
type GridCell struct {
	ID          CellID
	Score       string
	Description string
}

// GridRow is a snapshot of one editable row.
type GridRow struct {
	ID          RowID
	Name        string
	Description string
	Cells       []GridCell
}

// FieldKind names an editable text field in the grid.
type FieldKind string

// Editable fields.
const (
	FieldRowName         FieldKind = "name"
	FieldRowDescription  FieldKind = "description"
	FieldCellScore       FieldKind = "score"
	FieldCellDescription FieldKind = "cell_description"
)

// IsRowField reports whether the field belongs to a row header rather than a cell.
func (f FieldKind) IsRowField() bool {
	return f == FieldRowName || f == FieldRowDescription
}

// Label returns the caption shown next to the field.
func (f FieldKind) Label() string {
	switch f {
	case FieldRowName:
		return "Name"
	case FieldCellScore:
		return "Score"
	case FieldRowDescription, FieldCellDescription:
		return "Description"
	default:
		return string(f)
	}
}
