package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/rubric-cli/internal/core/domain"
	"github.com/custodia-labs/rubric-cli/internal/core/ports/driving"
	"github.com/custodia-labs/rubric-cli/internal/logger"
)

// Ensure SyncService implements the interface.
var _ driving.EditorService = (*SyncService)(nil)

// Ensure EditorSession implements the interface.
var _ driving.EditorSession = (*EditorSession)(nil)

// SyncService keeps an editable rubric grid and its serialized document in step.
type SyncService struct {
	settings domain.EditorSettings
}

// NewSyncService creates a new synchronizer with the given editor settings.
// Invalid settings fall back to the defaults.
func NewSyncService(settings domain.EditorSettings) *SyncService {
	defaults := domain.DefaultAppSettings().Editor
	if !settings.InvalidScore.IsValid() {
		settings.InvalidScore = defaults.InvalidScore
	}
	if settings.HeaderBaseline < 1 {
		settings.HeaderBaseline = defaults.HeaderBaseline
	}
	return &SyncService{settings: settings}
}

// New returns a session holding one default row.
func (s *SyncService) New() driving.EditorSession {
	session := s.newSession()
	session.AddRow()
	return session
}

// Load expands a serialized rubric into a new session.
//
// A row is always added before anything is read, so an empty field still
// yields one blank row with one blank cell. Further rows and cells are
// appended one at a time until the grid matches the document.
func (s *SyncService) Load(serialized string) (driving.EditorSession, error) {
	session := s.newSession()
	first := session.AddRow()

	rubric, err := DecodeRubric(serialized)
	if err != nil {
		logger.Warn("rubric field unreadable, starting from a blank grid: %v", err)
		return session, err
	}

	for i, row := range rubric.Rows {
		id := first
		if i > 0 {
			id = session.AddRow()
		}
		session.populateRow(id, row)
	}

	logger.Debug("session %s loaded %d rows", session.id, len(rubric.Rows))
	return session, nil
}

// Parse decodes a serialized rubric without building a session.
func (s *SyncService) Parse(serialized string) (domain.Rubric, error) {
	return DecodeRubric(serialized)
}

func (s *SyncService) newSession() *EditorSession {
	return &EditorSession{
		id:         uuid.New().String(),
		policy:     s.settings.InvalidScore,
		headerSpan: s.settings.HeaderBaseline,
		nextRow:    1,
		nextCell:   1,
	}
}

type editorCell struct {
	id          domain.CellID
	score       string
	description string
}

type editorRow struct {
	id          domain.RowID
	name        string
	description string
	cells       []*editorCell
}

// EditorSession is the state of one editing session: the grid itself plus the
// counters and header span that used to live in page globals.
type EditorSession struct {
	id     string
	policy domain.InvalidScorePolicy
	rows   []*editorRow

	// nextRow and nextCell only ever grow.
	nextRow  domain.RowID
	nextCell domain.CellID

	// headerSpan is the widest row seen this session; it never shrinks.
	headerSpan int
}

// ID returns the session identifier.
func (e *EditorSession) ID() string {
	return e.id
}

// AddRow appends a row holding one default cell.
func (e *EditorSession) AddRow() domain.RowID {
	row := &editorRow{id: e.nextRow}
	e.nextRow++
	e.rows = append(e.rows, row)
	e.appendCell(row)
	return row.id
}

// AddCell appends a cell to the end of the given row.
func (e *EditorSession) AddCell(rowID domain.RowID) (domain.CellID, error) {
	row, _ := e.findRow(rowID)
	if row == nil {
		return 0, fmt.Errorf("row %d: %w", rowID, domain.ErrNotFound)
	}
	return e.appendCell(row), nil
}

func (e *EditorSession) appendCell(row *editorRow) domain.CellID {
	cell := &editorCell{id: e.nextCell}
	e.nextCell++
	row.cells = append(row.cells, cell)
	if n := len(row.cells); n > e.headerSpan {
		logger.Debug("session %s header span %d -> %d", e.id, e.headerSpan, n)
		e.headerSpan = n
	}
	return cell.id
}

// DeleteRow removes a row and all of its cells.
// Deleting the last row is allowed and leaves an empty grid.
func (e *EditorSession) DeleteRow(rowID domain.RowID) error {
	_, idx := e.findRow(rowID)
	if idx < 0 {
		return fmt.Errorf("row %d: %w", rowID, domain.ErrNotFound)
	}
	e.rows = append(e.rows[:idx], e.rows[idx+1:]...)
	return nil
}

// DeleteCell removes a single cell.
// Deleting a row's last cell is allowed and leaves the row with no cells.
func (e *EditorSession) DeleteCell(cellID domain.CellID) error {
	row, idx := e.findCell(cellID)
	if row == nil {
		return fmt.Errorf("cell %d: %w", cellID, domain.ErrNotFound)
	}
	row.cells = append(row.cells[:idx], row.cells[idx+1:]...)
	return nil
}

// SetRowField replaces the text of a row's name or description.
func (e *EditorSession) SetRowField(rowID domain.RowID, field domain.FieldKind, value string) error {
	row, _ := e.findRow(rowID)
	if row == nil {
		return fmt.Errorf("row %d: %w", rowID, domain.ErrNotFound)
	}
	switch field {
	case domain.FieldRowName:
		row.name = value
	case domain.FieldRowDescription:
		row.description = value
	default:
		return fmt.Errorf("row field %q: %w", field, domain.ErrInvalidInput)
	}
	return nil
}

// SetCellField replaces the text of a cell's score or description.
func (e *EditorSession) SetCellField(cellID domain.CellID, field domain.FieldKind, value string) error {
	row, idx := e.findCell(cellID)
	if row == nil {
		return fmt.Errorf("cell %d: %w", cellID, domain.ErrNotFound)
	}
	cell := row.cells[idx]
	switch field {
	case domain.FieldCellScore:
		cell.score = value
	case domain.FieldCellDescription:
		cell.description = value
	default:
		return fmt.Errorf("cell field %q: %w", field, domain.ErrInvalidInput)
	}
	return nil
}

// Rows returns a snapshot of the grid in display order.
func (e *EditorSession) Rows() []domain.GridRow {
	out := make([]domain.GridRow, len(e.rows))
	for i, row := range e.rows {
		cells := make([]domain.GridCell, len(row.cells))
		for j, c := range row.cells {
			cells[j] = domain.GridCell{ID: c.id, Score: c.score, Description: c.description}
		}
		out[i] = domain.GridRow{
			ID:          row.id,
			Name:        row.name,
			Description: row.description,
			Cells:       cells,
		}
	}
	return out
}

// HeaderSpan returns the shared score header span.
func (e *EditorSession) HeaderSpan() int {
	return e.headerSpan
}

// Document reads the grid into a rubric.
//
// Blank score text reads as 0. Any other text that is not a finite number is
// handled by the session's InvalidScorePolicy: rejected with a
// *domain.ValidationError naming every such cell, or read as 0.
func (e *EditorSession) Document() (domain.Rubric, error) {
	rubric := domain.Rubric{Rows: make([]domain.Row, 0, len(e.rows))}
	var issues []domain.Issue

	for i, row := range e.rows {
		out := domain.Row{
			Name:        row.name,
			Description: row.description,
			Cells:       make([]domain.Cell, 0, len(row.cells)),
		}
		for j, c := range row.cells {
			score, ok := parseScore(c.score)
			if !ok {
				if e.policy == domain.InvalidScoreReject {
					issues = append(issues, domain.Issue{
						Row:     i + 1,
						Cell:    j + 1,
						Message: fmt.Sprintf("Please enter a number for the score in row %d, cell %d", i+1, j+1),
					})
				}
				score = 0
			}
			out.Cells = append(out.Cells, domain.Cell{Score: score, Description: c.description})
		}
		rubric.Rows = append(rubric.Rows, out)
	}

	if len(issues) > 0 {
		return domain.Rubric{}, &domain.ValidationError{Issues: issues}
	}
	return rubric, nil
}

// Extract serializes the grid as a bare JSON array of rows.
// It reads the grid and nothing else, so it may be called any number of times.
func (e *EditorSession) Extract() (string, error) {
	rubric, err := e.Document()
	if err != nil {
		return "", err
	}
	return EncodeRubric(rubric)
}

// View builds the structured view of the grid.
func (e *EditorSession) View() domain.ViewNode {
	return BuildGridView(e.headerSpan, e.Rows())
}

// populateRow copies a document row into a grid row that already holds its
// default cell, adding or trimming cells until the counts match.
func (e *EditorSession) populateRow(id domain.RowID, src domain.Row) {
	row, _ := e.findRow(id)
	row.name = src.Name
	row.description = src.Description

	for len(row.cells) < len(src.Cells) {
		e.appendCell(row)
	}
	if len(row.cells) > len(src.Cells) {
		row.cells = row.cells[:len(src.Cells)]
	}

	for j, cell := range src.Cells {
		row.cells[j].score = formatScore(cell.Score)
		row.cells[j].description = cell.Description
	}
}

func (e *EditorSession) findRow(id domain.RowID) (*editorRow, int) {
	for i, row := range e.rows {
		if row.id == id {
			return row, i
		}
	}
	return nil, -1
}

func (e *EditorSession) findCell(id domain.CellID) (*editorRow, int) {
	for _, row := range e.rows {
		for j, c := range row.cells {
			if c.id == id {
				return row, j
			}
		}
	}
	return nil, -1
}

// parseScore reads score text. Blank text is a score of 0.
func parseScore(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
