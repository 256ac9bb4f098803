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

// Ensure GradeService implements the interface.
var _ driving.GradeService = (*GradeService)(nil)

// Ensure GradingSession implements the interface.
var _ driving.GradingSession = (*GradingSession)(nil)

// GradeService builds grading sessions and aggregates totals.
//
// Totals follow one policy: a row without a selection adds nothing to the
// achieved total but its full authored maximum to the possible total.
type GradeService struct {
	mode domain.ScoreMode
}

// NewGradeService creates a grade service. An invalid mode falls back to float.
func NewGradeService(settings domain.GradingSettings) *GradeService {
	mode := settings.ScoreMode
	if !mode.IsValid() {
		mode = domain.ScoreModeFloat
	}
	return &GradeService{mode: mode}
}

// NewSheet lays a rubric out for grading.
// Each row's max label is authored here from its highest cell score.
func (s *GradeService) NewSheet(rubric domain.Rubric) domain.GradeSheet {
	sheet := domain.GradeSheet{Rows: make([]domain.GradeRow, len(rubric.Rows))}
	for i, row := range rubric.Rows {
		options := make([]domain.Cell, len(row.Cells))
		copy(options, row.Cells)
		sheet.Rows[i] = domain.GradeRow{
			Name:        row.Name,
			Description: row.Description,
			MaxLabel:    strconv.FormatFloat(row.MaxScore(), 'f', 1, 64),
			Options:     options,
			Checked:     domain.NoOption,
		}
	}
	return sheet
}

// NewSession starts grading a sheet.
func (s *GradeService) NewSession(sheet domain.GradeSheet) driving.GradingSession {
	rows := make([]domain.GradeRow, len(sheet.Rows))
	copy(rows, sheet.Rows)
	return &GradingSession{
		id:    uuid.New().String(),
		svc:   s,
		sheet: domain.GradeSheet{Rows: rows},
	}
}

// ParseSelections decodes a serialized selection field.
func (s *GradeService) ParseSelections(field string) ([]float64, error) {
	return DecodeSelections(field)
}

// ComputeTotal sums selections against the authored row maxima.
// Sentinel entries add 0 to the achieved total; every row adds its maximum
// to the possible total.
func (s *GradeService) ComputeTotal(
	selections []float64,
	rowMax func(row int) (float64, error),
) (domain.GradeTotal, error) {
	var total domain.GradeTotal
	for i, score := range selections {
		if score != domain.NoSelection {
			total.Achieved += score
		}
		highest, err := rowMax(i)
		if err != nil {
			return domain.GradeTotal{}, err
		}
		total.Possible += highest
	}
	return total, nil
}

// RowMax returns a lookup of the sheet's authored row maxima.
func (s *GradeService) RowMax(sheet domain.GradeSheet) func(row int) (float64, error) {
	return func(row int) (float64, error) {
		if row < 0 || row >= len(sheet.Rows) {
			return 0, fmt.Errorf("row %d: %w", row+1, domain.ErrNotFound)
		}
		v, err := ParseMaxLabel(sheet.Rows[row].MaxLabel)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", row+1, err)
		}
		return v, nil
	}
}

// ParseMaxLabel reads an authored row maximum.
func ParseMaxLabel(label string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(label), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("max label %q: %w", label, domain.ErrInvalidInput)
	}
	return v, nil
}

// GradingSession is a rubric being graded.
type GradingSession struct {
	id    string
	svc   *GradeService
	sheet domain.GradeSheet
}

// ID returns the session identifier.
func (g *GradingSession) ID() string {
	return g.id
}

// Sheet returns a snapshot of the grade sheet.
func (g *GradingSession) Sheet() domain.GradeSheet {
	rows := make([]domain.GradeRow, len(g.sheet.Rows))
	copy(rows, g.sheet.Rows)
	return domain.GradeSheet{Rows: rows}
}

// Select checks one option in a row. Options are exclusive within a row.
func (g *GradingSession) Select(row, option int) error {
	if row < 0 || row >= len(g.sheet.Rows) {
		return fmt.Errorf("row %d: %w", row+1, domain.ErrNotFound)
	}
	if option < 0 || option >= len(g.sheet.Rows[row].Options) {
		return fmt.Errorf("row %d option %d: %w", row+1, option+1, domain.ErrNotFound)
	}
	g.sheet.Rows[row].Checked = option
	return nil
}

// Clear unchecks every option in a row.
func (g *GradingSession) Clear(row int) error {
	if row < 0 || row >= len(g.sheet.Rows) {
		return fmt.Errorf("row %d: %w", row+1, domain.ErrNotFound)
	}
	g.sheet.Rows[row].Checked = domain.NoOption
	return nil
}

// ReadSelections returns one entry per row, domain.NoSelection when unchecked.
// Position encodes row identity, so unchecked rows are never omitted.
func (g *GradingSession) ReadSelections() []float64 {
	selections := make([]float64, len(g.sheet.Rows))
	for i, row := range g.sheet.Rows {
		v := row.Selected()
		if v != domain.NoSelection && g.svc.mode == domain.ScoreModeInteger {
			v = math.Trunc(v)
		}
		selections[i] = v
	}
	return selections
}

// Total sums the current selections against each row's max label.
func (g *GradingSession) Total() (domain.GradeTotal, error) {
	return g.svc.ComputeTotal(g.ReadSelections(), g.svc.RowMax(g.sheet))
}

// SelectionField serializes the current selections as a JSON array.
func (g *GradingSession) SelectionField() string {
	return EncodeSelections(g.ReadSelections())
}

// Restore checks the options named by a serialized selection field.
//
// Every row is unchecked first. A sentinel entry, or a score no option in the
// row carries, leaves the row unchecked. Entries past the last row are ignored.
func (g *GradingSession) Restore(field string) error {
	selections, err := DecodeSelections(field)
	if err != nil {
		return err
	}

	for i := range g.sheet.Rows {
		g.sheet.Rows[i].Checked = domain.NoOption
	}
	for i, score := range selections {
		if i >= len(g.sheet.Rows) {
			logger.Warn("selection field has %d entries for %d rows", len(selections), len(g.sheet.Rows))
			break
		}
		if score == domain.NoSelection {
			continue
		}
		idx := g.optionFor(i, score)
		if idx == domain.NoOption {
			logger.Warn("row %d has no option scoring %s", i+1, formatScore(score))
			continue
		}
		g.sheet.Rows[i].Checked = idx
	}
	return nil
}

func (g *GradingSession) optionFor(row int, score float64) int {
	for j, opt := range g.sheet.Rows[row].Options {
		v := opt.Score
		if g.svc.mode == domain.ScoreModeInteger {
			v = math.Trunc(v)
		}
		if v == score {
			return j
		}
	}
	return domain.NoOption
}
