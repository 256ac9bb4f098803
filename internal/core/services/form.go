package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/rubric-cli/internal/core/domain"
	"github.com/custodia-labs/rubric-cli/internal/core/ports/driven"
	"github.com/custodia-labs/rubric-cli/internal/core/ports/driving"
	"github.com/custodia-labs/rubric-cli/internal/logger"
)

// Ensure the forms implement their interfaces.
var (
	_ driving.RubricForm = (*RubricForm)(nil)
	_ driving.GradeForm  = (*GradeForm)(nil)
)

// RubricForm reads a rubric field once on open and writes it once on submit.
type RubricForm struct {
	editor driving.EditorService
	field  driven.FieldStore
}

// NewRubricForm creates a rubric form over the given field.
func NewRubricForm(editor driving.EditorService, field driven.FieldStore) *RubricForm {
	return &RubricForm{editor: editor, field: field}
}

// Open reads the field and loads it into a new session.
// A parse error is returned together with a usable default session.
func (f *RubricForm) Open(ctx context.Context) (driving.EditorSession, error) {
	if f.editor == nil || f.field == nil {
		return nil, domain.ErrNotImplemented
	}
	value, err := f.field.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read rubric field: %w", err)
	}
	return f.editor.Load(value)
}

// Submit extracts the session and writes the result to the field.
// Nothing is written when extraction fails.
func (f *RubricForm) Submit(ctx context.Context, session driving.EditorSession) error {
	if f.field == nil {
		return domain.ErrNotImplemented
	}
	serialized, err := session.Extract()
	if err != nil {
		return err
	}
	if err := f.field.Write(ctx, serialized); err != nil {
		return fmt.Errorf("write rubric field: %w", err)
	}
	logger.Debug("session %s submitted %d bytes", session.ID(), len(serialized))
	return nil
}

// GradeForm restores selections on open and writes them on submit.
type GradeForm struct {
	grades driving.GradeService
	field  driven.FieldStore
}

// NewGradeForm creates a grade form over the given selection field.
func NewGradeForm(grades driving.GradeService, field driven.FieldStore) *GradeForm {
	return &GradeForm{grades: grades, field: field}
}

// Open starts a session for the rubric and restores the field's selections.
func (f *GradeForm) Open(ctx context.Context, rubric domain.Rubric) (driving.GradingSession, error) {
	if f.grades == nil || f.field == nil {
		return nil, domain.ErrNotImplemented
	}
	session := f.grades.NewSession(f.grades.NewSheet(rubric))

	value, err := f.field.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read scores field: %w", err)
	}
	if err := session.Restore(value); err != nil {
		logger.Warn("scores field unreadable, starting with nothing selected: %v", err)
		return session, err
	}
	return session, nil
}

// Submit writes the session's selections to the field.
func (f *GradeForm) Submit(ctx context.Context, session driving.GradingSession) error {
	if f.field == nil {
		return domain.ErrNotImplemented
	}
	if err := f.field.Write(ctx, session.SelectionField()); err != nil {
		return fmt.Errorf("write scores field: %w", err)
	}
	return nil
}
