// Package grader provides the grading sheet view for the TUI.
package grader

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/rubric-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/rubric-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/rubric-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/rubric-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/rubric-cli/internal/core/domain"
	"github.com/custodia-labs/rubric-cli/internal/core/ports/driving"
)

// View is the grading sheet.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	status *status.Bar

	ctx     context.Context
	session driving.GradingSession
	form    driving.GradeForm

	// sheet is the last snapshot read from the session.
	sheet domain.GradeSheet

	// row and option locate the cursor.
	row    int
	option int

	total    domain.GradeTotal
	totalErr error

	spinner    spinner.Model
	submitting bool
	err        error

	width  int
	height int
}

// NewView creates a new grader view that submits through form.
func NewView(s *styles.Styles, km *keymap.KeyMap, form driving.GradeForm) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Title

	bar := status.NewBar(s, km)
	bar.SetBindings(km.GraderHelp())

	return &View{
		styles:  s,
		keymap:  km,
		status:  bar,
		ctx:     context.Background(),
		form:    form,
		spinner: sp,
	}
}

// SetSession replaces the session being graded.
func (v *View) SetSession(ctx context.Context, session driving.GradingSession) {
	if ctx != nil {
		v.ctx = ctx
	}
	v.session = session
	v.submitting = false
	v.err = nil
	v.row = 0
	v.status.Clear()
	v.refresh()
	v.option = v.checkedOrFirst(0)
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the grader view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case spinner.TickMsg:
		if !v.submitting {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case messages.GradeSubmitted:
		v.submitting = false
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.err = nil
		v.status.SetState(status.StateSaved, msg.Field)

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.submitting || v.session == nil {
		return v, nil
	}

	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Quit):
		return v, func() tea.Msg { return messages.Quit{} }
	case keymap.Matches(k, v.keymap.Help):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHelp} }
	case keymap.Matches(k, v.keymap.Toggle):
		return v.toggle()
	case keymap.Matches(k, v.keymap.Clear):
		return v.changed(v.session.Clear(v.row))
	case keymap.Matches(k, v.keymap.Up):
		v.moveRow(-1)
	case keymap.Matches(k, v.keymap.Down):
		v.moveRow(1)
	case keymap.Matches(k, v.keymap.Left):
		v.moveOption(-1)
	case keymap.Matches(k, v.keymap.Right):
		v.moveOption(1)
	case keymap.Matches(k, v.keymap.Submit):
		return v.startSubmit()
	}
	return v, nil
}

// toggle checks the option under the cursor, or clears the row when that
// option is already checked.
func (v *View) toggle() (*View, tea.Cmd) {
	if v.row >= len(v.sheet.Rows) || len(v.sheet.Rows[v.row].Options) == 0 {
		return v, nil
	}
	if v.sheet.Rows[v.row].Checked == v.option {
		return v.changed(v.session.Clear(v.row))
	}
	return v.changed(v.session.Select(v.row, v.option))
}

func (v *View) changed(err error) (*View, tea.Cmd) {
	if err != nil {
		v.setError(err)
		return v, nil
	}
	v.err = nil
	v.status.Clear()
	v.refresh()

	changed := messages.SelectionChanged{Row: v.row, Total: v.total, Err: v.totalErr}
	return v, func() tea.Msg { return changed }
}

func (v *View) startSubmit() (*View, tea.Cmd) {
	if v.form == nil {
		v.setError(domain.ErrNotImplemented)
		return v, nil
	}
	v.submitting = true
	v.status.SetState(status.StateSubmitting, "")
	return v, tea.Batch(v.spinner.Tick, v.submit())
}

// submit returns a command that writes the selection field through the form.
func (v *View) submit() tea.Cmd {
	ctx, form, session := v.ctx, v.form, v.session
	return func() tea.Msg {
		if err := form.Submit(ctx, session); err != nil {
			return messages.GradeSubmitted{Err: err}
		}
		return messages.GradeSubmitted{Field: session.SelectionField()}
	}
}

func (v *View) refresh() {
	if v.session == nil {
		v.sheet = domain.GradeSheet{}
		return
	}
	v.sheet = v.session.Sheet()
	v.total, v.totalErr = v.session.Total()
}

func (v *View) moveRow(delta int) {
	next := v.row + delta
	if next < 0 || next >= len(v.sheet.Rows) {
		return
	}
	v.row = next
	v.option = v.checkedOrFirst(next)
}

func (v *View) moveOption(delta int) {
	if v.row >= len(v.sheet.Rows) {
		return
	}
	next := v.option + delta
	if next < 0 || next >= len(v.sheet.Rows[v.row].Options) {
		return
	}
	v.option = next
}

func (v *View) checkedOrFirst(row int) int {
	if row < len(v.sheet.Rows) && v.sheet.Rows[row].Checked >= 0 {
		return v.sheet.Rows[row].Checked
	}
	return 0
}

func (v *View) setError(err error) {
	v.err = err
	v.status.SetState(status.StateError, err.Error())
}

// View renders the grading sheet.
func (v *View) View() string {
	var b strings.Builder

	title := v.styles.Title.Render("Grade")
	if v.submitting {
		title = v.spinner.View() + " " + title
	}
	b.WriteString(title)
	b.WriteString("\n\n")

	if v.session == nil {
		b.WriteString(v.styles.Muted.Render("No rubric loaded."))
		return b.String()
	}
	if len(v.sheet.Rows) == 0 {
		b.WriteString(v.styles.Muted.Render("This rubric has no rows."))
		b.WriteString("\n")
	}

	for i, row := range v.sheet.Rows {
		b.WriteString(v.renderRow(i, row))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.totalErr != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.totalErr.Error())))
	} else {
		b.WriteString(v.styles.Header.Render(v.total.String()))
	}
	b.WriteString("\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.status.View())
	return b.String()
}

func (v *View) renderRow(index int, row domain.GradeRow) string {
	var b strings.Builder

	heading := fmt.Sprintf("%s (max %s)", row.Name, row.MaxLabel)
	if index == v.row {
		heading = "> " + heading
		b.WriteString(v.styles.Title.Render(heading))
	} else {
		heading = "  " + heading
		b.WriteString(v.styles.Normal.Render(heading))
	}
	b.WriteString("\n")
	if row.Description != "" {
		b.WriteString("    ")
		b.WriteString(v.styles.Muted.Render(row.Description))
		b.WriteString("\n")
	}

	for j, opt := range row.Options {
		mark := "( )"
		if row.Checked == j {
			mark = "(x)"
		}
		line := fmt.Sprintf("%s %.1f  %s", mark, opt.Score, opt.Description)

		b.WriteString("    ")
		switch {
		case index == v.row && j == v.option:
			b.WriteString(v.styles.Focused.Render(line))
		case row.Checked == j:
			b.WriteString(v.styles.Checked.Render(line))
		default:
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.status.SetWidth(width)
}

// Cursor returns the focused row and option.
func (v *View) Cursor() (row, option int) {
	return v.row, v.option
}

// Session returns the session being graded.
func (v *View) Session() driving.GradingSession {
	return v.session
}

// Total returns the running total and any error reading it.
func (v *View) Total() (domain.GradeTotal, error) {
	return v.total, v.totalErr
}

// Submitting reports whether a submit is in flight.
func (v *View) Submitting() bool {
	return v.submitting
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
