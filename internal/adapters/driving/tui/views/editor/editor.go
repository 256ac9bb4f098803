// Package editor provides the rubric grid editor view for the TUI.
package editor

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/rubric-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/rubric-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/rubric-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/rubric-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/rubric-cli/internal/core/domain"
	"github.com/custodia-labs/rubric-cli/internal/core/ports/driving"
)

// View is the rubric grid editor.
// It renders the session's view tree and moves a cursor over its inputs and
// buttons. Structural edits go straight to the session.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	status *status.Bar

	ctx     context.Context
	session driving.EditorSession
	form    driving.RubricForm

	// tree is the last view built from the session.
	tree domain.ViewNode

	// focusables are the input and button nodes of tree in display order.
	focusables []domain.ViewNode
	cursor     int

	input   textinput.Model
	editing bool

	spinner    spinner.Model
	submitting bool
	err        error

	width  int
	height int
}

// NewView creates a new editor view that submits through form.
func NewView(s *styles.Styles, km *keymap.KeyMap, form driving.RubricForm) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	ti := textinput.New()
	ti.CharLimit = 1000
	ti.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Title

	bar := status.NewBar(s, km)
	bar.SetBindings(km.EditorHelp())

	return &View{
		styles:  s,
		keymap:  km,
		status:  bar,
		ctx:     context.Background(),
		form:    form,
		input:   ti,
		spinner: sp,
	}
}

// SetSession replaces the session being edited and focuses its first field.
func (v *View) SetSession(ctx context.Context, session driving.EditorSession) {
	if ctx != nil {
		v.ctx = ctx
	}
	v.session = session
	v.editing = false
	v.submitting = false
	v.err = nil
	v.cursor = 0
	v.status.Clear()
	v.refresh("")
	for i, node := range v.focusables {
		if node.Kind == domain.NodeInput {
			v.cursor = i
			break
		}
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the editor view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case spinner.TickMsg:
		if !v.submitting {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case messages.RubricSubmitted:
		v.submitting = false
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.err = nil
		v.status.SetState(status.StateSaved, "")
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	if v.editing {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Submit reads the grid from another goroutine.
	if v.submitting || v.session == nil {
		return v, nil
	}
	if v.editing {
		return v.handleEditingKey(msg)
	}

	k := msg.String()
	node, hasFocus := v.Focused()

	switch {
	case keymap.Matches(k, v.keymap.Quit):
		return v, func() tea.Msg { return messages.Quit{} }
	case keymap.Matches(k, v.keymap.Help):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHelp} }
	case keymap.Matches(k, v.keymap.Up):
		v.moveCursor(-1)
	case keymap.Matches(k, v.keymap.Down):
		v.moveCursor(1)
	case keymap.Matches(k, v.keymap.Activate):
		if hasFocus {
			return v.activate(node)
		}
	case keymap.Matches(k, v.keymap.AddRow):
		return v.apply(domain.ActionAddRow, 0, 0)
	case keymap.Matches(k, v.keymap.AddCell):
		if hasFocus && node.Row != 0 {
			return v.apply(domain.ActionAddCell, node.Row, 0)
		}
	case keymap.Matches(k, v.keymap.Delete):
		switch {
		case !hasFocus:
		case node.Cell != 0:
			return v.apply(domain.ActionDeleteCell, node.Row, node.Cell)
		case node.Row != 0:
			return v.apply(domain.ActionDeleteRow, node.Row, 0)
		}
	case keymap.Matches(k, v.keymap.Submit):
		return v.startSubmit()
	}
	return v, nil
}

func (v *View) handleEditingKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "enter":
		v.commitEdit()
		return v, nil
	case "esc":
		v.stopEditing()
		return v, nil
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// activate starts editing an input or presses a button.
func (v *View) activate(node domain.ViewNode) (*View, tea.Cmd) {
	switch node.Kind {
	case domain.NodeInput:
		v.editing = true
		v.input.SetValue(node.Value)
		v.input.CursorEnd()
		v.input.Placeholder = node.Label
		v.status.SetState(status.StateEditing, node.Label)
		v.status.SetBindings(v.keymap.EditingHelp())
		return v, v.input.Focus()
	case domain.NodeButton:
		return v.apply(node.Action, node.Row, node.Cell)
	}
	return v, nil
}

func (v *View) commitEdit() {
	node, ok := v.Focused()
	if !ok {
		v.stopEditing()
		return
	}

	value := v.input.Value()
	var err error
	if node.Field.IsRowField() {
		err = v.session.SetRowField(node.Row, node.Field, value)
	} else {
		err = v.session.SetCellField(node.Cell, node.Field, value)
	}
	v.stopEditing()
	if err != nil {
		v.setError(err)
		return
	}
	v.refresh(node.ID)
}

func (v *View) stopEditing() {
	v.editing = false
	v.input.Blur()
	v.status.Clear()
	v.status.SetBindings(v.keymap.EditorHelp())
}

// apply runs a structural edit and moves focus to what it created.
func (v *View) apply(action domain.Action, row domain.RowID, cell domain.CellID) (*View, tea.Cmd) {
	var err error
	current, _ := v.Focused()

	switch action {
	case domain.ActionAddRow:
		row = v.session.AddRow()
	case domain.ActionAddCell:
		cell, err = v.session.AddCell(row)
	case domain.ActionDeleteRow:
		err = v.session.DeleteRow(row)
	case domain.ActionDeleteCell:
		err = v.session.DeleteCell(cell)
	default:
		return v, nil
	}
	if err != nil {
		v.setError(err)
		return v, nil
	}

	v.err = nil
	v.status.Clear()
	v.refresh(current.ID)

	switch action {
	case domain.ActionAddRow:
		v.focusWhere(func(n domain.ViewNode) bool { return n.Row == row && n.Field == domain.FieldRowName })
	case domain.ActionAddCell:
		v.focusWhere(func(n domain.ViewNode) bool { return n.Cell == cell && n.Field == domain.FieldCellScore })
	}

	changed := messages.GridChanged{Action: action, Row: row, Cell: cell}
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

// submit returns a command that writes the session through the form.
func (v *View) submit() tea.Cmd {
	ctx, form, session := v.ctx, v.form, v.session
	return func() tea.Msg {
		return messages.RubricSubmitted{Err: form.Submit(ctx, session)}
	}
}

// refresh rebuilds the view tree and keeps the cursor on keepID when it
// still exists.
func (v *View) refresh(keepID string) {
	if v.session == nil {
		v.tree = domain.ViewNode{}
		v.focusables = nil
		return
	}
	v.tree = v.session.View()
	v.focusables = v.focusables[:0]
	v.tree.Walk(func(n domain.ViewNode) bool {
		if n.Kind == domain.NodeInput || n.Kind == domain.NodeButton {
			v.focusables = append(v.focusables, n)
		}
		return true
	})

	if keepID != "" && v.focusWhere(func(n domain.ViewNode) bool { return n.ID == keepID }) {
		return
	}
	v.clampCursor()
}

func (v *View) focusWhere(match func(domain.ViewNode) bool) bool {
	for i, n := range v.focusables {
		if match(n) {
			v.cursor = i
			return true
		}
	}
	return false
}

func (v *View) moveCursor(delta int) {
	v.cursor += delta
	v.clampCursor()
}

func (v *View) clampCursor() {
	if v.cursor >= len(v.focusables) {
		v.cursor = len(v.focusables) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *View) setError(err error) {
	v.err = err
	v.status.SetState(status.StateError, err.Error())
}

// View renders the editor.
func (v *View) View() string {
	var b strings.Builder

	title := v.styles.Title.Render("Rubric Editor")
	if v.submitting {
		title = v.spinner.View() + " " + title
	}
	b.WriteString(title)
	b.WriteString("\n\n")

	if v.session == nil {
		b.WriteString(v.styles.Muted.Render("No rubric loaded."))
		return b.String()
	}

	rowNum := 0
	for _, child := range v.tree.Children {
		switch child.Kind {
		case domain.NodeHeader:
			b.WriteString(v.styles.Header.Render(fmt.Sprintf("%s (%d columns)", child.Label, child.Span)))
			b.WriteString("\n\n")
		case domain.NodeRow:
			rowNum++
			b.WriteString(v.renderRow(rowNum, child))
			b.WriteString("\n")
		case domain.NodeButton:
			b.WriteString(v.renderNode(child))
			b.WriteString("\n")
		}
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.status.View())
	return b.String()
}

func (v *View) renderRow(num int, row domain.ViewNode) string {
	var head, tail []string
	var cells []string

	for _, child := range row.Children {
		switch {
		case child.Kind == domain.NodeCell:
			parts := make([]string, 0, len(child.Children))
			for _, n := range child.Children {
				parts = append(parts, v.renderNode(n))
			}
			cells = append(cells, "    "+strings.Join(parts, "  "))
		case child.Action == domain.ActionAddCell:
			tail = append(tail, "    "+v.renderNode(child))
		default:
			head = append(head, v.renderNode(child))
		}
	}

	lines := []string{v.styles.Muted.Render(fmt.Sprintf("Row %d", num)) + "  " + strings.Join(head, "  ")}
	lines = append(lines, cells...)
	lines = append(lines, tail...)
	return strings.Join(lines, "\n")
}

func (v *View) renderNode(n domain.ViewNode) string {
	focused := false
	if node, ok := v.Focused(); ok && node.ID == n.ID {
		focused = true
	}

	if n.Kind == domain.NodeButton {
		text := "[" + n.Label + "]"
		if focused {
			return v.styles.Focused.Render(text)
		}
		return v.styles.Button.Render(text)
	}

	if focused && v.editing {
		return n.Label + ": " + v.input.View()
	}
	value := n.Value
	if value == "" {
		value = "(empty)"
	}
	text := n.Label + ": " + value
	switch {
	case focused:
		return v.styles.Focused.Render(text)
	case n.Value == "":
		return v.styles.Muted.Render(text)
	default:
		return v.styles.Normal.Render(text)
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.status.SetWidth(width)
	if width > 20 {
		v.input.Width = width / 2
	}
}

// Focused returns the node under the cursor.
func (v *View) Focused() (domain.ViewNode, bool) {
	if v.cursor < 0 || v.cursor >= len(v.focusables) {
		return domain.ViewNode{}, false
	}
	return v.focusables[v.cursor], true
}

// Session returns the session being edited.
func (v *View) Session() driving.EditorSession {
	return v.session
}

// Editing reports whether a field is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Submitting reports whether a submit is in flight.
func (v *View) Submitting() bool {
	return v.submitting
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
