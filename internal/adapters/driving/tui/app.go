package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/rubric-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/rubric-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/rubric-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/rubric-cli/internal/adapters/driving/tui/views/editor"
	"github.com/custodia-labs/rubric-cli/internal/adapters/driving/tui/views/grader"
	"github.com/custodia-labs/rubric-cli/internal/core/ports/driving"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	editorView *editor.View
	graderView *grader.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// previousView is restored when help is closed.
	previousView messages.ViewType

	// hasSession is set once a session has been opened.
	hasSession bool

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		editorView:  editor.NewView(s, km, ports.Rubric),
		graderView:  grader.NewView(s, km, ports.Grade),
		currentView: messages.ViewEditor,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// OpenEditor shows the editor for the given session.
func (a *App) OpenEditor(session driving.EditorSession) *App {
	a.editorView.SetSession(a.ctx, session)
	a.currentView = messages.ViewEditor
	a.hasSession = true
	return a
}

// OpenGrader shows the grading sheet for the given session.
func (a *App) OpenGrader(session driving.GradingSession) *App {
	a.graderView.SetSession(a.ctx, session)
	a.currentView = messages.ViewGrader
	a.hasSession = true
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	title := "rubric - Editor"
	if a.currentView == messages.ViewGrader {
		title = "rubric - Grader"
	}
	return tea.SetWindowTitle(title)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			k := msg.String()
			if keymap.Matches(k, a.keymap.Back) || keymap.Matches(k, a.keymap.Help) {
				a.currentView = a.previousView
			} else if keymap.Matches(k, a.keymap.Quit) {
				return a, tea.Quit
			}
			return a, nil
		}

	case messages.ViewChanged:
		if msg.View == messages.ViewHelp && a.currentView != messages.ViewHelp {
			a.previousView = a.currentView
		}
		a.currentView = msg.View
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.RubricSubmitted:
		a.editorView, cmd = a.editorView.Update(msg)
		a.err = msg.Err
		return a, cmd

	case messages.GradeSubmitted:
		a.graderView, cmd = a.graderView.Update(msg)
		a.err = msg.Err
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewEditor:
		a.editorView, cmd = a.editorView.Update(msg)
	case messages.ViewGrader:
		a.graderView, cmd = a.graderView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewGrader:
		return a.graderView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.editorView.View()
	}
}

// viewHelp renders every keybinding grouped the way FullHelp groups them.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n")

	for _, group := range a.keymap.FullHelp() {
		b.WriteString("\n")
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-12s %s\n", h.Key, h.Desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("[esc] back"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	if !a.hasSession {
		return ErrNoSession
	}
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and its views.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.editorView.SetDimensions(width, height)
	a.graderView.SetDimensions(width, height)
}
