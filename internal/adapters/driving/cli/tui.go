package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/rubric-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/rubric-cli/internal/core/domain"
	"github.com/custodia-labs/rubric-cli/internal/logger"
)

// errNotTerminal is returned when an interactive command runs without a TTY.
var errNotTerminal = errors.New("an interactive terminal is required")

// isTerminal reports whether stdin is a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// runApp runs a TUI app until it quits.
var runApp = func(app *tui.App) error {
	return app.Run()
}

var editCmd = &cobra.Command{
	Use:   "edit FILE",
	Short: "Edit a rubric in the terminal UI",
	Long: `Open a rubric in the interactive grid editor.

The file is read once when the editor opens. Saving writes the canonical
JSON back to the same file. A missing file starts a new one-row rubric.

Controls:
  ↑/k, ↓/j - Move between fields and buttons
  Enter    - Edit field / press button
  a        - Add row
  c        - Add cell to the current row
  d        - Delete the current cell or row
  ctrl+s   - Save
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var gradeOpenCmd = &cobra.Command{
	Use:   "open",
	Short: "Grade interactively in the terminal UI",
	Long: `Open a rubric as a grading sheet.

Selections are restored from the scores file and written back to it on save.
Without --scores-file they live next to the rubric as NAME.scores.json.

Controls:
  ↑/k, ↓/j - Move between rows
  ←/h, →/l - Move between options
  space    - Select option
  x        - Clear row
  ctrl+s   - Save
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runGradeOpen,
}

func init() {
	gradeOpenCmd.Flags().StringVarP(&gradeRubricPath, "rubric", "r", "", "rubric file")
	gradeOpenCmd.Flags().StringVar(&gradeScoresFile, "scores-file", "", "file holding the selections")
	_ = gradeOpenCmd.MarkFlagRequired("rubric")
	gradeCmd.AddCommand(gradeOpenCmd)
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) (err error) {
	defer recoverTUI(&err)

	if fieldStoreFor == nil || rubricFormFor == nil {
		return errors.New("rubric form not configured")
	}
	if !isTerminal() {
		return fmt.Errorf("edit: %w", errNotTerminal)
	}

	form := rubricFormFor(fieldStoreFor(args[0]))
	session, err := form.Open(cmd.Context())
	if err != nil {
		if !errors.Is(err, domain.ErrParse) || session == nil {
			return fmt.Errorf("open rubric: %w", err)
		}
		logger.Warn("%s is not a readable rubric, starting from an empty one: %v", args[0], err)
	}

	app, err := tui.NewApp(tui.NewPorts(form, nil))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context()).OpenEditor(session)

	if err := runApp(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

func runGradeOpen(cmd *cobra.Command, _ []string) (err error) {
	defer recoverTUI(&err)

	if fieldStoreFor == nil || gradeFormFor == nil {
		return errors.New("grade form not configured")
	}
	if !isTerminal() {
		return fmt.Errorf("grade open: %w", errNotTerminal)
	}

	rubric, err := loadRubricFile(cmd, gradeRubricPath)
	if err != nil {
		return err
	}

	scoresPath := gradeScoresFile
	if scoresPath == "" {
		scoresPath = defaultScoresPath(gradeRubricPath)
	}

	form := gradeFormFor(fieldStoreFor(scoresPath))
	session, err := form.Open(cmd.Context(), rubric)
	if err != nil {
		if session == nil {
			return fmt.Errorf("open grade sheet: %w", err)
		}
		logger.Warn("%s is not a readable selection list, starting with nothing selected: %v", scoresPath, err)
	}

	app, err := tui.NewApp(tui.NewPorts(nil, form))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context()).OpenGrader(session)

	if err := runApp(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// defaultScoresPath returns NAME.scores.json beside the rubric file.
func defaultScoresPath(rubricPath string) string {
	ext := filepath.Ext(rubricPath)
	return strings.TrimSuffix(rubricPath, ext) + ".scores.json"
}

func recoverTUI(err *error) {
	if r := recover(); r != nil {
		fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
		fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		*err = fmt.Errorf("TUI panic: %v", r)
	}
}
