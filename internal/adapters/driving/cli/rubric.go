package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/rubric-cli/internal/core/domain"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [FILE|-]",
	Short: "Print a rubric in canonical form",
	Long: `Load a rubric and write it back out as a canonical JSON array.

Reads standard input when FILE is "-" or omitted. An unreadable document is
reported on stderr and the default one-row rubric is printed instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNormalize,
}

var validateCmd = &cobra.Command{
	Use:   "validate [FILE|-]",
	Short: "Check a rubric for problems",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runValidate,
}

var showCmd = &cobra.Command{
	Use:   "show [FILE|-]",
	Short: "Render a rubric as a table",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(showCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	if editorService == nil {
		return errors.New("editor service not configured")
	}

	raw, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	session, err := editorService.Load(raw)
	if err != nil {
		if !errors.Is(err, domain.ErrParse) {
			return fmt.Errorf("load rubric: %w", err)
		}
		cmd.PrintErrf("warning: %v; using an empty rubric\n", err)
	}

	out, err := session.Extract()
	if err != nil {
		return fmt.Errorf("extract rubric: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	if validationService == nil {
		return errors.New("validation service not configured")
	}

	rubric, err := readRubric(cmd, args)
	if err != nil {
		return err
	}

	issues := validationService.ValidateRubric(rubric)
	if len(issues) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Rubric is valid.")
		return nil
	}

	printIssues(cmd, issues)
	return fmt.Errorf("%d problem(s) found: %w", len(issues), domain.ErrValidation)
}

func runShow(cmd *cobra.Command, args []string) error {
	rubric, err := readRubric(cmd, args)
	if err != nil {
		return err
	}

	if len(rubric.Rows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Rubric has no rows.")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderRubric(rubric))
	fmt.Fprintf(cmd.OutOrStdout(), "Maximum score: %.1f\n", rubric.MaxScore())
	return nil
}

// renderRubric lays the rubric out with one column per cell. The score
// columns run as wide as the widest row and are headed "Score" when there is
// one, or "Score 1" to "Score N" when there are several.
func renderRubric(rubric domain.Rubric) string {
	span := 1
	for _, row := range rubric.Rows {
		if len(row.Cells) > span {
			span = len(row.Cells)
		}
	}

	headers := make([]string, span+1)
	headers[0] = "Criterion"
	headers[1] = "Score"
	if span > 1 {
		for i := 1; i <= span; i++ {
			headers[i] = fmt.Sprintf("Score %d", i)
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)

	for _, row := range rubric.Rows {
		cols := make([]string, span+1)
		cols[0] = row.Name
		if row.Description != "" {
			cols[0] += "\n" + row.Description
		}
		for i, cell := range row.Cells {
			cols[i+1] = strconv.FormatFloat(cell.Score, 'f', -1, 64)
			if cell.Description != "" {
				cols[i+1] += "\n" + cell.Description
			}
		}
		t.Row(cols...)
	}
	return t.Render()
}

// readInput reads the file named by the first argument, or standard input
// when there is none or it is "-".
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	return readField(cmd, args[0])
}

// readField reads a field file through the configured field store.
func readField(cmd *cobra.Command, path string) (string, error) {
	if fieldStoreFor == nil {
		return "", errors.New("field store not configured")
	}
	return fieldStoreFor(path).Read(cmd.Context())
}

func readRubric(cmd *cobra.Command, args []string) (domain.Rubric, error) {
	if editorService == nil {
		return domain.Rubric{}, errors.New("editor service not configured")
	}
	raw, err := readInput(cmd, args)
	if err != nil {
		return domain.Rubric{}, err
	}
	rubric, err := editorService.Parse(raw)
	if err != nil {
		return domain.Rubric{}, fmt.Errorf("parse rubric: %w", err)
	}
	return rubric, nil
}

func loadRubricFile(cmd *cobra.Command, path string) (domain.Rubric, error) {
	return readRubric(cmd, []string{path})
}

func printIssues(cmd *cobra.Command, issues []domain.Issue) {
	for _, issue := range issues {
		fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", issue)
	}
}
