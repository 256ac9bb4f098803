package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/rubric-cli/internal/core/domain"
)

var (
	gradeRubricPath string
	gradeScores     string
	gradeScoresFile string
)

var gradeCmd = &cobra.Command{
	Use:   "grade",
	Short: "Grade work against a rubric",
	Long: `Grade work against a rubric.

Selections are a JSON array with one score per rubric row, in row order.
Use -1 for a row that has not been graded, e.g. [4,-1].`,
}

var gradeTotalCmd = &cobra.Command{
	Use:   "total",
	Short: "Print the grade for a list of selections",
	Long: `Sum the selected scores and print the grade line.

The possible total counts every row's maximum, graded or not.`,
	Args: cobra.NoArgs,
	RunE: runGradeTotal,
}

var gradeCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that selections fit a rubric",
	Args:  cobra.NoArgs,
	RunE:  runGradeCheck,
}

func init() {
	for _, c := range []*cobra.Command{gradeTotalCmd, gradeCheckCmd} {
		c.Flags().StringVarP(&gradeRubricPath, "rubric", "r", "", "rubric file")
		c.Flags().StringVarP(&gradeScores, "scores", "s", "", "selections, e.g. [4,-1]")
		_ = c.MarkFlagRequired("rubric")
		_ = c.MarkFlagRequired("scores")
		gradeCmd.AddCommand(c)
	}
	rootCmd.AddCommand(gradeCmd)
}

func runGradeTotal(cmd *cobra.Command, _ []string) error {
	if gradeService == nil {
		return errors.New("grade service not configured")
	}

	rubric, selections, err := loadGradeInput(cmd)
	if err != nil {
		return err
	}
	if len(selections) != len(rubric.Rows) {
		return fmt.Errorf("expected %d scores, got %d: %w", len(rubric.Rows), len(selections), domain.ErrInvalidInput)
	}

	sheet := gradeService.NewSheet(rubric)
	total, err := gradeService.ComputeTotal(selections, gradeService.RowMax(sheet))
	if err != nil {
		return fmt.Errorf("compute total: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), total.String())
	return nil
}

func runGradeCheck(cmd *cobra.Command, _ []string) error {
	if validationService == nil {
		return errors.New("validation service not configured")
	}

	rubric, selections, err := loadGradeInput(cmd)
	if err != nil {
		return err
	}

	issues := validationService.ValidateSelections(rubric, selections)
	if len(issues) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Selections are valid.")
		return nil
	}

	printIssues(cmd, issues)
	return fmt.Errorf("%d problem(s) found: %w", len(issues), domain.ErrValidation)
}

func loadGradeInput(cmd *cobra.Command) (domain.Rubric, []float64, error) {
	if gradeService == nil {
		return domain.Rubric{}, nil, errors.New("grade service not configured")
	}

	rubric, err := loadRubricFile(cmd, gradeRubricPath)
	if err != nil {
		return domain.Rubric{}, nil, err
	}
	selections, err := gradeService.ParseSelections(gradeScores)
	if err != nil {
		return domain.Rubric{}, nil, fmt.Errorf("parse scores: %w", err)
	}
	return rubric, selections, nil
}
