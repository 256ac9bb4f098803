package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/rubric-cli/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Re-check a rubric every time it changes",
	Long: `Print a summary of the rubric, then print it again each time the file
is written. Stops on interrupt.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if fieldStoreFor == nil || editorService == nil || validationService == nil {
		return errors.New("watch services not configured")
	}

	path := args[0]
	field := fieldStoreFor(path)

	value, err := field.Read(cmd.Context())
	if err != nil {
		return err
	}
	printSummary(cmd, path, value)

	logger.Info("watching %s", path)
	if err := field.Watch(cmd.Context(), func(value string) {
		printSummary(cmd, path, value)
	}); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	return nil
}

// printSummary prints one line about the rubric followed by any problems.
func printSummary(cmd *cobra.Command, path, value string) {
	rubric, err := editorService.Parse(value)
	if err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", path, err)
		return
	}

	issues := validationService.ValidateRubric(rubric)
	state := "valid"
	if len(issues) > 0 {
		state = fmt.Sprintf("%d problem(s)", len(issues))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d row(s), maximum %.1f, %s\n", path, len(rubric.Rows), rubric.MaxScore(), state)
	printIssues(cmd, issues)
}

