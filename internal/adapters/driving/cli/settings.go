package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/rubric-cli/internal/core/domain"
)

// Setting keys as they appear in config.toml.
const (
	settingInvalidScore   = "editor.invalid_score"
	settingHeaderBaseline = "editor.header_baseline"
	settingScoreMode      = "grading.score_mode"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure editor, grading and validation settings.

Settings are stored in config.toml under the config directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change one setting",
	Long: `Change one setting by its dotted key, for example:

  rubric settings set editor.invalid_score zero
  rubric settings set rubric.max_score 10

Run "rubric settings show" to list the keys.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure the editor and grader step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Current Settings")
	fmt.Fprintln(cmd.OutOrStdout(), "================")
	fmt.Fprintln(cmd.OutOrStdout())

	fmt.Fprintln(cmd.OutOrStdout(), "[Editor]")
	fmt.Fprintf(cmd.OutOrStdout(), "  Invalid scores: %s\n", settings.Editor.InvalidScore.Description())
	fmt.Fprintf(cmd.OutOrStdout(), "  Header baseline: %d\n", settings.Editor.HeaderBaseline)
	fmt.Fprintln(cmd.OutOrStdout())

	fmt.Fprintln(cmd.OutOrStdout(), "[Grading]")
	fmt.Fprintf(cmd.OutOrStdout(), "  Score mode: %s\n", settings.Grading.ScoreMode.Description())
	fmt.Fprintln(cmd.OutOrStdout())

	fmt.Fprintln(cmd.OutOrStdout(), "[Rubric]")
	fmt.Fprintf(cmd.OutOrStdout(), "  Name max length: %d\n", settings.Validation.NameMaxLength)
	fmt.Fprintf(cmd.OutOrStdout(), "  Description max length: %d\n", settings.Validation.DescriptionMaxLength)
	fmt.Fprintf(cmd.OutOrStdout(), "  Score range: %d to %d\n", settings.Validation.MinScore, settings.Validation.MaxScore)
	fmt.Fprintln(cmd.OutOrStdout())

	fmt.Fprintln(cmd.OutOrStdout(), "Keys:")
	for _, key := range settingsService.Keys() {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", key)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	current, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Rubric Settings Wizard")
	fmt.Fprintln(cmd.OutOrStdout(), "======================")
	fmt.Fprintln(cmd.OutOrStdout())

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: invalid score policy
	fmt.Fprintln(cmd.OutOrStdout(), "Step 1: Non-numeric scores")
	fmt.Fprintln(cmd.OutOrStdout(), "--------------------------")
	policies := domain.AllInvalidScorePolicies()
	for i, p := range policies {
		fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s\n", i+1, p.Description())
	}
	fmt.Fprint(cmd.OutOrStdout(), "\nEnter choice [1]: ")
	policy := policies[parseChoice(readLine(reader), len(policies), 1)-1]
	if err := settingsService.Set(settingInvalidScore, policy.String()); err != nil {
		return fmt.Errorf("failed to set invalid score policy: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set invalid scores to: %s\n\n", policy.Description())

	// Step 2: score mode
	fmt.Fprintln(cmd.OutOrStdout(), "Step 2: Score mode")
	fmt.Fprintln(cmd.OutOrStdout(), "------------------")
	modes := domain.AllScoreModes()
	for i, m := range modes {
		fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s\n", i+1, m.Description())
	}
	fmt.Fprint(cmd.OutOrStdout(), "\nEnter choice [1]: ")
	mode := modes[parseChoice(readLine(reader), len(modes), 1)-1]
	if err := settingsService.Set(settingScoreMode, mode.String()); err != nil {
		return fmt.Errorf("failed to set score mode: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set score mode to: %s\n\n", mode.Description())

	// Step 3: header baseline
	fmt.Fprintln(cmd.OutOrStdout(), "Step 3: Score header width")
	fmt.Fprintln(cmd.OutOrStdout(), "--------------------------")
	baseline := current.Editor.HeaderBaseline
	fmt.Fprintf(cmd.OutOrStdout(), "Columns the score header starts with [%d]: ", baseline)
	baseline = parseChoice(readLine(reader), 100, baseline)
	if err := settingsService.Set(settingHeaderBaseline, strconv.Itoa(baseline)); err != nil {
		return fmt.Errorf("failed to set header baseline: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set header baseline to: %d\n\n", baseline)

	fmt.Fprintln(cmd.OutOrStdout(), "Configuration Complete!")
	fmt.Fprintln(cmd.OutOrStdout(), "=======================")
	fmt.Fprintln(cmd.OutOrStdout(), "All settings are saved.")
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}
