// Package cli provides the cobra command tree for the rubric binary.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/rubric-cli/internal/core/ports/driven"
	"github.com/custodia-labs/rubric-cli/internal/core/ports/driving"
	"github.com/custodia-labs/rubric-cli/internal/logger"
)

var (
	version   = "dev"
	verbose   bool
	configDir string
)

// Services configured by the entry point.
var (
	settingsService   driving.SettingsService
	editorService     driving.EditorService
	gradeService      driving.GradeService
	validationService driving.ValidationService

	fieldStoreFor func(path string) driven.WatchableFieldStore
	rubricFormFor func(field driven.FieldStore) driving.RubricForm
	gradeFormFor  func(field driven.FieldStore) driving.GradeForm
)

// Services holds everything the commands need.
type Services struct {
	Settings   driving.SettingsService
	Editor     driving.EditorService
	Grades     driving.GradeService
	Validation driving.ValidationService

	// Field opens the field stored at path.
	Field func(path string) driven.WatchableFieldStore

	// RubricForm and GradeForm bind a form to a field.
	RubricForm func(field driven.FieldStore) driving.RubricForm
	GradeForm  func(field driven.FieldStore) driving.GradeForm
}

// ServiceFactory builds the services once flags are parsed.
type ServiceFactory func(configDir string) (*Services, error)

var serviceFactory ServiceFactory

// SetServiceFactory sets the factory run before every command.
func SetServiceFactory(f ServiceFactory) {
	serviceFactory = f
}

// SetServices installs the services directly.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	settingsService = s.Settings
	editorService = s.Editor
	gradeService = s.Grades
	validationService = s.Validation
	fieldStoreFor = s.Field
	rubricFormFor = s.RubricForm
	gradeFormFor = s.GradeForm
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var rootCmd = &cobra.Command{
	Use:   "rubric",
	Short: "Edit and grade rubrics stored as JSON",
	Long: `rubric edits scoring rubrics and grades work against them.

A rubric is a JSON array of rows. Each row has a name, a description and a
list of cells, and each cell has a score and a description. Selections made
while grading are stored as a JSON array with one score per row, where -1
means the row has not been graded.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if serviceFactory == nil {
			return nil
		}
		services, err := serviceFactory(configDir)
		if err != nil {
			return fmt.Errorf("initialise services: %w", err)
		}
		SetServices(services)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.rubric)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
