// Command rubric edits scoring rubrics and grades work against them.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/rubric-cli/internal/adapters/driven/config/file"
	fieldfile "github.com/custodia-labs/rubric-cli/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/rubric-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/rubric-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/rubric-cli/internal/core/ports/driven"
	"github.com/custodia-labs/rubric-cli/internal/core/ports/driving"
	"github.com/custodia-labs/rubric-cli/internal/core/services"
	"github.com/custodia-labs/rubric-cli/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetServiceFactory(buildServices)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildServices wires the core services to their adapters.
// An unusable config directory falls back to in-memory settings.
func buildServices(configDir string) (*cli.Services, error) {
	var configStore driven.ConfigStore
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		logger.Warn("config unavailable, using defaults: %v", err)
		configStore = memory.NewConfigStore()
	} else {
		configStore = store
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	logger.Debug("settings loaded from %s", configStore.Path())

	editor := services.NewSyncService(settings.Editor)
	grades := services.NewGradeService(settings.Grading)

	return &cli.Services{
		Settings:   settingsService,
		Editor:     editor,
		Grades:     grades,
		Validation: services.NewValidator(settings.Validation),
		Field: func(path string) driven.WatchableFieldStore {
			return fieldfile.NewFieldStore(path)
		},
		RubricForm: func(field driven.FieldStore) driving.RubricForm {
			return services.NewRubricForm(editor, field)
		},
		GradeForm: func(field driven.FieldStore) driving.GradeForm {
			return services.NewGradeForm(grades, field)
		},
	}, nil
}
