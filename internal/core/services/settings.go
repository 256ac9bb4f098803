package services

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/custodia-labs/rubric-cli/internal/core/domain"
	"github.com/custodia-labs/rubric-cli/internal/core/ports/driven"
	"github.com/custodia-labs/rubric-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyInvalidScore   = "editor.invalid_score"
	keyHeaderBaseline = "editor.header_baseline"
	keyScoreMode      = "grading.score_mode"
	keyNameMax        = "rubric.name_max_length"
	keyDescriptionMax = "rubric.description_max_length"
	keyMinScore       = "rubric.min_score"
	keyMaxScore       = "rubric.max_score"
)

// intKeys are the settings stored as integers.
var intKeys = map[string]bool{
	keyHeaderBaseline: true,
	keyNameMax:        true,
	keyDescriptionMax: true,
	keyMinScore:       true,
	keyMaxScore:       true,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	if s.configStore == nil {
		return nil, domain.ErrNotImplemented
	}
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Editor: domain.EditorSettings{
			InvalidScore:   s.getInvalidScore(defaults.Editor.InvalidScore),
			HeaderBaseline: s.getInt(keyHeaderBaseline, defaults.Editor.HeaderBaseline),
		},
		Grading: domain.GradingSettings{
			ScoreMode: s.getScoreMode(defaults.Grading.ScoreMode),
		},
		Validation: domain.ValidationSettings{
			NameMaxLength:        s.getInt(keyNameMax, defaults.Validation.NameMaxLength),
			DescriptionMaxLength: s.getInt(keyDescriptionMax, defaults.Validation.DescriptionMaxLength),
			MinScore:             s.getInt(keyMinScore, defaults.Validation.MinScore),
			MaxScore:             s.getInt(keyMaxScore, defaults.Validation.MaxScore),
		},
	}
	if settings.Editor.HeaderBaseline < 1 {
		settings.Editor.HeaderBaseline = defaults.Editor.HeaderBaseline
	}
	if settings.Validation.MinScore < 0 {
		settings.Validation.MinScore = defaults.Validation.MinScore
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	values := []struct {
		key   string
		value any
	}{
		{keyInvalidScore, settings.Editor.InvalidScore.String()},
		{keyHeaderBaseline, settings.Editor.HeaderBaseline},
		{keyScoreMode, settings.Grading.ScoreMode.String()},
		{keyNameMax, settings.Validation.NameMaxLength},
		{keyDescriptionMax, settings.Validation.DescriptionMaxLength},
		{keyMinScore, settings.Validation.MinScore},
		{keyMaxScore, settings.Validation.MaxScore},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses and stores a single setting by key.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}

	switch {
	case key == keyInvalidScore:
		if !domain.InvalidScorePolicy(value).IsValid() {
			return fmt.Errorf("invalid score policy %q: %w", value, domain.ErrInvalidInput)
		}
		return s.configStore.Set(key, value)
	case key == keyScoreMode:
		if !domain.ScoreMode(value).IsValid() {
			return fmt.Errorf("invalid score mode %q: %w", value, domain.ErrInvalidInput)
		}
		return s.configStore.Set(key, value)
	case intKeys[key]:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", key, domain.ErrInvalidInput)
		}
		if key == keyHeaderBaseline && n < 1 {
			return fmt.Errorf("%s must be at least 1: %w", key, domain.ErrInvalidInput)
		}
		if key == keyMinScore && n < 0 {
			return fmt.Errorf("%s must not be negative: %w", key, domain.ErrInvalidInput)
		}
		return s.configStore.Set(key, n)
	default:
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}
}

// Keys lists the recognised setting keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := []string{keyInvalidScore, keyScoreMode}
	for k := range intKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getInvalidScore(defaultVal domain.InvalidScorePolicy) domain.InvalidScorePolicy {
	policy := domain.InvalidScorePolicy(s.configStore.GetString(keyInvalidScore))
	if !policy.IsValid() {
		return defaultVal
	}
	return policy
}

func (s *SettingsService) getScoreMode(defaultVal domain.ScoreMode) domain.ScoreMode {
	mode := domain.ScoreMode(s.configStore.GetString(keyScoreMode))
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}
