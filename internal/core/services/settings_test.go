package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rubric-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/rubric-cli/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStoreWith(map[string]any{
		"editor.invalid_score":          "zero",
		"editor.header_baseline":        int64(2),
		"grading.score_mode":            "integer",
		"rubric.name_max_length":        40,
		"rubric.description_max_length": 500,
		"rubric.min_score":              1,
		"rubric.max_score":              10,
	})
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.AppSettings{
		Editor:  domain.EditorSettings{InvalidScore: domain.InvalidScoreZero, HeaderBaseline: 2},
		Grading: domain.GradingSettings{ScoreMode: domain.ScoreModeInteger},
		Validation: domain.ValidationSettings{
			NameMaxLength:        40,
			DescriptionMaxLength: 500,
			MinScore:             1,
			MaxScore:             10,
		},
	}, *settings)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStoreWith(map[string]any{
		"editor.invalid_score":   "clamp",
		"editor.header_baseline": 0,
		"grading.score_mode":     "decimal",
		"rubric.min_score":       -1,
	})
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Editor, settings.Editor)
	assert.Equal(t, defaults.Grading, settings.Grading)
	assert.Equal(t, defaults.Validation.MinScore, settings.Validation.MinScore)
}

func TestSettingsService_Get_StoredZeroIsKept(t *testing.T) {
	store := memory.NewConfigStoreWith(map[string]any{"rubric.name_max_length": 0})
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, 0, settings.Validation.NameMaxLength)
}

func TestSettingsService_SaveThenGet(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	want := domain.DefaultAppSettings()
	want.Editor.InvalidScore = domain.InvalidScoreZero
	want.Validation.MaxScore = 20

	require.NoError(t, service.Save(&want))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
		stored  any
	}{
		{name: "policy", key: "editor.invalid_score", value: "zero", stored: "zero"},
		{name: "bad policy", key: "editor.invalid_score", value: "clamp", wantErr: true},
		{name: "mode", key: "grading.score_mode", value: "integer", stored: "integer"},
		{name: "bad mode", key: "grading.score_mode", value: "decimal", wantErr: true},
		{name: "int", key: "rubric.max_score", value: "50", stored: 50},
		{name: "min", key: "rubric.min_score", value: "1", stored: 1},
		{name: "negative min", key: "rubric.min_score", value: "-1", wantErr: true},
		{name: "not an int", key: "rubric.max_score", value: "fifty", wantErr: true},
		{name: "baseline below one", key: "editor.header_baseline", value: "0", wantErr: true},
		{name: "unknown key", key: "search.mode", value: "text", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			service := NewSettingsService(store)

			err := service.Set(tt.key, tt.value)

			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				_, exists := store.Get(tt.key)
				assert.False(t, exists)
				return
			}
			require.NoError(t, err)
			val, _ := store.Get(tt.key)
			assert.Equal(t, tt.stored, val)
		})
	}
}

func TestSettingsService_Keys(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.Equal(t, []string{
		"editor.header_baseline",
		"editor.invalid_score",
		"grading.score_mode",
		"rubric.description_max_length",
		"rubric.max_score",
		"rubric.min_score",
		"rubric.name_max_length",
	}, service.Keys())
}

func TestSettingsService_NilStore(t *testing.T) {
	service := NewSettingsService(nil)

	_, err := service.Get()
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	assert.ErrorIs(t, service.Save(&domain.AppSettings{}), domain.ErrNotImplemented)
	assert.ErrorIs(t, service.Set("rubric.max_score", "1"), domain.ErrNotImplemented)
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}
