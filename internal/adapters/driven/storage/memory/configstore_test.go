package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rubric-cli/internal/core/ports/driven"
)

func TestNewConfigStoreWith_CopiesValues(t *testing.T) {
	seed := map[string]any{"editor.invalid_score": "zero"}

	store := NewConfigStoreWith(seed)
	seed["editor.invalid_score"] = "reject"

	assert.Equal(t, "zero", store.GetString("editor.invalid_score"))
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStoreWith(map[string]any{
		"editor.invalid_score":   "zero",
		"editor.header_baseline": int64(3),
		"rubric.max_score":       float64(50),
		"grading.score_mode":     "integer",
	})

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("editor.invalid_score"), "zero"},
		{"int from int64", store.GetInt("editor.header_baseline"), 3},
		{"int from float64", store.GetInt("rubric.max_score"), 50},
		{"string wrong type", store.GetString("editor.header_baseline"), ""},
		{"int wrong type", store.GetInt("grading.score_mode"), 0},
		{"int missing", store.GetInt("missing"), 0},
		{"string missing", store.GetString("missing"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_SetOverwrites(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("grading.score_mode", "float"))
	require.NoError(t, store.Set("grading.score_mode", "integer"))

	val, ok := store.Get("grading.score_mode")
	assert.True(t, ok)
	assert.Equal(t, "integer", val)
}

func TestConfigStore_NoOpPersistence(t *testing.T) {
	var store driven.ConfigStore = NewConfigStore()

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key.%d", n%5)
			_ = store.Set(key, n)
			_ = store.GetInt(key)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 5; i++ {
		_, ok := store.Get(fmt.Sprintf("key.%d", i))
		assert.True(t, ok)
	}
}
