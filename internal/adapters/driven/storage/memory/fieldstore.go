package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/rubric-cli/internal/core/ports/driven"
)

// Ensure FieldStore implements the interface.
var _ driven.FieldStore = (*FieldStore)(nil)

// FieldStore holds a single serialized field value in memory.
type FieldStore struct {
	mu     sync.RWMutex
	value  string
	writes int
}

// NewFieldStore creates a field store holding the given initial value.
func NewFieldStore(initial string) *FieldStore {
	return &FieldStore{value: initial}
}

// Read returns the current value.
func (s *FieldStore) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, nil
}

// Write replaces the current value.
func (s *FieldStore) Write(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
	s.writes++
	return nil
}

// Writes returns how many times Write has succeeded.
func (s *FieldStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
