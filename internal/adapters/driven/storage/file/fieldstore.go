package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/rubric-cli/internal/core/ports/driven"
	"github.com/custodia-labs/rubric-cli/internal/logger"
)

// Ensure FieldStore implements the interfaces.
var (
	_ driven.FieldStore          = (*FieldStore)(nil)
	_ driven.WatchableFieldStore = (*FieldStore)(nil)
)

// DefaultDebounce is the minimum gap between two change notifications.
const DefaultDebounce = 250 * time.Millisecond

// FieldStore keeps a serialized field value in a single file.
type FieldStore struct {
	path     string
	debounce time.Duration
}

// NewFieldStore creates a field store backed by the file at path.
// The file does not need to exist yet.
func NewFieldStore(path string) *FieldStore {
	return &FieldStore{
		path:     filepath.Clean(path),
		debounce: DefaultDebounce,
	}
}

// Path returns the backing file path.
func (s *FieldStore) Path() string {
	return s.path
}

// Read returns the file contents. A missing file reads as the empty value.
func (s *FieldStore) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read field %s: %w", s.path, err)
	}
	return string(data), nil
}

// Write replaces the file contents, creating parent directories as needed.
func (s *FieldStore) Write(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create field directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(value), 0644); err != nil {
		return fmt.Errorf("write field %s: %w", s.path, err)
	}
	return nil
}

// Watch calls fn with the new value each time the file changes, until ctx is
// cancelled. Bursts of events closer together than the debounce interval
// collapse into one call. The parent directory is watched so that editors
// which save by rename are still seen.
func (s *FieldStore) Watch(ctx context.Context, fn func(string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("watch %s: %w", s.path, err)
	}
	logger.Debug("watching %s", s.path)

	limiter := rate.NewLimiter(rate.Every(s.debounce), 1)

	for {
		select {
		case <-ctx.Done():
			return nil

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch %s: %v", s.path, err)

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !s.handleFsEvent(event) {
				continue
			}
			if err := limiter.Wait(ctx); err != nil {
				return nil
			}
			drainEvents(watcher.Events)

			value, err := s.Read(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				logger.Warn("reload %s: %v", s.path, err)
				continue
			}
			fn(value)
		}
	}
}

// handleFsEvent reports whether event changes the contents of the watched file.
func (s *FieldStore) handleFsEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != s.path {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) || event.Has(fsnotify.Rename)
}

// drainEvents discards events already queued on ch.
func drainEvents(ch <-chan fsnotify.Event) {
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
