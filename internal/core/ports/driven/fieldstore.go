package driven

import "context"

// FieldStore holds the serialized value of a single form field.
// It stands in for the hidden input a page carries between load and submit.
type FieldStore interface {
	// Read returns the current value. A field that was never written
	// returns an empty string and no error.
	Read(ctx context.Context) (string, error)

	// Write replaces the value.
	Write(ctx context.Context, value string) error
}

// WatchableFieldStore is a FieldStore that can report external changes.
type WatchableFieldStore interface {
	FieldStore

	// Watch calls fn with the new value each time the field changes outside
	// this process. It blocks until ctx is cancelled.
	Watch(ctx context.Context, fn func(value string)) error
}
