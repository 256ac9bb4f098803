// Package file provides a filesystem-backed FieldStore.
//
// The store holds one serialized field per file. Watch reports external
// edits using fsnotify, with bursts of events collapsed by a rate limiter.
package file
