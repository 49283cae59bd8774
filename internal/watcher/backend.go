// Package watcher turns raw filesystem activity under the watch root into
// a debounced queue of item keys ready for processing.
package watcher

import "context"

// Event is a single observed filesystem change.
type Event struct {
	Path string
	Dir  bool
}

// Backend produces filesystem events for the watch root. Run blocks until
// ctx is cancelled; Events is closed when Run returns.
type Backend interface {
	Run(ctx context.Context) error
	Events() <-chan Event
}
