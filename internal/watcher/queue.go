package watcher

import (
	"context"
	"sync"
)

// Queue is an ordered set of item keys. Pushing a key already queued is a
// no-op, which lets the debouncer re-fire without creating duplicates.
type Queue struct {
	mu      sync.Mutex
	items   []string
	members map[string]struct{}

	wake chan struct{}
	done chan struct{}
	once sync.Once
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{
		members: make(map[string]struct{}),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

// Push appends key unless it is already queued. Returns true if the key
// was added.
func (q *Queue) Push(key string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.members[key]; ok {
		return false
	}
	q.items = append(q.items, key)
	q.members[key] = struct{}{}

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return true
}

// Pop blocks until a key is available and returns it. After Close, Pop
// keeps returning queued keys until the queue drains, then returns false.
func (q *Queue) Pop(ctx context.Context) (string, bool) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			key := q.items[0]
			q.items = q.items[1:]
			delete(q.members, key)
			if len(q.items) > 0 {
				// Keep other waiters runnable.
				select {
				case q.wake <- struct{}{}:
				default:
				}
			}
			q.mu.Unlock()
			return key, true
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return "", false
		case <-q.done:
			// Re-check under the lock: a Push may have raced Close.
			q.mu.Lock()
			empty := len(q.items) == 0
			q.mu.Unlock()
			if empty {
				return "", false
			}
		case <-q.wake:
		}
	}
}

// Len returns the number of queued keys.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close marks the queue finished. Blocked Pop calls return once the
// remaining keys drain.
func (q *Queue) Close() {
	q.once.Do(func() {
		close(q.done)
	})
}
