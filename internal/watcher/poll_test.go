package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectEvents(t *testing.T, b Backend, want int, timeout time.Duration) []Event {
	t.Helper()

	var events []Event
	deadline := time.After(timeout)
	for len(events) < want {
		select {
		case ev, ok := <-b.Events():
			if !ok {
				return events
			}
			events = append(events, ev)
		case <-deadline:
			return events
		}
	}
	return events
}

func TestPollBackend_DetectsNewFile(t *testing.T) {
	root := t.TempDir()

	b := NewPollBackend(root, 10*time.Millisecond, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	// Let the first scan prime before creating anything.
	time.Sleep(30 * time.Millisecond)
	path := filepath.Join(root, "new.mkv")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	events := collectEvents(t, b, 1, time.Second)
	require.NotEmpty(t, events)
	assert.Equal(t, path, events[0].Path)
	assert.False(t, events[0].Dir)
}

func TestPollBackend_ExistingContentNotEmitted(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "old.mkv"), []byte("x"), 0o644))

	b := NewPollBackend(root, 10*time.Millisecond, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	events := collectEvents(t, b, 1, 100*time.Millisecond)
	assert.Empty(t, events, "content present before startup belongs to the organize path")
}

func TestPollBackend_DetectsGrowth(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "grow.mkv")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	b := NewPollBackend(root, 10*time.Millisecond, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	time.Sleep(30 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("xxxxxxxx"), 0o644))

	events := collectEvents(t, b, 1, time.Second)
	require.NotEmpty(t, events)
	assert.Equal(t, path, events[0].Path)
}

func TestPollBackend_EventsClosedOnCancel(t *testing.T) {
	root := t.TempDir()

	b := NewPollBackend(root, 10*time.Millisecond, testLogger())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	_, open := <-b.Events()
	assert.False(t, open)
}
