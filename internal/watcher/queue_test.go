package watcher

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_PushPop(t *testing.T) {
	q := NewQueue()

	assert.True(t, q.Push("/watch/a"))
	assert.True(t, q.Push("/watch/b"))

	key, ok := q.Pop(context.Background())
	require.True(t, ok)
	assert.Equal(t, "/watch/a", key)

	key, ok = q.Pop(context.Background())
	require.True(t, ok)
	assert.Equal(t, "/watch/b", key)
}

func TestQueue_PushDeduplicates(t *testing.T) {
	q := NewQueue()

	assert.True(t, q.Push("/watch/a"))
	assert.False(t, q.Push("/watch/a"), "queued key must not be added twice")
	assert.Equal(t, 1, q.Len())

	// Once popped, the key may be queued again.
	_, ok := q.Pop(context.Background())
	require.True(t, ok)
	assert.True(t, q.Push("/watch/a"))
}

func TestQueue_PopBlocksUntilPush(t *testing.T) {
	q := NewQueue()

	got := make(chan string, 1)
	go func() {
		key, ok := q.Pop(context.Background())
		if ok {
			got <- key
		}
	}()

	time.Sleep(20 * time.Millisecond)
	q.Push("/watch/late")

	select {
	case key := <-got:
		assert.Equal(t, "/watch/late", key)
	case <-time.After(time.Second):
		t.Fatal("Pop did not wake after Push")
	}
}

func TestQueue_PopDrainsAfterClose(t *testing.T) {
	q := NewQueue()
	q.Push("/watch/a")
	q.Push("/watch/b")
	q.Close()

	key, ok := q.Pop(context.Background())
	require.True(t, ok)
	assert.Equal(t, "/watch/a", key)

	key, ok = q.Pop(context.Background())
	require.True(t, ok)
	assert.Equal(t, "/watch/b", key)

	_, ok = q.Pop(context.Background())
	assert.False(t, ok, "drained closed queue must report done")
}

func TestQueue_PopReturnsOnCancel(t *testing.T) {
	q := NewQueue()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := q.Pop(ctx)
	assert.False(t, ok)
}
