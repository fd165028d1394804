package chainreader

import (
	"context"
	"sync"
)

type memoEntry[V any] struct {
	done  chan struct{}
	value V
	err   error
}

// memo runs one fetch per key and shares its outcome with concurrent callers.
// Failed fetches are kept, every log needing the same key is skipped with the same error.
type memo[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*memoEntry[V]
}

func newMemo[K comparable, V any]() *memo[K, V] {
	return &memo[K, V]{entries: make(map[K]*memoEntry[V])}
}

func (m *memo[K, V]) get(ctx context.Context, key K, fetch func(context.Context) (V, error)) (V, error) {
	m.mu.Lock()
	e, ok := m.entries[key]
	if !ok {
		e = &memoEntry[V]{done: make(chan struct{})}
		m.entries[key] = e
	}
	m.mu.Unlock()

	if !ok {
		e.value, e.err = fetch(ctx)
		close(e.done)
		return e.value, e.err
	}

	select {
	case <-e.done:
		return e.value, e.err
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}

func (m *memo[K, V]) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
