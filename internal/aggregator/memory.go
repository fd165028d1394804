package aggregator

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/ChainActivity/pkg/activity"
)

const memoryBackendName = "memory"

type bucket struct {
	events []*activity.Event
	seen   map[activity.EventKey]struct{}
}

// MemoryBackend keeps, per address, the ordered list of events attributed to it.
// Events are shared between buckets, never copied.
type MemoryBackend struct {
	mu      sync.RWMutex
	buckets map[common.Address]*bucket
	order   []common.Address
}

// NewMemoryBackend creates an empty in-process backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{buckets: make(map[common.Address]*bucket)}
}

// Name returns "memory".
func (m *MemoryBackend) Name() string {
	return memoryBackendName
}

// Append adds ev to the bucket of every participant that does not hold its key yet.
func (m *MemoryBackend) Append(_ context.Context, ev *activity.Event, participants []common.Address) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := ev.Key()
	added := 0
	for _, addr := range participants {
		b, ok := m.buckets[addr]
		if !ok {
			b = &bucket{seen: make(map[activity.EventKey]struct{})}
			m.buckets[addr] = b
			m.order = append(m.order, addr)
		}

		if _, dup := b.seen[key]; dup {
			continue
		}
		b.seen[key] = struct{}{}
		b.events = append(b.events, ev)
		added++
	}

	return added, nil
}

// Addresses returns every address with at least one event, in first-discovery order.
func (m *MemoryBackend) Addresses() []common.Address {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]common.Address, len(m.order))
	copy(out, m.order)
	return out
}

// Events returns the events of address in attribution order.
func (m *MemoryBackend) Events(address common.Address) []*activity.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.buckets[address]
	if !ok {
		return nil
	}

	out := make([]*activity.Event, len(b.events))
	copy(out, b.events)
	return out
}
