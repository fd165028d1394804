// Package stats derives activity statistics from aggregated events. Nothing is cached: every call
// recomputes from the source so results cannot drift from the underlying events.
package stats

import (
	"math/big"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/ChainActivity/pkg/activity"
)

// Source exposes per-address event buckets.
type Source interface {
	// Addresses returns every address holding events, in first-discovery order.
	Addresses() []common.Address

	// Events returns the events attributed to address.
	Events(address common.Address) []*activity.Event
}

// Summary aggregates a set of events.
type Summary struct {
	Events    int
	ByName    map[string]int
	GasUsed   *big.Int
	ValueSent *big.Int
	Succeeded int
	Failed    int
}

func newSummary() *Summary {
	return &Summary{ByName: make(map[string]int), GasUsed: new(big.Int), ValueSent: new(big.Int)}
}

func (s *Summary) add(ev *activity.Event) {
	s.Events++
	s.ByName[ev.Name]++
	if ev.GasUsed != nil {
		s.GasUsed.Add(s.GasUsed, ev.GasUsed)
	}
	if ev.Status == activity.StatusSuccess {
		s.Succeeded++
	} else {
		s.Failed++
	}
}

// Names returns the histogram keys sorted by name.
func (s *Summary) Names() []string {
	names := make([]string, 0, len(s.ByName))
	for name := range s.ByName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ForAddress summarizes the bucket of address. Value is counted only for events the address sent.
func ForAddress(src Source, address common.Address) *Summary {
	sum := newSummary()
	for _, ev := range src.Events(address) {
		sum.add(ev)
		if ev.From == address && ev.Value != nil {
			sum.ValueSent.Add(sum.ValueSent, ev.Value)
		}
	}
	return sum
}

// GlobalSummary is the summary over every distinct event.
type GlobalSummary struct {
	*Summary
	Addresses int
}

// Global summarizes every distinct event once, however many buckets hold it.
func Global(src Source) *GlobalSummary {
	sum := newSummary()
	addresses := src.Addresses()
	seen := make(map[activity.EventKey]struct{})

	for _, addr := range addresses {
		for _, ev := range src.Events(addr) {
			if _, dup := seen[ev.Key()]; dup {
				continue
			}
			seen[ev.Key()] = struct{}{}

			sum.add(ev)
			if ev.Value != nil {
				sum.ValueSent.Add(sum.ValueSent, ev.Value)
			}
		}
	}

	return &GlobalSummary{Summary: sum, Addresses: len(addresses)}
}

// Ranked is one entry of the most active ranking.
type Ranked struct {
	Address common.Address
	Events  int
}

// MostActive returns up to k addresses by descending event count. Ties keep first-discovery order.
func MostActive(src Source, k int) []Ranked {
	if k <= 0 {
		return nil
	}

	addresses := src.Addresses()
	ranked := make([]Ranked, 0, len(addresses))
	for _, addr := range addresses {
		ranked = append(ranked, Ranked{Address: addr, Events: len(src.Events(addr))})
	}

	slices.SortStableFunc(ranked, func(a, b Ranked) int {
		return b.Events - a.Events
	})

	return ranked[:min(k, len(ranked))]
}

// Recent returns the last n events of the bucket, newest first.
func Recent(src Source, address common.Address, n int) []*activity.Event {
	events := src.Events(address)
	if n <= 0 || len(events) == 0 {
		return nil
	}

	tail := slices.Clone(events[max(0, len(events)-n):])
	slices.Reverse(tail)
	return tail
}
