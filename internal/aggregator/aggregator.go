// Package aggregator attributes normalized events to their participants.
package aggregator

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/ChainActivity/internal/logger"
	"github.com/goran-ethernal/ChainActivity/internal/metrics"
	"github.com/goran-ethernal/ChainActivity/pkg/activity"
)

// Backend stores attributions. Append is never called concurrently.
type Backend interface {
	// Name identifies the backend in logs and metrics.
	Name() string

	// Append attributes ev to every participant and returns how many attributions were new.
	// Appending an event whose key was already attributed to a participant is a no-op for that participant.
	Append(ctx context.Context, ev *activity.Event, participants []common.Address) (int, error)
}

// BackendStats counts the attributions one backend accepted and ignored.
type BackendStats struct {
	Added      int
	Duplicates int
}

// Stats summarizes an aggregation run.
type Stats struct {
	Events   int
	Backends map[string]*BackendStats
}

// Aggregator is the single writer in front of one or more backends.
type Aggregator struct {
	backends []Backend
	log      *logger.Logger
}

// New creates an aggregator writing every event to each backend in order.
func New(log *logger.Logger, backends ...Backend) *Aggregator {
	return &Aggregator{backends: backends, log: log}
}

// Run consumes events until in is closed. After a backend failure the remaining events are drained
// without being applied, so the producer never blocks, and the first error is returned.
func (a *Aggregator) Run(ctx context.Context, in <-chan *activity.Event) (*Stats, error) {
	stats := &Stats{Backends: make(map[string]*BackendStats, len(a.backends))}
	for _, b := range a.backends {
		stats.Backends[b.Name()] = &BackendStats{}
	}

	var firstErr error
	for ev := range in {
		if firstErr != nil {
			continue
		}

		if err := a.apply(ctx, ev, stats); err != nil {
			firstErr = err
			a.log.Errorw("aggregation failed, draining remaining events", "event", ev.Key().String(), "error", err)
		}
	}

	return stats, firstErr
}

func (a *Aggregator) apply(ctx context.Context, ev *activity.Event, stats *Stats) error {
	participants := ev.Participants()
	stats.Events++

	for _, b := range a.backends {
		added, err := b.Append(ctx, ev, participants)
		if err != nil {
			return fmt.Errorf("%s backend: append %s: %w", b.Name(), ev.Key(), err)
		}

		s := stats.Backends[b.Name()]
		s.Added += added
		s.Duplicates += len(participants) - added
		metrics.AttributionsInc(b.Name(), added, len(participants)-added)
	}

	a.log.Debugw("event attributed",
		"event", ev.Key().String(),
		"name", ev.Name,
		"participants", len(participants),
	)

	return nil
}
