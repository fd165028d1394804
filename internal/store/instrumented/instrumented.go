// Package instrumented decorates a store.Store with operation metrics.
package instrumented

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/ChainActivity/internal/metrics"
	"github.com/goran-ethernal/ChainActivity/pkg/store"
)

var _ store.Store = (*Store)(nil)

// Store records the count, outcome and latency of every call to the wrapped store.
type Store struct {
	next   store.Store
	driver string
}

// Wrap returns s instrumented under the given driver label.
func Wrap(s store.Store, driver string) *Store {
	return &Store{next: s, driver: driver}
}

// Unwrap returns the decorated store.
func (s *Store) Unwrap() store.Store {
	return s.next
}

func (s *Store) observe(op string, start time.Time, err error) {
	metrics.StoreOpObserve(s.driver, op, time.Since(start), err)
}

func (s *Store) UpsertUser(ctx context.Context, address common.Address) (*store.UserRecord, error) {
	start := time.Now()
	user, err := s.next.UpsertUser(ctx, address)
	s.observe("upsert_user", start, err)
	return user, err
}

func (s *Store) GetUser(ctx context.Context, address common.Address) (*store.UserRecord, error) {
	start := time.Now()
	user, err := s.next.GetUser(ctx, address)
	s.observe("get_user", start, err)
	return user, err
}

func (s *Store) UpdateUser(ctx context.Context, address common.Address, update store.UserUpdate) error {
	start := time.Now()
	err := s.next.UpdateUser(ctx, address, update)
	s.observe("update_user", start, err)
	return err
}

func (s *Store) InsertEvent(ctx context.Context, event *store.EventRow) (bool, error) {
	start := time.Now()
	inserted, err := s.next.InsertEvent(ctx, event)
	s.observe("insert_event", start, err)
	return inserted, err
}

func (s *Store) ListEventsByUser(ctx context.Context, address common.Address,
	page store.Page) ([]*store.EventRow, error) {
	start := time.Now()
	rows, err := s.next.ListEventsByUser(ctx, address, page)
	s.observe("list_events_by_user", start, err)
	return rows, err
}

func (s *Store) ListAllEvents(ctx context.Context, page store.Page) ([]*store.EventRow, error) {
	start := time.Now()
	rows, err := s.next.ListAllEvents(ctx, page)
	s.observe("list_all_events", start, err)
	return rows, err
}

func (s *Store) ListUsersPaginated(ctx context.Context, page store.Page) ([]*store.UserRecord, error) {
	start := time.Now()
	users, err := s.next.ListUsersPaginated(ctx, page)
	s.observe("list_users", start, err)
	return users, err
}

func (s *Store) Summary(ctx context.Context) (*store.Summary, error) {
	start := time.Now()
	sum, err := s.next.Summary(ctx)
	s.observe("summary", start, err)
	return sum, err
}

// WithTx times the whole transaction. Calls made inside fn are recorded individually as well.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Store) error) error {
	start := time.Now()
	err := s.next.WithTx(ctx, func(tx store.Store) error {
		return fn(Wrap(tx, s.driver))
	})
	s.observe("transaction", start, err)
	return err
}

func (s *Store) Close() error {
	return s.next.Close()
}
