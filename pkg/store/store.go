// Package store defines the durable persistence contract for users and events.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidPage is returned for a pagination request with limit <= 0 or offset < 0.
var ErrInvalidPage = errors.New("invalid page")

// PersistenceError wraps a failed store operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Wrap returns err as a *PersistenceError for op, nil stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// Store persists users and the events attributed to them.
type Store interface {
	// UpsertUser creates the user when absent and returns the stored row. An existing row is left untouched.
	UpsertUser(ctx context.Context, address common.Address) (*UserRecord, error)

	// GetUser returns the user or ErrNotFound.
	GetUser(ctx context.Context, address common.Address) (*UserRecord, error)

	// UpdateUser writes exactly the fields set in update plus the update timestamp.
	UpdateUser(ctx context.Context, address common.Address, update UserUpdate) error

	// InsertEvent appends an event row. It reports false when the row already exists
	// for the same transaction, log index and user.
	InsertEvent(ctx context.Context, event *EventRow) (bool, error)

	// ListEventsByUser returns the events attributed to address, newest first.
	ListEventsByUser(ctx context.Context, address common.Address, page Page) ([]*EventRow, error)

	// ListAllEvents returns all events, newest first.
	ListAllEvents(ctx context.Context, page Page) ([]*EventRow, error)

	// ListUsersPaginated returns users, most recently created first.
	ListUsersPaginated(ctx context.Context, page Page) ([]*UserRecord, error)

	// Summary returns table level totals.
	Summary(ctx context.Context) (*Summary, error)

	// WithTx runs fn against a Store bound to one transaction. The transaction commits when fn returns
	// nil and rolls back otherwise. Calling WithTx on the Store passed to fn runs in the same transaction.
	WithTx(ctx context.Context, fn func(tx Store) error) error

	// Close releases the underlying connections.
	Close() error
}

// Page is a limit/offset window.
type Page struct {
	Limit  int
	Offset int
}

// Validate enforces limit > 0 and offset >= 0.
func (p Page) Validate() error {
	if p.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidPage, p.Limit)
	}
	if p.Offset < 0 {
		return fmt.Errorf("%w: offset must not be negative, got %d", ErrInvalidPage, p.Offset)
	}
	return nil
}

// UserRecord is the durable aggregate of one address.
type UserRecord struct {
	ID                           int64           `meddler:"id,pk" json:"id"`
	Address                      common.Address  `meddler:"address,address" json:"address"`
	TotalReferrals               int64           `meddler:"total_referrals" json:"total_referrals"`
	TotalRewards                 decimal.Decimal `meddler:"total_rewards,decimal" json:"total_rewards"`
	IsRegistered                 bool            `meddler:"is_registered" json:"is_registered"`
	AscensionBonusReferrals      int64           `meddler:"ascension_bonus_referrals" json:"ascension_bonus_referrals"`
	AscensionBonusSalesTotal     decimal.Decimal `meddler:"ascension_bonus_sales_total,decimal" json:"ascension_bonus_sales_total"`
	AscensionBonusRewardsClaimed decimal.Decimal `meddler:"ascension_bonus_rewards_claimed,decimal" json:"ascension_bonus_rewards_claimed"` //nolint:lll
	CreatedAt                    time.Time       `meddler:"created_at,utctime" json:"created_at"`
	UpdatedAt                    time.Time       `meddler:"updated_at,utctime" json:"updated_at"`
}

// Summary holds table level totals.
type Summary struct {
	TotalUsers      int64            `json:"total_users"`
	RegisteredUsers int64            `json:"registered_users"`
	TotalEvents     int64            `json:"total_events"`
	EventsByType    map[string]int64 `json:"events_by_type"`
	TotalRewards    decimal.Decimal  `json:"total_rewards"`
	FirstBlock      uint64           `json:"first_block"`
	LastBlock       uint64           `json:"last_block"`
}
