package aggregator

import (
	"context"
	"fmt"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/ChainActivity/internal/logger"
	"github.com/goran-ethernal/ChainActivity/pkg/activity"
	"github.com/goran-ethernal/ChainActivity/pkg/store"
)

const durableBackendName = "durable"

// DurableBackend writes users and event rows to a store.Store.
//
// Counter updates are read-modify-write through GetUser/UpdateUser. They are correct only while a
// single process writes to the store.
type DurableBackend struct {
	store store.Store
	log   *logger.Logger
}

// NewDurableBackend creates a backend over s.
func NewDurableBackend(s store.Store, log *logger.Logger) *DurableBackend {
	return &DurableBackend{store: s, log: log}
}

// Name returns "durable".
func (d *DurableBackend) Name() string {
	return durableBackendName
}

// Append upserts every participant and inserts one event row per participant. Payload counters are
// applied only when at least one row was new, so re-scanning a range leaves the counters unchanged.
// Rows and counters of one event commit together: a failure leaves neither behind, and a re-scan
// applies both.
func (d *DurableBackend) Append(ctx context.Context, ev *activity.Event, participants []common.Address) (int, error) {
	var added int
	err := d.store.WithTx(ctx, func(tx store.Store) error {
		added = 0
		for _, addr := range participants {
			if _, err := tx.UpsertUser(ctx, addr); err != nil {
				return err
			}

			row, err := store.NewEventRow(ev, addr)
			if err != nil {
				return err
			}

			inserted, err := tx.InsertEvent(ctx, row)
			if err != nil {
				return err
			}
			if inserted {
				added++
			}
		}

		if added == 0 {
			d.log.Debugw("event already stored", "event", ev.Key().String())
			return nil
		}

		if err := applyCounters(ctx, tx, ev.Payload); err != nil {
			return fmt.Errorf("apply counters of %s: %w", ev.Key(), err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return added, nil
}

func applyCounters(ctx context.Context, tx store.Store, payload activity.Payload) error {
	switch p := payload.(type) {
	case activity.Registered:
		if err := update(ctx, tx, p.User, func(*store.UserRecord) store.UserUpdate {
			registered := true
			return store.UserUpdate{IsRegistered: &registered}
		}); err != nil {
			return err
		}
		return update(ctx, tx, p.Referrer, func(u *store.UserRecord) store.UserUpdate {
			referrals := u.TotalReferrals + 1
			return store.UserUpdate{TotalReferrals: &referrals}
		})

	case activity.ReferralRewardPaid:
		return update(ctx, tx, p.Referrer, func(u *store.UserRecord) store.UserUpdate {
			total := u.TotalRewards.Add(store.Decimal(p.Amount))
			return store.UserUpdate{TotalRewards: &total}
		})

	case activity.AscensionBonusUnlocked:
		return update(ctx, tx, p.User, func(*store.UserRecord) store.UserUpdate {
			referrals := clampInt64(p.Referrals)
			return store.UserUpdate{AscensionBonusReferrals: &referrals}
		})

	case activity.PackagePurchased:
		return update(ctx, tx, p.Referrer, func(u *store.UserRecord) store.UserUpdate {
			total := u.AscensionBonusSalesTotal.Add(store.Decimal(p.Amount))
			return store.UserUpdate{AscensionBonusSalesTotal: &total}
		})

	case activity.AscensionBonusClaimed:
		return update(ctx, tx, p.User, func(u *store.UserRecord) store.UserUpdate {
			total := u.AscensionBonusRewardsClaimed.Add(store.Decimal(p.Amount))
			return store.UserUpdate{AscensionBonusRewardsClaimed: &total}
		})
	}

	return nil
}

// update reads the user, creating it when needed, and writes the fields returned by change.
// The zero address is never a user.
func update(ctx context.Context, tx store.Store, addr common.Address,
	change func(*store.UserRecord) store.UserUpdate) error {
	if addr == (common.Address{}) {
		return nil
	}

	user, err := tx.UpsertUser(ctx, addr)
	if err != nil {
		return err
	}

	return tx.UpdateUser(ctx, addr, change(user))
}

func clampInt64(v *big.Int) int64 {
	switch {
	case v == nil:
		return 0
	case v.IsInt64():
		return v.Int64()
	case v.Sign() < 0:
		return math.MinInt64
	default:
		return math.MaxInt64
	}
}
