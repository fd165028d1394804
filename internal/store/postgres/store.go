// Package postgres implements store.Store over PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/ChainActivity/internal/logger"
	"github.com/goran-ethernal/ChainActivity/internal/migrations"
	"github.com/goran-ethernal/ChainActivity/pkg/config"
	"github.com/goran-ethernal/ChainActivity/pkg/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
)

// Amount columns are NUMERIC(78,0). Values are bound as text and cast server side, and read back as text,
// so they never pass through a float.
const (
	userColumns = `id, address, total_referrals, total_rewards::text, is_registered, ascension_bonus_referrals,
		ascension_bonus_sales_total::text, ascension_bonus_rewards_claimed::text, created_at, updated_at`

	eventColumns = `id, event_type, user_address, package_id::text, amount::text, referrer_address,
		transaction_hash, log_index, block_number, timestamp, contract_address, sender_address,
		recipient_address, value::text, gas_used, status, event_signature, event_data::text, created_at`

	eventOrder = `ORDER BY timestamp DESC, block_number DESC, log_index DESC, id DESC`
)

var _ store.Store = (*Store)(nil)

// querier is satisfied by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is a PostgreSQL backed store.Store. Updates are read-modify-write, so one process must be the only writer.
type Store struct {
	pool *pgxpool.Pool
	q    querier
	tx   bool
	log  *logger.Logger
}

// Open connects to cfg.DSN and applies the schema.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) (*Store, error) {
	if cfg.DSN == "" {
		return nil, store.Wrap("open", errors.New("postgres dsn is required"))
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, store.Wrap("open", fmt.Errorf("failed to parse dsn: %w", err))
	}
	if cfg.MaxOpenConnections > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConnections) //nolint:gosec
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, store.Wrap("open", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, store.Wrap("open", err)
	}

	// sql-migrate needs a database/sql handle; it borrows connections from the pool.
	if err := migrations.RunPostgres(log, stdlib.OpenDBFromPool(pool)); err != nil {
		pool.Close()
		return nil, store.Wrap("migrate", err)
	}

	return &Store{pool: pool, q: pool, log: log}, nil
}

// UpsertUser creates the user row when absent and returns the stored row.
func (s *Store) UpsertUser(ctx context.Context, address common.Address) (*store.UserRecord, error) {
	tag, err := s.q.Exec(ctx,
		`INSERT INTO users (address) VALUES ($1) ON CONFLICT (address) DO NOTHING`, address.Hex())
	if err != nil {
		return nil, store.Wrap("upsert user", err)
	}
	if tag.RowsAffected() > 0 {
		s.log.Debugw("user created", "address", address.Hex())
	}

	user, err := s.GetUser(ctx, address)
	if err != nil {
		return nil, store.Wrap("upsert user", err)
	}

	return user, nil
}

// GetUser returns the user or store.ErrNotFound.
func (s *Store) GetUser(ctx context.Context, address common.Address) (*store.UserRecord, error) {
	row := s.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE address = $1`, address.Hex())

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.Wrap("get user", fmt.Errorf("user %s: %w", address.Hex(), store.ErrNotFound))
		}
		return nil, store.Wrap("get user", err)
	}

	return user, nil
}

// UpdateUser writes the supplied fields and refreshes updated_at.
func (s *Store) UpdateUser(ctx context.Context, address common.Address, update store.UserUpdate) error {
	query, args := buildUpdate(address, update)

	tag, err := s.q.Exec(ctx, query, args...)
	if err != nil {
		return store.Wrap("update user", err)
	}
	if tag.RowsAffected() == 0 {
		return store.Wrap("update user", fmt.Errorf("user %s: %w", address.Hex(), store.ErrNotFound))
	}

	return nil
}

func buildUpdate(address common.Address, update store.UserUpdate) (string, []any) {
	assignments := update.Assignments()

	sets := make([]string, 0, len(assignments)+1)
	args := make([]any, 0, len(assignments)+1)
	for _, a := range assignments {
		args = append(args, a.Value)
		if a.Kind == store.KindDecimal {
			sets = append(sets, fmt.Sprintf("%s = $%d::text::numeric", a.Column, len(args)))
		} else {
			sets = append(sets, fmt.Sprintf("%s = $%d", a.Column, len(args)))
		}
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, address.Hex())

	return fmt.Sprintf("UPDATE users SET %s WHERE address = $%d", strings.Join(sets, ", "), len(args)), args
}

// InsertEvent appends the row unless the (transaction_hash, log_index, user_address) index already holds it.
func (s *Store) InsertEvent(ctx context.Context, event *store.EventRow) (bool, error) {
	const query = `
		INSERT INTO events (
			event_type, user_address, package_id, amount, referrer_address, transaction_hash, log_index,
			block_number, timestamp, contract_address, sender_address, recipient_address, value, gas_used,
			status, event_signature, event_data
		) VALUES (
			$1, $2, $3::text::numeric, $4::text::numeric, $5, $6, $7,
			$8, $9, $10, $11, $12, $13::text::numeric, $14,
			$15, $16, $17::jsonb
		)
		ON CONFLICT (transaction_hash, log_index, user_address) DO NOTHING
		RETURNING id`

	var id int64
	err := s.q.QueryRow(ctx, query,
		event.EventType,
		event.UserAddress.Hex(),
		optionalDecimal(event.PackageID),
		optionalDecimal(event.Amount),
		optionalAddress(event.ReferrerAddress),
		event.TransactionHash.Hex(),
		int64(event.LogIndex),    //nolint:gosec
		int64(event.BlockNumber), //nolint:gosec
		int64(event.Timestamp),   //nolint:gosec
		event.ContractAddress.Hex(),
		event.SenderAddress.Hex(),
		optionalAddress(event.RecipientAddress),
		event.Value.String(),
		int64(event.GasUsed), //nolint:gosec
		int16(event.Status),
		event.EventSignature.Hex(),
		event.EventData,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, store.Wrap("insert event", err)
	}

	event.ID = id
	return true, nil
}

// ListEventsByUser returns the events attributed to address, newest first.
func (s *Store) ListEventsByUser(ctx context.Context, address common.Address, page store.Page) ([]*store.EventRow, error) {
	if err := page.Validate(); err != nil {
		return nil, store.Wrap("list events by user", err)
	}

	rows, err := s.q.Query(ctx,
		`SELECT `+eventColumns+` FROM events WHERE user_address = $1 `+eventOrder+` LIMIT $2 OFFSET $3`,
		address.Hex(), page.Limit, page.Offset)
	if err != nil {
		return nil, store.Wrap("list events by user", err)
	}

	events, err := pgx.CollectRows(rows, scanEventRow)
	if err != nil {
		return nil, store.Wrap("list events by user", err)
	}

	return events, nil
}

// ListAllEvents returns every event row, newest first.
func (s *Store) ListAllEvents(ctx context.Context, page store.Page) ([]*store.EventRow, error) {
	if err := page.Validate(); err != nil {
		return nil, store.Wrap("list events", err)
	}

	rows, err := s.q.Query(ctx,
		`SELECT `+eventColumns+` FROM events `+eventOrder+` LIMIT $1 OFFSET $2`, page.Limit, page.Offset)
	if err != nil {
		return nil, store.Wrap("list events", err)
	}

	events, err := pgx.CollectRows(rows, scanEventRow)
	if err != nil {
		return nil, store.Wrap("list events", err)
	}

	return events, nil
}

// ListUsersPaginated returns users, most recently created first.
func (s *Store) ListUsersPaginated(ctx context.Context, page store.Page) ([]*store.UserRecord, error) {
	if err := page.Validate(); err != nil {
		return nil, store.Wrap("list users", err)
	}

	rows, err := s.q.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`,
		page.Limit, page.Offset)
	if err != nil {
		return nil, store.Wrap("list users", err)
	}

	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*store.UserRecord, error) {
		return scanUser(row)
	})
	if err != nil {
		return nil, store.Wrap("list users", err)
	}

	return users, nil
}

// Summary returns table level totals. Event counts are over distinct logs, not attribution rows.
func (s *Store) Summary(ctx context.Context) (*store.Summary, error) {
	sum := &store.Summary{EventsByType: make(map[string]int64)}

	var rewards string
	err := s.q.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_registered), COALESCE(SUM(total_rewards), 0)::text
		FROM users`).Scan(&sum.TotalUsers, &sum.RegisteredUsers, &rewards)
	if err != nil {
		return nil, store.Wrap("summary", err)
	}
	if sum.TotalRewards, err = decimal.NewFromString(rewards); err != nil {
		return nil, store.Wrap("summary", err)
	}

	rows, err := s.q.Query(ctx, `
		SELECT event_type, COUNT(*) FROM (
			SELECT DISTINCT transaction_hash, log_index, event_type FROM events
		) AS distinct_events GROUP BY event_type`)
	if err != nil {
		return nil, store.Wrap("summary", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			name  string
			count int64
		)
		if err := rows.Scan(&name, &count); err != nil {
			return nil, store.Wrap("summary", err)
		}
		sum.EventsByType[name] = count
		sum.TotalEvents += count
	}
	if err := rows.Err(); err != nil {
		return nil, store.Wrap("summary", err)
	}

	var first, last int64
	err = s.q.QueryRow(ctx,
		`SELECT COALESCE(MIN(block_number), 0), COALESCE(MAX(block_number), 0) FROM events`).Scan(&first, &last)
	if err != nil {
		return nil, store.Wrap("summary", err)
	}
	sum.FirstBlock, sum.LastBlock = uint64(first), uint64(last) //nolint:gosec

	return sum, nil
}

// WithTx runs fn in one transaction.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Store) error) error {
	if s.tx {
		return fn(s)
	}

	var fnErr error
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		fnErr = fn(&Store{pool: s.pool, q: tx, tx: true, log: s.log})
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}

	return store.Wrap("transaction", err)
}

// Close releases the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
