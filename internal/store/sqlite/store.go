// Package sqlite implements store.Store over a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/ChainActivity/internal/db"
	"github.com/goran-ethernal/ChainActivity/internal/logger"
	"github.com/goran-ethernal/ChainActivity/internal/migrations"
	"github.com/goran-ethernal/ChainActivity/pkg/config"
	"github.com/goran-ethernal/ChainActivity/pkg/store"
	"github.com/russross/meddler"
	"github.com/shopspring/decimal"
)

const (
	eventsTable = "events"

	nowUTC = `strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`

	eventOrder = `ORDER BY timestamp DESC, block_number DESC, log_index DESC, id DESC`
)

var _ store.Store = (*Store)(nil)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is a SQLite backed store.Store. Updates are read-modify-write, so one process must be the only writer.
type Store struct {
	db  *sql.DB
	q   querier
	tx  bool
	log *logger.Logger
}

// Open opens the database described by cfg and applies the schema.
func Open(cfg config.DatabaseConfig, log *logger.Logger) (*Store, error) {
	conn, err := db.NewSQLiteDBFromConfig(cfg)
	if err != nil {
		return nil, store.Wrap("open", err)
	}

	if err := migrations.RunSQLite(log, conn); err != nil {
		conn.Close()
		return nil, store.Wrap("migrate", err)
	}

	return New(conn, log), nil
}

// New wraps an already migrated database.
func New(conn *sql.DB, log *logger.Logger) *Store {
	return &Store{db: conn, q: conn, log: log}
}

// DB exposes the underlying handle for maintenance.
func (s *Store) DB() *sql.DB {
	return s.db
}

// UpsertUser creates the user row when absent and returns the stored row.
func (s *Store) UpsertUser(ctx context.Context, address common.Address) (*store.UserRecord, error) {
	const insertQuery = `INSERT OR IGNORE INTO users (address) VALUES (?)`

	res, err := s.q.ExecContext(ctx, insertQuery, address.Hex())
	if err != nil {
		return nil, store.Wrap("upsert user", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
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
	const query = `SELECT * FROM users WHERE address = ?`

	rows, err := s.q.QueryContext(ctx, query, address.Hex())
	if err != nil {
		return nil, store.Wrap("get user", err)
	}
	defer rows.Close()

	var user store.UserRecord
	if err := meddler.SQLite.ScanRow(rows, &user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.Wrap("get user", fmt.Errorf("user %s: %w", address.Hex(), store.ErrNotFound))
		}
		return nil, store.Wrap("get user", err)
	}

	return &user, nil
}

// UpdateUser writes the supplied fields and refreshes updated_at.
func (s *Store) UpdateUser(ctx context.Context, address common.Address, update store.UserUpdate) error {
	assignments := update.Assignments()

	sets := make([]string, 0, len(assignments)+1)
	args := make([]any, 0, len(assignments)+1)
	for _, a := range assignments {
		sets = append(sets, a.Column+" = ?")
		args = append(args, a.Value)
	}
	sets = append(sets, "updated_at = "+nowUTC)
	args = append(args, address.Hex())

	query := fmt.Sprintf(`UPDATE users SET %s WHERE address = ?`, strings.Join(sets, ", "))

	res, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return store.Wrap("update user", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return store.Wrap("update user", fmt.Errorf("user %s: %w", address.Hex(), store.ErrNotFound))
	}

	return nil
}

// InsertEvent appends the row unless the (transaction_hash, log_index, user_address) index already holds it.
func (s *Store) InsertEvent(ctx context.Context, event *store.EventRow) (bool, error) {
	columns, err := meddler.SQLite.Columns(event, false)
	if err != nil {
		return false, store.Wrap("insert event", err)
	}
	values, err := meddler.SQLite.Values(event, false)
	if err != nil {
		return false, store.Wrap("insert event", err)
	}

	// created_at comes from the column default
	if i := slices.Index(columns, "created_at"); i >= 0 {
		columns = slices.Delete(columns, i, i+1)
		values = slices.Delete(values, i, i+1)
	}

	query := fmt.Sprintf(`INSERT OR IGNORE INTO %s (%s) VALUES (%s)`,
		eventsTable, strings.Join(columns, ", "), strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", "))

	res, err := s.q.ExecContext(ctx, query, values...)
	if err != nil {
		return false, store.Wrap("insert event", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return false, nil
	}

	if id, err := res.LastInsertId(); err == nil {
		event.ID = id
	}

	return true, nil
}

// ListEventsByUser returns the events attributed to address, newest first.
func (s *Store) ListEventsByUser(ctx context.Context, address common.Address, page store.Page) ([]*store.EventRow, error) {
	if err := page.Validate(); err != nil {
		return nil, store.Wrap("list events by user", err)
	}

	query := `SELECT * FROM events WHERE user_address = ? ` + eventOrder + ` LIMIT ? OFFSET ?`

	events, err := s.queryAll(ctx, query, address.Hex(), page.Limit, page.Offset)
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

	query := `SELECT * FROM events ` + eventOrder + ` LIMIT ? OFFSET ?`

	events, err := s.queryAll(ctx, query, page.Limit, page.Offset)
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

	const query = `SELECT * FROM users ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`

	rows, err := s.q.QueryContext(ctx, query, page.Limit, page.Offset)
	if err != nil {
		return nil, store.Wrap("list users", err)
	}
	defer rows.Close()

	var users []*store.UserRecord
	if err := meddler.SQLite.ScanAll(rows, &users); err != nil {
		return nil, store.Wrap("list users", err)
	}

	return users, nil
}

// Summary returns table level totals. Event counts are over distinct logs, not attribution rows.
func (s *Store) Summary(ctx context.Context) (*store.Summary, error) {
	sum := &store.Summary{EventsByType: make(map[string]int64), TotalRewards: decimal.Zero}

	const usersQuery = `SELECT COUNT(*), COALESCE(SUM(is_registered), 0) FROM users`
	if err := s.q.QueryRowContext(ctx, usersQuery).Scan(&sum.TotalUsers, &sum.RegisteredUsers); err != nil {
		return nil, store.Wrap("summary", err)
	}

	// amounts are TEXT, SUM would go through REAL
	rewards, err := s.q.QueryContext(ctx, `SELECT total_rewards FROM users`)
	if err != nil {
		return nil, store.Wrap("summary", err)
	}
	defer rewards.Close()
	for rewards.Next() {
		var raw string
		if err := rewards.Scan(&raw); err != nil {
			return nil, store.Wrap("summary", err)
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, store.Wrap("summary", fmt.Errorf("invalid total_rewards %q: %w", raw, err))
		}
		sum.TotalRewards = sum.TotalRewards.Add(d)
	}
	if err := rewards.Err(); err != nil {
		return nil, store.Wrap("summary", err)
	}

	const byTypeQuery = `
		SELECT event_type, COUNT(*) FROM (
			SELECT DISTINCT transaction_hash, log_index, event_type FROM events
		) GROUP BY event_type`
	types, err := s.q.QueryContext(ctx, byTypeQuery)
	if err != nil {
		return nil, store.Wrap("summary", err)
	}
	defer types.Close()
	for types.Next() {
		var (
			name  string
			count int64
		)
		if err := types.Scan(&name, &count); err != nil {
			return nil, store.Wrap("summary", err)
		}
		sum.EventsByType[name] = count
		sum.TotalEvents += count
	}
	if err := types.Err(); err != nil {
		return nil, store.Wrap("summary", err)
	}

	const blocksQuery = `SELECT COALESCE(MIN(block_number), 0), COALESCE(MAX(block_number), 0) FROM events`
	if err := s.q.QueryRowContext(ctx, blocksQuery).Scan(&sum.FirstBlock, &sum.LastBlock); err != nil {
		return nil, store.Wrap("summary", err)
	}

	return sum, nil
}

// WithTx runs fn in one database transaction.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Store) error) error {
	if s.tx {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Wrap("begin", err)
	}

	if err := fn(&Store{db: s.db, q: tx, tx: true, log: s.log}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.log.Errorw("rollback failed", "error", rbErr)
		}
		return err
	}

	return store.Wrap("commit", tx.Commit())
}

func (s *Store) queryAll(ctx context.Context, query string, args ...any) ([]*store.EventRow, error) {
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*store.EventRow
	if err := meddler.SQLite.ScanAll(rows, &events); err != nil {
		return nil, err
	}

	return events, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return store.Wrap("close", s.db.Close())
}
