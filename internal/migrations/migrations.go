// Package migrations holds the users/events schema for every durable store.
package migrations

import (
	"database/sql"
	_ "embed"

	"github.com/goran-ethernal/ChainActivity/internal/db"
	"github.com/goran-ethernal/ChainActivity/internal/logger"
)

//go:embed 001_users_events.sqlite.sql
var sqlite001 string

//go:embed 001_users_events.postgres.sql
var postgres001 string

// SQLite returns the SQLite schema migrations in order.
func SQLite() []db.Migration {
	return []db.Migration{
		{ID: "001_users_events.sql", SQL: sqlite001},
	}
}

// Postgres returns the PostgreSQL schema migrations in order.
func Postgres() []db.Migration {
	return []db.Migration{
		{ID: "001_users_events.sql", SQL: postgres001},
	}
}

// RunSQLite brings a SQLite database to the latest schema.
func RunSQLite(log *logger.Logger, conn *sql.DB) error {
	return db.RunMigrationsDB(log, conn, db.DialectSQLite, SQLite())
}

// RunPostgres brings a PostgreSQL database to the latest schema.
func RunPostgres(log *logger.Logger, conn *sql.DB) error {
	return db.RunMigrationsDB(log, conn, db.DialectPostgres, Postgres())
}
