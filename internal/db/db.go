package db

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/goran-ethernal/ChainActivity/pkg/config"
	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteDB opens the SQLite database at dbPath with the default settings.
func NewSQLiteDB(dbPath string) (*sql.DB, error) {
	cfg := config.DatabaseConfig{Driver: config.DriverSQLite, Path: dbPath}
	cfg.ApplyDefaults()

	return NewSQLiteDBFromConfig(cfg)
}

// NewSQLiteDBFromConfig creates a new SQLite DB with the given configuration.
// Settings are passed in the DSN so every pooled connection gets them.
func NewSQLiteDBFromConfig(cfg config.DatabaseConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"file:%s?_txlock=immediate&_foreign_keys=on&_journal_mode=%s&_busy_timeout=%d&_synchronous=%s&_cache_size=%d",
		cfg.Path,
		cfg.JournalMode,
		cfg.BusyTimeout,
		cfg.Synchronous,
		cfg.CacheSize,
	)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Path, err)
	}

	return db, nil
}

// DBTotalSize returns the size of the database file plus its WAL and shared memory files.
// Missing files count as empty.
func DBTotalSize(dbPath string) (int64, error) {
	var total int64
	for _, path := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return 0, err
		}
		total += info.Size()
	}

	return total, nil
}
