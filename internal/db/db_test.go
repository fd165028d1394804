package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/ChainActivity/pkg/config"
	"github.com/russross/meddler"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T, journal string, rows int) (*sql.DB, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")

	dbConfig := config.DatabaseConfig{Driver: config.DriverSQLite, Path: dbPath, JournalMode: journal}
	dbConfig.ApplyDefaults()

	sqlDB, err := NewSQLiteDBFromConfig(dbConfig)
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	_, err = sqlDB.Exec(`CREATE TABLE IF NOT EXISTS test_table (id INTEGER PRIMARY KEY, value TEXT);`)
	require.NoError(t, err)

	for i := range rows {
		_, err = sqlDB.Exec(`INSERT INTO test_table (value) VALUES (?);`, fmt.Sprintf("value_%d", i))
		require.NoError(t, err)
	}

	return sqlDB, dbPath
}

func TestNewSQLiteDBFromConfig_AppliesSettings(t *testing.T) {
	db, _ := setupTestDB(t, "WAL", 0)

	var mode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	require.Equal(t, "wal", mode)

	var fk int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	require.Equal(t, 1, fk)
}

func TestNewSQLiteDB_InvalidPath(t *testing.T) {
	_, err := NewSQLiteDB(filepath.Join(t.TempDir(), "missing", "dir", "test.db"))
	require.Error(t, err)
}

func TestDBTotalSize(t *testing.T) {
	testCases := []struct {
		name       string
		files      map[string]string // suffix -> content
		expectSize int64
	}{
		{name: "MainOnly", files: map[string]string{"": "main-db-content"}, expectSize: 15},
		{
			name:       "WithWALAndSHM",
			files:      map[string]string{"": "main-db", "-wal": "wal-content", "-shm": "shm-content"},
			expectSize: 29,
		},
		{name: "MissingFiles", files: nil, expectSize: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mainPath := filepath.Join(t.TempDir(), "main.db")
			for suffix, content := range tc.files {
				require.NoError(t, os.WriteFile(mainPath+suffix, []byte(content), 0o600))
			}

			size, err := DBTotalSize(mainPath)
			require.NoError(t, err)
			require.Equal(t, tc.expectSize, size)
		})
	}
}

type meddlerRow struct {
	ID       int64            `meddler:"id,pk"`
	Address  common.Address   `meddler:"address,address"`
	Optional *common.Address  `meddler:"optional,address"`
	Hash     common.Hash      `meddler:"hash,hash"`
	Amount   decimal.Decimal  `meddler:"amount,decimal"`
	Maybe    *decimal.Decimal `meddler:"maybe,decimal"`
}

func TestMeddlers_RoundTrip(t *testing.T) {
	db, _ := setupTestDB(t, "WAL", 0)

	_, err := db.Exec(`CREATE TABLE meddler_row (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		address TEXT NOT NULL,
		optional TEXT,
		hash TEXT NOT NULL,
		amount TEXT NOT NULL,
		maybe TEXT
	)`)
	require.NoError(t, err)

	big, err := decimal.NewFromString("115792089237316195423570985008687907853269984665640564039457584007913129639935")
	require.NoError(t, err)

	rows := []*meddlerRow{
		{
			Address: common.HexToAddress("0x1111111111111111111111111111111111111111"),
			Hash:    common.HexToHash("0xabc"),
			Amount:  big,
		},
		{
			Address:  common.HexToAddress("0x2222222222222222222222222222222222222222"),
			Optional: &common.Address{0x01},
			Hash:     common.HexToHash("0xdef"),
			Amount:   decimal.NewFromInt(7),
			Maybe:    &big,
		},
	}

	for _, row := range rows {
		require.NoError(t, meddler.Insert(db, "meddler_row", row))
	}

	var got []*meddlerRow
	require.NoError(t, meddler.QueryAll(db, &got, "SELECT * FROM meddler_row ORDER BY id"))
	require.Len(t, got, 2)

	require.Equal(t, rows[0].Address, got[0].Address)
	require.Nil(t, got[0].Optional)
	require.Nil(t, got[0].Maybe)
	require.True(t, big.Equal(got[0].Amount), "256-bit values survive without rounding")

	require.Equal(t, rows[1].Optional, got[1].Optional)
	require.Equal(t, rows[1].Hash, got[1].Hash)
	require.True(t, big.Equal(*got[1].Maybe))
}
