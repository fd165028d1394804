package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/goran-ethernal/ChainActivity/internal/logger"
	"github.com/goran-ethernal/ChainActivity/pkg/config"
)

// Maintenance compacts a SQLite database once a scan has written to it.
type Maintenance struct {
	db     *sql.DB
	config config.MaintenanceConfig
	dbPath string
	log    *logger.Logger
}

// NewMaintenance creates the maintenance runner. A nil configuration disables it.
func NewMaintenance(dbPath string, db *sql.DB, cfg *config.MaintenanceConfig, log *logger.Logger) *Maintenance {
	m := &Maintenance{db: db, dbPath: dbPath, log: log}
	if cfg != nil {
		m.config = *cfg
	}
	return m
}

// Enabled reports whether Run does anything.
func (m *Maintenance) Enabled() bool {
	return m.config.Enabled
}

// Run checkpoints the WAL and optionally vacuums. The caller must ensure no writes are in flight.
func (m *Maintenance) Run(ctx context.Context) (err error) {
	if !m.config.Enabled {
		return nil
	}

	m.log.Info("starting database maintenance")
	start := time.Now()
	defer func() {
		observeStep("total", start)
		recordRun(err)
	}()

	sizeBefore, sizeErr := DBTotalSize(m.dbPath)
	if sizeErr != nil {
		m.log.Warnf("failed to get initial DB size: %v", sizeErr)
	}
	recordSize("before", sizeBefore)

	if err := m.walCheckpoint(ctx); err != nil {
		return fmt.Errorf("WAL checkpoint failed: %w", err)
	}

	if m.config.Vacuum {
		if err := m.vacuum(ctx); err != nil {
			return fmt.Errorf("VACUUM failed: %w", err)
		}
	}

	sizeAfter, sizeErr := DBTotalSize(m.dbPath)
	if sizeErr != nil {
		m.log.Warnf("failed to get final DB size: %v", sizeErr)
		return nil
	}
	recordSize("after", sizeAfter)

	m.log.Infow("maintenance completed",
		"duration", time.Since(start),
		"size_before", sizeBefore,
		"size_after", sizeAfter,
		"reclaimed", max(sizeBefore-sizeAfter, 0),
	)

	return nil
}

func (m *Maintenance) walCheckpoint(ctx context.Context) error {
	var mode string
	if err := m.db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode); err != nil {
		return fmt.Errorf("failed to check journal mode: %w", err)
	}
	if !strings.EqualFold(mode, "wal") {
		m.log.Debug("database not in WAL mode, skipping WAL checkpoint")
		return nil
	}

	defer observeStep("wal_checkpoint", time.Now())

	var busy, logFrames, checkpointed int
	query := fmt.Sprintf("PRAGMA wal_checkpoint(%s)", m.config.WALCheckpointMode)
	if err := m.db.QueryRowContext(ctx, query).Scan(&busy, &logFrames, &checkpointed); err != nil {
		return err
	}

	m.log.Debugw("WAL checkpoint complete",
		"mode", m.config.WALCheckpointMode,
		"busy", busy,
		"log_frames", logFrames,
		"checkpointed", checkpointed,
	)

	if busy > 0 {
		m.log.Warnf("WAL checkpoint encountered %d busy pages", busy)
	}

	return nil
}

func (m *Maintenance) vacuum(ctx context.Context) error {
	defer observeStep("vacuum", time.Now())

	if _, err := m.db.ExecContext(ctx, "VACUUM"); err != nil {
		if strings.Contains(err.Error(), "database is locked") {
			return fmt.Errorf("cannot vacuum: database is locked")
		}
		return err
	}

	return nil
}
