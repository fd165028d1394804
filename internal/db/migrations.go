package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/goran-ethernal/ChainActivity/internal/logger"
	migrate "github.com/rubenv/sql-migrate"
)

// sql-migrate dialects.
const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "postgres"
)

const (
	UpDownSeparator     = "-- +migrate Up"
	downMarker          = "-- +migrate Down"
	dbPrefixReplacer    = "/*dbprefix*/"
	NoLimitMigrations   = 0 // indicate that there is no limit on the number of migrations to run
	migrationDirections = 2
)

// Migration is one schema change. SQL holds the Down section followed by the Up section.
type Migration struct {
	ID     string
	SQL    string
	Prefix string
}

// RunMigrationsDB applies every pending migration.
func RunMigrationsDB(log *logger.Logger, db *sql.DB, dialect string, migrations []Migration) error {
	return RunMigrationsDBExtended(log, db, dialect, migrations, migrate.Up, NoLimitMigrations)
}

// RunMigrationsDBExtended is an extended version of RunMigrationsDB that allows
// dir: can be migrate.Up or migrate.Down
// maxMigrations: Will apply at most `max` migrations. Pass 0 for no limit
func RunMigrationsDBExtended(log *logger.Logger,
	db *sql.DB,
	dialect string,
	migrations []Migration,
	dir migrate.MigrationDirection,
	maxMigrations int) error {
	source, err := memorySource(migrations)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(source.Migrations))
	for _, m := range source.Migrations {
		ids = append(ids, m.Id)
	}
	list := strings.Join(ids, ", ")

	log.Debugf("running %s migrations: (max %d/%d) migrations: %s", dialect, maxMigrations, len(ids), list)

	n, err := migrate.ExecMax(db, dialect, source, dir, maxMigrations)
	if err != nil {
		return fmt.Errorf("error executing migration (max %d/%d) migrations: %s: %w",
			maxMigrations, len(ids), list, err)
	}

	log.Infof("successfully ran %d migrations from migrations: %s", n, list)
	return nil
}

func memorySource(migrations []Migration) (*migrate.MemoryMigrationSource, error) {
	source := &migrate.MemoryMigrationSource{Migrations: make([]*migrate.Migration, 0, len(migrations))}

	for _, m := range migrations {
		prefixed := strings.ReplaceAll(m.SQL, dbPrefixReplacer, m.Prefix)
		parts := strings.Split(prefixed, UpDownSeparator)
		if len(parts) < migrationDirections {
			return nil, fmt.Errorf("migration %s missing '%s' separator", m.ID, UpDownSeparator)
		}

		downSQL := parts[0]
		if idx := strings.Index(downSQL, downMarker); idx != -1 {
			downSQL = downSQL[idx+len(downMarker):]
		}

		source.Migrations = append(source.Migrations, &migrate.Migration{
			Id:   m.Prefix + m.ID,
			Up:   []string{strings.TrimSpace(parts[1])},
			Down: []string{strings.TrimSpace(downSQL)},
		})
	}

	return source, nil
}
