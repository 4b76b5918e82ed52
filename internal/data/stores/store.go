// Package stores implements SQLite-backed persistence for the console.
package stores

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// migration is a single schema change applied in version order.
type migration struct {
	version int
	stmt    string
}

var migrations = []migration{
	{
		version: 1,
		stmt: `
		CREATE TABLE notifications (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			notify_id  INTEGER NOT NULL,
			kind       TEXT NOT NULL,
			title      TEXT NOT NULL,
			body       TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX idx_notifications_created_at ON notifications(created_at);
		`,
	},
}

// Open opens (or creates) the SQLite database at dbPath, enables WAL mode,
// and runs any pending schema migrations. Pass ":memory:" for an ephemeral
// database.
func Open(dbPath string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func runMigrations(db *sqlx.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	var currentVersion int
	if err := db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version"); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}

		tx, err := db.Beginx()
		if err != nil {
			return fmt.Errorf("beginning migration %d: %w", m.version, err)
		}

		if _, err := tx.Exec(m.stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("applying migration %d: %w", m.version, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", m.version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", m.version, err)
		}
	}

	return nil
}
