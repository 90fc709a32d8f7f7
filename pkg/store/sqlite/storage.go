package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const EphemerisSamplesSchema = `
	CREATE TABLE IF NOT EXISTS ephemeris_samples (
		body        INTEGER NOT NULL,
		julian_day  REAL NOT NULL,
		longitude   REAL NOT NULL,
		latitude    REAL NOT NULL DEFAULT 0,
		distance    REAL NOT NULL DEFAULT 0,
		speed       REAL NOT NULL DEFAULT 0,
		PRIMARY KEY (body, julian_day)
	);
`
const CalculationHistorySchema = `
	CREATE TABLE IF NOT EXISTS calculation_history (
		id          TEXT PRIMARY KEY,
		kind        TEXT NOT NULL,
		subject     TEXT NOT NULL,
		summary     TEXT,
		created_at  INTEGER NOT NULL
	);
`
const CalculationHistoryIndex = `
	CREATE INDEX IF NOT EXISTS idx_history_created ON calculation_history(created_at);
`

var bootQueries = []string{
	EphemerisSamplesSchema,
	CalculationHistorySchema,
	CalculationHistoryIndex,
}

type Settings struct {
	DbPath string
}

// NewDB opens (or creates) the SQLite database and applies the schema.
func NewDB(ctx context.Context, settings Settings) (*sql.DB, error) {
	if settings.DbPath == "" {
		return nil, fmt.Errorf("database path is required")
	}

	db, err := sql.Open("sqlite", settings.DbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single connection keeps :memory: databases shared across queries
	db.SetMaxOpenConns(1)

	if settings.DbPath != ":memory:" {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("set WAL mode: %w", err)
		}
	}

	for _, query := range bootQueries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}

	return db, nil
}
