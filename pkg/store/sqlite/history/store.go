package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vedic-tools/jyotish-atlas/pkg/models/store"
	"github.com/vedic-tools/jyotish-atlas/pkg/store/sqlite"
)

const DefaultListLimit = 50

// Recorder persists finished calculations for later review.
type Recorder interface {
	Record(ctx context.Context, record store.CalculationRecord) (string, error)
	List(ctx context.Context, limit int) ([]store.CalculationRecord, error)
}

type sqliteRecorder struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) (Recorder, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &sqliteRecorder{db: db, now: time.Now}, nil
}

// Record stores record, assigning an id and timestamp when they are empty.
func (r *sqliteRecorder) Record(ctx context.Context, record store.CalculationRecord) (string, error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = r.now()
	}

	_, err := sqlite.Conn(ctx, r.db).ExecContext(ctx, `
		INSERT INTO calculation_history (id, kind, subject, summary, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		record.ID,
		record.Kind,
		record.Subject,
		record.Summary,
		record.CreatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return "", fmt.Errorf("insert calculation %s: %w", record.Kind, err)
	}
	return record.ID, nil
}

// List returns the most recent records first.
func (r *sqliteRecorder) List(ctx context.Context, limit int) ([]store.CalculationRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	logger := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, kind, subject, summary, created_at
		FROM calculation_history
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query calculation history: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close history rows")
		}
	}(rows)

	var records []store.CalculationRecord
	for rows.Next() {
		var (
			rec     store.CalculationRecord
			summary sql.NullString
			created int64
		)
		if err := rows.Scan(&rec.ID, &rec.Kind, &rec.Subject, &summary, &created); err != nil {
			return nil, fmt.Errorf("scan calculation history: %w", err)
		}
		rec.Summary = summary.String
		rec.CreatedAt = time.UnixMilli(created).UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}

// NoopRecorder is used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (NoopRecorder) Record(_ context.Context, record store.CalculationRecord) (string, error) {
	return record.ID, nil
}

func (NoopRecorder) List(_ context.Context, _ int) ([]store.CalculationRecord, error) {
	return nil, nil
}
