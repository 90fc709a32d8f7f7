package ephemeris

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vedic-tools/jyotish-atlas/pkg/adapters"
	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
	"github.com/vedic-tools/jyotish-atlas/pkg/models/store"
	"github.com/vedic-tools/jyotish-atlas/pkg/store/sqlite"
)

// Store keeps tabulated ephemeris samples. It satisfies the SampleSource
// consumed by the ephemeris interpolator.
type Store interface {
	Add(ctx context.Context, samples []store.EphemerisSample) error
	Bracket(ctx context.Context, body domain.Body, jd float64) (before, after domain.EphemerisSample, err error)
	Coverage(ctx context.Context) ([]store.SampleCoverage, error)
}

const sampleColumns = `body, julian_day, longitude, latitude, distance, speed`

type sampleStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &sampleStore{db: db}, nil
}

func (s *sampleStore) Add(ctx context.Context, samples []store.EphemerisSample) error {
	if len(samples) == 0 {
		return nil
	}

	query := `
		INSERT INTO ephemeris_samples (` + sampleColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (body, julian_day) DO UPDATE SET
			longitude = excluded.longitude,
			latitude = excluded.latitude,
			distance = excluded.distance,
			speed = excluded.speed`

	stmt, err := sqlite.Conn(ctx, s.db).PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, sample := range samples {
		_, err = stmt.ExecContext(ctx,
			sample.Body,
			sample.JulianDay,
			sample.Longitude,
			sample.Latitude,
			sample.Distance,
			sample.Speed,
		)
		if err != nil {
			return fmt.Errorf("insert sample body=%d jd=%.5f: %w", sample.Body, sample.JulianDay, err)
		}
	}
	return nil
}

func (s *sampleStore) Bracket(
	ctx context.Context,
	body domain.Body,
	jd float64,
) (domain.EphemerisSample, domain.EphemerisSample, error) {
	before, err := s.nearest(ctx, `
		SELECT `+sampleColumns+` FROM ephemeris_samples
		WHERE body = ? AND julian_day <= ?
		ORDER BY julian_day DESC LIMIT 1`, body, jd)
	if err != nil {
		return domain.EphemerisSample{}, domain.EphemerisSample{}, err
	}

	after, err := s.nearest(ctx, `
		SELECT `+sampleColumns+` FROM ephemeris_samples
		WHERE body = ? AND julian_day >= ?
		ORDER BY julian_day ASC LIMIT 1`, body, jd)
	if err != nil {
		return domain.EphemerisSample{}, domain.EphemerisSample{}, err
	}

	return adapters.MapStoreSampleToDomain(before), adapters.MapStoreSampleToDomain(after), nil
}

func (s *sampleStore) nearest(ctx context.Context, query string, body domain.Body, jd float64) (store.EphemerisSample, error) {
	var row store.EphemerisSample
	err := s.db.QueryRowContext(ctx, query, int(body), jd).Scan(
		&row.Body, &row.JulianDay, &row.Longitude, &row.Latitude, &row.Distance, &row.Speed,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return row, fmt.Errorf("no %s sample around jd %.5f: %w", body, jd, domain.ErrOutOfRange)
	}
	if err != nil {
		return row, fmt.Errorf("query %s sample: %w", body, err)
	}
	return row, nil
}

func (s *sampleStore) Coverage(ctx context.Context) ([]store.SampleCoverage, error) {
	logger := zerolog.Ctx(ctx)
	rows, err := s.db.QueryContext(ctx, `
		SELECT body, MIN(julian_day), MAX(julian_day), COUNT(*)
		FROM ephemeris_samples
		GROUP BY body
		ORDER BY body`)
	if err != nil {
		return nil, fmt.Errorf("coverage query failed: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close coverage rows")
		}
	}(rows)

	var out []store.SampleCoverage
	for rows.Next() {
		var c store.SampleCoverage
		if err := rows.Scan(&c.Body, &c.FirstJD, &c.LastJD, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
