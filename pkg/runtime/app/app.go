package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/config"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/dasha"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/digest"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/ephemeris"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/metrics"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/profile"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/transit"
	"github.com/vedic-tools/jyotish-atlas/pkg/store/sqlite"
	ephemerisstore "github.com/vedic-tools/jyotish-atlas/pkg/store/sqlite/ephemeris"
	"github.com/vedic-tools/jyotish-atlas/pkg/store/sqlite/history"
)

// App holds the wired services shared by the web server and the CLI.
type App struct {
	Config   *config.Config
	DB       *sql.DB
	Samples  ephemerisstore.Store
	History  history.Recorder
	Profiles profile.Registry
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
	Provider ephemeris.Provider
	Dasha    dasha.Service
	Transits transit.Service
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := zerolog.Ctx(ctx)

	db, err := sqlite.NewDB(ctx, sqlite.Settings{DbPath: cfg.Database.Path})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	samples, err := ephemerisstore.NewStore(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create ephemeris store: %w", err)
	}

	var recorder history.Recorder = history.NewNoopRecorder()
	if cfg.Database.RecordHistory {
		if recorder, err = history.NewStore(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create history store: %w", err)
		}
	}

	profiles, err := loadProfiles(cfg.Profiles.Path)
	if err != nil {
		db.Close()
		return nil, err
	}
	names, _ := profiles.GetProfiles(ctx)
	logger.Info().Str("path", cfg.Profiles.Path).Int("profiles", len(names)).Msg("birth profiles loaded")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	opts := ephemeris.ChainOptions{Node: cfg.Ephemeris.NodeBody()}
	if cfg.Ephemeris.Tropical {
		opts.Ayanamsa = ephemeris.LinearAyanamsa(cfg.Ephemeris.AyanamsaJ2000, cfg.Ephemeris.AyanamsaRate)
	}
	provider := m.InstrumentProvider(ephemeris.NewChain(samples, opts))

	return &App{
		Config:   cfg,
		DB:       db,
		Samples:  samples,
		History:  recorder,
		Profiles: profiles,
		Registry: registry,
		Metrics:  m,
		Provider: provider,
		Dasha: dasha.NewService(provider, recorder, m, dasha.Defaults{
			Years:       cfg.Dasha.Years,
			DetailLevel: domain.DashaLevel(cfg.Dasha.DetailLevel),
		}),
		Transits: transit.NewService(provider, recorder, m),
	}, nil
}

// loadProfiles reads the INI registry; a missing file yields an empty one.
func loadProfiles(path string) (profile.Registry, error) {
	if path == "" {
		return profile.EmptyRegistry{}, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return profile.EmptyRegistry{}, nil
	}
	registry, err := profile.NewRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles from %s: %w", path, err)
	}
	return registry, nil
}

// NewDigestScheduler builds the transit digest scheduler from the digest
// config. It returns nil when the digest is disabled.
func (a *App) NewDigestScheduler(ctx context.Context) (*digest.Scheduler, error) {
	cfg := a.Config.Digest
	if !cfg.Enabled {
		return nil, nil
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("digest time zone %q: %w", cfg.TimeZone, err)
	}
	bodies := make([]domain.Body, 0, len(cfg.Bodies))
	for _, name := range cfg.Bodies {
		b, err := domain.ParseBody(name)
		if err != nil {
			return nil, fmt.Errorf("digest bodies: %w", err)
		}
		bodies = append(bodies, b)
	}

	scheduler := digest.NewScheduler(ctx, digest.NewJob(a.Transits, a.History, bodies, loc))
	if err := scheduler.Register(cfg.Schedule); err != nil {
		return nil, err
	}
	return scheduler, nil
}

func (a *App) Close() error {
	return a.DB.Close()
}
