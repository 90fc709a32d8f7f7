package commands

import (
	"database/sql"

	"github.com/vedic-tools/jyotish-atlas/pkg/runtime/terminal/export"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/dasha"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/profile"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/transit"
	ephemerisstore "github.com/vedic-tools/jyotish-atlas/pkg/store/sqlite/ephemeris"
	"github.com/vedic-tools/jyotish-atlas/pkg/store/sqlite/history"
)

// Env carries the services commands run against. The root command fills it
// before any subcommand executes.
type Env struct {
	Dasha    dasha.Service
	Transits transit.Service
	Profiles profile.Registry
	History  history.Recorder
	Samples  ephemerisstore.Store
	DB       *sql.DB
	Reporter *export.Reporter
}
