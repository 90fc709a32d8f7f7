package dasha

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/vedic-tools/jyotish-atlas/pkg/adapters"
	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/ephemeris"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/julian"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/metrics"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/nakshatra"
	"github.com/vedic-tools/jyotish-atlas/pkg/store/sqlite/history"
)

// Request describes a birth for which the period tree is computed.
// Zero DetailLevel and Years fall back to the service defaults.
type Request struct {
	Subject     string
	BirthDate   string // YYYY-MM-DD
	BirthTime   string // HH:MM or HH:MM:SS
	TimeZone    string // IANA zone of the civil birth time
	Latitude    float64
	Longitude   float64
	DetailLevel domain.DashaLevel
	Years       float64
}

// RequestFromProfile builds a request from a stored birth profile.
func RequestFromProfile(p domain.BirthProfile) Request {
	return Request{
		Subject:   p.Name,
		BirthDate: p.BirthDate,
		BirthTime: p.BirthTime,
		TimeZone:  p.TimeZone,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
	}
}

type Defaults struct {
	Years       float64
	DetailLevel domain.DashaLevel
}

type Service interface {
	Calculate(ctx context.Context, req Request) (domain.DashaChart, error)
	Nakshatra(ctx context.Context, longitude float64) (domain.NakshatraInfo, error)
}

type dashaService struct {
	provider ephemeris.Provider
	recorder history.Recorder
	metrics  *metrics.Metrics
	defaults Defaults
	now      func() time.Time
}

// NewService wires the calculator to a sidereal position provider. recorder
// and m may be nil.
func NewService(
	provider ephemeris.Provider,
	recorder history.Recorder,
	m *metrics.Metrics,
	defaults Defaults,
) Service {
	if recorder == nil {
		recorder = history.NewNoopRecorder()
	}
	if defaults.Years == 0 {
		defaults.Years = domain.TotalCycleYears
	}
	if defaults.DetailLevel == 0 {
		defaults.DetailLevel = domain.LevelAntardasha
	}
	return &dashaService{
		provider: provider,
		recorder: recorder,
		metrics:  m,
		defaults: defaults,
		now:      time.Now,
	}
}

func (s *dashaService) Calculate(ctx context.Context, req Request) (chart domain.DashaChart, err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveCalculation(domain.CalculationDasha, time.Since(started), err)
	}()

	logger := zerolog.Ctx(ctx).With().Str("subject", req.Subject).Logger()

	if req.DetailLevel == 0 {
		req.DetailLevel = s.defaults.DetailLevel
	}
	if req.Years == 0 {
		req.Years = s.defaults.Years
	}
	if err := validateRequest(req); err != nil {
		return domain.DashaChart{}, err
	}

	loc, err := time.LoadLocation(req.TimeZone)
	if err != nil {
		return domain.DashaChart{}, fmt.Errorf("time zone %q: %w", req.TimeZone, domain.ErrInvalidInput)
	}
	birthLocal, err := julian.CombineLocal(req.BirthDate, req.BirthTime, loc)
	if err != nil {
		return domain.DashaChart{}, fmt.Errorf("birth %s %s: %w", req.BirthDate, req.BirthTime, domain.ErrInvalidInput)
	}
	birthUTC := birthLocal.UTC()
	jd := julian.FromTime(birthUTC)

	moon, err := s.provider.Position(ctx, jd, domain.BodyMoon)
	if err != nil {
		return domain.DashaChart{}, fmt.Errorf("moon position at birth: %w", err)
	}

	info, err := nakshatra.Compute(moon.Longitude)
	if err != nil {
		return domain.DashaChart{}, err
	}
	logger.Debug().
		Str("nakshatra", info.Name).
		Str("lord", info.Lord.String()).
		Float64("percent", info.PercentCompleted).
		Msg("birth nakshatra resolved")

	seed, fraction := info.Lord, nakshatra.BalanceFraction(info)
	if fraction <= 0 {
		// the Moon sits on the far edge of the sector; the next lord starts in full
		seed, fraction = seed.Next(), 1
	}

	tree, err := BuildTree(BuildParams{
		BirthUTC:        birthUTC,
		Location:        loc,
		Seed:            seed,
		BalanceFraction: fraction,
		TotalYears:      req.Years,
	})
	if err != nil {
		return domain.DashaChart{}, err
	}
	tree, err = Expand(tree, req.DetailLevel)
	if err != nil {
		return domain.DashaChart{}, err
	}

	current, _ := MarkCurrent(tree, s.now())

	chart = domain.DashaChart{
		BirthUTC:   birthUTC,
		BirthLocal: birthLocal,
		Location: domain.GeoLocation{
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
			TimeZone:  req.TimeZone,
		},
		Nakshatra:    info,
		DetailLevel:  req.DetailLevel,
		Years:        req.Years,
		Periods:      tree,
		Current:      current,
		TotalPeriods: CountPeriods(tree),
	}

	logger.Info().
		Str("nakshatra", info.Name).
		Int("periods", chart.TotalPeriods).
		Int("detail_level", int(req.DetailLevel)).
		Msg("vimshottari dasha calculated")

	s.record(ctx, domain.CalculationDasha, req.Subject, summarizeChart(chart))
	return chart, nil
}

func (s *dashaService) Nakshatra(ctx context.Context, longitude float64) (info domain.NakshatraInfo, err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveCalculation(domain.CalculationNakshatra, time.Since(started), err)
	}()

	info, err = nakshatra.Compute(longitude)
	if err != nil {
		return info, err
	}
	s.record(ctx, domain.CalculationNakshatra, fmt.Sprintf("%.6f", longitude),
		fmt.Sprintf("%s pada %d (%s)", info.Name, info.Pada, info.Lord))
	return info, nil
}

func (s *dashaService) record(ctx context.Context, kind domain.CalculationKind, subject, summary string) {
	_, err := s.recorder.Record(ctx, adapters.MapDomainRecordToStore(domain.CalculationRecord{
		Kind:    kind,
		Subject: subject,
		Summary: summary,
	}))
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("kind", string(kind)).Msg("failed to record calculation")
	}
}

func summarizeChart(c domain.DashaChart) string {
	summary := fmt.Sprintf("%s (%s), %d periods", c.Nakshatra.Name, c.Nakshatra.Lord, c.TotalPeriods)
	if path := c.Current.Resolve(c.Periods); len(path) > 0 {
		summary += ", current " + path[0].Planet.String()
		for _, p := range path[1:] {
			summary += "/" + p.Planet.String()
		}
	}
	return summary
}

func validateRequest(req Request) error {
	if req.BirthDate == "" || req.BirthTime == "" {
		return fmt.Errorf("birth date and time are required: %w", domain.ErrInvalidInput)
	}
	if req.TimeZone == "" {
		return fmt.Errorf("time zone is required: %w", domain.ErrInvalidInput)
	}
	if math.IsNaN(req.Latitude) || req.Latitude < -90 || req.Latitude > 90 {
		return fmt.Errorf("latitude %v must be in [-90, 90]: %w", req.Latitude, domain.ErrInvalidInput)
	}
	if math.IsNaN(req.Longitude) || req.Longitude < -180 || req.Longitude > 180 {
		return fmt.Errorf("longitude %v must be in [-180, 180]: %w", req.Longitude, domain.ErrInvalidInput)
	}
	if req.DetailLevel < domain.LevelMahadasha || req.DetailLevel > domain.MaxDashaLevel {
		return fmt.Errorf("detail level %d must be in [1, 4]: %w", req.DetailLevel, domain.ErrInvalidInput)
	}
	if math.IsNaN(req.Years) || req.Years <= 0 || req.Years > domain.TotalCycleYears {
		return fmt.Errorf("years %v must be in (0, 120]: %w", req.Years, domain.ErrInvalidInput)
	}
	return nil
}
