package transit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/vedic-tools/jyotish-atlas/pkg/adapters"
	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/ephemeris"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/julian"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/metrics"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/zodiac"
	"github.com/vedic-tools/jyotish-atlas/pkg/store/sqlite/history"
)

// maxParallelBodies bounds concurrent searches against the provider.
const maxParallelBodies = 4

// Request asks for the sign situation of bodies at an instant. An empty
// Bodies list means every transit body.
type Request struct {
	Subject string
	At      time.Time
	Bodies  []domain.Body
}

type Service interface {
	SignChanges(ctx context.Context, req Request) ([]domain.SignChange, error)
}

type transitService struct {
	provider ephemeris.Provider
	finder   *Finder
	recorder history.Recorder
	metrics  *metrics.Metrics
}

// NewService builds the sign-change service. provider must answer every
// requested body, Ketu included (see ephemeris.NewChain).
func NewService(provider ephemeris.Provider, recorder history.Recorder, m *metrics.Metrics) Service {
	if recorder == nil {
		recorder = history.NewNoopRecorder()
	}
	return &transitService{
		provider: provider,
		finder:   NewFinder(provider),
		recorder: recorder,
		metrics:  m,
	}
}

func (s *transitService) SignChanges(ctx context.Context, req Request) (changes []domain.SignChange, err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveCalculation(domain.CalculationSignChanges, time.Since(started), err)
	}()

	if req.At.IsZero() {
		return nil, fmt.Errorf("reference instant is required: %w", domain.ErrInvalidInput)
	}
	bodies := req.Bodies
	if len(bodies) == 0 {
		bodies = domain.TransitBodies()
	}
	for _, b := range bodies {
		if !b.Valid() {
			return nil, fmt.Errorf("body %d: %w", int(b), domain.ErrInvalidInput)
		}
	}

	jd := julian.FromTime(req.At)
	logger := zerolog.Ctx(ctx).With().Float64("jd", jd).Logger()

	changes = make([]domain.SignChange, len(bodies))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelBodies)
	for i, body := range bodies {
		g.Go(func() error {
			change, err := s.signChange(gctx, jd, body)
			if err != nil {
				return err
			}
			changes[i] = change
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info().Int("bodies", len(changes)).Msg("sign changes calculated")
	s.record(ctx, req.Subject, changes)
	return changes, nil
}

func (s *transitService) signChange(ctx context.Context, jd float64, body domain.Body) (domain.SignChange, error) {
	pos, err := s.provider.Position(ctx, jd, body)
	if err != nil {
		return domain.SignChange{}, fmt.Errorf("position of %s: %w", body, err)
	}
	next, err := s.finder.FindNext(ctx, jd, body, pos.Longitude, pos.Speed)
	if err != nil {
		return domain.SignChange{}, fmt.Errorf("next sign change of %s: %w", body, err)
	}
	last, err := s.finder.FindPrevious(ctx, jd, body, pos.Longitude, pos.Speed)
	if err != nil {
		return domain.SignChange{}, fmt.Errorf("last sign change of %s: %w", body, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("body", body.String()).
		Time("next", next.Time).
		Bool("capped", next.Capped).
		Msg("sign change located")

	return domain.SignChange{
		Body:     body,
		Sign:     zodiac.Sign(pos.Longitude),
		Position: pos,
		Next:     next,
		Last:     last,
	}, nil
}

func (s *transitService) record(ctx context.Context, subject string, changes []domain.SignChange) {
	parts := make([]string, 0, len(changes))
	for _, c := range changes {
		parts = append(parts, fmt.Sprintf("%s %s->%s", c.Body, c.Sign, domain.SignFromIndex(c.Next.ToSign)))
	}
	if subject == "" {
		subject = "transits"
	}
	_, err := s.recorder.Record(ctx, adapters.MapDomainRecordToStore(domain.CalculationRecord{
		Kind:    domain.CalculationSignChanges,
		Subject: subject,
		Summary: strings.Join(parts, ", "),
	}))
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to record sign changes")
	}
}
