package ephemeris

import (
	"context"
	"fmt"
	"math"

	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/zodiac"
)

// Provider returns the position of a body at a Julian day (UT). Longitudes
// may fall outside [0, 360); callers normalize.
type Provider interface {
	Position(ctx context.Context, jd float64, body domain.Body) (domain.Position, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, jd float64, body domain.Body) (domain.Position, error)

func (f ProviderFunc) Position(ctx context.Context, jd float64, body domain.Body) (domain.Position, error) {
	return f(ctx, jd, body)
}

// SampleSource looks up the tabulated samples surrounding jd.
// Implementations return domain.ErrOutOfRange when jd is not covered.
type SampleSource interface {
	Bracket(ctx context.Context, body domain.Body, jd float64) (before, after domain.EphemerisSample, err error)
}

// Interpolator turns tabulated samples into a continuous position function.
type Interpolator struct {
	source SampleSource
}

func NewInterpolator(source SampleSource) *Interpolator {
	return &Interpolator{source: source}
}

func (i *Interpolator) Position(ctx context.Context, jd float64, body domain.Body) (domain.Position, error) {
	if math.IsNaN(jd) || math.IsInf(jd, 0) {
		return domain.Position{}, fmt.Errorf("julian day %v: %w", jd, domain.ErrInvalidInput)
	}
	before, after, err := i.source.Bracket(ctx, body, jd)
	if err != nil {
		return domain.Position{}, fmt.Errorf("%s at jd %.5f: %w", body, jd, err)
	}
	return Interpolate(before, after, jd), nil
}

// Interpolate blends two samples linearly. Longitude is interpolated along
// the shorter arc so a pair straddling 0° does not sweep the whole circle.
// When both samples carry zero speed the speed is derived from the samples.
func Interpolate(before, after domain.EphemerisSample, jd float64) domain.Position {
	span := after.JulianDay - before.JulianDay
	if span == 0 {
		return before.Position
	}
	f := (jd - before.JulianDay) / span
	b, a := before.Position, after.Position

	dLon := math.Remainder(a.Longitude-b.Longitude, 360)
	speed := b.Speed + (a.Speed-b.Speed)*f
	if b.Speed == 0 && a.Speed == 0 {
		speed = dLon / span
	}

	return domain.Position{
		Longitude: zodiac.Normalize(b.Longitude + dLon*f),
		Latitude:  b.Latitude + (a.Latitude-b.Latitude)*f,
		Distance:  b.Distance + (a.Distance-b.Distance)*f,
		Speed:     speed,
	}
}
