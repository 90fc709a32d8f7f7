package ephemeris

import (
	"context"

	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/zodiac"
)

const j2000 = 2451545.0

// Ayanamsa returns the sidereal offset in degrees at a Julian day.
type Ayanamsa func(jd float64) float64

// LinearAyanamsa models the ayanamsa as a value at J2000 drifting by a
// constant precession rate (arc-seconds per Julian year).
func LinearAyanamsa(atJ2000, arcsecPerYear float64) Ayanamsa {
	return func(jd float64) float64 {
		years := (jd - j2000) / 365.25
		return atJ2000 + years*arcsecPerYear/3600
	}
}

// Lahiri approximates the Lahiri (Chitrapaksha) ayanamsa.
var Lahiri = LinearAyanamsa(23.857, 50.29)

// Sidereal subtracts an ayanamsa from tropical longitudes.
type Sidereal struct {
	Provider Provider
	Ayanamsa Ayanamsa
}

func (s Sidereal) Position(ctx context.Context, jd float64, body domain.Body) (domain.Position, error) {
	pos, err := s.Provider.Position(ctx, jd, body)
	if err != nil {
		return pos, err
	}
	if s.Ayanamsa != nil {
		pos.Longitude = zodiac.Normalize(pos.Longitude - s.Ayanamsa(jd))
	}
	return pos, nil
}

// ShadowNode answers Ketu queries from the primary lunar node: the position
// is mirrored by 180° and the motion reversed. Other bodies pass through.
type ShadowNode struct {
	Provider Provider
	Primary  domain.Body
}

func NewShadowNode(p Provider) ShadowNode {
	return ShadowNode{Provider: p, Primary: domain.BodyMeanNode}
}

func (s ShadowNode) Position(ctx context.Context, jd float64, body domain.Body) (domain.Position, error) {
	if body != domain.BodyKetu {
		return s.Provider.Position(ctx, jd, body)
	}
	pos, err := s.Provider.Position(ctx, jd, s.Primary)
	if err != nil {
		return pos, err
	}
	return domain.Position{
		Longitude: zodiac.Normalize(pos.Longitude + 180),
		Latitude:  -pos.Latitude,
		Distance:  pos.Distance,
		Speed:     -pos.Speed,
	}, nil
}

// ChainOptions configures NewChain.
type ChainOptions struct {
	// Ayanamsa converts tropical samples to sidereal; nil means the samples
	// are already sidereal.
	Ayanamsa Ayanamsa
	// Node is the primary lunar node Ketu is derived from.
	Node domain.Body
}

// NewChain composes the interpolator over source with the sidereal and
// shadow-node wrappers.
func NewChain(source SampleSource, opts ChainOptions) Provider {
	var p Provider = NewInterpolator(source)
	if opts.Ayanamsa != nil {
		p = Sidereal{Provider: p, Ayanamsa: opts.Ayanamsa}
	}
	shadow := NewShadowNode(p)
	if opts.Node != 0 {
		shadow.Primary = opts.Node
	}
	return shadow
}
