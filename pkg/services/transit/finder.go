package transit

import (
	"context"
	"fmt"
	"math"

	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/ephemeris"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/julian"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/zodiac"
)

const (
	// MaxSearchDays caps every search window.
	MaxSearchDays = 400.0

	// Precision is the bracket width at which bisection stops.
	Precision = julian.Minute

	stationarySpeed     = 0.001 // deg/day
	defaultWindowFactor = 2.5
)

// Bodies prone to stations get wider windows than the speed estimate implies.
var windowFactors = map[domain.Body]float64{
	domain.BodyMoon:     1.5,
	domain.BodySun:      1.8,
	domain.BodyMars:     2.0,
	domain.BodyMeanNode: 2.0,
	domain.BodyTrueNode: 2.0,
	domain.BodyKetu:     2.0,
	domain.BodyVenus:    2.5,
	domain.BodyMercury:  3.0,
	domain.BodyJupiter:  3.0,
	domain.BodySaturn:   3.0,
}

// WindowFactor returns the safety multiplier applied to a body's window estimate.
func WindowFactor(body domain.Body) float64 {
	if f, ok := windowFactors[body]; ok {
		return f
	}
	return defaultWindowFactor
}

// Finder locates 30° sign-boundary crossings of a body by bisecting over
// the provider's position function.
type Finder struct {
	provider ephemeris.Provider
}

func NewFinder(provider ephemeris.Provider) *Finder {
	return &Finder{provider: provider}
}

// FindNext returns the first crossing after refJD in the direction of
// travel given by refSpeed. When the window ends in the same sign the
// result is capped at the window end.
func (f *Finder) FindNext(
	ctx context.Context,
	refJD float64,
	body domain.Body,
	refLon, refSpeed float64,
) (domain.SignCrossing, error) {
	if err := validate(refJD, refLon, refSpeed); err != nil {
		return domain.SignCrossing{}, err
	}

	motion := motionOf(refSpeed)
	refSign := zodiac.SignIndex(refLon)
	start := refJD
	end := refJD + searchWindow(body, gapAhead(refLon, motion), refSpeed)

	endSign, err := f.signAt(ctx, end, body)
	if err != nil {
		return domain.SignCrossing{}, err
	}
	if endSign == refSign {
		return crossing(body, end, refSign, refSign, motion, true), nil
	}

	for end-start > Precision {
		if err := ctx.Err(); err != nil {
			return domain.SignCrossing{}, err
		}
		mid := (start + end) / 2
		midSign, err := f.signAt(ctx, mid, body)
		if err != nil {
			return domain.SignCrossing{}, err
		}
		if midSign != refSign {
			end, endSign = mid, midSign
		} else {
			start = mid
		}
	}

	return crossing(body, end, refSign, endSign, motion, false), nil
}

// FindPrevious returns the crossing through which the body entered its
// current sign: the lower boundary under prograde motion, the upper one
// under retrograde motion.
func (f *Finder) FindPrevious(
	ctx context.Context,
	refJD float64,
	body domain.Body,
	refLon, refSpeed float64,
) (domain.SignCrossing, error) {
	if err := validate(refJD, refLon, refSpeed); err != nil {
		return domain.SignCrossing{}, err
	}

	motion := motionOf(refSpeed)
	refSign := zodiac.SignIndex(refLon)
	start := refJD - searchWindow(body, gapBehind(refLon, motion), refSpeed)
	end := refJD

	startSign, err := f.signAt(ctx, start, body)
	if err != nil {
		return domain.SignCrossing{}, err
	}
	if startSign == refSign {
		return crossing(body, start, refSign, refSign, motion, true), nil
	}

	for end-start > Precision {
		if err := ctx.Err(); err != nil {
			return domain.SignCrossing{}, err
		}
		mid := (start + end) / 2
		midSign, err := f.signAt(ctx, mid, body)
		if err != nil {
			return domain.SignCrossing{}, err
		}
		if midSign != refSign {
			start, startSign = mid, midSign
		} else {
			end = mid
		}
	}

	return crossing(body, end, startSign, refSign, motion, false), nil
}

func (f *Finder) signAt(ctx context.Context, jd float64, body domain.Body) (int, error) {
	pos, err := f.provider.Position(ctx, jd, body)
	if err != nil {
		return 0, fmt.Errorf("position of %s: %w", body, err)
	}
	return zodiac.SignIndex(pos.Longitude), nil
}

func validate(jd, lon, speed float64) error {
	for _, v := range []float64{jd, lon, speed} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("reference jd=%v lon=%v speed=%v: %w", jd, lon, speed, domain.ErrInvalidInput)
		}
	}
	return nil
}

func motionOf(speed float64) domain.Motion {
	if speed < 0 {
		return domain.Retrograde
	}
	return domain.Prograde
}

// gapAhead is the positive arc to the boundary the body reaches next.
// A retrograde body sitting exactly on its lower boundary searches a full sign.
func gapAhead(lon float64, motion domain.Motion) float64 {
	n := zodiac.Normalize(lon)
	lower := float64(zodiac.SignIndex(n)) * zodiac.SignWidth
	if motion == domain.Retrograde {
		if gap := n - lower; gap > 0 {
			return gap
		}
		return zodiac.SignWidth
	}
	return lower + zodiac.SignWidth - n
}

// gapBehind is the positive arc back to the boundary the body entered through.
func gapBehind(lon float64, motion domain.Motion) float64 {
	n := zodiac.Normalize(lon)
	lower := float64(zodiac.SignIndex(n)) * zodiac.SignWidth
	if motion == domain.Retrograde {
		return lower + zodiac.SignWidth - n
	}
	if gap := n - lower; gap > 0 {
		return gap
	}
	return zodiac.SignWidth
}

func searchWindow(body domain.Body, gap, speed float64) float64 {
	s := math.Abs(speed)
	if s <= stationarySpeed {
		return MaxSearchDays
	}
	return math.Min(gap/s*WindowFactor(body), MaxSearchDays)
}

func crossing(body domain.Body, jd float64, from, to int, motion domain.Motion, capped bool) domain.SignCrossing {
	return domain.SignCrossing{
		Body:      body,
		JulianDay: jd,
		Time:      julian.ToTime(jd),
		FromSign:  from,
		ToSign:    to,
		Motion:    motion,
		Capped:    capped,
	}
}
