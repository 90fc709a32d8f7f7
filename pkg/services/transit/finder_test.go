package transit

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/ephemeris"
)

const (
	jd0 = 2460000.5

	// bisection bound plus float slack at this Julian day magnitude
	tolerance = Precision + 1e-7
)

// linear moves every body at a constant speed from lon0 at jd0.
func linear(lon0, speed float64) ephemeris.Provider {
	return ephemeris.ProviderFunc(func(_ context.Context, jd float64, _ domain.Body) (domain.Position, error) {
		return domain.Position{Longitude: lon0 + speed*(jd-jd0), Speed: speed}, nil
	})
}

// frozen never leaves lon but reports speed.
func frozen(lon, speed float64) ephemeris.Provider {
	return ephemeris.ProviderFunc(func(context.Context, float64, domain.Body) (domain.Position, error) {
		return domain.Position{Longitude: lon, Speed: speed}, nil
	})
}

func TestFinder_FindNext(t *testing.T) {
	tests := []struct {
		name     string
		lon      float64
		speed    float64
		wantDays float64
		from, to int
		motion   domain.Motion
	}{
		{"prograde toward 30", 28, 0.5, 4.0, 0, 1, domain.Prograde},
		{"retrograde toward 30", 35, -0.5, 10.0, 1, 0, domain.Retrograde},
		{"prograde across 360", 359, 1, 1.0, 11, 0, domain.Prograde},
		{"retrograde across 0", 1, -1, 1.0, 0, 11, domain.Retrograde},
		{"unnormalized input", 388, 0.5, 4.0, 0, 1, domain.Prograde},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFinder(linear(tt.lon, tt.speed))

			got, err := f.FindNext(context.Background(), jd0, domain.BodySun, tt.lon, tt.speed)

			require.NoError(t, err)
			assert.False(t, got.Capped)
			assert.InDelta(t, jd0+tt.wantDays, got.JulianDay, tolerance)
			assert.Equal(t, tt.from, got.FromSign)
			assert.Equal(t, tt.to, got.ToSign)
			assert.Equal(t, tt.motion, got.Motion)
			assert.Equal(t, domain.BodySun, got.Body)
		})
	}
}

func TestFinder_FindPrevious(t *testing.T) {
	tests := []struct {
		name     string
		lon      float64
		speed    float64
		wantDays float64
		from, to int
	}{
		{"prograde entered at lower boundary", 28, 0.5, 56.0, 11, 0},
		{"retrograde entered at upper boundary", 35, -0.5, 50.0, 2, 1},
		{"prograde just past 0", 0.5, 1, 0.5, 11, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFinder(linear(tt.lon, tt.speed))

			got, err := f.FindPrevious(context.Background(), jd0, domain.BodyMars, tt.lon, tt.speed)

			require.NoError(t, err)
			assert.False(t, got.Capped)
			assert.InDelta(t, jd0-tt.wantDays, got.JulianDay, tolerance)
			assert.Equal(t, tt.from, got.FromSign)
			assert.Equal(t, tt.to, got.ToSign)
		})
	}
}

func TestFinder_OnBoundary_SearchesWholeSign(t *testing.T) {
	// sitting exactly on 30° moving prograde: entered through 30°, leaves through 60°
	f := NewFinder(linear(30, 1))

	next, err := f.FindNext(context.Background(), jd0, domain.BodySun, 30, 1)
	require.NoError(t, err)
	assert.InDelta(t, jd0+30, next.JulianDay, tolerance)
	assert.Equal(t, 2, next.ToSign)

	prev, err := f.FindPrevious(context.Background(), jd0, domain.BodySun, 30, 1)
	require.NoError(t, err)
	assert.InDelta(t, jd0, prev.JulianDay, tolerance)
	assert.Equal(t, 0, prev.FromSign)
}

func TestFinder_RoundTrip(t *testing.T) {
	p := linear(28, 0.5)
	f := NewFinder(p)
	ctx := context.Background()

	next, err := f.FindNext(ctx, jd0, domain.BodyVenus, 28, 0.5)
	require.NoError(t, err)

	at, err := p.Position(ctx, next.JulianDay, domain.BodyVenus)
	require.NoError(t, err)
	back, err := f.FindPrevious(ctx, next.JulianDay, domain.BodyVenus, at.Longitude, at.Speed)
	require.NoError(t, err)

	assert.Equal(t, 0, back.FromSign)
	assert.Equal(t, next.ToSign, back.ToSign)
	assert.InDelta(t, next.JulianDay, back.JulianDay, tolerance)
}

func TestFinder_CappedWhenNoCrossing(t *testing.T) {
	f := NewFinder(frozen(15, 0.5))

	next, err := f.FindNext(context.Background(), jd0, domain.BodySun, 15, 0.5)
	require.NoError(t, err)
	assert.True(t, next.Capped)
	// 15° gap at 0.5°/day widened by the Sun factor
	assert.InDelta(t, jd0+15/0.5*WindowFactor(domain.BodySun), next.JulianDay, 1e-9)
	assert.Equal(t, next.FromSign, next.ToSign)

	prev, err := f.FindPrevious(context.Background(), jd0, domain.BodySun, 15, 0.5)
	require.NoError(t, err)
	assert.True(t, prev.Capped)
	assert.Less(t, prev.JulianDay, jd0)
}

func TestFinder_Stationary(t *testing.T) {
	t.Run("uses the maximum window", func(t *testing.T) {
		f := NewFinder(frozen(15, 0.0005))

		next, err := f.FindNext(context.Background(), jd0, domain.BodySaturn, 15, 0.0005)
		require.NoError(t, err)
		assert.True(t, next.Capped)
		assert.InDelta(t, jd0+MaxSearchDays, next.JulianDay, 1e-9)

		prev, err := f.FindPrevious(context.Background(), jd0, domain.BodySaturn, 15, 0)
		require.NoError(t, err)
		assert.True(t, prev.Capped)
		assert.InDelta(t, jd0-MaxSearchDays, prev.JulianDay, 1e-9)
	})

	t.Run("finds a slow crossing inside the cap", func(t *testing.T) {
		f := NewFinder(linear(29.9, 0.0005))

		next, err := f.FindNext(context.Background(), jd0, domain.BodySaturn, 29.9, 0.0005)
		require.NoError(t, err)
		assert.False(t, next.Capped)
		assert.InDelta(t, jd0+200, next.JulianDay, tolerance)
	})
}

func TestFinder_WindowNeverExceedsCap(t *testing.T) {
	// 29° at 0.01°/day would need 2900 days * 3
	f := NewFinder(frozen(1, 0.01))
	next, err := f.FindNext(context.Background(), jd0, domain.BodyJupiter, 1, 0.01)
	require.NoError(t, err)
	assert.True(t, next.Capped)
	assert.InDelta(t, jd0+MaxSearchDays, next.JulianDay, 1e-9)
}

func TestFinder_ShadowNode(t *testing.T) {
	rahu := ephemeris.ProviderFunc(func(_ context.Context, jd float64, body domain.Body) (domain.Position, error) {
		require.Equal(t, domain.BodyMeanNode, body)
		return domain.Position{Longitude: 15 - 0.053*(jd-jd0), Speed: -0.053}, nil
	})
	p := ephemeris.NewShadowNode(rahu)
	f := NewFinder(p)
	ctx := context.Background()

	rahuPos, err := p.Position(ctx, jd0, domain.BodyMeanNode)
	require.NoError(t, err)
	ketuPos, err := p.Position(ctx, jd0, domain.BodyKetu)
	require.NoError(t, err)
	assert.InDelta(t, 195.0, ketuPos.Longitude, 1e-9)
	assert.InDelta(t, 0.053, ketuPos.Speed, 1e-12)

	rahuNext, err := f.FindNext(ctx, jd0, domain.BodyMeanNode, rahuPos.Longitude, rahuPos.Speed)
	require.NoError(t, err)
	ketuNext, err := f.FindNext(ctx, jd0, domain.BodyKetu, ketuPos.Longitude, ketuPos.Speed)
	require.NoError(t, err)

	assert.Equal(t, 11, rahuNext.ToSign)
	assert.Equal(t, 6, ketuNext.FromSign)
	assert.Equal(t, 5, ketuNext.ToSign)
	assert.InDelta(t, jd0+15/0.053, ketuNext.JulianDay, tolerance)
	assert.InDelta(t, rahuNext.JulianDay, ketuNext.JulianDay, tolerance)
}

func TestFinder_ProviderErrorPropagates(t *testing.T) {
	f := NewFinder(ephemeris.ProviderFunc(func(context.Context, float64, domain.Body) (domain.Position, error) {
		return domain.Position{}, assert.AnError
	}))

	_, err := f.FindNext(context.Background(), jd0, domain.BodyMoon, 10, 13)
	assert.ErrorIs(t, err, assert.AnError)

	_, err = f.FindPrevious(context.Background(), jd0, domain.BodyMoon, 10, 13)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestFinder_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewFinder(linear(28, 0.5))
	_, err := f.FindNext(ctx, jd0, domain.BodySun, 28, 0.5)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFinder_InvalidReference(t *testing.T) {
	f := NewFinder(linear(28, 0.5))
	for _, v := range []float64{math.NaN(), math.Inf(1)} {
		_, err := f.FindNext(context.Background(), jd0, domain.BodySun, v, 0.5)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		_, err = f.FindPrevious(context.Background(), jd0, domain.BodySun, 28, v)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestWindowFactor(t *testing.T) {
	assert.Equal(t, 1.5, WindowFactor(domain.BodyMoon))
	assert.Equal(t, 1.8, WindowFactor(domain.BodySun))
	assert.Equal(t, 2.0, WindowFactor(domain.BodyKetu))
	assert.Equal(t, 3.0, WindowFactor(domain.BodySaturn))
	assert.Equal(t, 2.5, WindowFactor(domain.Body(42)))
}
