package adapters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/zodiac"
)

func TestMapDashaChartDomainToApi(t *testing.T) {
	balance := 6.25
	chart := domain.DashaChart{
		Nakshatra:   domain.NakshatraInfo{Name: "Rohini", Lord: domain.Moon, Pada: 2},
		DetailLevel: domain.LevelAntardasha,
		Periods: []domain.DashaPeriod{
			{Planet: domain.Moon, Level: domain.LevelMahadasha, IsBalancePeriod: true, BalanceYears: &balance},
			{Planet: domain.Mars, Level: domain.LevelMahadasha, Children: []domain.DashaPeriod{
				{Planet: domain.Mars, Level: domain.LevelAntardasha},
				{Planet: domain.Rahu, Level: domain.LevelAntardasha},
			}},
		},
		Current:      domain.CurrentPath{1, 0},
		TotalPeriods: 4,
	}

	t.Run("english", func(t *testing.T) {
		res := MapDashaChartDomainToApi(chart, zodiac.LangEnglish)

		require.Len(t, res.Periods, 2)
		assert.False(t, res.Periods[0].IsCurrent)
		assert.True(t, res.Periods[0].IsBalancePeriod)
		require.NotNil(t, res.Periods[0].BalanceYears)
		assert.Equal(t, 6.25, *res.Periods[0].BalanceYears)
		assert.Nil(t, res.Periods[0].Children)

		assert.True(t, res.Periods[1].IsCurrent)
		assert.True(t, res.Periods[1].Children[0].IsCurrent)
		assert.False(t, res.Periods[1].Children[1].IsCurrent)

		require.Len(t, res.Current, 2)
		assert.Equal(t, "Mars", res.Current[0].Planet)
		assert.Equal(t, "Mahadasha", res.Current[0].Level)
		assert.Nil(t, res.Current[0].Children)
		assert.Equal(t, "Antardasha", res.Current[1].Level)
		assert.Equal(t, 2, res.DetailLevel)
	})

	t.Run("sinhala", func(t *testing.T) {
		res := MapDashaChartDomainToApi(chart, zodiac.LangSinhala)
		assert.Equal(t, "කු", res.Periods[1].Planet)
		assert.Equal(t, "ච", res.Nakshatra.Lord)
	})

	t.Run("no current path", func(t *testing.T) {
		c := chart
		c.Current = nil
		res := MapDashaChartDomainToApi(c, zodiac.LangEnglish)
		assert.Empty(t, res.Current)
		assert.False(t, res.Periods[1].IsCurrent)
	})
}

func TestMapSignChangeDomainToApi(t *testing.T) {
	colombo, err := time.LoadLocation("Asia/Colombo")
	require.NoError(t, err)
	crossing := time.Date(2024, 4, 13, 15, 30, 0, 0, time.UTC)

	res := MapSignChangeDomainToApi(domain.SignChange{
		Body:     domain.BodyKetu,
		Sign:     domain.Virgo,
		Position: domain.Position{Longitude: 152.5, Speed: -0.053},
		Next:     domain.SignCrossing{Time: crossing, FromSign: 5, ToSign: 4, Capped: true},
	}, colombo, zodiac.LangEnglish)

	assert.Equal(t, "Ketu", res.Body)
	assert.Equal(t, "Virgo", res.Sign)
	assert.True(t, res.IsRetrograde)
	assert.Equal(t, "2°30'00\" Virgo", res.Position)
	assert.Equal(t, "Virgo", res.Next.FromSign)
	assert.Equal(t, "Leo", res.Next.ToSign)
	assert.True(t, res.Next.Capped)
	assert.Equal(t, 21, res.Next.Time.Hour())
	assert.True(t, res.Next.Time.Equal(crossing))
}

func TestSampleRoundTrip(t *testing.T) {
	s := domain.EphemerisSample{
		Body:      domain.BodyMeanNode,
		JulianDay: 2460000.5,
		Position:  domain.Position{Longitude: 15.2, Latitude: 0, Distance: 0.0025, Speed: -0.053},
	}
	assert.Equal(t, s, MapStoreSampleToDomain(MapDomainSampleToStore(s)))
}
