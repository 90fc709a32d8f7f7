package zodiac

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
)

func TestNormalize(t *testing.T) {
	tests := map[float64]float64{
		0:      0,
		359.5:  359.5,
		360:    0,
		-30:    330,
		725:    5,
		-1e-15: 0,
	}
	for in, want := range tests {
		assert.InDelta(t, want, Normalize(in), 1e-9, "Normalize(%v)", in)
	}
}

func TestSign(t *testing.T) {
	assert.Equal(t, domain.Aries, Sign(0))
	assert.Equal(t, domain.Taurus, Sign(30))
	assert.Equal(t, domain.Aries, Sign(29.9999))
	assert.Equal(t, domain.Pisces, Sign(359.9999))
	assert.Equal(t, domain.Pisces, Sign(-0.5))
	assert.Equal(t, 11, SignIndex(359.99999999))
}

func TestPosition(t *testing.T) {
	// 45 33/64 degrees is exact in binary
	pos := Position(45.515625)

	assert.Equal(t, domain.Taurus, pos.Sign)
	assert.Equal(t, 15.515625, pos.DegreeInSign)
	assert.Equal(t, 15, pos.Degree)
	assert.Equal(t, 30, pos.Minutes)
	assert.Equal(t, 56, pos.Seconds)
	assert.Equal(t, "15°30'56\" Taurus", pos.Formatted)
}

func TestNavamsa(t *testing.T) {
	tests := []struct {
		longitude float64
		want      domain.ZodiacSign
	}{
		{1, domain.Aries},        // fire starts from Aries
		{29, domain.Sagittarius}, // ninth part of Aries
		{31, domain.Capricorn},   // earth starts from Capricorn
		{61, domain.Libra},       // air starts from Libra
		{91, domain.Cancer},      // water starts from Cancer
		{359.9, domain.Pisces},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Navamsa(tt.longitude), "Navamsa(%v)", tt.longitude)
	}
}

func TestNames(t *testing.T) {
	assert.Equal(t, "Leo", SignName(domain.Leo, LangEnglish))
	assert.Equal(t, "සිංහ", SignName(domain.Leo, LangSinhala))
	assert.Equal(t, "Unknown", SignName(domain.ZodiacSign(0), LangSinhala))
	assert.Equal(t, "ගු", PlanetName("Jupiter", LangSinhala))
	assert.Equal(t, "Jupiter", PlanetName("Jupiter", LangEnglish))
	assert.Equal(t, "TrueRahu", PlanetName("TrueRahu", LangSinhala))
}
