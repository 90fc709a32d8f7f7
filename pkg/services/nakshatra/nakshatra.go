package nakshatra

import (
	"fmt"
	"math"

	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/zodiac"
)

const (
	// Count is the number of nakshatras in the zodiac.
	Count = 27

	// Span is the width of one nakshatra in degrees (13°20').
	Span = 360.0 / Count
)

var names = [Count]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni", "Uttara Phalguni",
	"Hasta", "Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha",
	"Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana", "Dhanishta", "Shatabhisha",
	"Purva Bhadrapada", "Uttara Bhadrapada", "Revati",
}

// Name returns the nakshatra name for a 1-based number.
func Name(number int) string {
	if number < 1 || number > Count {
		return ""
	}
	return names[number-1]
}

// Lord returns the ruling planet of a 1-based nakshatra. The lords repeat
// the dasha sequence three times, Ashwini being ruled by Ketu.
func Lord(number int) domain.DashaPlanet {
	return domain.DashaPlanet((number - 1) % domain.DashaPlanetCount)
}

// Compute locates the nakshatra of a sidereal longitude. Any finite
// longitude is accepted and normalized first.
func Compute(longitude float64) (domain.NakshatraInfo, error) {
	if math.IsNaN(longitude) || math.IsInf(longitude, 0) {
		return domain.NakshatraInfo{}, fmt.Errorf("longitude %v: %w", longitude, domain.ErrInvalidInput)
	}

	lon := zodiac.Normalize(longitude)
	// work in nakshatra units so exact boundaries such as 120° stay exact
	units := lon * Count / 360
	idx := int(math.Floor(units))
	if idx >= Count {
		idx = Count - 1
	}
	frac := units - float64(idx)
	if frac < 0 {
		frac = 0
	} else if frac > 1 {
		frac = 1
	}

	pada := int(math.Floor(frac*4)) + 1
	if pada > 4 {
		pada = 4
	}

	number := idx + 1
	return domain.NakshatraInfo{
		Number:             number,
		Name:               Name(number),
		Lord:               Lord(number),
		Longitude:          lon,
		DegreesInNakshatra: frac * Span,
		PercentCompleted:   frac * 100,
		Pada:               pada,
	}, nil
}

// BalanceFraction is the share of the lord's Mahadasha still to run at birth.
func BalanceFraction(info domain.NakshatraInfo) float64 {
	return 1 - info.PercentCompleted/100
}
