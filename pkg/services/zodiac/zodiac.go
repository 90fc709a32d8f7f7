package zodiac

import (
	"fmt"
	"math"

	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
)

// SignWidth is the width of one zodiac sign in degrees.
const SignWidth = 30.0

// Normalize reduces degrees to [0, 360).
func Normalize(deg float64) float64 {
	n := math.Mod(deg, 360)
	if n < 0 {
		n += 360
	}
	// tiny negative inputs round up to exactly 360
	if n >= 360 {
		n = 0
	}
	return n
}

// SignIndex returns the 0-based sign sector of a longitude.
func SignIndex(longitude float64) int {
	idx := int(Normalize(longitude) / SignWidth)
	if idx > 11 {
		idx = 11
	}
	return idx
}

// Sign returns the zodiac sign containing the longitude.
func Sign(longitude float64) domain.ZodiacSign {
	return domain.SignFromIndex(SignIndex(longitude))
}

// ToDMS splits decimal degrees into whole degrees, minutes and seconds.
func ToDMS(deg float64) (d, m, s int) {
	d = int(deg)
	minutes := (deg - float64(d)) * 60
	m = int(minutes)
	s = int((minutes - float64(m)) * 60)
	return d, m, s
}

// Position expresses a longitude relative to its sign.
func Position(longitude float64) domain.ZodiacPosition {
	lon := Normalize(longitude)
	sign := Sign(lon)
	inSign := lon - float64(SignIndex(lon))*SignWidth
	d, m, s := ToDMS(inSign)
	return domain.ZodiacPosition{
		Sign:         sign,
		DegreeInSign: inSign,
		Degree:       d,
		Minutes:      m,
		Seconds:      s,
		Formatted:    fmt.Sprintf("%d°%02d'%02d\" %s", d, m, s, sign),
	}
}

// navamsa start signs by element: fire, earth, air, water
var navamsaStart = [4]int{1, 10, 7, 4}

// Navamsa returns the D9 sign of a sidereal longitude. Each sign is split
// into nine parts of 3°20'; counting starts from the movable sign of the
// natal sign's element.
func Navamsa(longitude float64) domain.ZodiacSign {
	lon := Normalize(longitude)
	natal := SignIndex(lon)
	division := int((lon - float64(natal)*SignWidth) / (SignWidth / 9))
	if division > 8 {
		division = 8
	}
	start := navamsaStart[natal%4]
	return domain.ZodiacSign((start-1+division)%12 + 1)
}
