package domain

import "time"

// Position is what the ephemeris returns for a body at an instant.
type Position struct {
	Longitude float64 // degrees, not necessarily normalized
	Latitude  float64
	Distance  float64 // AU
	Speed     float64 // degrees of longitude per day
}

type Motion int

const (
	Prograde Motion = iota
	Retrograde
)

func (m Motion) String() string {
	if m == Retrograde {
		return "retrograde"
	}
	return "prograde"
}

// SignCrossing is the result of a sign-boundary search. When Capped is true
// no crossing was found inside the search horizon and JulianDay is the
// horizon endpoint.
type SignCrossing struct {
	Body      Body
	JulianDay float64
	Time      time.Time
	FromSign  int // 0..11
	ToSign    int // 0..11
	Motion    Motion
	Capped    bool
}

// SignChange summarizes the current sign of a body with its neighbouring crossings.
type SignChange struct {
	Body     Body
	Sign     ZodiacSign
	Position Position
	Next     SignCrossing
	Last     SignCrossing
}

type ZodiacSign int

const (
	Aries ZodiacSign = iota + 1
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [...]string{
	"", "Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

func (s ZodiacSign) String() string {
	if s < Aries || s > Pisces {
		return "Unknown"
	}
	return signNames[s]
}

// SignFromIndex converts a 0-based sector index to a sign.
func SignFromIndex(idx int) ZodiacSign {
	return ZodiacSign(((idx%12)+12)%12 + 1)
}

// ZodiacPosition is a longitude expressed within its sign.
type ZodiacPosition struct {
	Sign         ZodiacSign
	DegreeInSign float64
	Degree       int
	Minutes      int
	Seconds      int
	Formatted    string
}

// EphemerisSample is a tabulated position of a body at a Julian day.
type EphemerisSample struct {
	Body      Body
	JulianDay float64
	Position  Position
}
