package zodiac

import "github.com/vedic-tools/jyotish-atlas/pkg/models/domain"

// Lang selects the language used for display names.
type Lang string

const (
	LangEnglish Lang = "en"
	LangSinhala Lang = "si"
)

var sinhalaSigns = map[domain.ZodiacSign]string{
	domain.Aries:       "මේෂ",
	domain.Taurus:      "වෘෂභ",
	domain.Gemini:      "මිථුන",
	domain.Cancer:      "කටක",
	domain.Leo:         "සිංහ",
	domain.Virgo:       "කන්‍යා",
	domain.Libra:       "තුලා",
	domain.Scorpio:     "වෘශ්චික",
	domain.Sagittarius: "ධනු",
	domain.Capricorn:   "මකර",
	domain.Aquarius:    "කුම්භ",
	domain.Pisces:      "මීන",
}

var sinhalaPlanets = map[string]string{
	"Sun":     "ර",
	"Moon":    "ච",
	"Mars":    "කු",
	"Mercury": "බු",
	"Jupiter": "ගු",
	"Venus":   "ශු",
	"Saturn":  "ශ",
	"Rahu":    "රා",
	"Ketu":    "කේ",
}

// SignName localizes a sign name, falling back to English.
func SignName(s domain.ZodiacSign, lang Lang) string {
	if lang == LangSinhala {
		if n, ok := sinhalaSigns[s]; ok {
			return n
		}
	}
	return s.String()
}

// PlanetName localizes a planet or body display name.
func PlanetName(name string, lang Lang) string {
	if lang == LangSinhala {
		if n, ok := sinhalaPlanets[name]; ok {
			return n
		}
	}
	return name
}
