package adapters

import (
	"time"

	"github.com/vedic-tools/jyotish-atlas/pkg/models/api"
	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/zodiac"
)

func MapSignChangeDomainToApi(c domain.SignChange, loc *time.Location, lang zodiac.Lang) api.SignChange {
	return api.SignChange{
		Body:         zodiac.PlanetName(c.Body.String(), lang),
		Sign:         zodiac.SignName(c.Sign, lang),
		Position:     zodiac.Position(c.Position.Longitude).Formatted,
		Longitude:    zodiac.Normalize(c.Position.Longitude),
		Speed:        c.Position.Speed,
		IsRetrograde: c.Position.Speed < 0,
		Navamsa:      zodiac.SignName(zodiac.Navamsa(c.Position.Longitude), lang),
		Next:         MapSignCrossingDomainToApi(c.Next, loc, lang),
		Last:         MapSignCrossingDomainToApi(c.Last, loc, lang),
	}
}

func MapSignCrossingDomainToApi(c domain.SignCrossing, loc *time.Location, lang zodiac.Lang) api.SignCrossing {
	t := c.Time
	if loc != nil {
		t = t.In(loc)
	}
	return api.SignCrossing{
		Time:      t,
		JulianDay: c.JulianDay,
		FromSign:  zodiac.SignName(domain.SignFromIndex(c.FromSign), lang),
		ToSign:    zodiac.SignName(domain.SignFromIndex(c.ToSign), lang),
		Capped:    c.Capped,
	}
}
