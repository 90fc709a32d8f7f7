package adapters

import (
	"github.com/vedic-tools/jyotish-atlas/pkg/models/api"
	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/zodiac"
)

func MapNakshatraDomainToApi(n domain.NakshatraInfo, lang zodiac.Lang) api.NakshatraResponse {
	return api.NakshatraResponse{
		Number:             n.Number,
		Name:               n.Name,
		Lord:               zodiac.PlanetName(n.Lord.String(), lang),
		Longitude:          n.Longitude,
		DegreesInNakshatra: n.DegreesInNakshatra,
		PercentCompleted:   n.PercentCompleted,
		Pada:               n.Pada,
	}
}

// MapDashaChartDomainToApi flattens the chart for transport. Periods on the
// current path are flagged and also listed in Current, outermost first.
func MapDashaChartDomainToApi(c domain.DashaChart, lang zodiac.Lang) api.DashaResponse {
	res := api.DashaResponse{
		BirthUTC:   c.BirthUTC,
		BirthLocal: c.BirthLocal,
		Location: api.Location{
			Latitude:  c.Location.Latitude,
			Longitude: c.Location.Longitude,
			TimeZone:  c.Location.TimeZone,
		},
		Nakshatra:    MapNakshatraDomainToApi(c.Nakshatra, lang),
		DetailLevel:  int(c.DetailLevel),
		Years:        c.Years,
		Periods:      mapPeriods(c.Periods, c.Current, lang),
		TotalPeriods: c.TotalPeriods,
	}
	for _, p := range c.Current.Resolve(c.Periods) {
		current := MapDashaPeriodDomainToApi(p, lang)
		current.IsCurrent = true
		current.Children = nil
		res.Current = append(res.Current, current)
	}
	return res
}

func MapDashaPeriodDomainToApi(p domain.DashaPeriod, lang zodiac.Lang) api.DashaPeriod {
	return api.DashaPeriod{
		Planet:          zodiac.PlanetName(p.Planet.String(), lang),
		Level:           p.Level.String(),
		StartUTC:        p.StartUTC,
		EndUTC:          p.EndUTC,
		StartLocal:      p.StartLocal,
		EndLocal:        p.EndLocal,
		DurationDays:    p.DurationDays,
		DurationYears:   p.DurationYears,
		IsBalancePeriod: p.IsBalancePeriod,
		BalanceYears:    p.BalanceYears,
	}
}

func mapPeriods(periods []domain.DashaPeriod, path domain.CurrentPath, lang zodiac.Lang) []api.DashaPeriod {
	if len(periods) == 0 {
		return nil
	}
	out := make([]api.DashaPeriod, 0, len(periods))
	for i, p := range periods {
		item := MapDashaPeriodDomainToApi(p, lang)
		var rest domain.CurrentPath
		if len(path) > 0 && path[0] == i {
			item.IsCurrent = true
			rest = path[1:]
		}
		item.Children = mapPeriods(p.Children, rest, lang)
		out = append(out, item)
	}
	return out
}
