package adapters

import (
	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
	"github.com/vedic-tools/jyotish-atlas/pkg/models/store"
)

func MapStoreSampleToDomain(s store.EphemerisSample) domain.EphemerisSample {
	return domain.EphemerisSample{
		Body:      domain.Body(s.Body),
		JulianDay: s.JulianDay,
		Position: domain.Position{
			Longitude: s.Longitude,
			Latitude:  s.Latitude,
			Distance:  s.Distance,
			Speed:     s.Speed,
		},
	}
}

func MapDomainSampleToStore(s domain.EphemerisSample) store.EphemerisSample {
	return store.EphemerisSample{
		Body:      int(s.Body),
		JulianDay: s.JulianDay,
		Longitude: s.Position.Longitude,
		Latitude:  s.Position.Latitude,
		Distance:  s.Position.Distance,
		Speed:     s.Position.Speed,
	}
}
