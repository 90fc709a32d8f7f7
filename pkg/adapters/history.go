package adapters

import (
	"github.com/vedic-tools/jyotish-atlas/pkg/models/api"
	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
	"github.com/vedic-tools/jyotish-atlas/pkg/models/store"
)

func MapDomainRecordToStore(r domain.CalculationRecord) store.CalculationRecord {
	return store.CalculationRecord{
		ID:        r.ID,
		Kind:      string(r.Kind),
		Subject:   r.Subject,
		Summary:   r.Summary,
		CreatedAt: r.CreatedAt,
	}
}

func MapStoreRecordToDomain(r store.CalculationRecord) domain.CalculationRecord {
	return domain.CalculationRecord{
		ID:        r.ID,
		Kind:      domain.CalculationKind(r.Kind),
		Subject:   r.Subject,
		Summary:   r.Summary,
		CreatedAt: r.CreatedAt,
	}
}

func MapRecordDomainToApi(r domain.CalculationRecord) api.CalculationRecord {
	return api.CalculationRecord{
		ID:        r.ID,
		Kind:      string(r.Kind),
		Subject:   r.Subject,
		Summary:   r.Summary,
		CreatedAt: r.CreatedAt,
	}
}

func MapProfileDomainToApi(p domain.BirthProfile) api.Profile {
	return api.Profile{
		Name:      p.Name,
		BirthDate: p.BirthDate,
		BirthTime: p.BirthTime,
		TimeZone:  p.TimeZone,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
	}
}
