package ephemeris

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
)

// MemorySource keeps samples in memory, sorted per body.
type MemorySource struct {
	mu      sync.RWMutex
	samples map[domain.Body][]domain.EphemerisSample
}

func NewMemorySource(samples ...domain.EphemerisSample) *MemorySource {
	m := &MemorySource{samples: make(map[domain.Body][]domain.EphemerisSample)}
	m.Add(samples...)
	return m
}

func (m *MemorySource) Add(samples ...domain.EphemerisSample) {
	m.mu.Lock()
	defer m.mu.Unlock()

	touched := make(map[domain.Body]struct{})
	for _, s := range samples {
		m.samples[s.Body] = append(m.samples[s.Body], s)
		touched[s.Body] = struct{}{}
	}
	for b := range touched {
		list := m.samples[b]
		sort.Slice(list, func(i, j int) bool { return list[i].JulianDay < list[j].JulianDay })
	}
}

func (m *MemorySource) Bracket(
	_ context.Context,
	body domain.Body,
	jd float64,
) (domain.EphemerisSample, domain.EphemerisSample, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := m.samples[body]
	if len(list) == 0 {
		return domain.EphemerisSample{}, domain.EphemerisSample{}, fmt.Errorf("no samples for %s: %w", body, domain.ErrOutOfRange)
	}
	first, last := list[0], list[len(list)-1]
	if jd < first.JulianDay || jd > last.JulianDay {
		return domain.EphemerisSample{}, domain.EphemerisSample{}, fmt.Errorf(
			"jd %.5f outside [%.5f, %.5f]: %w", jd, first.JulianDay, last.JulianDay, domain.ErrOutOfRange)
	}

	i := sort.Search(len(list), func(i int) bool { return list[i].JulianDay >= jd })
	if list[i].JulianDay == jd || i == 0 {
		return list[i], list[i], nil
	}
	return list[i-1], list[i], nil
}
