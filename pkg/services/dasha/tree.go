package dasha

import (
	"fmt"
	"math"
	"time"

	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/julian"
)

// DaysPerYear is the average year length applied at every level. It is kept
// as 365.25 so results stay comparable with existing tables; it is not a
// calendar-accurate conversion.
const DaysPerYear = 365.25

// BuildParams describes the level-1 sequence to generate.
type BuildParams struct {
	BirthUTC        time.Time
	Location        *time.Location // zone for the paired local instants; UTC when nil
	Seed            domain.DashaPlanet
	BalanceFraction float64 // share of the seed planet's Mahadasha remaining at birth, (0, 1]
	TotalYears      float64 // (0, 120]
}

func (p BuildParams) validate() error {
	if p.BirthUTC.IsZero() {
		return fmt.Errorf("birth instant is required: %w", domain.ErrInvalidInput)
	}
	if !p.Seed.Valid() {
		return fmt.Errorf("seed planet %d: %w", int(p.Seed), domain.ErrInvalidInput)
	}
	if math.IsNaN(p.BalanceFraction) || p.BalanceFraction <= 0 || p.BalanceFraction > 1 {
		return fmt.Errorf("balance fraction %v must be in (0, 1]: %w", p.BalanceFraction, domain.ErrInvalidInput)
	}
	if math.IsNaN(p.TotalYears) || p.TotalYears <= 0 || p.TotalYears > domain.TotalCycleYears {
		return fmt.Errorf("total years %v must be in (0, 120]: %w", p.TotalYears, domain.ErrInvalidInput)
	}
	return nil
}

// BuildTree generates the Mahadasha sequence from birth. The first period is
// the balance of the seed planet; the rest follow the cyclic order with full
// lengths, and the final period is cut so the sequence ends exactly
// TotalYears after birth.
func BuildTree(p BuildParams) ([]domain.DashaPeriod, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}

	birth := p.BirthUTC.UTC()
	finalEnd := birth.Add(julian.Days(p.TotalYears * DaysPerYear))
	balance := p.Seed.Years() * p.BalanceFraction

	periods := make([]domain.DashaPeriod, 0, domain.DashaPlanetCount+1)
	planet := p.Seed
	start := birth
	elapsed := 0.0

	for elapsed < p.TotalYears {
		years := planet.Years()
		first := len(periods) == 0
		if first {
			years = balance
		}

		last := elapsed+years >= p.TotalYears
		end := finalEnd
		if last {
			years = p.TotalYears - elapsed
		} else {
			end = birth.Add(julian.Days((elapsed + years) * DaysPerYear))
		}

		period := domain.DashaPeriod{
			Planet:        planet,
			Level:         domain.LevelMahadasha,
			StartUTC:      start,
			EndUTC:        end,
			StartLocal:    start.In(loc),
			EndLocal:      end.In(loc),
			DurationDays:  years * DaysPerYear,
			DurationYears: years,
		}
		if first {
			b := balance
			period.IsBalancePeriod = true
			period.BalanceYears = &b
		}
		periods = append(periods, period)

		if last {
			break
		}
		elapsed += years
		start = end
		planet = planet.Next()
	}

	return periods, nil
}

// ExpandOneLevel splits a period into its nine sub-periods. The sequence
// starts with the parent's own planet and each child gets weight/120 of the
// parent; the last child ends exactly where the parent ends. The parent is
// not modified.
func ExpandOneLevel(parent domain.DashaPeriod) ([]domain.DashaPeriod, error) {
	if parent.Level >= domain.MaxDashaLevel {
		return nil, fmt.Errorf("expand %s %s: %w", parent.Level, parent.Planet, domain.ErrMaxDepth)
	}
	if parent.Level < domain.LevelMahadasha || !parent.Planet.Valid() {
		return nil, fmt.Errorf("expand level %d planet %d: %w", parent.Level, parent.Planet, domain.ErrInvalidInput)
	}

	loc := parent.StartLocal.Location()
	if parent.StartLocal.IsZero() {
		loc = time.UTC
	}

	children := make([]domain.DashaPeriod, 0, domain.DashaPlanetCount)
	planet := parent.Planet
	start := parent.StartUTC
	offsetDays, offsetYears := 0.0, 0.0

	for i := 0; i < domain.DashaPlanetCount; i++ {
		years := planet.Years() / domain.TotalCycleYears * parent.DurationYears
		days := years * DaysPerYear

		var end time.Time
		if i == domain.DashaPlanetCount-1 {
			end = parent.EndUTC
			years = parent.DurationYears - offsetYears
			days = parent.DurationDays - offsetDays
		} else {
			end = parent.StartUTC.Add(julian.Days(offsetDays + days))
		}

		children = append(children, domain.DashaPeriod{
			Planet:        planet,
			Level:         parent.Level + 1,
			StartUTC:      start,
			EndUTC:        end,
			StartLocal:    start.In(loc),
			EndLocal:      end.In(loc),
			DurationDays:  days,
			DurationYears: years,
		})

		offsetDays += days
		offsetYears += years
		start = end
		planet = planet.Next()
	}

	return children, nil
}

// Expand returns a copy of tree with every node populated down to depth.
// Depth 1 returns the level-1 periods without children.
func Expand(tree []domain.DashaPeriod, depth domain.DashaLevel) ([]domain.DashaPeriod, error) {
	if depth < domain.LevelMahadasha || depth > domain.MaxDashaLevel {
		return nil, fmt.Errorf("depth %d must be in [1, 4]: %w", depth, domain.ErrInvalidInput)
	}

	out := make([]domain.DashaPeriod, len(tree))
	for i, node := range tree {
		node.Children = nil
		if node.Level < depth {
			children, err := ExpandOneLevel(node)
			if err != nil {
				return nil, err
			}
			children, err = Expand(children, depth)
			if err != nil {
				return nil, err
			}
			node.Children = children
		}
		out[i] = node
	}
	return out, nil
}

// CountPeriods counts every node in the tree.
func CountPeriods(tree []domain.DashaPeriod) int {
	n := len(tree)
	for _, p := range tree {
		n += CountPeriods(p.Children)
	}
	return n
}
