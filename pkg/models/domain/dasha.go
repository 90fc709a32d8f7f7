package domain

import "time"

type DashaLevel int

const (
	LevelMahadasha DashaLevel = iota + 1
	LevelAntardasha
	LevelPratyantardasha
	LevelSookshma
)

// MaxDashaLevel is the deepest level the tree supports.
const MaxDashaLevel = LevelSookshma

func (l DashaLevel) String() string {
	switch l {
	case LevelMahadasha:
		return "Mahadasha"
	case LevelAntardasha:
		return "Antardasha"
	case LevelPratyantardasha:
		return "Pratyantardasha"
	case LevelSookshma:
		return "Sookshma"
	default:
		return "Unknown"
	}
}

// NakshatraInfo describes where a sidereal longitude falls among the 27 lunar mansions.
type NakshatraInfo struct {
	Number             int // 1..27
	Name               string
	Lord               DashaPlanet
	Longitude          float64 // normalized to [0, 360)
	DegreesInNakshatra float64
	PercentCompleted   float64
	Pada               int // 1..4
}

// DashaPeriod is one node of the period tree. Values are never mutated after
// construction; deeper levels are produced by expansion into new values.
type DashaPeriod struct {
	Planet          DashaPlanet
	Level           DashaLevel
	StartUTC        time.Time
	EndUTC          time.Time
	StartLocal      time.Time
	EndLocal        time.Time
	DurationDays    float64
	DurationYears   float64
	IsBalancePeriod bool
	BalanceYears    *float64
	Children        []DashaPeriod
}

// Contains reports whether t falls in the half-open interval [StartUTC, EndUTC).
func (p DashaPeriod) Contains(t time.Time) bool {
	return !t.Before(p.StartUTC) && t.Before(p.EndUTC)
}

// CurrentPath holds child indexes from the root sequence down to the deepest
// active period. An empty path means no period is active.
type CurrentPath []int

// Resolve returns the periods along the path, one per level.
func (cp CurrentPath) Resolve(tree []DashaPeriod) []DashaPeriod {
	out := make([]DashaPeriod, 0, len(cp))
	level := tree
	for _, idx := range cp {
		if idx < 0 || idx >= len(level) {
			break
		}
		out = append(out, level[idx])
		level = level[idx].Children
	}
	return out
}

// DashaChart is the full result of a dasha calculation for one birth.
type DashaChart struct {
	BirthUTC     time.Time
	BirthLocal   time.Time
	Location     GeoLocation
	Nakshatra    NakshatraInfo
	DetailLevel  DashaLevel
	Years        float64
	Periods      []DashaPeriod
	Current      CurrentPath
	TotalPeriods int
}

type GeoLocation struct {
	Latitude  float64
	Longitude float64
	TimeZone  string
}
