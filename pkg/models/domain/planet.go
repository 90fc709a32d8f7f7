package domain

import (
	"fmt"
	"strings"
)

// DashaPlanet is one of the nine symbolic rulers of the Vimshottari cycle.
// The numeric order is the canonical cyclic sequence.
type DashaPlanet int

const (
	Ketu DashaPlanet = iota
	Venus
	Sun
	Moon
	Mars
	Rahu
	Jupiter
	Saturn
	Mercury
)

// DashaPlanetCount is the size of the cyclic sequence.
const DashaPlanetCount = 9

// TotalCycleYears is the length of a full Vimshottari cycle.
const TotalCycleYears = 120.0

var dashaWeights = [DashaPlanetCount]float64{
	Ketu:    7,
	Venus:   20,
	Sun:     6,
	Moon:    10,
	Mars:    7,
	Rahu:    18,
	Jupiter: 16,
	Saturn:  19,
	Mercury: 17,
}

var dashaNames = [DashaPlanetCount]string{
	Ketu:    "Ketu",
	Venus:   "Venus",
	Sun:     "Sun",
	Moon:    "Moon",
	Mars:    "Mars",
	Rahu:    "Rahu",
	Jupiter: "Jupiter",
	Saturn:  "Saturn",
	Mercury: "Mercury",
}

// DashaSequence returns the canonical order starting at Ketu.
func DashaSequence() []DashaPlanet {
	return []DashaPlanet{Ketu, Venus, Sun, Moon, Mars, Rahu, Jupiter, Saturn, Mercury}
}

func (p DashaPlanet) Valid() bool {
	return p >= Ketu && p <= Mercury
}

// Years is the planet's full Mahadasha length.
func (p DashaPlanet) Years() float64 {
	if !p.Valid() {
		return 0
	}
	return dashaWeights[p]
}

// Next returns the planet that follows p in the cycle.
func (p DashaPlanet) Next() DashaPlanet {
	return DashaPlanet((int(p) + 1) % DashaPlanetCount)
}

func (p DashaPlanet) String() string {
	if !p.Valid() {
		return fmt.Sprintf("DashaPlanet(%d)", int(p))
	}
	return dashaNames[p]
}

// ParseDashaPlanet resolves a case-insensitive planet name.
func ParseDashaPlanet(name string) (DashaPlanet, error) {
	for i, n := range dashaNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return DashaPlanet(i), nil
		}
	}
	return 0, fmt.Errorf("unknown dasha planet %q: %w", name, ErrInvalidInput)
}

// Body identifies a body the ephemeris can position. Values follow the
// Swiss Ephemeris numbering; Ketu is derived from the mean node.
type Body int

const (
	BodySun      Body = 0
	BodyMoon     Body = 1
	BodyMercury  Body = 2
	BodyVenus    Body = 3
	BodyMars     Body = 4
	BodyJupiter  Body = 5
	BodySaturn   Body = 6
	BodyMeanNode Body = 10
	BodyTrueNode Body = 11
	BodyKetu     Body = 100
)

var bodyNames = map[Body]string{
	BodySun:      "Sun",
	BodyMoon:     "Moon",
	BodyMercury:  "Mercury",
	BodyVenus:    "Venus",
	BodyMars:     "Mars",
	BodyJupiter:  "Jupiter",
	BodySaturn:   "Saturn",
	BodyMeanNode: "Rahu",
	BodyTrueNode: "TrueRahu",
	BodyKetu:     "Ketu",
}

// TransitBodies lists the bodies reported by sign-change queries, in display order.
func TransitBodies() []Body {
	return []Body{
		BodySun, BodyMoon, BodyMercury, BodyVenus, BodyMars,
		BodyJupiter, BodySaturn, BodyMeanNode, BodyKetu,
	}
}

func (b Body) Valid() bool {
	_, ok := bodyNames[b]
	return ok
}

func (b Body) String() string {
	if n, ok := bodyNames[b]; ok {
		return n
	}
	return fmt.Sprintf("Body(%d)", int(b))
}

// ParseBody accepts display names as well as "MeanNode"/"TrueNode".
func ParseBody(name string) (Body, error) {
	name = strings.TrimSpace(name)
	switch strings.ToLower(name) {
	case "meannode", "mean_node":
		return BodyMeanNode, nil
	case "truenode", "true_node":
		return BodyTrueNode, nil
	}
	for b, n := range bodyNames {
		if strings.EqualFold(n, name) {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown body %q: %w", name, ErrInvalidInput)
}
