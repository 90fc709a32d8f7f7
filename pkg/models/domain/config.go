package domain

import (
	"fmt"
	"time"
)

// BirthProfile is a named birth record kept in the profiles registry.
type BirthProfile struct {
	Name      string
	BirthDate string // YYYY-MM-DD, local civil date
	BirthTime string // HH:MM, local civil time
	TimeZone  string // IANA zone
	Latitude  float64
	Longitude float64
}

func (p BirthProfile) String() string {
	return fmt.Sprintf("%s:%s %s %s", p.Name, p.BirthDate, p.BirthTime, p.TimeZone)
}

// CalculationKind names the calculations recorded in history.
type CalculationKind string

const (
	CalculationNakshatra   CalculationKind = "nakshatra"
	CalculationDasha       CalculationKind = "dasha"
	CalculationSignChanges CalculationKind = "sign_changes"
	CalculationDigest      CalculationKind = "digest"
)

// CalculationRecord is one entry of the calculation history.
type CalculationRecord struct {
	ID        string
	Kind      CalculationKind
	Subject   string
	Summary   string
	CreatedAt time.Time
}
