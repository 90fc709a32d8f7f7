package store

import "time"

// CalculationRecord is a row of the calculation_history table.
type CalculationRecord struct {
	ID        string
	Kind      string
	Subject   string
	Summary   string
	CreatedAt time.Time
}
