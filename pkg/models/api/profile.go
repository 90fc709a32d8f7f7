package api

import "time"

type Profile struct {
	Name      string  `json:"name"`
	BirthDate string  `json:"birth_date"`
	BirthTime string  `json:"birth_time"`
	TimeZone  string  `json:"time_zone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type CalculationRecord struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Subject   string    `json:"subject"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
