package api

import "time"

type SignChangeRequest struct {
	Date      string   `json:"date"`
	Time      string   `json:"time"`
	TimeZone  string   `json:"time_zone"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Bodies    []string `json:"bodies,omitempty"`
	Lang      string   `json:"lang,omitempty"`
}

type SignCrossing struct {
	Time      time.Time `json:"time"`
	JulianDay float64   `json:"julian_day"`
	FromSign  string    `json:"from_sign"`
	ToSign    string    `json:"to_sign"`
	Capped    bool      `json:"capped"`
}

type SignChange struct {
	Body         string       `json:"body"`
	Sign         string       `json:"sign"`
	Position     string       `json:"position"`
	Longitude    float64      `json:"longitude"`
	Speed        float64      `json:"speed"`
	IsRetrograde bool         `json:"is_retrograde"`
	Navamsa      string       `json:"navamsa"`
	Next         SignCrossing `json:"next_sign_change"`
	Last         SignCrossing `json:"last_sign_change"`
}

type SignChangeResponse struct {
	ReferenceUTC time.Time    `json:"reference_utc"`
	TimeZone     string       `json:"time_zone"`
	Changes      []SignChange `json:"changes"`
}
