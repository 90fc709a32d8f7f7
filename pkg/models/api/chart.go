package api

import "time"

type NakshatraResponse struct {
	Number             int     `json:"number"`
	Name               string  `json:"name"`
	Lord               string  `json:"lord"`
	Longitude          float64 `json:"longitude"`
	DegreesInNakshatra float64 `json:"degrees_in_nakshatra"`
	PercentCompleted   float64 `json:"percent_completed"`
	Pada               int     `json:"pada"`
}

type DashaRequest struct {
	Profile     string  `json:"profile,omitempty"`
	BirthDate   string  `json:"birth_date"`
	BirthTime   string  `json:"birth_time"`
	TimeZone    string  `json:"time_zone"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DetailLevel int     `json:"detail_level,omitempty"`
	Years       float64 `json:"years,omitempty"`
	Lang        string  `json:"lang,omitempty"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	TimeZone  string  `json:"time_zone"`
}

type DashaPeriod struct {
	Planet          string        `json:"planet"`
	Level           string        `json:"level"`
	StartUTC        time.Time     `json:"start_utc"`
	EndUTC          time.Time     `json:"end_utc"`
	StartLocal      time.Time     `json:"start_local"`
	EndLocal        time.Time     `json:"end_local"`
	DurationDays    float64       `json:"duration_days"`
	DurationYears   float64       `json:"duration_years"`
	IsCurrent       bool          `json:"is_current"`
	IsBalancePeriod bool          `json:"is_balance_period,omitempty"`
	BalanceYears    *float64      `json:"balance_years,omitempty"`
	Children        []DashaPeriod `json:"children,omitempty"`
}

type DashaResponse struct {
	BirthUTC     time.Time         `json:"birth_utc"`
	BirthLocal   time.Time         `json:"birth_local"`
	Location     Location          `json:"location"`
	Nakshatra    NakshatraResponse `json:"birth_nakshatra"`
	DetailLevel  int               `json:"detail_level"`
	Years        float64           `json:"years_calculated"`
	Periods      []DashaPeriod     `json:"mahadasha_periods"`
	Current      []DashaPeriod     `json:"current,omitempty"`
	TotalPeriods int               `json:"total_periods"`
}
