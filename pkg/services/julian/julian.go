package julian

import (
	"math"
	"time"
)

// unixEpochJD is the Julian day of 1970-01-01T00:00:00Z.
const unixEpochJD = 2440587.5

const (
	secondsPerDay = 86400.0

	// Minute is one minute of time expressed in days.
	Minute = 1.0 / (24 * 60)
)

// FromTime converts an instant to a Julian day number (UT).
func FromTime(t time.Time) float64 {
	sec := float64(t.Unix()) + float64(t.Nanosecond())/1e9
	return unixEpochJD + sec/secondsPerDay
}

// ToTime converts a Julian day number (UT) to a UTC instant, rounded to the
// nearest millisecond.
func ToTime(jd float64) time.Time {
	ms := math.Round((jd - unixEpochJD) * secondsPerDay * 1000)
	return time.UnixMilli(int64(ms)).UTC()
}

// Days converts a day count to a time.Duration rounded to the nanosecond.
func Days(days float64) time.Duration {
	return time.Duration(math.Round(days * float64(24*time.Hour)))
}

// CombineLocal builds a civil date-time in loc from "YYYY-MM-DD" and "HH:MM".
func CombineLocal(date, clock string, loc *time.Location) (time.Time, error) {
	layout := "2006-01-02 15:04"
	if len(clock) == len("15:04:05") {
		layout = "2006-01-02 15:04:05"
	}
	return time.ParseInLocation(layout, date+" "+clock, loc)
}
