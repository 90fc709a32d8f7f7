package store

// EphemerisSample is a row of the ephemeris_samples table.
type EphemerisSample struct {
	Body      int
	JulianDay float64
	Longitude float64
	Latitude  float64
	Distance  float64
	Speed     float64
}

// SampleCoverage describes the stored range for one body.
type SampleCoverage struct {
	Body    int
	FirstJD float64
	LastJD  float64
	Count   int64
}
