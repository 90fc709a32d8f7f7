package ephemeris

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/julian"
)

// ReadCSV parses tabulated samples. The header names the columns; body and
// longitude are required together with either julian_day or time (RFC 3339).
// latitude, distance and speed default to zero.
//
//	body,julian_day,longitude,speed
//	Sun,2460000.5,335.41,1.006
func ReadCSV(r io.Reader) ([]domain.EphemerisSample, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["body"]; !ok {
		return nil, fmt.Errorf("missing body column: %w", domain.ErrInvalidInput)
	}
	if _, ok := cols["longitude"]; !ok {
		return nil, fmt.Errorf("missing longitude column: %w", domain.ErrInvalidInput)
	}
	_, hasJD := cols["julian_day"]
	_, hasTime := cols["time"]
	if !hasJD && !hasTime {
		return nil, fmt.Errorf("missing julian_day or time column: %w", domain.ErrInvalidInput)
	}

	var samples []domain.EphemerisSample
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		sample, err := parseRecord(record, cols, hasJD)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

func parseRecord(record []string, cols map[string]int, hasJD bool) (domain.EphemerisSample, error) {
	field := func(name string) string {
		if i, ok := cols[name]; ok && i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}
	number := func(name string) (float64, error) {
		v := field(name)
		if v == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%s %q: %w", name, v, domain.ErrInvalidInput)
		}
		return f, nil
	}

	body, err := parseBody(field("body"))
	if err != nil {
		return domain.EphemerisSample{}, err
	}

	var jd float64
	if hasJD {
		if jd, err = number("julian_day"); err != nil {
			return domain.EphemerisSample{}, err
		}
	} else {
		t, err := time.Parse(time.RFC3339, field("time"))
		if err != nil {
			return domain.EphemerisSample{}, fmt.Errorf("time %q: %w", field("time"), domain.ErrInvalidInput)
		}
		jd = julian.FromTime(t)
	}

	var pos domain.Position
	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"longitude", &pos.Longitude},
		{"latitude", &pos.Latitude},
		{"distance", &pos.Distance},
		{"speed", &pos.Speed},
	} {
		if *f.dst, err = number(f.name); err != nil {
			return domain.EphemerisSample{}, err
		}
	}

	return domain.EphemerisSample{Body: body, JulianDay: jd, Position: pos}, nil
}

func parseBody(v string) (domain.Body, error) {
	if n, err := strconv.Atoi(v); err == nil {
		b := domain.Body(n)
		if !b.Valid() {
			return 0, fmt.Errorf("body %d: %w", n, domain.ErrInvalidInput)
		}
		return b, nil
	}
	return domain.ParseBody(v)
}
