package profile

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
)

// Registry resolves named birth profiles. Each non-empty section of the INI
// file is one profile:
//
//	[alice]
//	birth     = 1990-05-15 14:30
//	timezone  = Asia/Colombo
//	latitude  = 6.9271
//	longitude = 79.8612
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (domain.BirthProfile, error)
}

type iniRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &iniRegistry{cfg: cfg}, nil
}

// NewRegistryFromBytes builds a registry from in-memory INI data.
func NewRegistryFromBytes(data []byte) (Registry, error) {
	cfg, err := ini.Load(data)
	if err != nil {
		return nil, err
	}
	return &iniRegistry{cfg: cfg}, nil
}

func (r *iniRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (r *iniRegistry) GetProfile(_ context.Context, name string) (domain.BirthProfile, error) {
	section, err := r.cfg.GetSection(name)
	if err != nil || len(section.Keys()) == 0 {
		return domain.BirthProfile{}, fmt.Errorf("profile %s: %w", name, domain.ErrNotFound)
	}

	date, clock, ok := strings.Cut(strings.TrimSpace(section.Key("birth").String()), " ")
	if !ok {
		return domain.BirthProfile{}, fmt.Errorf("profile %s: birth must be \"YYYY-MM-DD HH:MM\": %w", name, domain.ErrInvalidInput)
	}
	lat, err := section.Key("latitude").Float64()
	if err != nil {
		return domain.BirthProfile{}, fmt.Errorf("profile %s latitude: %w", name, domain.ErrInvalidInput)
	}
	lon, err := section.Key("longitude").Float64()
	if err != nil {
		return domain.BirthProfile{}, fmt.Errorf("profile %s longitude: %w", name, domain.ErrInvalidInput)
	}

	return domain.BirthProfile{
		Name:      name,
		BirthDate: date,
		BirthTime: strings.TrimSpace(clock),
		TimeZone:  section.Key("timezone").MustString("UTC"),
		Latitude:  lat,
		Longitude: lon,
	}, nil
}

// EmptyRegistry is used when no profiles file is configured.
type EmptyRegistry struct{}

func (EmptyRegistry) GetProfiles(_ context.Context) ([]string, error) { return nil, nil }

func (EmptyRegistry) GetProfile(_ context.Context, name string) (domain.BirthProfile, error) {
	return domain.BirthProfile{}, fmt.Errorf("profile %s: %w", name, domain.ErrNotFound)
}
