package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
)

const EnvPrefix = "JYOTISH"

type Config struct {
	LogLevel  string          `mapstructure:"log_level"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Ephemeris EphemerisConfig `mapstructure:"ephemeris"`
	Dasha     DashaConfig     `mapstructure:"dasha"`
	Profiles  ProfilesConfig  `mapstructure:"profiles"`
	Digest    DigestConfig    `mapstructure:"digest"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig points at the SQLite file holding ephemeris samples and
// calculation history. History is kept only when RecordHistory is set.
type DatabaseConfig struct {
	Path          string `mapstructure:"path"`
	RecordHistory bool   `mapstructure:"record_history"`
}

type EphemerisConfig struct {
	// Tropical marks stored samples as tropical so the ayanamsa is applied on read.
	Tropical      bool    `mapstructure:"tropical"`
	AyanamsaJ2000 float64 `mapstructure:"ayanamsa_j2000"`
	AyanamsaRate  float64 `mapstructure:"ayanamsa_rate"`
	Node          string  `mapstructure:"node"`
}

type DashaConfig struct {
	Years       float64 `mapstructure:"years"`
	DetailLevel int     `mapstructure:"detail_level"`
}

type ProfilesConfig struct {
	Path string `mapstructure:"path"`
}

type DigestConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Schedule string   `mapstructure:"schedule"`
	TimeZone string   `mapstructure:"time_zone"`
	Bodies   []string `mapstructure:"bodies"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", "5s")
	v.SetDefault("database.path", "jyotish.db")
	v.SetDefault("database.record_history", true)
	v.SetDefault("ephemeris.tropical", true)
	v.SetDefault("ephemeris.ayanamsa_j2000", 23.857)
	v.SetDefault("ephemeris.ayanamsa_rate", 50.29)
	v.SetDefault("ephemeris.node", "mean")
	v.SetDefault("dasha.years", domain.TotalCycleYears)
	v.SetDefault("dasha.detail_level", int(domain.LevelAntardasha))
	v.SetDefault("profiles.path", "profiles.ini")
	v.SetDefault("digest.enabled", false)
	v.SetDefault("digest.schedule", "0 6 * * *")
	v.SetDefault("digest.time_zone", "UTC")
	v.SetDefault("digest.bodies", []string{"Sun", "Mars", "Jupiter", "Saturn", "Rahu", "Ketu"})
}

// Load reads configuration from path, or from .jyotish.yaml in the working
// directory when path is empty, then overlays JYOTISH_* environment variables.
// A missing default file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".jyotish")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range: %w", c.Server.Port, domain.ErrInvalidInput)
	}
	if c.Dasha.Years <= 0 || c.Dasha.Years > domain.TotalCycleYears {
		return fmt.Errorf("dasha.years %v must be in (0, 120]: %w", c.Dasha.Years, domain.ErrInvalidInput)
	}
	if c.Dasha.DetailLevel < int(domain.LevelMahadasha) || c.Dasha.DetailLevel > int(domain.MaxDashaLevel) {
		return fmt.Errorf("dasha.detail_level %d must be in [1, 4]: %w", c.Dasha.DetailLevel, domain.ErrInvalidInput)
	}
	switch c.Ephemeris.Node {
	case "mean", "true":
	default:
		return fmt.Errorf("ephemeris.node %q must be mean or true: %w", c.Ephemeris.Node, domain.ErrInvalidInput)
	}
	return nil
}

// NodeBody returns the body answering Rahu queries.
func (e EphemerisConfig) NodeBody() domain.Body {
	if e.Node == "true" {
		return domain.BodyTrueNode
	}
	return domain.BodyMeanNode
}
