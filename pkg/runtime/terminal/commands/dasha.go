package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vedic-tools/jyotish-atlas/pkg/adapters"
	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/dasha"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/zodiac"
)

type DashaCmd struct {
	profile   string
	date      string
	clock     string
	timeZone  string
	latitude  float64
	longitude float64
	level     int
	years     float64
	lang      string
	env       *Env
}

func NewDashaCmd(env *Env) *cobra.Command {
	dc := &DashaCmd{env: env}
	cmd := &cobra.Command{
		Use:   "dasha",
		Short: "Generate the Vimshottari Dasha periods for a birth",
		RunE:  dc.run,
	}

	cmd.Flags().StringVar(&dc.profile, "profile", "", "Birth profile name from the profiles file")
	cmd.Flags().StringVar(&dc.date, "date", "", "Birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dc.clock, "time", "", "Birth time (HH:MM)")
	cmd.Flags().StringVar(&dc.timeZone, "tz", "UTC", "IANA time zone of the birth time")
	cmd.Flags().Float64Var(&dc.latitude, "lat", 0, "Birth latitude")
	cmd.Flags().Float64Var(&dc.longitude, "lon", 0, "Birth longitude")
	cmd.Flags().IntVar(&dc.level, "level", 0, "Detail level 1-4 (default from config)")
	cmd.Flags().Float64Var(&dc.years, "years", 0, "Years covered from birth (default from config)")
	cmd.Flags().StringVar(&dc.lang, "lang", "en", "Display language (en, si)")

	cmd.MarkFlagsOneRequired("profile", "date")
	cmd.MarkFlagsMutuallyExclusive("profile", "date")
	cmd.MarkFlagsRequiredTogether("date", "time")

	return cmd
}

func (dc *DashaCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	req := dasha.Request{
		Subject:   "cli",
		BirthDate: dc.date,
		BirthTime: dc.clock,
		TimeZone:  dc.timeZone,
		Latitude:  dc.latitude,
		Longitude: dc.longitude,
	}
	if dc.profile != "" {
		p, err := dc.env.Profiles.GetProfile(ctx, dc.profile)
		if err != nil {
			return fmt.Errorf("failed to load profile %s: %w", dc.profile, err)
		}
		req = dasha.RequestFromProfile(p)
	}
	req.DetailLevel = domain.DashaLevel(dc.level)
	req.Years = dc.years

	chart, err := dc.env.Dasha.Calculate(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to calculate dasha: %w", err)
	}
	return dc.env.Reporter.Dasha(adapters.MapDashaChartDomainToApi(chart, zodiac.Lang(dc.lang)))
}
