package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vedic-tools/jyotish-atlas/pkg/adapters"
	"github.com/vedic-tools/jyotish-atlas/pkg/models/api"
	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/julian"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/transit"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/zodiac"
)

type TransitsCmd struct {
	date     string
	clock    string
	timeZone string
	bodies   []string
	lang     string
	env      *Env
	now      func() time.Time
}

func NewTransitsCmd(env *Env) *cobra.Command {
	tc := &TransitsCmd{env: env, now: time.Now}
	cmd := &cobra.Command{
		Use:   "transits",
		Short: "Show current signs with the last and next sign changes",
		RunE:  tc.run,
	}

	cmd.Flags().StringVar(&tc.date, "date", "", "Reference date (YYYY-MM-DD, default now)")
	cmd.Flags().StringVar(&tc.clock, "time", "00:00", "Reference time (HH:MM)")
	cmd.Flags().StringVar(&tc.timeZone, "tz", "UTC", "IANA time zone for input and output")
	cmd.Flags().StringSliceVar(&tc.bodies, "bodies", nil, "Bodies to report (default all)")
	cmd.Flags().StringVar(&tc.lang, "lang", "en", "Display language (en, si)")

	return cmd
}

func (tc *TransitsCmd) run(cmd *cobra.Command, _ []string) error {
	loc, err := time.LoadLocation(tc.timeZone)
	if err != nil {
		return fmt.Errorf("time zone %q: %w", tc.timeZone, domain.ErrInvalidInput)
	}

	at := tc.now()
	if tc.date != "" {
		if at, err = julian.CombineLocal(tc.date, tc.clock, loc); err != nil {
			return err
		}
	}

	bodies := make([]domain.Body, 0, len(tc.bodies))
	for _, name := range tc.bodies {
		b, err := domain.ParseBody(name)
		if err != nil {
			return err
		}
		bodies = append(bodies, b)
	}

	changes, err := tc.env.Transits.SignChanges(cmd.Context(), transit.Request{Subject: "cli", At: at, Bodies: bodies})
	if err != nil {
		return fmt.Errorf("failed to find sign changes: %w", err)
	}

	lang := zodiac.Lang(tc.lang)
	res := api.SignChangeResponse{
		ReferenceUTC: at.UTC(),
		TimeZone:     tc.timeZone,
		Changes:      make([]api.SignChange, 0, len(changes)),
	}
	for _, c := range changes {
		res.Changes = append(res.Changes, adapters.MapSignChangeDomainToApi(c, loc, lang))
	}
	return tc.env.Reporter.SignChanges(res)
}
