package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vedic-tools/jyotish-atlas/pkg/adapters"
	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/zodiac"
)

type NakshatraCmd struct {
	lang string
	env  *Env
}

func NewNakshatraCmd(env *Env) *cobra.Command {
	nc := &NakshatraCmd{env: env}
	cmd := &cobra.Command{
		Use:   "nakshatra <longitude>",
		Short: "Locate the lunar mansion of a sidereal longitude",
		Args:  cobra.ExactArgs(1),
		RunE:  nc.run,
	}

	cmd.Flags().StringVar(&nc.lang, "lang", "en", "Display language (en, si)")

	return cmd
}

func (nc *NakshatraCmd) run(cmd *cobra.Command, args []string) error {
	lon, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("longitude %q: %w", args[0], domain.ErrInvalidInput)
	}

	info, err := nc.env.Dasha.Nakshatra(cmd.Context(), lon)
	if err != nil {
		return fmt.Errorf("failed to locate nakshatra: %w", err)
	}
	return nc.env.Reporter.Nakshatra(adapters.MapNakshatraDomainToApi(info, zodiac.Lang(nc.lang)))
}
