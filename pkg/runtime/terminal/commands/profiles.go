package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vedic-tools/jyotish-atlas/pkg/adapters"
	"github.com/vedic-tools/jyotish-atlas/pkg/models/api"
)

type ProfilesCmd struct {
	env *Env
}

func NewProfilesCmd(env *Env) *cobra.Command {
	pc := &ProfilesCmd{env: env}
	return &cobra.Command{
		Use:   "profiles",
		Short: "List configured birth profiles",
		RunE:  pc.run,
	}
}

func (pc *ProfilesCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	names, err := pc.env.Profiles.GetProfiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	profiles := make([]api.Profile, 0, len(names))
	for _, name := range names {
		p, err := pc.env.Profiles.GetProfile(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to load profile %s: %w", name, err)
		}
		profiles = append(profiles, adapters.MapProfileDomainToApi(p))
	}
	return pc.env.Reporter.Profiles(profiles)
}

func NewHistoryCmd(env *Env) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent calculations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := env.History.List(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to list history: %w", err)
			}
			out := make([]api.CalculationRecord, 0, len(records))
			for _, r := range records {
				out = append(out, adapters.MapRecordDomainToApi(adapters.MapStoreRecordToDomain(r)))
			}
			return env.Reporter.History(out)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of records")

	return cmd
}
