package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vedic-tools/jyotish-atlas/pkg/adapters"
	"github.com/vedic-tools/jyotish-atlas/pkg/models/store"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/ephemeris"
	"github.com/vedic-tools/jyotish-atlas/pkg/store/sqlite"
)

func NewEphemerisCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ephemeris",
		Short: "Manage stored ephemeris samples",
	}

	cmd.AddCommand(newImportCmd(env))
	cmd.AddCommand(&cobra.Command{
		Use:   "coverage",
		Short: "Show the stored sample range per body",
		RunE: func(cmd *cobra.Command, _ []string) error {
			coverage, err := env.Samples.Coverage(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to read coverage: %w", err)
			}
			return env.Reporter.Coverage(coverage)
		},
	})

	return cmd
}

func newImportCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>...",
		Short: "Load CSV ephemeris samples into the database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				n, err := importFile(cmd, env, path)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d samples from %s\n", n, path)
			}
			return nil
		},
	}
}

// importFile loads one CSV file in a single transaction.
func importFile(cmd *cobra.Command, env *Env, path string) (int, error) {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	samples, err := ephemeris.ReadCSV(f)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	rows := make([]store.EphemerisSample, 0, len(samples))
	for _, s := range samples {
		rows = append(rows, adapters.MapDomainSampleToStore(s))
	}

	tx, err := env.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := env.Samples.Add(sqlite.WithTransaction(ctx, tx), rows); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error().Err(rbErr).Msg("rollback failed")
		}
		return 0, fmt.Errorf("failed to store samples from %s: %w", path, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit samples from %s: %w", path, err)
	}

	logger.Info().Str("file", path).Int("samples", len(rows)).Msg("ephemeris imported")
	return len(rows), nil
}
