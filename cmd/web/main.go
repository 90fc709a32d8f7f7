package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vedic-tools/jyotish-atlas/pkg/runtime/app"
	"github.com/vedic-tools/jyotish-atlas/pkg/server"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/config"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Jyotish Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the config file (default is ./.jyotish.yaml)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}
	ctx := logger.WithContext(cmd.Context())

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	coverage, err := a.Samples.Coverage(ctx)
	if err != nil {
		return fmt.Errorf("failed to read ephemeris coverage: %w", err)
	}
	if len(coverage) == 0 {
		logger.Warn().Str("db", cfg.Database.Path).Msg("no ephemeris samples stored, import some with `jyotish ephemeris import`")
	}
	for _, c := range coverage {
		logger.Info().Int("body", c.Body).Float64("from_jd", c.FirstJD).Float64("to_jd", c.LastJD).
			Int64("samples", c.Count).Msg("ephemeris coverage")
	}

	scheduler, err := a.NewDigestScheduler(ctx)
	if err != nil {
		return fmt.Errorf("failed to create transit digest: %w", err)
	}
	if scheduler != nil {
		scheduler.Start()
		defer scheduler.Stop()
		logger.Info().Str("schedule", cfg.Digest.Schedule).Msg("transit digest scheduled")
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr:            cfg.Server.Addr(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Dasha:    a.Dasha,
			Transits: a.Transits,
			Profiles: a.Profiles,
			History:  a.History,
			Gatherer: a.Registry,
		},
	})

	return api.Start()
}
