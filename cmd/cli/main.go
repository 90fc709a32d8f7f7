package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/vedic-tools/jyotish-atlas/pkg/runtime/app"
	"github.com/vedic-tools/jyotish-atlas/pkg/runtime/terminal"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/config"
)

func main() {
	_ = godotenv.Load()

	// the CLI keeps stdout for reports; logs go to stderr at warn and above
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(zerolog.WarnLevel)
	ctx := logger.WithContext(context.Background())

	cli := terminal.NewCLI(terminal.Options{
		Open: func(ctx context.Context, configPath string) (*app.App, error) {
			cfg, err := config.Load(configPath)
			if err != nil {
				return nil, fmt.Errorf("failed to load configuration: %w", err)
			}
			return app.New(ctx, cfg)
		},
		Output: os.Stdout,
	})

	if err := cli.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
