package terminal

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vedic-tools/jyotish-atlas/pkg/runtime/app"
	"github.com/vedic-tools/jyotish-atlas/pkg/runtime/terminal/commands"
	"github.com/vedic-tools/jyotish-atlas/pkg/runtime/terminal/export"
)

// OpenFunc builds the application from a config file path.
type OpenFunc func(ctx context.Context, configPath string) (*app.App, error)

// CLI represents the command-line interface
type CLI struct {
	open       OpenFunc
	app        *app.App
	env        *commands.Env
	configPath string
	rootCmd    *cobra.Command
}

// Options contain configuration for the CLI. When Env is set its services
// are used as-is and Open is never called.
type Options struct {
	Open   OpenFunc
	Env    *commands.Env
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	env := opts.Env
	if env == nil {
		env = &commands.Env{}
	}
	env.Reporter = export.NewReporter(opts.Output)

	cli := &CLI{
		open: opts.Open,
		env:  env,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.ExecuteContext(context.Background())
}

// ExecuteContext runs the selected command and releases the application
// opened for it.
func (cli *CLI) ExecuteContext(ctx context.Context) error {
	defer cli.close()
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args, mostly for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "jyotish",
		Short:             "Vimshottari Dasha and transit calculator",
		SilenceUsage:      true,
		PersistentPreRunE: cli.setup,
	}

	cmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", "", "Path to the config file (default ./.jyotish.yaml)")

	cmd.AddCommand(commands.NewNakshatraCmd(cli.env))
	cmd.AddCommand(commands.NewDashaCmd(cli.env))
	cmd.AddCommand(commands.NewTransitsCmd(cli.env))
	cmd.AddCommand(commands.NewEphemerisCmd(cli.env))
	cmd.AddCommand(commands.NewProfilesCmd(cli.env))
	cmd.AddCommand(commands.NewHistoryCmd(cli.env))

	return cmd
}

func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	if cli.env.Dasha != nil || cli.open == nil {
		return nil
	}

	a, err := cli.open(cmd.Context(), cli.configPath)
	if err != nil {
		return err
	}
	cli.app = a
	cli.env.Dasha = a.Dasha
	cli.env.Transits = a.Transits
	cli.env.Profiles = a.Profiles
	cli.env.History = a.History
	cli.env.Samples = a.Samples
	cli.env.DB = a.DB
	return nil
}

func (cli *CLI) close() {
	if cli.app == nil {
		return
	}
	_ = cli.app.Close()
	cli.app = nil
	reporter := cli.env.Reporter
	*cli.env = commands.Env{Reporter: reporter}
}
