// Package cli implements quizctl, the command line front end of the quiz
// editor.
package cli

import (
	"context"
	"fmt"
	"os"

	"quizbook/internal/bootstrap"
	"quizbook/internal/config"
	"quizbook/internal/domain"
	"quizbook/internal/logger"

	"github.com/spf13/cobra"
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd(defaultOpener).Execute()
}

// opener builds the services a command needs from the loaded config.
type opener func(ctx context.Context, cfg *config.Config) (*bootstrap.Container, error)

func defaultOpener(ctx context.Context, cfg *config.Config) (*bootstrap.Container, error) {
	return bootstrap.New(ctx, cfg)
}

type rootOptions struct {
	configPath string
	verbose    bool
	open       opener
}

func newRootCmd(open opener) *cobra.Command {
	opts := &rootOptions{open: open}

	cmd := &cobra.Command{
		Use:          "quizctl",
		Short:        "Import, export, validate and seed quizbook quizzes as YAML",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv("CONFIG_PATH"), "path to YAML config")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stdout")
	cmd.AddCommand(newImportCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newSeedCmd(opts))
	return cmd
}

// session loads config, wires the services and returns a context carrying the
// CLI administrator identity.
func (o *rootOptions) session(ctx context.Context) (context.Context, *bootstrap.Container, error) {
	cfg, err := config.LoadConfigFile(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	if o.verbose {
		if err := logger.Initialize(cfg.Logger); err != nil {
			return nil, nil, err
		}
	}
	deps, err := o.open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Admin.CLIEmail == "" {
		deps.Close()
		return nil, nil, fmt.Errorf("admin.cli_email is not configured")
	}
	ctx = domain.ContextWithIdentity(ctx, domain.Identity{Email: cfg.Admin.CLIEmail})
	return ctx, deps, nil
}
