// Package cli implements the particlefield command-line interface.
//
// The root command opens the field in a window. Subcommands run it in a
// terminal or render a headless PNG preview. All commands accept
// --config/--pick-config for host settings, --seed for a reproducible field,
// and --verbose for debug logging.
package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/field"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// rootOpts holds the persistent flags and what PersistentPreRunE derives
// from them.
type rootOpts struct {
	verbose    bool
	configPath string
	pickConfig bool
	seed       uint64
	noDialog   bool

	cfg config.Config
}

// fieldOptions turns the seed flag or config seed into field options.
// A zero seed leaves the field time-seeded.
func (o *rootOpts) fieldOptions() []field.Option {
	seed := o.seed
	if seed == 0 {
		seed = o.cfg.Seed
	}
	if seed == 0 {
		return nil
	}
	return []field.Option{field.WithSeed(seed)}
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOpts{cfg: config.Default()}

	root := &cobra.Command{
		Use:          "particlefield",
		Short:        "An animated particle network that reacts to the pointer",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath, opts.pickConfig)
			if err != nil {
				return err
			}
			opts.cfg = cfg

			level, err := log.ParseLevel(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("%w: log_level %q", config.ErrInvalid, cfg.LogLevel)
			}
			if opts.verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindow(cmd.Context(), opts)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("particlefield %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "TOML file with host settings")
	root.PersistentFlags().BoolVar(&opts.pickConfig, "pick-config", false, "choose the config file in a dialog")
	root.PersistentFlags().Uint64Var(&opts.seed, "seed", 0, "random seed for the initial field (0: time based)")
	root.PersistentFlags().BoolVar(&opts.noDialog, "no-dialog", false, "report fatal errors on stderr only")

	root.AddCommand(newWindowCmd(opts))
	root.AddCommand(newTermCmd(opts))
	root.AddCommand(newPreviewCmd(opts))

	return root
}

// Execute runs the CLI with ctx, typically cancelled on SIGINT/SIGTERM.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
