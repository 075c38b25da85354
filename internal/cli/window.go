package cli

import (
	"context"

	"github.com/ncruces/zenity"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/particle-field/internal/game"
)

func newWindowCmd(opts *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "window",
		Short: "Open the field in a window (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindow(cmd.Context(), opts)
		},
	}
}

// runWindow blocks until the window closes. A failure is also shown in a
// dialog, since a window app is often started without a visible terminal.
func runWindow(ctx context.Context, opts *rootOpts) error {
	logger := loggerFromContext(ctx)
	logger.Debug("opening window", "width", opts.cfg.Window.Width, "height", opts.cfg.Window.Height, "tps", opts.cfg.Window.TPS)

	err := game.Run(ctx, opts.cfg, logger, opts.fieldOptions()...)
	if err != nil && !opts.noDialog {
		if derr := zenity.Error(err.Error(), zenity.Title("Particle Field")); derr != nil {
			logger.Warn("error dialog failed", "err", derr)
		}
	}
	return err
}
