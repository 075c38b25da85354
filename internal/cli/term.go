package cli

import (
	"github.com/spf13/cobra"

	"github.com/iburimskiy/particle-field/internal/term"
)

func newTermCmd(opts *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "term",
		Short: "Run the field in the terminal",
		Long:  `Run the field in the terminal with half-block cells. Move the mouse over it to push particles away; r respawns, q or Esc quits.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			return term.Run(cmd.Context(), opts.cfg, logger, opts.fieldOptions()...)
		},
	}
}
